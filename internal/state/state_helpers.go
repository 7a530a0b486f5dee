package state

import "go-mines/internal/grid"

const (
	WinMessage  = "Yay! All mines flagged!"
	LossMessage = "Boom! You blew to smithereens!"
)

// ResultMessage returns the end-of-game message, or "" while in play.
func (s State) ResultMessage() string {
	switch {
	case s.Win:
		return WinMessage
	case s.Loss:
		return LossMessage
	}
	return ""
}

// MinesLeft is the mine count minus placed flags. It goes negative when the
// player places more flags than there are mines.
func (s State) MinesLeft() int {
	return s.Grid.MineCount() - s.Grid.FlagCount()
}

// IsExploded reports whether c is the mine that ended the game.
func (s State) IsExploded(c grid.Coordinate) bool {
	return s.ExplodedAt != nil && *s.ExplodedAt == c
}

// CoveredSafe counts non-mine tiles that are still covered.
func (s State) CoveredSafe() int {
	n := 0
	for _, t := range s.Grid.Tiles() {
		if t.Covered && !grid.IsMine(t.Content) {
			n++
		}
	}
	return n
}
