package grid

import "github.com/gammazero/deque"

// RevealResult describes what a reveal found and changed.
type RevealResult struct {
	// Content of the targeted tile, nil when the coordinate is invalid.
	Content Content
	// Uncovered lists every tile this call uncovered, in reveal order.
	Uncovered []Coordinate
}

// HitMine reports whether the targeted tile is a mine.
func (r RevealResult) HitMine() bool {
	return r.Content != nil && IsMine(r.Content)
}

// Reveal uncovers the tile at c. Mine and Hint tiles are uncovered alone.
// An Empty tile starts a flood fill across its 4-connected Empty region,
// uncovering the Hint tiles on its border without spreading past them.
// Flags do not stop a reveal. Revealing an uncovered tile changes nothing.
func (g *Grid) Reveal(c Coordinate) RevealResult {
	if !g.IsValid(c) {
		return RevealResult{}
	}
	t := g.at(c)
	res := RevealResult{Content: t.Content}
	if !t.Covered {
		return res
	}

	switch t.Content.(type) {
	case Mine, Hint:
		g.uncover(t)
		res.Uncovered = []Coordinate{c}
	case Empty:
		res.Uncovered = g.floodFill(c)
	}
	return res
}

func (g *Grid) floodFill(start Coordinate) []Coordinate {
	var uncovered []Coordinate
	var pending deque.Deque[Coordinate]
	pending.PushBack(start)

	for pending.Len() > 0 {
		c := pending.PopFront()
		t := g.at(c)
		if !t.Covered {
			continue
		}
		g.uncover(t)
		uncovered = append(uncovered, c)

		if _, empty := t.Content.(Empty); !empty {
			continue
		}
		for _, n := range g.Orthogonal(c) {
			if g.at(n).Covered {
				pending.PushBack(n)
			}
		}
	}
	return uncovered
}

// RevealAllMines uncovers every mine still covered and returns their
// coordinates. Non-mine tiles are left as they are.
func (g *Grid) RevealAllMines() []Coordinate {
	var uncovered []Coordinate
	for r := range g.tiles {
		for c := range g.tiles[r] {
			t := &g.tiles[r][c]
			if t.Covered && IsMine(t.Content) {
				g.uncover(t)
				uncovered = append(uncovered, t.Coordinate)
			}
		}
	}
	return uncovered
}

func (g *Grid) uncover(t *Tile) {
	t.Covered = false
	t.Flagged = false
}

// ToggleFlag flips the flag of a covered tile. It returns false, changing
// nothing, for invalid or uncovered coordinates.
func (g *Grid) ToggleFlag(c Coordinate) bool {
	if !g.IsValid(c) {
		return false
	}
	t := g.at(c)
	if !t.Covered {
		return false
	}
	t.Flagged = !t.Flagged
	return true
}

// IsCleared reports whether every non-mine tile has been uncovered.
func (g *Grid) IsCleared() bool {
	for _, row := range g.tiles {
		for _, t := range row {
			if t.Covered && !IsMine(t.Content) {
				return false
			}
		}
	}
	return true
}
