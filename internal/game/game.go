package game

import (
	"context"
	"fmt"

	"go-mines/internal/grid"
	"go-mines/internal/scoring"
	"go-mines/internal/state"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Game is one play-through: a grid, its lifecycle state and the score
// record, independent of the UI.
type Game struct {
	ID     uuid.UUID
	Preset Preset
	State  *state.State
	Score  *scoring.Scoring

	log     logrus.FieldLogger
	saveErr error
}

// NewGame builds a fresh board for preset and loads the score history of
// that difficulty from storage.
func NewGame(preset Preset, storage scoring.ScoreStorage, log logrus.FieldLogger) (*Game, error) {
	g, err := grid.New(preset.Size, preset.Mines)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", preset.Name, err)
	}
	return newGame(preset, g, storage, log)
}

func newGame(preset Preset, g *grid.Grid, storage scoring.ScoreStorage, log logrus.FieldLogger) (*Game, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	id := uuid.New()
	log = log.WithFields(logrus.Fields{
		"game_id":    id.String(),
		"difficulty": preset.Name,
	})

	sc, err := scoring.InitScoring(preset.Name, id.String(), storage)
	if err != nil {
		return nil, err
	}

	game := &Game{
		ID:     id,
		Preset: preset,
		State:  state.NewState(g, log),
		Score:  sc,
		log:    log,
	}
	game.State.OnEnd = game.finish
	log.WithField("mines", g.MineCount()).Debug("game created")
	return game, nil
}

func (g *Game) finish(s *state.State) {
	g.Score.Record(s.Elapsed, s.Win)
	if err := g.Score.SaveEntries(); err != nil {
		g.saveErr = err
		g.log.WithError(err).Error("failed to save score")
	}
}

// Reveal uncovers the tile at c and reports what was found there.
func (g *Game) Reveal(c grid.Coordinate) grid.RevealResult {
	return g.State.Reveal(context.Background(), c)
}

// ToggleFlag flips the flag at c.
func (g *Game) ToggleFlag(c grid.Coordinate) bool {
	return g.State.ToggleFlag(context.Background(), c)
}

// HandleTick processes a one second timer tick.
func (g *Game) HandleTick() {
	g.State.Tick(context.Background())
}

// Tile returns the tile at c for rendering.
func (g *Game) Tile(c grid.Coordinate) (grid.Tile, bool) {
	return g.State.Grid.Get(c)
}

// Size returns the board dimensions.
func (g *Game) Size() grid.Size {
	return g.State.Grid.Size()
}

// MineCount returns the number of mines on the board.
func (g *Game) MineCount() int {
	return g.State.Grid.MineCount()
}

// MinesLeft is the mine count minus the flags placed.
func (g *Game) MinesLeft() int {
	return g.State.MinesLeft()
}

func (g *Game) IsOver() bool { return g.State.IsOver() }
func (g *Game) Won() bool    { return g.State.Win }
func (g *Game) Lost() bool   { return g.State.Loss }

// SaveErr returns the error from saving the result, if any.
func (g *Game) SaveErr() error {
	return g.saveErr
}
