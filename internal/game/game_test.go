package game

import (
	"errors"
	"io"
	"testing"

	"go-mines/internal/grid"
	"go-mines/internal/scoring"

	"github.com/sirupsen/logrus"
)

// MockStorage implements scoring.ScoreStorage for testing
type MockStorage struct {
	Entries    []scoring.ScoreHistoryEntry
	SaveCalled bool
	SaveErr    error
}

func (m *MockStorage) LoadAll() ([]scoring.ScoreHistoryEntry, error) {
	return m.Entries, nil
}

func (m *MockStorage) SaveAll(entries []scoring.ScoreHistoryEntry) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Entries = entries
	m.SaveCalled = true
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newFixedGame builds a game on a known 3x3 board with a mine at (0,0):
//
//	M 1 .
//	1 1 .
//	. . .
func newFixedGame(t *testing.T, store scoring.ScoreStorage) *Game {
	t.Helper()
	g, err := grid.FromMines(grid.Size{Rows: 3, Columns: 3}, []grid.Coordinate{{Row: 0, Column: 0}})
	if err != nil {
		t.Fatalf("FromMines failed: %v", err)
	}
	preset := Preset{Name: "test", Size: g.Size(), Mines: 1}
	game, err := newGame(preset, g, store, quietLogger())
	if err != nil {
		t.Fatalf("newGame failed: %v", err)
	}
	return game
}

func TestNewGame_Presets(t *testing.T) {
	for _, p := range Presets() {
		g, err := NewGame(p, &MockStorage{}, quietLogger())
		if err != nil {
			t.Fatalf("NewGame(%s) failed: %v", p.Name, err)
		}
		if g.Size() != p.Size {
			t.Errorf("%s: size %v, expected %v", p.Name, g.Size(), p.Size)
		}
		if g.MineCount() != p.Mines {
			t.Errorf("%s: %d mines, expected %d", p.Name, g.MineCount(), p.Mines)
		}
		if g.MinesLeft() != p.Mines {
			t.Errorf("%s: %d mines left, expected %d", p.Name, g.MinesLeft(), p.Mines)
		}
	}
}

func TestNewGame_EasyAlwaysHasThreeMines(t *testing.T) {
	for i := 0; i < 100; i++ {
		g, err := NewGame(Easy, &MockStorage{}, quietLogger())
		if err != nil {
			t.Fatalf("NewGame failed: %v", err)
		}
		mines := 0
		for _, tile := range g.State.Grid.Tiles() {
			if grid.IsMine(tile.Content) {
				mines++
			}
		}
		if mines != 3 {
			t.Fatalf("Game %d has %d mines, expected 3", i, mines)
		}
	}
}

func TestNewGame_BadPreset(t *testing.T) {
	bad := Preset{Name: "broken", Size: grid.Size{Rows: 2, Columns: 2}, Mines: 4}
	_, err := NewGame(bad, &MockStorage{}, quietLogger())
	if !errors.Is(err, grid.ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration, got %v", err)
	}
}

func TestGame_LossFlow(t *testing.T) {
	store := &MockStorage{}
	g := newFixedGame(t, store)

	g.HandleTick() // not started yet
	if res := g.Reveal(grid.Coordinate{Row: 1, Column: 1}); res.Content != (grid.Hint{Count: 1}) {
		t.Fatalf("Expected hint(1), got %v", res.Content)
	}
	g.HandleTick()
	g.HandleTick()

	res := g.Reveal(grid.Coordinate{Row: 0, Column: 0})
	if !res.HitMine() {
		t.Fatalf("Expected a mine hit, got %v", res.Content)
	}
	if !g.Lost() || g.Won() || !g.IsOver() {
		t.Error("Game should be lost")
	}
	if !store.SaveCalled {
		t.Fatal("Result should be saved on loss")
	}
	entry := store.Entries[len(store.Entries)-1]
	if entry.Won || entry.Seconds != 2 || entry.GameID != g.ID.String() {
		t.Errorf("Unexpected saved entry %+v", entry)
	}
}

func TestGame_WinFlow(t *testing.T) {
	store := &MockStorage{}
	g := newFixedGame(t, store)

	g.ToggleFlag(grid.Coordinate{Row: 0, Column: 0})
	if g.MinesLeft() != 0 {
		t.Errorf("Expected 0 mines left, got %d", g.MinesLeft())
	}
	for i := 0; i < 7; i++ {
		g.HandleTick()
	}

	g.Reveal(grid.Coordinate{Row: 2, Column: 2})
	if !g.Won() {
		t.Fatal("Game should be won")
	}
	if !store.SaveCalled {
		t.Fatal("Result should be saved on win")
	}
	if got := store.Entries[0]; !got.Won || got.Seconds != 7 || got.Difficulty != "test" {
		t.Errorf("Unexpected saved entry %+v", got)
	}
	if !g.Score.GotBestTime() {
		t.Error("First win should be the best time")
	}

	// Ticks after the end are ignored.
	g.HandleTick()
	if g.State.Elapsed != 7 {
		t.Errorf("Timer should stop, got %d", g.State.Elapsed)
	}
}

func TestGame_SaveErrorIsKept(t *testing.T) {
	boom := errors.New("read-only")
	g := newFixedGame(t, &MockStorage{SaveErr: boom})

	g.Reveal(grid.Coordinate{Row: 0, Column: 0})
	if !errors.Is(g.SaveErr(), boom) {
		t.Errorf("Expected save error, got %v", g.SaveErr())
	}
	if !g.Lost() {
		t.Error("A failing save must not change the outcome")
	}
}

func TestGame_TileQuery(t *testing.T) {
	g := newFixedGame(t, &MockStorage{})

	tile, ok := g.Tile(grid.Coordinate{Row: 0, Column: 1})
	if !ok {
		t.Fatal("Tile (0,1) should exist")
	}
	if tile.Content != (grid.Hint{Count: 1}) || !tile.Covered || tile.Flagged {
		t.Errorf("Unexpected tile %+v", tile)
	}
	if _, ok := g.Tile(grid.Coordinate{Row: 3, Column: 0}); ok {
		t.Error("Tile outside the board should not exist")
	}
}
