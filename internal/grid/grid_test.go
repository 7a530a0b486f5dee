package grid

import (
	"errors"
	"math/rand"
	"testing"
)

func mustFromMines(t *testing.T, size Size, mines ...Coordinate) *Grid {
	t.Helper()
	g, err := FromMines(size, mines)
	if err != nil {
		t.Fatalf("FromMines failed: %v", err)
	}
	return g
}

func countMines(g *Grid) int {
	n := 0
	for _, tile := range g.Tiles() {
		if IsMine(tile.Content) {
			n++
		}
	}
	return n
}

func TestNew_InitialTiles(t *testing.T) {
	g, err := New(Size{Rows: 4, Columns: 6}, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tiles := g.Tiles()
	if len(tiles) != 24 {
		t.Fatalf("Expected 24 tiles, got %d", len(tiles))
	}
	for i, tile := range tiles {
		want := Coordinate{Row: i / 6, Column: i % 6}
		if tile.Coordinate != want {
			t.Errorf("Tile %d has coordinate %v, expected %v", i, tile.Coordinate, want)
		}
		if !tile.Covered || tile.Flagged {
			t.Errorf("Tile %v should start covered and unflagged", tile.Coordinate)
		}
		if _, ok := tile.Content.(Empty); !ok {
			t.Errorf("Tile %v should be empty on a mine-free grid, got %v", tile.Coordinate, tile.Content)
		}
	}
}

func TestNew_Configuration(t *testing.T) {
	tests := []struct {
		name  string
		size  Size
		mines int
		ok    bool
	}{
		{"zero mines", Size{3, 3}, 0, true},
		{"all but one", Size{3, 3}, 8, true},
		{"full grid", Size{3, 3}, 9, false},
		{"too many", Size{3, 3}, 20, false},
		{"negative mines", Size{3, 3}, -1, false},
		{"zero rows", Size{0, 3}, 0, false},
		{"negative columns", Size{3, -2}, 0, false},
	}

	for _, tt := range tests {
		g, err := New(tt.size, tt.mines)
		if tt.ok {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
				continue
			}
			if g.MineCount() != tt.mines {
				t.Errorf("%s: MineCount() = %d, expected %d", tt.name, g.MineCount(), tt.mines)
			}
			continue
		}
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration, got %v", tt.name, err)
		}
	}
}

func TestFromMines_Rejects(t *testing.T) {
	if _, err := FromMines(Size{3, 3}, []Coordinate{{0, 0}, {0, 0}}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Duplicate mine should fail with ErrConfiguration, got %v", err)
	}
	if _, err := FromMines(Size{3, 3}, []Coordinate{{3, 0}}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Out of range mine should fail with ErrConfiguration, got %v", err)
	}
}

func TestIsValidAndGet(t *testing.T) {
	g := mustFromMines(t, Size{Rows: 5, Columns: 3})

	tests := []struct {
		c      Coordinate
		expect bool
	}{
		{Coordinate{0, 0}, true},
		{Coordinate{4, 2}, true},
		{Coordinate{5, 0}, false},
		{Coordinate{0, 3}, false},
		{Coordinate{-1, 0}, false},
		{Coordinate{0, -1}, false},
	}

	for _, tt := range tests {
		if got := g.IsValid(tt.c); got != tt.expect {
			t.Errorf("IsValid(%v) = %v, expected %v", tt.c, got, tt.expect)
		}
		tile, ok := g.Get(tt.c)
		if ok != tt.expect {
			t.Errorf("Get(%v) ok = %v, expected %v", tt.c, ok, tt.expect)
		}
		if ok && tile.Coordinate != tt.c {
			t.Errorf("Get(%v) returned tile at %v", tt.c, tile.Coordinate)
		}
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	g := mustFromMines(t, Size{Rows: 2, Columns: 2})
	tile, _ := g.Get(Coordinate{0, 0})
	tile.Covered = false
	tile.Flagged = true

	again, _ := g.Get(Coordinate{0, 0})
	if !again.Covered || again.Flagged {
		t.Error("Mutating a returned tile must not change the grid")
	}
}

func TestNeighbors(t *testing.T) {
	g := mustFromMines(t, Size{Rows: 3, Columns: 3})

	if n := len(g.Neighbors(Coordinate{1, 1})); n != 8 {
		t.Errorf("Center should have 8 neighbors, got %d", n)
	}
	if n := len(g.Neighbors(Coordinate{0, 0})); n != 3 {
		t.Errorf("Corner should have 3 neighbors, got %d", n)
	}
	if n := len(g.Neighbors(Coordinate{0, 1})); n != 5 {
		t.Errorf("Edge should have 5 neighbors, got %d", n)
	}
	if n := len(g.Orthogonal(Coordinate{1, 1})); n != 4 {
		t.Errorf("Center should have 4 orthogonal neighbors, got %d", n)
	}
	if n := len(g.Orthogonal(Coordinate{2, 2})); n != 2 {
		t.Errorf("Corner should have 2 orthogonal neighbors, got %d", n)
	}
}

// Easy difficulty settings, many independent boards.
func TestPlaceMines_ExactCount(t *testing.T) {
	for i := 0; i < 100; i++ {
		g, err := New(Size{Rows: 5, Columns: 3}, 3)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if got := countMines(g); got != 3 {
			t.Fatalf("Board %d has %d mines, expected 3", i, got)
		}
	}
}

func TestPlaceMines_DenseBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g, err := NewWithRand(Size{Rows: 4, Columns: 4}, 15, rng)
	if err != nil {
		t.Fatalf("NewWithRand failed: %v", err)
	}
	if got := countMines(g); got != 15 {
		t.Errorf("Expected 15 mines, got %d", got)
	}
}

func TestPlaceMines_ReachesEveryEdge(t *testing.T) {
	// Every row and column must be drawable, including the last ones.
	rng := rand.New(rand.NewSource(1))
	rows := map[int]bool{}
	cols := map[int]bool{}
	for i := 0; i < 200; i++ {
		g, _ := NewWithRand(Size{Rows: 3, Columns: 3}, 1, rng)
		for _, tile := range g.Tiles() {
			if IsMine(tile.Content) {
				rows[tile.Coordinate.Row] = true
				cols[tile.Coordinate.Column] = true
			}
		}
	}
	if len(rows) != 3 || len(cols) != 3 {
		t.Errorf("Mines should reach all rows and columns, got rows %v cols %v", rows, cols)
	}
}

func TestComputeHints_SingleCornerMine(t *testing.T) {
	g := mustFromMines(t, Size{Rows: 3, Columns: 3}, Coordinate{0, 0})

	tests := []struct {
		c      Coordinate
		expect Content
	}{
		{Coordinate{0, 0}, Mine{}},
		{Coordinate{0, 1}, Hint{Count: 1}},
		{Coordinate{1, 0}, Hint{Count: 1}},
		{Coordinate{1, 1}, Hint{Count: 1}},
		{Coordinate{0, 2}, Empty{}},
		{Coordinate{2, 2}, Empty{}},
	}

	for _, tt := range tests {
		tile, _ := g.Get(tt.c)
		if tile.Content != tt.expect {
			t.Errorf("Content at %v = %v, expected %v", tt.c, tile.Content, tt.expect)
		}
	}
}

func TestComputeHints_MatchesNeighborCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		g, err := NewWithRand(Size{Rows: 10, Columns: 6}, 8+i, rng)
		if err != nil {
			t.Fatalf("NewWithRand failed: %v", err)
		}
		for _, tile := range g.Tiles() {
			if IsMine(tile.Content) {
				continue
			}
			want := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					n, ok := g.Get(Coordinate{tile.Coordinate.Row + dr, tile.Coordinate.Column + dc})
					if ok && (dr != 0 || dc != 0) && IsMine(n.Content) {
						want++
					}
				}
			}
			switch c := tile.Content.(type) {
			case Empty:
				if want != 0 {
					t.Errorf("Tile %v is empty but has %d mined neighbors", tile.Coordinate, want)
				}
			case Hint:
				if c.Count != want || c.Count == 0 {
					t.Errorf("Tile %v hint %d, expected %d", tile.Coordinate, c.Count, want)
				}
			}
		}
	}
}
