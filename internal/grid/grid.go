package grid

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrConfiguration is returned when a grid cannot be built from the
// requested size and mine count.
var ErrConfiguration = errors.New("invalid grid configuration")

// Size is the number of rows and columns of a grid.
type Size struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Cells returns Rows*Columns.
func (s Size) Cells() int {
	return s.Rows * s.Columns
}

// Coordinate addresses a tile, zero-based.
type Coordinate struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// Tile is a copy of one cell of a grid.
type Tile struct {
	Coordinate Coordinate
	Content    Content
	Covered    bool
	Flagged    bool
}

// Grid owns the tiles of one game. Tiles are only reachable by Coordinate
// and are handed out as copies.
type Grid struct {
	size  Size
	mines int
	tiles [][]Tile
}

var (
	neighborOffsets = []Coordinate{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	orthogonalOffsets = []Coordinate{
		{0, -1}, // left
		{0, 1},  // right
		{-1, 0}, // up
		{1, 0},  // down
	}
)

// Validate checks that a grid of the given size can hold mineCount mines.
// At least one tile must stay free of mines.
func Validate(size Size, mineCount int) error {
	if size.Rows <= 0 || size.Columns <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrConfiguration, size.Rows, size.Columns)
	}
	if mineCount < 0 || mineCount >= size.Cells() {
		return fmt.Errorf("%w: %d mines do not fit a %dx%d grid (allowed 0..%d)",
			ErrConfiguration, mineCount, size.Rows, size.Columns, size.Cells()-1)
	}
	return nil
}

// New builds a grid, places mineCount mines uniformly at random and assigns
// hints.
func New(size Size, mineCount int) (*Grid, error) {
	return NewWithRand(size, mineCount, nil)
}

// NewWithRand is New with an explicit random source. A nil rng uses the
// package-level source of math/rand.
func NewWithRand(size Size, mineCount int, rng *rand.Rand) (*Grid, error) {
	if err := Validate(size, mineCount); err != nil {
		return nil, err
	}
	g := allocate(size)
	g.placeMines(mineCount, rng)
	g.computeHints()
	return g, nil
}

// FromMines builds a grid with mines at exactly the given coordinates.
func FromMines(size Size, mines []Coordinate) (*Grid, error) {
	if err := Validate(size, len(mines)); err != nil {
		return nil, err
	}
	g := allocate(size)
	for _, c := range mines {
		if !g.IsValid(c) {
			return nil, fmt.Errorf("%w: mine %s is outside the grid", ErrConfiguration, c)
		}
		if IsMine(g.tiles[c.Row][c.Column].Content) {
			return nil, fmt.Errorf("%w: mine %s listed twice", ErrConfiguration, c)
		}
		g.tiles[c.Row][c.Column].Content = Mine{}
	}
	g.mines = len(mines)
	g.computeHints()
	return g, nil
}

func allocate(size Size) *Grid {
	tiles := make([][]Tile, size.Rows)
	for r := range tiles {
		tiles[r] = make([]Tile, size.Columns)
		for c := range tiles[r] {
			tiles[r][c] = Tile{
				Coordinate: Coordinate{Row: r, Column: c},
				Content:    Empty{},
				Covered:    true,
			}
		}
	}
	return &Grid{size: size, tiles: tiles}
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size {
	return g.size
}

// MineCount returns the number of mines on the grid.
func (g *Grid) MineCount() int {
	return g.mines
}

// IsValid reports whether c lies inside the grid.
func (g *Grid) IsValid(c Coordinate) bool {
	return c.Row >= 0 && c.Column >= 0 && c.Row < g.size.Rows && c.Column < g.size.Columns
}

// Get returns a copy of the tile at c. ok is false for an invalid
// coordinate.
func (g *Grid) Get(c Coordinate) (Tile, bool) {
	if !g.IsValid(c) {
		return Tile{}, false
	}
	return g.tiles[c.Row][c.Column], true
}

// Tiles returns copies of all tiles in row-major order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, 0, g.size.Cells())
	for _, row := range g.tiles {
		out = append(out, row...)
	}
	return out
}

// Neighbors returns the valid coordinates among the 8 tiles around c.
func (g *Grid) Neighbors(c Coordinate) []Coordinate {
	return g.offset(c, neighborOffsets)
}

// Orthogonal returns the valid coordinates left, right, above and below c.
func (g *Grid) Orthogonal(c Coordinate) []Coordinate {
	return g.offset(c, orthogonalOffsets)
}

func (g *Grid) offset(c Coordinate, offsets []Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(offsets))
	for _, o := range offsets {
		n := Coordinate{Row: c.Row + o.Row, Column: c.Column + o.Column}
		if g.IsValid(n) {
			out = append(out, n)
		}
	}
	return out
}

func (g *Grid) at(c Coordinate) *Tile {
	return &g.tiles[c.Row][c.Column]
}

// FlagCount returns the number of flagged tiles.
func (g *Grid) FlagCount() int {
	n := 0
	for _, row := range g.tiles {
		for _, t := range row {
			if t.Flagged {
				n++
			}
		}
	}
	return n
}
