package grid

import "strconv"

// Content is what a tile holds. It is one of Empty, Hint or Mine and is
// fixed once the grid has been built.
type Content interface {
	isContent()
	String() string
}

// Empty is a tile with no mine and no mined neighbors.
type Empty struct{}

// Hint is a tile with Count (1..8) mined neighbors.
type Hint struct {
	Count int
}

// Mine is a mined tile.
type Mine struct{}

func (Empty) isContent() {}
func (Hint) isContent()  {}
func (Mine) isContent()  {}

func (Empty) String() string  { return "empty" }
func (h Hint) String() string { return "hint(" + strconv.Itoa(h.Count) + ")" }
func (Mine) String() string   { return "mine" }

// IsMine reports whether c is a Mine.
func IsMine(c Content) bool {
	_, ok := c.(Mine)
	return ok
}
