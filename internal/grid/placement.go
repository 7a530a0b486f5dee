package grid

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// placeMines picks count distinct coordinates by rejection sampling and
// marks them as mines. Validate guarantees count < Cells, so the loop ends.
func (g *Grid) placeMines(count int, rng *rand.Rand) {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	chosen := mapset.New[Coordinate]()
	for chosen.Size() < count {
		c := Coordinate{Row: intn(g.size.Rows), Column: intn(g.size.Columns)}
		if chosen.Has(c) {
			continue
		}
		chosen.Put(c)
	}

	chosen.Each(func(c Coordinate) {
		g.at(c).Content = Mine{}
	})
	g.mines = count
}

// computeHints assigns Hint content to every non-mine tile with at least one
// mined neighbor. Tiles without mined neighbors stay Empty.
func (g *Grid) computeHints() {
	for r := range g.tiles {
		for c := range g.tiles[r] {
			t := &g.tiles[r][c]
			if IsMine(t.Content) {
				continue
			}
			n := 0
			for _, nc := range g.Neighbors(t.Coordinate) {
				if IsMine(g.at(nc).Content) {
					n++
				}
			}
			if n > 0 {
				t.Content = Hint{Count: n}
			}
		}
	}
}
