package game

import (
	"fmt"
	"strings"

	"go-mines/internal/grid"
)

// Preset is a named board configuration.
type Preset struct {
	Name  string
	Size  grid.Size
	Mines int
}

const CustomName = "custom"

// Built-in difficulties.
var (
	Easy   = Preset{Name: "easy", Size: grid.Size{Rows: 5, Columns: 3}, Mines: 3}
	Medium = Preset{Name: "medium", Size: grid.Size{Rows: 7, Columns: 5}, Mines: 6}
	Hard   = Preset{Name: "hard", Size: grid.Size{Rows: 10, Columns: 6}, Mines: 8}
)

// Presets returns the built-in difficulties, easiest first.
func Presets() []Preset {
	return []Preset{Easy, Medium, Hard}
}

// PresetByName looks up a built-in difficulty, ignoring case.
func PresetByName(name string) (Preset, error) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: unknown difficulty %q", grid.ErrConfiguration, name)
}

// Validate checks that the board can be built.
func (p Preset) Validate() error {
	if err := grid.Validate(p.Size, p.Mines); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}
	return nil
}

func (p Preset) String() string {
	return fmt.Sprintf("%s (%dx%d, %d mines)", p.Name, p.Size.Rows, p.Size.Columns, p.Mines)
}
