package grid

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
)

// RandomColor picks a palette color uniformly
func RandomColor(rng *rand.Rand) core.Color {
	return core.Palette[rng.Intn(core.PaletteSize)]
}

// NewID draws a UUID from rng so seeded sessions reproduce their ids
func NewID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// New builds a rows*cols board of Hidden cells with mild left-neighbor clustering
func New(rows, cols int, rng *rand.Rand) *Grid {
	g := &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
	for i := range g.cells {
		color := RandomColor(rng)
		if i%cols > 0 && rng.Float64() < constant.ClusterBias {
			color = g.cells[i-1].Color
		}
		g.cells[i] = Cell{
			ID:         NewID(rng),
			Index:      i,
			Color:      color,
			Visibility: core.Hidden,
		}
	}
	return g
}
