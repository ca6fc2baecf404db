package grid

import (
	"math/rand"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
)

// ApplyGravity compacts each column downward over Popped cells and refills the vacated top
// Survivors keep their relative order; refills are Hidden, flagged new, and copy the color
// below with probability RefillBias. Returns the number of cells created
func (g *Grid) ApplyGravity(rng *rand.Rand) int {
	created := 0
	for c := 0; c < g.cols; c++ {
		write := g.rows - 1
		for r := g.rows - 1; r >= 0; r-- {
			idx := g.Index(r, c)
			if g.cells[idx].Visibility == core.Popped {
				continue
			}
			if write != r {
				moved := g.cells[idx]
				moved.IsNew = false
				g.Set(g.Index(write, c), moved)
			}
			write--
		}

		for ; write >= 0; write-- {
			idx := g.Index(write, c)
			color := RandomColor(rng)
			if write+1 < g.rows && rng.Float64() < constant.RefillBias {
				color = g.cells[g.Index(write+1, c)].Color
			}
			g.cells[idx] = Cell{
				ID:         NewID(rng),
				Index:      idx,
				Color:      color,
				Visibility: core.Hidden,
				IsNew:      true,
			}
			created++
		}
	}
	return created
}
