package grid

import "github.com/lixenwraith/neurobreath/core"

// BlastArea returns the in-bounds indices within Manhattan distance radius of center
func (g *Grid) BlastArea(center, radius int) []int {
	r, c := g.ToRowCol(center)
	indices := make([]int, 0, 2*radius*(radius+1)+1)
	for dy := -radius; dy <= radius; dy++ {
		span := radius - abs(dy)
		for dx := -span; dx <= span; dx++ {
			nr, nc := r+dy, c+dx
			if g.InBounds(nr, nc) {
				indices = append(indices, g.Index(nr, nc))
			}
		}
	}
	return indices
}

// Reveal flips the Hidden cells of the blast diamond around center to Revealed
// Already Revealed cells are untouched. Returns the indices that changed
func (g *Grid) Reveal(center, radius int) []int {
	var revealed []int
	for _, i := range g.BlastArea(center, radius) {
		if g.cells[i].Visibility == core.Hidden {
			g.cells[i].Visibility = core.Revealed
			revealed = append(revealed, i)
		}
	}
	return revealed
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
