package constant

// Grid geometry
const (
	// GridRows is the number of rows of the playfield
	GridRows = 7

	// GridCols is the number of columns of the playfield
	GridCols = 7

	// MatchMinSize is the smallest connected group that pops
	MatchMinSize = 3

	// BlastRadius is the Manhattan radius revealed by a completed breath
	BlastRadius = 3
)

// Generation bias
const (
	// ClusterBias is the chance a fresh board cell copies its left neighbor's color
	ClusterBias = 0.15

	// RefillBias is the chance a gravity refill copies the color of the cell below
	RefillBias = 0.3
)
