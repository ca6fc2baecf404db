// Package grid holds the playfield model and the pure algorithms that act on it:
// biased generation, connectivity matching, gravity compaction and blast reveal
package grid

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/neurobreath/core"
)

var (
	// ErrEmptySlot is returned by Validate when a slot holds no cell
	ErrEmptySlot = errors.New("grid: empty slot")

	// ErrIndexDrift is returned by Validate when a cell's Index disagrees with its slot
	ErrIndexDrift = errors.New("grid: cell index out of sync")

	// ErrDuplicateID is returned by Validate when two slots share an ID
	ErrDuplicateID = errors.New("grid: duplicate cell id")
)

// Cell is one grid slot
type Cell struct {
	ID         string
	Index      int
	Color      core.Color
	Visibility core.Visibility
	IsNew      bool
}

// Empty reports whether the slot was never populated
func (c Cell) Empty() bool {
	return c.ID == ""
}

// Grid is a fixed rows*cols row-major array of cells
// Size never changes after construction; only contents do
type Grid struct {
	rows, cols int
	cells      []Cell
}

// FromCells builds a grid around an existing row-major cell slice
// Cell indices are rewritten to match their slot
func FromCells(rows, cols int, cells []Cell) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", rows, cols)
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("grid: %d cells for %dx%d", len(cells), rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, cells: make([]Cell, len(cells))}
	for i, c := range cells {
		c.Index = i
		g.cells[i] = c
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Len() int { return len(g.cells) }

// Get returns the cell at index i; callers validate i
func (g *Grid) Get(i int) Cell {
	return g.cells[i]
}

// Set stores c at index i and syncs its Index
func (g *Grid) Set(i int, c Cell) {
	c.Index = i
	g.cells[i] = c
}

// SetVisibility changes only the visibility of slot i
func (g *Grid) SetVisibility(i int, v core.Visibility) {
	g.cells[i].Visibility = v
}

// Cells returns a copy of the row-major cell array
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone returns an independent deep copy
func (g *Grid) Clone() *Grid {
	return &Grid{rows: g.rows, cols: g.cols, cells: g.Cells()}
}

// ToRowCol converts a slot index to row and column
func (g *Grid) ToRowCol(i int) (row, col int) {
	return i / g.cols, i % g.cols
}

// Index converts row and column to a slot index
func (g *Grid) Index(row, col int) int {
	return row*g.cols + col
}

// InBounds reports whether row and column address a slot
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Valid reports whether i addresses a slot
func (g *Grid) Valid(i int) bool {
	return i >= 0 && i < len(g.cells)
}

// Neighbors returns the in-bounds up, down, left, right indices of i, without wraparound
func (g *Grid) Neighbors(i int) []int {
	return g.appendNeighbors(make([]int, 0, 4), i)
}

func (g *Grid) appendNeighbors(dst []int, i int) []int {
	r, c := g.ToRowCol(i)
	if r > 0 {
		dst = append(dst, i-g.cols)
	}
	if r < g.rows-1 {
		dst = append(dst, i+g.cols)
	}
	if c > 0 {
		dst = append(dst, i-1)
	}
	if c < g.cols-1 {
		dst = append(dst, i+1)
	}
	return dst
}

// Adjacent reports whether a and b share an edge
func (g *Grid) Adjacent(a, b int) bool {
	if !g.Valid(a) || !g.Valid(b) {
		return false
	}
	ar, ac := g.ToRowCol(a)
	br, bc := g.ToRowCol(b)
	dr, dc := ar-br, ac-bc
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// Swap exchanges the cells at a and b, keeping Index in sync
func (g *Grid) Swap(a, b int) {
	g.cells[a], g.cells[b] = g.cells[b], g.cells[a]
	g.cells[a].Index = a
	g.cells[b].Index = b
}

// Find returns the current index of the cell with the given id
func (g *Grid) Find(id string) (int, bool) {
	if id == "" {
		return -1, false
	}
	for i := range g.cells {
		if g.cells[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// ClearNew drops the entrance flag on every cell, returning true if any was set
func (g *Grid) ClearNew() bool {
	cleared := false
	for i := range g.cells {
		if g.cells[i].IsNew {
			g.cells[i].IsNew = false
			cleared = true
		}
	}
	return cleared
}

// Count returns how many cells have visibility v
func (g *Grid) Count(v core.Visibility) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Visibility == v {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants: every slot populated, indices in sync, unique ids
func (g *Grid) Validate() error {
	if len(g.cells) != g.rows*g.cols {
		return fmt.Errorf("grid: %d cells for %dx%d", len(g.cells), g.rows, g.cols)
	}
	seen := make(map[string]int, len(g.cells))
	for i, c := range g.cells {
		if c.Empty() {
			return fmt.Errorf("%w at %d", ErrEmptySlot, i)
		}
		if c.Index != i {
			return fmt.Errorf("%w: slot %d holds index %d", ErrIndexDrift, i, c.Index)
		}
		if !c.Color.Valid() {
			return fmt.Errorf("grid: invalid color %d at %d", c.Color, i)
		}
		if prev, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: %q at %d and %d", ErrDuplicateID, c.ID, prev, i)
		}
		seen[c.ID] = i
	}
	return nil
}
