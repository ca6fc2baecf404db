package grid

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/lixenwraith/neurobreath/core"
)

// backdrop colors never repeat across an edge: right neighbor shifts by 1, down by 2 (mod 4)
var backdrop = [4]core.Color{core.ColorBlue, core.ColorGreen, core.ColorPurple, core.ColorYellow}

// patternGrid builds a fully Revealed grid without any same-color edge, red is left unused
func patternGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	cells := make([]Cell, rows*cols)
	for i := range cells {
		r, c := i/cols, i%cols
		cells[i] = Cell{
			ID:         fmt.Sprintf("c%d", i),
			Color:      backdrop[(r*2+c)%4],
			Visibility: core.Revealed,
		}
	}
	g, err := FromCells(rows, cols, cells)
	if err != nil {
		t.Fatalf("FromCells failed: %v", err)
	}
	return g
}

func paint(g *Grid, color core.Color, indices ...int) {
	for _, i := range indices {
		c := g.Get(i)
		c.Color = color
		g.Set(i, c)
	}
}

// TestNewGridInvariant verifies every slot is populated and hidden after generation
func TestNewGridInvariant(t *testing.T) {
	g := New(7, 7, rand.New(rand.NewSource(1)))

	if g.Len() != 49 {
		t.Fatalf("Expected 49 cells, got %d", g.Len())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Generated grid invalid: %v", err)
	}
	if n := g.Count(core.Hidden); n != 49 {
		t.Errorf("Expected all 49 cells hidden, got %d", n)
	}
}

// TestNewGridSeeded verifies the same seed reproduces colors and ids
func TestNewGridSeeded(t *testing.T) {
	a := New(7, 7, rand.New(rand.NewSource(42)))
	b := New(7, 7, rand.New(rand.NewSource(42)))

	for i := 0; i < a.Len(); i++ {
		if a.Get(i) != b.Get(i) {
			t.Fatalf("Cell %d differs between seeded grids: %+v vs %+v", i, a.Get(i), b.Get(i))
		}
	}
}

// TestNewGridClusterBias checks left-neighbor copies stay close to the configured bias
func TestNewGridClusterBias(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	same, pairs := 0, 0
	for n := 0; n < 400; n++ {
		g := New(7, 7, rng)
		for i := 0; i < g.Len(); i++ {
			if i%7 == 0 {
				continue
			}
			pairs++
			if g.Get(i).Color == g.Get(i-1).Color {
				same++
			}
		}
	}
	// Uniform alone gives 0.2; with 0.15 copy bias expect 0.15 + 0.85*0.2 = 0.32
	ratio := float64(same) / float64(pairs)
	if ratio < 0.28 || ratio > 0.36 {
		t.Errorf("Left-neighbor match ratio %.3f outside expected band [0.28, 0.36]", ratio)
	}
}

func TestNeighbors(t *testing.T) {
	g := patternGrid(t, 7, 7)

	tests := []struct {
		name  string
		index int
		want  []int
	}{
		{"top-left corner", 0, []int{7, 1}},
		{"top-right corner", 6, []int{13, 5}},
		{"bottom-left corner", 42, []int{35, 43}},
		{"left edge no wrap", 7, []int{0, 14, 8}},
		{"right edge no wrap", 13, []int{6, 20, 12}},
		{"center", 24, []int{17, 31, 23, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Neighbors(tt.index)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("Neighbors(%d) = %v, want %v", tt.index, got, tt.want)
			}
		})
	}
}

func TestAdjacent(t *testing.T) {
	g := patternGrid(t, 7, 7)

	if !g.Adjacent(0, 1) || !g.Adjacent(0, 7) {
		t.Error("Expected edge neighbors to be adjacent")
	}
	if g.Adjacent(6, 7) {
		t.Error("Row wraparound must not count as adjacent")
	}
	if g.Adjacent(0, 8) {
		t.Error("Diagonals must not count as adjacent")
	}
	if g.Adjacent(0, 0) {
		t.Error("A cell is not adjacent to itself")
	}
	if g.Adjacent(48, 49) {
		t.Error("Out-of-range index must not be adjacent")
	}
}

// TestSwapKeepsIndexInSync verifies swapped cells carry their new slot index
func TestSwapKeepsIndexInSync(t *testing.T) {
	g := patternGrid(t, 7, 7)
	idA, idB := g.Get(3).ID, g.Get(4).ID

	g.Swap(3, 4)

	if g.Get(3).ID != idB || g.Get(4).ID != idA {
		t.Fatal("Swap did not exchange cells")
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Grid invalid after swap: %v", err)
	}
	if i, ok := g.Find(idA); !ok || i != 4 {
		t.Errorf("Find(%s) = %d,%v, want 4,true", idA, i, ok)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	g := patternGrid(t, 3, 3)
	g.cells[4] = Cell{}
	if err := g.Validate(); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("Expected ErrEmptySlot, got %v", err)
	}

	g = patternGrid(t, 3, 3)
	g.cells[2].ID = g.cells[1].ID
	if err := g.Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}

	g = patternGrid(t, 3, 3)
	g.cells[5].Index = 0
	if err := g.Validate(); !errors.Is(err, ErrIndexDrift) {
		t.Errorf("Expected ErrIndexDrift, got %v", err)
	}
}

func TestFromCellsRejectsWrongSize(t *testing.T) {
	if _, err := FromCells(2, 2, make([]Cell, 3)); err == nil {
		t.Error("Expected error for 3 cells on a 2x2 grid")
	}
	if _, err := FromCells(0, 2, nil); err == nil {
		t.Error("Expected error for zero rows")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := patternGrid(t, 3, 3)
	c := g.Clone()
	c.SetVisibility(0, core.Hidden)

	if g.Get(0).Visibility != core.Revealed {
		t.Error("Mutating clone changed the original")
	}
}
