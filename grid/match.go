package grid

import (
	"sort"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
)

// Components returns every maximal same-color group of Revealed cells
// Groups are discovered in ascending order of their lowest index
func (g *Grid) Components() [][]int {
	visited := make([]bool, len(g.cells))
	var groups [][]int
	stack := make([]int, 0, len(g.cells))
	neighbors := make([]int, 0, 4)

	for i := range g.cells {
		if visited[i] || g.cells[i].Visibility != core.Revealed {
			continue
		}
		color := g.cells[i].Color
		group := []int{}
		visited[i] = true
		stack = append(stack[:0], i)

		for len(stack) > 0 {
			curr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group = append(group, curr)

			neighbors = g.appendNeighbors(neighbors[:0], curr)
			for _, n := range neighbors {
				if visited[n] {
					continue
				}
				nc := g.cells[n]
				if nc.Visibility == core.Revealed && nc.Color == color {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
		sort.Ints(group)
		groups = append(groups, group)
	}
	return groups
}

// FindMatches returns the sorted union of every Revealed component of at least MatchMinSize cells
// Result depends only on grid contents; an empty board yields nil
func (g *Grid) FindMatches() []int {
	var matches []int
	for _, group := range g.Components() {
		if len(group) >= constant.MatchMinSize {
			matches = append(matches, group...)
		}
	}
	sort.Ints(matches)
	return matches
}

// MarkPopped flags the given slots as Popped
func (g *Grid) MarkPopped(indices []int) {
	for _, i := range indices {
		g.cells[i].Visibility = core.Popped
	}
}
