package server

import (
	"math"
	"sort"
)

// ReachRadius is the interaction range in cell units: two cells horizontally,
// one vertically.
var ReachRadius = math.Sqrt(5)

// Reach returns the cells whose centers lie within radius of the center of
// the cell at index, scanned row by row. The member's own cell is always
// part of the result for radius >= 1.
func (g Grid) Reach(index int, radius float64) []int {
	cx, cy := g.Cell(index)
	rows := int(math.Floor(radius))
	var cells []int
	for h := -rows; h <= rows; h++ {
		y := cy + h
		if y < 0 || y >= g.Height {
			continue
		}
		w := math.Sqrt(radius*radius - float64(h*h))
		lo := int(math.Ceil(float64(cx) - w))
		hi := int(math.Floor(float64(cx) + w))
		for x := lo; x <= hi; x++ {
			if x < 0 || x >= g.Width {
				continue
			}
			cells = append(cells, x+y*g.Width)
		}
	}
	return cells
}

// ReachTracker maintains a member's reachable set across position changes and
// reports each change incrementally as added and removed cell sets.
type ReachTracker struct {
	grid    Grid
	radius  float64
	current map[int]struct{}
}

func NewReachTracker(grid Grid, radius float64) *ReachTracker {
	return &ReachTracker{grid: grid, radius: radius, current: make(map[int]struct{})}
}

// Update recomputes the reachable set around the cell at index. It returns
// the cells that entered and left the set since the previous update, both
// sorted.
func (t *ReachTracker) Update(index int) (added, removed []int) {
	next := make(map[int]struct{})
	for _, cell := range t.grid.Reach(index, t.radius) {
		next[cell] = struct{}{}
		if _, ok := t.current[cell]; !ok {
			added = append(added, cell)
		}
	}
	for cell := range t.current {
		if _, ok := next[cell]; !ok {
			removed = append(removed, cell)
		}
	}
	t.current = next
	sort.Ints(added)
	sort.Ints(removed)
	return added, removed
}

// Contains reports whether the cell at index is currently reachable.
func (t *ReachTracker) Contains(index int) bool {
	_, ok := t.current[index]
	return ok
}

// Cells returns the current reachable set, sorted.
func (t *ReachTracker) Cells() []int {
	cells := make([]int, 0, len(t.current))
	for cell := range t.current {
		cells = append(cells, cell)
	}
	sort.Ints(cells)
	return cells
}
