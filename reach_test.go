package server

import "testing"

func TestReachContainsOwnCell(t *testing.T) {
	grid := Grid{Width: 16, Height: 9}
	for index := 0; index < grid.Cells(); index++ {
		found := false
		for _, cell := range grid.Reach(index, ReachRadius) {
			if cell == index {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("cell %d not in its own reachable set", index)
		}
	}
}

func TestReachShape(t *testing.T) {
	// Around an interior cell the default radius covers two cells
	// horizontally and one vertically: rows of 3, 5, 5, 5, 3.
	grid := Grid{Width: 16, Height: 9}
	center := 4*grid.Width + 8
	cells := grid.Reach(center, ReachRadius)
	if len(cells) != 21 {
		t.Fatalf("expected 21 reachable cells, got %d", len(cells))
	}
	cx, cy := grid.Cell(center)
	if !containsCell(cells, (cx+2)+cy*grid.Width) {
		t.Fatalf("expected two-cell horizontal reach")
	}
	if containsCell(cells, (cx+2)+(cy+1)*grid.Width) {
		t.Fatalf("cell (2, 1) away must be outside radius sqrt(5)")
	}
}

func TestReachClipsAtEdges(t *testing.T) {
	grid := Grid{Width: 16, Height: 9}
	cells := grid.Reach(0, ReachRadius)
	for _, cell := range cells {
		if !grid.ValidIndex(cell) {
			t.Fatalf("reach produced out-of-range cell %d", cell)
		}
		x, y := grid.Cell(cell)
		if x > 2 || y > 2 {
			t.Fatalf("unexpected reachable cell (%d, %d) from the corner", x, y)
		}
	}
}

func TestReachTrackerDiffs(t *testing.T) {
	grid := Grid{Width: 16, Height: 9}
	tracker := NewReachTracker(grid, ReachRadius)

	added, removed := tracker.Update(4*grid.Width + 8)
	if len(added) != 21 || len(removed) != 0 {
		t.Fatalf("initial update: added=%d removed=%d, want 21/0", len(added), len(removed))
	}

	// One cell to the right: the leftmost column leaves, a new one enters.
	added, removed = tracker.Update(4*grid.Width + 9)
	if len(added) == 0 || len(removed) == 0 {
		t.Fatalf("expected a non-empty diff after moving, added=%v removed=%v", added, removed)
	}
	if len(added) != len(removed) {
		t.Fatalf("interior shift must preserve set size, added=%v removed=%v", added, removed)
	}
	for _, cell := range removed {
		if tracker.Contains(cell) {
			t.Fatalf("removed cell %d still tracked", cell)
		}
	}
	for _, cell := range added {
		if !tracker.Contains(cell) {
			t.Fatalf("added cell %d not tracked", cell)
		}
	}

	added, removed = tracker.Update(4*grid.Width + 9)
	if len(added) != 0 || len(removed) != 0 {
		t.Fatalf("stationary update must be a no-op, added=%v removed=%v", added, removed)
	}
}

func containsCell(cells []int, want int) bool {
	for _, cell := range cells {
		if cell == want {
			return true
		}
	}
	return false
}
