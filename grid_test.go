package server

import "testing"

func TestGridIndexRoundTrip(t *testing.T) {
	grid := Grid{Width: 16, Height: 9}
	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			for _, offset := range []float64{0, 0.5, TileSize - 0.25} {
				p := Point{float64(cx)*TileSize + offset, float64(cy)*TileSize + offset}
				index, ok := grid.Index(p)
				if !ok {
					t.Fatalf("expected valid index for %+v", p)
				}
				gotX, gotY := grid.Cell(index)
				if gotX != cx || gotY != cy {
					t.Fatalf("round trip mismatch at %+v: got (%d, %d), want (%d, %d)", p, gotX, gotY, cx, cy)
				}
			}
		}
	}
}

func TestGridIndexOutOfBounds(t *testing.T) {
	grid := Grid{Width: 16, Height: 9}
	cases := []Point{
		{-0.1, 0},
		{0, -0.1},
		{16 * TileSize, 0},
		{0, 9 * TileSize},
		{-1, -1},
	}
	for _, p := range cases {
		if _, ok := grid.Index(p); ok {
			t.Fatalf("expected no index for out-of-bounds %+v", p)
		}
	}
}

func TestGridCellCenter(t *testing.T) {
	grid := Grid{Width: 16, Height: 9}
	center := grid.CellCenter(17) // cell (1, 1)
	want := Point{1.5 * TileSize, 1.5 * TileSize}
	if center != want {
		t.Fatalf("unexpected center %+v, want %+v", center, want)
	}
	index, ok := grid.Index(center)
	if !ok || index != 17 {
		t.Fatalf("center does not map back: index=%d ok=%v", index, ok)
	}
}
