package server

import "math"

// Grid maps continuous pixel positions to discrete tile cells and back. Cells
// are addressed by a linear index, serialized in row direction.
type Grid struct {
	Width  int
	Height int
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int { return g.Width * g.Height }

// Contains reports whether the position lies inside the grid extent.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < float64(g.Width*TileSize) &&
		p.Y >= 0 && p.Y < float64(g.Height*TileSize)
}

// Index returns the linear cell address for a position. Positions outside the
// grid extent have no valid index; ok is false for those.
func (g Grid) Index(p Point) (int, bool) {
	if !g.Contains(p) {
		return 0, false
	}
	return int(math.Floor(p.X/TileSize)) + int(math.Floor(p.Y/TileSize))*g.Width, true
}

// ValidIndex reports whether index addresses a cell of the grid.
func (g Grid) ValidIndex(index int) bool {
	return index >= 0 && index < g.Cells()
}

// Cell returns the column and row of a linear cell address.
func (g Grid) Cell(index int) (int, int) {
	return index % g.Width, index / g.Width
}

// CellCenter returns the pixel-space center of the cell at index.
func (g Grid) CellCenter(index int) Point {
	cx, cy := g.Cell(index)
	return Point{(float64(cx) + 0.5) * TileSize, (float64(cy) + 0.5) * TileSize}
}

// Center returns the pixel-space center of the grid.
func (g Grid) Center() Point {
	return Point{float64(g.Width) * TileSize / 2, float64(g.Height) * TileSize / 2}
}
