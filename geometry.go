package server

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a continuous position in room pixel space. It serializes as a
// [x, y] pair on the wire.
type Point struct {
	X float64
	Y float64
}

// LeftPosition is the sentinel broadcast as a member's final position when
// they leave the room.
var LeftPosition = Point{X: -1, Y: -1}

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) Length() float64       { return math.Hypot(p.X, p.Y) }

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("position must be a [x, y] pair: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}
