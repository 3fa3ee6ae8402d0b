package core

import "fmt"

// Coordinate is a cell on the board; (0,0) is the top-left corner
type Coordinate struct {
	X, Y int
}

func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// cellAt maps a row-major cell index back to its coordinate
func cellAt(idx, width int) Coordinate {
	return Coordinate{X: idx % width, Y: idx / width}
}

// InBounds reports whether c lies on a width x height board
func (c Coordinate) InBounds(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// DistanceTo is the Manhattan distance used for movement, attack and
// ability ranges
func (c Coordinate) DistanceTo(other Coordinate) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Within reports whether other is at most r steps away
func (c Coordinate) Within(other Coordinate, r int) bool {
	return c.DistanceTo(other) <= r
}

func (c Coordinate) Add(offset Coordinate) Coordinate {
	return Coordinate{X: c.X + offset.X, Y: c.Y + offset.Y}
}

// Clamp pins c to the nearest cell of a width x height board
func (c Coordinate) Clamp(width, height int) Coordinate {
	return Coordinate{
		X: min(max(c.X, 0), width-1),
		Y: min(max(c.Y, 0), height-1),
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
