package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate_DistanceTo(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Coordinate
		expected int
	}{
		{"same cell", Coordinate{2, 2}, Coordinate{2, 2}, 0},
		{"one axis", Coordinate{0, 0}, Coordinate{3, 0}, 3},
		{"both axes", Coordinate{1, 1}, Coordinate{3, 4}, 5},
		{"towards the origin", Coordinate{5, 5}, Coordinate{2, 1}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.DistanceTo(tt.b))
			assert.Equal(t, tt.expected, tt.b.DistanceTo(tt.a))
		})
	}
}

func TestCoordinate_Within(t *testing.T) {
	c := NewCoordinate(4, 4)
	assert.True(t, c.Within(NewCoordinate(4, 4), 0))
	assert.True(t, c.Within(NewCoordinate(5, 6), 3))
	assert.False(t, c.Within(NewCoordinate(6, 6), 3))
}

func TestCoordinate_Clamp(t *testing.T) {
	assert.Equal(t, Coordinate{0, 9}, Coordinate{-1, 12}.Clamp(10, 10))
	assert.Equal(t, Coordinate{4, 4}, Coordinate{4, 4}.Clamp(10, 10))
	assert.Equal(t, Coordinate{9, 0}, Coordinate{30, -30}.Clamp(10, 10))
}

func TestCoordinate_InBounds(t *testing.T) {
	assert.True(t, NewCoordinate(3, 4).InBounds(5, 5))
	assert.False(t, NewCoordinate(3, 4).InBounds(3, 5))
	assert.False(t, NewCoordinate(-1, 0).InBounds(5, 5))
	assert.Equal(t, Coordinate{3, 1}, cellAt(7, 4))
	assert.Equal(t, "(3,4)", NewCoordinate(3, 4).String())
}
