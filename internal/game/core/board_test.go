package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeUnit(t *testing.T, b *Board, class UnitClass, owner Faction, x, y int) *Unit {
	t.Helper()
	u := NewUnit(class, owner)
	require.NoError(t, b.Place(u, Coordinate{x, y}))
	return u
}

func TestNewBoard(t *testing.T) {
	board := NewBoard(10, 8)

	assert.Equal(t, 10, board.W)
	assert.Equal(t, 8, board.H)
	assert.Len(t, board.T, 80)
	for i, cell := range board.T {
		assert.True(t, cell.IsEmpty(), "cell %d should be empty", i)
	}
	assert.Empty(t, board.Units())
}

func TestBoard_InBounds(t *testing.T) {
	board := NewBoard(5, 4)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{0, 0, true},
		{4, 3, true},
		{5, 0, false},
		{0, 4, false},
		{-1, 2, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, board.InBounds(tt.x, tt.y), "(%d,%d)", tt.x, tt.y)
	}
}

func TestBoard_Place(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *Board)
		entity  Entity
		at      Coordinate
		wantErr error
	}{
		{
			name:   "unit on empty cell",
			entity: NewUnit(Corvette, FactionPlayer),
			at:     Coordinate{2, 2},
		},
		{
			name:    "out of bounds",
			entity:  NewObstacle(),
			at:      Coordinate{10, 0},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "unit onto obstacle",
			setup:   func(b *Board) { _ = b.Place(NewObstacle(), Coordinate{2, 2}) },
			entity:  NewUnit(Mech, FactionAI),
			at:      Coordinate{2, 2},
			wantErr: ErrCellOccupied,
		},
		{
			name:   "unit onto resource node",
			setup:  func(b *Board) { _ = b.Place(NewResourceNode(20), Coordinate{2, 2}) },
			entity: NewUnit(Mech, FactionAI),
			at:     Coordinate{2, 2},
		},
		{
			name:    "unit onto hazard",
			setup:   func(b *Board) { _ = b.Place(NewHazard(50), Coordinate{2, 2}) },
			entity:  NewUnit(Drone, FactionAI),
			at:      Coordinate{2, 2},
			wantErr: ErrCellOccupied,
		},
		{
			name:    "second resource node on same cell",
			setup:   func(b *Board) { _ = b.Place(NewResourceNode(20), Coordinate{2, 2}) },
			entity:  NewResourceNode(20),
			at:      Coordinate{2, 2},
			wantErr: ErrCellOccupied,
		},
		{
			name:    "hazard under a unit",
			setup:   func(b *Board) { _ = b.Place(NewUnit(Drone, FactionAI), Coordinate{2, 2}) },
			entity:  NewHazard(50),
			at:      Coordinate{2, 2},
			wantErr: ErrCellOccupied,
		},
		{
			name:   "live obstacle on empty cell",
			entity: NewLiveObstacle(),
			at:     Coordinate{0, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(10, 10)
			if tt.setup != nil {
				tt.setup(b)
			}
			err := b.Place(tt.entity, tt.at)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, NoEntity, tt.entity.EntityID())
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, NoEntity, tt.entity.EntityID())
			assert.Equal(t, tt.at, tt.entity.Position())
			assert.Equal(t, tt.entity.Kind(), b.KindOf(tt.entity.EntityID()))
		})
	}
}

func TestBoard_PlaceAssignsDistinctIDs(t *testing.T) {
	b := NewBoard(5, 5)
	seen := map[EntityID]bool{}
	for x := 0; x < 5; x++ {
		o := NewObstacle()
		require.NoError(t, b.Place(o, Coordinate{x, 0}))
		assert.False(t, seen[o.ID])
		seen[o.ID] = true
	}
}

func TestBoard_IsPassable(t *testing.T) {
	b := NewBoard(5, 5)
	require.NoError(t, b.Place(NewObstacle(), Coordinate{1, 1}))
	require.NoError(t, b.Place(NewLiveObstacle(), Coordinate{2, 1}))
	require.NoError(t, b.Place(NewHazard(50), Coordinate{3, 1}))
	require.NoError(t, b.Place(NewResourceNode(20), Coordinate{4, 1}))
	placeUnit(t, b, Drone, FactionAI, 0, 1)

	assert.False(t, b.IsPassable(Coordinate{0, 1}), "unit blocks")
	assert.False(t, b.IsPassable(Coordinate{1, 1}), "wall blocks")
	assert.False(t, b.IsPassable(Coordinate{2, 1}), "live obstacle blocks")
	assert.True(t, b.IsPassable(Coordinate{3, 1}), "hazard does not block")
	assert.True(t, b.IsPassable(Coordinate{4, 1}), "resource does not block")
	assert.False(t, b.IsPassable(Coordinate{5, 1}), "out of bounds")
	assert.True(t, b.IsPassable(Coordinate{0, 0}))
}

func TestBoard_Lookups(t *testing.T) {
	b := NewBoard(6, 6)
	p := placeUnit(t, b, Corvette, FactionPlayer, 1, 1)
	a := placeUnit(t, b, Mech, FactionAI, 4, 4)
	node := NewResourceNode(20)
	require.NoError(t, b.Place(node, Coordinate{2, 2}))
	mine := NewHazard(50)
	require.NoError(t, b.Place(mine, Coordinate{3, 3}))

	assert.Same(t, p, b.UnitAt(Coordinate{1, 1}))
	assert.Same(t, a, b.Unit(a.ID))
	assert.Nil(t, b.UnitAt(Coordinate{2, 2}))
	assert.Nil(t, b.Unit(node.ID), "resource id is not a unit")
	assert.Same(t, node, b.ResourceAt(Coordinate{2, 2}))
	assert.Same(t, mine, b.HazardAt(Coordinate{3, 3}))
	assert.Nil(t, b.HazardAt(Coordinate{2, 2}))

	assert.Equal(t, []*Unit{p}, b.UnitsOf(FactionPlayer))
	assert.Equal(t, []*Unit{a}, b.UnitsOf(FactionAI))
	assert.Equal(t, []*Unit{p}, b.UnitsWithin(Coordinate{0, 0}, 2))
	assert.Len(t, b.UnitsWithin(Coordinate{2, 2}, 4), 2)

	id, kind := b.OccupantAt(Coordinate{4, 4})
	assert.Equal(t, a.ID, id)
	assert.Equal(t, KindUnit, kind)
}

func TestBoard_RemoveDead(t *testing.T) {
	b := NewBoard(5, 5)
	alive := placeUnit(t, b, Mech, FactionPlayer, 0, 0)
	dead := placeUnit(t, b, Drone, FactionAI, 1, 0)
	dead.Health = 0

	removed := b.RemoveDead()

	require.Len(t, removed, 1)
	assert.Same(t, dead, removed[0])
	assert.Equal(t, []*Unit{alive}, b.Units())
	assert.Nil(t, b.Unit(dead.ID))
	assert.True(t, b.IsPassable(Coordinate{1, 0}))
	assert.Equal(t, KindNone, b.KindOf(dead.ID))

	assert.Empty(t, b.RemoveDead(), "second pass removes nothing")
}

func TestBoard_HazardCellsMoveButNoPlace(t *testing.T) {
	b := NewBoard(5, 5)
	mine := NewHazard(10)
	require.NoError(t, b.Place(mine, Coordinate{2, 1}))
	u := placeUnit(t, b, Dreadnought, FactionPlayer, 1, 1)

	assert.True(t, b.IsPassable(mine.Pos))
	assert.ErrorIs(t, b.Place(NewUnit(Drone, FactionPlayer), mine.Pos), ErrCellOccupied)

	out, err := b.Move(u.ID, mine.Pos)
	require.NoError(t, err)
	assert.Equal(t, 10, out.HazardDamage)
	assert.Equal(t, mine.Pos, u.Pos)
	assert.Same(t, mine, b.HazardAt(mine.Pos), "the hazard stays armed")
}
