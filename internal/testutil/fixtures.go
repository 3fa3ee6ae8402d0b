package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// CreateTestBoard creates an empty board with the given dimensions
func CreateTestBoard(width, height int) *core.Board {
	return core.NewBoard(width, height)
}

// PlaceUnit puts a fresh unit of class on the board and fails the test if
// the cell is taken
func PlaceUnit(t testing.TB, b *core.Board, class core.UnitClass, owner core.Faction, x, y int) *core.Unit {
	t.Helper()
	u := core.NewUnit(class, owner)
	require.NoError(t, b.Place(u, core.NewCoordinate(x, y)), "placing %s at (%d,%d)", class, x, y)
	return u
}

// PlaceEntity places any entity and fails the test on error
func PlaceEntity(t testing.TB, b *core.Board, e core.Entity, x, y int) {
	t.Helper()
	require.NoError(t, b.Place(e, core.NewCoordinate(x, y)), "placing %s at (%d,%d)", e.Kind(), x, y)
}

// CreateSimpleTestSetup creates a 10x10 board with the default opening:
// a player Corvette at (1,1) and an AI Corvette at (8,8)
func CreateSimpleTestSetup(t testing.TB) (*core.Board, *core.Unit, *core.Unit) {
	t.Helper()
	b := CreateTestBoard(10, 10)
	player := PlaceUnit(t, b, core.Corvette, core.FactionPlayer, 1, 1)
	ai := PlaceUnit(t, b, core.Corvette, core.FactionAI, 8, 8)
	return b, player, ai
}
