package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/testutil"
)

func TestLegalMoveCalculator_AttackTargets(t *testing.T) {
	b := testutil.CreateTestBoard(6, 6)
	d := testutil.PlaceUnit(t, b, core.Dreadnought, core.FactionAI, 2, 2)
	near := testutil.PlaceUnit(t, b, core.Corvette, core.FactionPlayer, 2, 4)
	testutil.PlaceUnit(t, b, core.Corvette, core.FactionPlayer, 5, 5)
	testutil.PlaceUnit(t, b, core.Mech, core.FactionAI, 2, 3)

	lmc := NewLegalMoveCalculator()

	assert.Equal(t, []*core.Unit{near}, lmc.AttackTargets(b, d))

	d.HasAttacked = true
	assert.Empty(t, lmc.AttackTargets(b, d))
	assert.Empty(t, lmc.AttackTargets(b, nil))
}

func TestLegalMoveCalculator_CanStillAct(t *testing.T) {
	lmc := NewLegalMoveCalculator()

	t.Run("fresh unit with room", func(t *testing.T) {
		b := testutil.CreateTestBoard(5, 5)
		u := testutil.PlaceUnit(t, b, core.Corvette, core.FactionPlayer, 2, 2)
		assert.True(t, lmc.CanStillAct(b, u))
	})

	t.Run("moved with nobody in range", func(t *testing.T) {
		b := testutil.CreateTestBoard(5, 5)
		u := testutil.PlaceUnit(t, b, core.Corvette, core.FactionPlayer, 2, 2)
		u.HasMoved = true
		assert.False(t, lmc.CanStillAct(b, u))
	})

	t.Run("moved with an enemy adjacent", func(t *testing.T) {
		b := testutil.CreateTestBoard(5, 5)
		u := testutil.PlaceUnit(t, b, core.Corvette, core.FactionPlayer, 2, 2)
		testutil.PlaceUnit(t, b, core.Drone, core.FactionAI, 2, 3)
		u.HasMoved = true
		assert.True(t, lmc.CanStillAct(b, u))
	})

	t.Run("boxed in dreadnought", func(t *testing.T) {
		b := testutil.CreateTestBoard(3, 3)
		u := testutil.PlaceUnit(t, b, core.Dreadnought, core.FactionPlayer, 0, 0)
		require.NoError(t, b.Place(core.NewObstacle(), core.NewCoordinate(1, 0)))
		require.NoError(t, b.Place(core.NewObstacle(), core.NewCoordinate(0, 1)))
		assert.False(t, lmc.CanStillAct(b, u))
	})
}
