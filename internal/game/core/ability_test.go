package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbility(t *testing.T) {
	for a, name := range abilityNames {
		parsed, err := ParseAbility(name)
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	_, err := ParseAbility("Warp")
	assert.ErrorIs(t, err, ErrUnknownAbility)
}

func TestUseAbility_QuickStrike(t *testing.T) {
	rules := DefaultAbilityRules()

	t.Run("requires a prior attack", func(t *testing.T) {
		b := NewBoard(5, 5)
		c := placeUnit(t, b, Corvette, FactionPlayer, 0, 0)
		enemy := placeUnit(t, b, Drone, FactionAI, 1, 0)

		_, err := UseAbility(b, c.ID, QuickStrike, enemy.Pos, rules)

		assert.ErrorIs(t, err, ErrAbilityPrecondition)
		assert.Equal(t, 40, enemy.Health)
	})

	t.Run("second strike once per turn", func(t *testing.T) {
		b := NewBoard(5, 5)
		c := placeUnit(t, b, Corvette, FactionPlayer, 0, 0)
		enemy := placeUnit(t, b, Drone, FactionAI, 1, 0)
		_, err := Attack(c, enemy)
		require.NoError(t, err)

		res, err := UseAbility(b, c.ID, QuickStrike, enemy.Pos, rules)
		require.NoError(t, err)
		require.Len(t, res.Hits, 1)
		assert.Equal(t, 1, res.Hits[0].Damage)
		assert.Equal(t, 38, enemy.Health)

		_, err = UseAbility(b, c.ID, QuickStrike, enemy.Pos, rules)
		assert.ErrorIs(t, err, ErrAbilityPrecondition)

		c.ResetTurn()
		assert.False(t, c.QuickStrikeUsed)
	})

	t.Run("needs an enemy in range", func(t *testing.T) {
		b := NewBoard(5, 5)
		c := placeUnit(t, b, Corvette, FactionPlayer, 0, 0)
		far := placeUnit(t, b, Drone, FactionAI, 3, 0)
		c.HasAttacked = true

		_, err := UseAbility(b, c.ID, QuickStrike, far.Pos, rules)
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = UseAbility(b, c.ID, QuickStrike, Coordinate{4, 4}, rules)
		assert.Error(t, err)
		assert.False(t, c.QuickStrikeUsed)
	})
}

func TestUseAbility_Repair(t *testing.T) {
	b := NewBoard(5, 5)
	m := placeUnit(t, b, Mech, FactionPlayer, 0, 0)
	ally := placeUnit(t, b, Corvette, FactionPlayer, 4, 4)
	enemy := placeUnit(t, b, Drone, FactionAI, 2, 2)
	ally.Health = 50
	enemy.Health = 10

	res, err := UseAbility(b, m.ID, Repair, ally.Pos, DefaultAbilityRules())
	require.NoError(t, err)
	assert.Equal(t, 10, res.Healed, "capped at max health")
	assert.Equal(t, 60, ally.Health)

	res, err = UseAbility(b, m.ID, Repair, ally.Pos, DefaultAbilityRules())
	require.NoError(t, err, "full health still succeeds")
	assert.Zero(t, res.Healed)

	_, err = UseAbility(b, m.ID, Repair, enemy.Pos, DefaultAbilityRules())
	assert.ErrorIs(t, err, ErrAbilityPrecondition)
	assert.Equal(t, 10, enemy.Health)

	_, err = UseAbility(b, ally.ID, Repair, m.Pos, DefaultAbilityRules())
	assert.ErrorIs(t, err, ErrAbilityNotAvailable)
}

func TestUseAbility_AreaAttack(t *testing.T) {
	rules := DefaultAbilityRules()

	t.Run("hits every enemy in range and removes the dead", func(t *testing.T) {
		b := NewBoard(6, 6)
		d := placeUnit(t, b, Dreadnought, FactionPlayer, 2, 2)
		near := placeUnit(t, b, Mech, FactionAI, 2, 3)
		weak := placeUnit(t, b, Drone, FactionAI, 4, 2)
		far := placeUnit(t, b, Drone, FactionAI, 5, 5)
		friend := placeUnit(t, b, Corvette, FactionPlayer, 1, 2)
		weak.Health = 2

		res, err := UseAbility(b, d.ID, AreaAttack, near.Pos, rules)

		require.NoError(t, err)
		assert.Len(t, res.Hits, 2)
		assert.Equal(t, 97, near.Health)
		require.Len(t, res.Destroyed, 1)
		assert.Equal(t, weak.ID, res.Destroyed[0].ID)
		assert.Nil(t, b.Unit(weak.ID))
		assert.Equal(t, 40, far.Health)
		assert.Equal(t, 60, friend.Health)
		assert.True(t, d.HasAttacked)
	})

	t.Run("rejected after attacking", func(t *testing.T) {
		b := NewBoard(6, 6)
		d := placeUnit(t, b, Dreadnought, FactionPlayer, 2, 2)
		enemy := placeUnit(t, b, Mech, FactionAI, 2, 3)
		d.HasAttacked = true

		_, err := UseAbility(b, d.ID, AreaAttack, enemy.Pos, rules)
		assert.ErrorIs(t, err, ErrAlreadyAttacked)
		assert.Equal(t, 100, enemy.Health)
	})

	t.Run("rejected with nobody in range", func(t *testing.T) {
		b := NewBoard(6, 6)
		d := placeUnit(t, b, Dreadnought, FactionPlayer, 0, 0)
		placeUnit(t, b, Mech, FactionAI, 5, 5)

		_, err := UseAbility(b, d.ID, AreaAttack, Coordinate{5, 5}, rules)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.False(t, d.HasAttacked)
	})
}

func TestUseAbility_Scout(t *testing.T) {
	b := NewBoard(10, 10)
	d := placeUnit(t, b, Drone, FactionPlayer, 0, 0)
	seen := placeUnit(t, b, Mech, FactionAI, 2, 2)
	placeUnit(t, b, Mech, FactionAI, 9, 9)
	placeUnit(t, b, Corvette, FactionPlayer, 1, 0)

	res, err := UseAbility(b, d.ID, Scout, seen.Pos, DefaultAbilityRules())

	require.NoError(t, err)
	assert.Equal(t, []EntityID{seen.ID}, res.Revealed)
	assert.True(t, d.Scouting)
	assert.Empty(t, res.Destroyed)
}
