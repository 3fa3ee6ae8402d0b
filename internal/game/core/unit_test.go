package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitClass(t *testing.T) {
	for _, c := range AllUnitClasses {
		got, err := ParseUnitClass(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := ParseUnitClass("dreadNOUGHT")
	require.NoError(t, err)
	assert.Equal(t, Dreadnought, got)

	_, err = ParseUnitClass("battleship")
	assert.Error(t, err)
}

func TestUnitClass_GlyphsAreDistinct(t *testing.T) {
	seen := map[byte]UnitClass{}
	for _, c := range AllUnitClasses {
		g := c.Glyph()
		prev, dup := seen[g]
		assert.False(t, dup, "%s and %s share glyph %q", c, prev, g)
		seen[g] = c
	}
	assert.Equal(t, byte('?'), UnitClass(99).Glyph())
}

func TestUnit_ResetTurn(t *testing.T) {
	u := NewUnit(Drone, FactionPlayer)
	u.HasMoved = true
	u.HasAttacked = true
	u.QuickStrikeUsed = true
	u.Scouting = true
	assert.True(t, u.Exhausted())

	u.ResetTurn()

	assert.False(t, u.HasMoved)
	assert.False(t, u.HasAttacked)
	assert.False(t, u.QuickStrikeUsed)
	assert.False(t, u.Scouting)
	assert.False(t, u.Exhausted())
}

func TestUnit_HealthBounds(t *testing.T) {
	u := NewUnit(Corvette, FactionAI)

	assert.Equal(t, 60, u.TakeDamage(100))
	assert.Equal(t, 0, u.Health)
	assert.True(t, u.IsDead())

	assert.Equal(t, 60, u.Heal(500))
	assert.Equal(t, u.MaxHealth, u.Health)
	assert.Equal(t, 0, u.Heal(5))
}

func TestUnit_StatsAreCopied(t *testing.T) {
	a := NewUnit(Mech, FactionPlayer)
	b := NewUnit(Mech, FactionPlayer)
	a.Abilities[0] = Scout

	assert.Equal(t, []Ability{Repair}, b.Abilities)
	assert.True(t, b.HasAbility(Repair))
	assert.False(t, b.HasAbility(Scout))
}
