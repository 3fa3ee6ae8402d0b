package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitClassStats(t *testing.T) {
	tests := []struct {
		class   UnitClass
		move    int
		power   int
		defense int
		health  int
		rng     int
		ability Ability
	}{
		{Corvette, 3, 2, 1, 60, 1, QuickStrike},
		{Mech, 2, 3, 2, 100, 1, Repair},
		{Dreadnought, 1, 5, 4, 150, 2, AreaAttack},
		{Drone, 2, 1, 1, 40, 1, Scout},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			u := NewUnit(tt.class, FactionPlayer)
			assert.Equal(t, tt.move, u.MovementRange)
			assert.Equal(t, tt.power, u.AttackPower)
			assert.Equal(t, tt.defense, u.Defense)
			assert.Equal(t, tt.health, u.Health)
			assert.Equal(t, tt.health, u.MaxHealth)
			assert.Equal(t, tt.rng, u.AttackRange)
			assert.Equal(t, []Ability{tt.ability}, u.Abilities)

			parsed, err := ParseUnitClass(tt.class.String())
			require.NoError(t, err)
			assert.Equal(t, tt.class, parsed)
		})
	}

	_, err := ParseUnitClass("battlecruiser")
	assert.Error(t, err)
}

func TestValidateAttack(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(a, target *Unit)
		targetX int
		wantErr error
	}{
		{name: "adjacent enemy", targetX: 1},
		{name: "out of range", targetX: 2, wantErr: ErrOutOfRange},
		{name: "already attacked", targetX: 1, setup: func(a, _ *Unit) { a.HasAttacked = true }, wantErr: ErrAlreadyAttacked},
		{name: "friendly", targetX: 1, setup: func(_, target *Unit) { target.Owner = FactionPlayer }, wantErr: ErrFriendlyTarget},
		{name: "dead target", targetX: 1, setup: func(_, target *Unit) { target.Health = 0 }, wantErr: ErrUnitDestroyed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(5, 5)
			a := placeUnit(t, b, Mech, FactionPlayer, 0, 0)
			target := placeUnit(t, b, Corvette, FactionAI, tt.targetX, 0)
			if tt.setup != nil {
				tt.setup(a, target)
			}
			err := ValidateAttack(a, target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, CanAttack(a, target))
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, CanAttack(a, target))
			}
		})
	}
}

func TestDamage(t *testing.T) {
	tests := []struct {
		name     string
		attacker UnitClass
		target   UnitClass
		expected int
	}{
		{"corvette vs corvette", Corvette, Corvette, 1},
		{"dreadnought vs mech", Dreadnought, Mech, 3},
		{"drone vs dreadnought floors at one", Drone, Dreadnought, 1},
		{"corvette vs mech floors at one", Corvette, Mech, 1},
		{"mech vs drone", Mech, Drone, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Damage(NewUnit(tt.attacker, FactionPlayer), NewUnit(tt.target, FactionAI)))
		})
	}

	heavy := &Unit{AttackPower: 5}
	plated := &Unit{Defense: 3}
	assert.Equal(t, 2, Damage(heavy, plated))
}

func TestAttack(t *testing.T) {
	b := NewBoard(5, 5)
	a := placeUnit(t, b, Dreadnought, FactionPlayer, 0, 0)
	target := placeUnit(t, b, Drone, FactionAI, 2, 0)

	res, err := Attack(a, target)

	require.NoError(t, err)
	assert.Equal(t, 4, res.Damage)
	assert.Equal(t, 36, target.Health)
	assert.Equal(t, 36, res.Remaining)
	assert.False(t, res.Destroyed)
	assert.True(t, a.HasAttacked)

	_, err = Attack(a, target)
	assert.ErrorIs(t, err, ErrAlreadyAttacked)
	assert.Equal(t, 36, target.Health)
}

func TestAttack_LethalLeavesRemovalToBoard(t *testing.T) {
	b := NewBoard(5, 5)
	a := placeUnit(t, b, Dreadnought, FactionPlayer, 0, 0)
	target := placeUnit(t, b, Drone, FactionAI, 1, 0)
	target.Health = 3

	res, err := Attack(a, target)

	require.NoError(t, err)
	assert.True(t, res.Destroyed)
	assert.Equal(t, 3, res.Damage)
	assert.NotNil(t, b.Unit(target.ID))
	assert.Len(t, b.RemoveDead(), 1)
	assert.Nil(t, b.Unit(target.ID))
}
