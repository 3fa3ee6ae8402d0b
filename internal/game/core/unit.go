package core

import (
	"fmt"
	"strings"
)

// UnitClass is the closed set of unit types
type UnitClass int

const (
	Corvette UnitClass = iota
	Mech
	Dreadnought
	Drone
)

// AllUnitClasses lists every class in declaration order
var AllUnitClasses = []UnitClass{Corvette, Mech, Dreadnought, Drone}

// UnitStats is the immutable stat line of a class
type UnitStats struct {
	MovementRange int
	AttackPower   int
	Defense       int
	MaxHealth     int
	AttackRange   int
	Abilities     []Ability
}

var classStats = map[UnitClass]UnitStats{
	Corvette:    {MovementRange: 3, AttackPower: 2, Defense: 1, MaxHealth: 60, AttackRange: 1, Abilities: []Ability{QuickStrike}},
	Mech:        {MovementRange: 2, AttackPower: 3, Defense: 2, MaxHealth: 100, AttackRange: 1, Abilities: []Ability{Repair}},
	Dreadnought: {MovementRange: 1, AttackPower: 5, Defense: 4, MaxHealth: 150, AttackRange: 2, Abilities: []Ability{AreaAttack}},
	Drone:       {MovementRange: 2, AttackPower: 1, Defense: 1, MaxHealth: 40, AttackRange: 1, Abilities: []Ability{Scout}},
}

// Stats returns the stat line for the class
func (c UnitClass) Stats() UnitStats {
	s := classStats[c]
	s.Abilities = append([]Ability(nil), s.Abilities...)
	return s
}

func (c UnitClass) String() string {
	switch c {
	case Corvette:
		return "Corvette"
	case Mech:
		return "Mech"
	case Dreadnought:
		return "Dreadnought"
	case Drone:
		return "Drone"
	default:
		return fmt.Sprintf("UnitClass(%d)", int(c))
	}
}

var classGlyphs = map[UnitClass]byte{
	Corvette:    'C',
	Mech:        'M',
	Dreadnought: 'D',
	Drone:       'R',
}

// Glyph is the single-letter map symbol for the class
func (c UnitClass) Glyph() byte {
	if g, ok := classGlyphs[c]; ok {
		return g
	}
	return '?'
}

// ParseUnitClass matches a class name case-insensitively
func ParseUnitClass(name string) (UnitClass, error) {
	for _, c := range AllUnitClasses {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown unit class %q", name)
}

// Unit is a combatant owned by a faction
type Unit struct {
	ID    EntityID
	Class UnitClass
	Owner Faction
	Pos   Coordinate

	MovementRange int
	AttackPower   int
	Defense       int
	AttackRange   int
	Health        int
	MaxHealth     int
	Abilities     []Ability

	HasMoved        bool
	HasAttacked     bool
	QuickStrikeUsed bool
	Scouting        bool
}

// NewUnit builds a full-health unit of the given class. The board assigns
// ID and Pos when the unit is placed.
func NewUnit(class UnitClass, owner Faction) *Unit {
	s := class.Stats()
	return &Unit{
		Class:         class,
		Owner:         owner,
		MovementRange: s.MovementRange,
		AttackPower:   s.AttackPower,
		Defense:       s.Defense,
		AttackRange:   s.AttackRange,
		Health:        s.MaxHealth,
		MaxHealth:     s.MaxHealth,
		Abilities:     s.Abilities,
	}
}

func (u *Unit) EntityID() EntityID   { return u.ID }
func (u *Unit) Kind() EntityKind     { return KindUnit }
func (u *Unit) Position() Coordinate { return u.Pos }

func (u *Unit) IsDead() bool { return u.Health <= 0 }

// Exhausted is true once the unit has both moved and attacked
func (u *Unit) Exhausted() bool { return u.HasMoved && u.HasAttacked }

// ResetTurn clears the per-turn flags
func (u *Unit) ResetTurn() {
	u.HasMoved = false
	u.HasAttacked = false
	u.QuickStrikeUsed = false
	u.Scouting = false
}

func (u *Unit) HasAbility(a Ability) bool {
	for _, have := range u.Abilities {
		if have == a {
			return true
		}
	}
	return false
}

// TakeDamage lowers health, never below zero, and returns the amount applied
func (u *Unit) TakeDamage(amount int) int {
	if amount > u.Health {
		amount = u.Health
	}
	u.Health -= amount
	return amount
}

// Heal raises health up to MaxHealth and returns the amount applied
func (u *Unit) Heal(amount int) int {
	if u.Health+amount > u.MaxHealth {
		amount = u.MaxHealth - u.Health
	}
	u.Health += amount
	return amount
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s#%d[%s]@%s hp=%d/%d", u.Class, u.ID, u.Owner, u.Pos, u.Health, u.MaxHealth)
}
