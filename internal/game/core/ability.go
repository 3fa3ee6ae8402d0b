package core

import (
	"fmt"
	"strings"
)

// Ability is the closed set of special actions a unit class can carry
type Ability int

const (
	QuickStrike Ability = iota + 1
	Repair
	AreaAttack
	Scout
)

var abilityNames = map[Ability]string{
	QuickStrike: "Quick Strike",
	Repair:      "Repair",
	AreaAttack:  "Area Attack",
	Scout:       "Scout",
}

func (a Ability) String() string {
	if n, ok := abilityNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Ability(%d)", int(a))
}

// ParseAbility maps a display name back to the ability
func ParseAbility(name string) (Ability, error) {
	for a, n := range abilityNames {
		if strings.EqualFold(n, name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAbility, name)
}

// AbilityRules holds the tunable numbers behind abilities
type AbilityRules struct {
	RepairAmount int
	ScoutRange   int
}

func DefaultAbilityRules() AbilityRules {
	return AbilityRules{RepairAmount: 20, ScoutRange: 4}
}

// AbilityResult records what an ability did
type AbilityResult struct {
	Ability   Ability
	UserID    EntityID
	Target    Coordinate
	Hits      []AttackResult
	Healed    int
	Revealed  []EntityID
	Destroyed []*Unit
}

type abilityEffect func(b *Board, u *Unit, target Coordinate, rules AbilityRules) (AbilityResult, error)

var abilityEffects = map[Ability]abilityEffect{
	QuickStrike: quickStrike,
	Repair:      repair,
	AreaAttack:  areaAttack,
	Scout:       scout,
}

// UseAbility resolves one of the unit's abilities against target. A
// rejected ability leaves the board untouched.
//
// QuickStrike resolves its own attack against target and is only available
// after the unit's regular attack this turn.
func UseAbility(b *Board, id EntityID, a Ability, target Coordinate, rules AbilityRules) (AbilityResult, error) {
	u := b.Unit(id)
	if u == nil {
		return AbilityResult{}, WrapEntityError(id, "ability", ErrUnknownEntity)
	}
	effect, ok := abilityEffects[a]
	if !ok {
		return AbilityResult{}, WrapEntityError(id, "ability", ErrUnknownAbility)
	}
	if !u.HasAbility(a) {
		return AbilityResult{}, WrapEntityError(id, a.String(), ErrAbilityNotAvailable)
	}
	res, err := effect(b, u, target, rules)
	if err != nil {
		return AbilityResult{}, WrapEntityError(id, a.String(), err)
	}
	res.Ability = a
	res.UserID = id
	res.Target = target
	res.Destroyed = b.RemoveDead()
	return res, nil
}

// quickStrike makes one extra attack on target after the regular one, once
// per turn. It strikes itself rather than clearing HasAttacked, so it is
// rejected until the unit has attacked.
func quickStrike(b *Board, u *Unit, target Coordinate, _ AbilityRules) (AbilityResult, error) {
	if !u.HasAttacked || u.QuickStrikeUsed {
		return AbilityResult{}, ErrAbilityPrecondition
	}
	enemy := b.UnitAt(target)
	if enemy == nil || enemy.Owner == u.Owner || enemy.IsDead() {
		return AbilityResult{}, ErrFriendlyTarget
	}
	if !u.Pos.Within(enemy.Pos, u.AttackRange) {
		return AbilityResult{}, ErrOutOfRange
	}
	u.QuickStrikeUsed = true
	return AbilityResult{Hits: []AttackResult{strike(u, enemy)}}, nil
}

func repair(b *Board, u *Unit, target Coordinate, rules AbilityRules) (AbilityResult, error) {
	ally := b.UnitAt(target)
	if ally == nil || ally.Owner != u.Owner {
		return AbilityResult{}, ErrAbilityPrecondition
	}
	return AbilityResult{Healed: ally.Heal(rules.RepairAmount)}, nil
}

// areaAttack hits every enemy within attack range of the user; the target
// cell only triggers it
func areaAttack(b *Board, u *Unit, _ Coordinate, _ AbilityRules) (AbilityResult, error) {
	if u.HasAttacked {
		return AbilityResult{}, ErrAlreadyAttacked
	}
	var res AbilityResult
	for _, enemy := range b.UnitsWithin(u.Pos, u.AttackRange) {
		if enemy.Owner == u.Owner || enemy.IsDead() {
			continue
		}
		dealt := enemy.TakeDamage(Damage(u, enemy))
		res.Hits = append(res.Hits, AttackResult{
			AttackerID: u.ID,
			TargetID:   enemy.ID,
			Target:     enemy.Pos,
			Damage:     dealt,
			Remaining:  enemy.Health,
			Destroyed:  enemy.IsDead(),
		})
	}
	if len(res.Hits) == 0 {
		return AbilityResult{}, ErrOutOfRange
	}
	u.HasAttacked = true
	return res, nil
}

func scout(b *Board, u *Unit, _ Coordinate, rules AbilityRules) (AbilityResult, error) {
	var res AbilityResult
	for _, other := range b.UnitsWithin(u.Pos, rules.ScoutRange) {
		if other.Owner != u.Owner {
			res.Revealed = append(res.Revealed, other.ID)
		}
	}
	u.Scouting = true
	return res, nil
}
