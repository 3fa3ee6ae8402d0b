package rules

import "github.com/mitchelldurbincs/NebulaDominion/internal/game/core"

// LegalMoveCalculator answers which actions a unit may still take
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// AttackTargets lists the enemy units u can attack right now, in board order
func (lmc *LegalMoveCalculator) AttackTargets(b *core.Board, u *core.Unit) []*core.Unit {
	if u == nil || u.HasAttacked {
		return nil
	}
	var targets []*core.Unit
	for _, enemy := range b.UnitsOf(u.Owner.Opponent()) {
		if core.CanAttack(u, enemy) {
			targets = append(targets, enemy)
		}
	}
	return targets
}

// CanStillAct is true while u has an unused move with somewhere to go or an
// unused attack with a target in range
func (lmc *LegalMoveCalculator) CanStillAct(b *core.Board, u *core.Unit) bool {
	if u == nil || u.IsDead() {
		return false
	}
	if !u.HasAttacked && len(lmc.AttackTargets(b, u)) > 0 {
		return true
	}
	if u.HasMoved {
		return false
	}
	r := u.MovementRange
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			c := u.Pos.Add(core.Coordinate{X: dx, Y: dy})
			if c != u.Pos && u.Pos.Within(c, r) && b.IsPassable(c) {
				return true
			}
		}
	}
	return false
}
