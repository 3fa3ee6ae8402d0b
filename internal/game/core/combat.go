package core

// AttackResult is what one strike did to its target
type AttackResult struct {
	AttackerID EntityID
	TargetID   EntityID
	Target     Coordinate
	Damage     int
	Remaining  int
	Destroyed  bool
}

// ValidateAttack explains why attacker may not strike target, nil when it may
func ValidateAttack(attacker, target *Unit) error {
	switch {
	case attacker == nil || target == nil:
		return ErrUnknownEntity
	case attacker.IsDead() || target.IsDead():
		return ErrUnitDestroyed
	case attacker.HasAttacked:
		return ErrAlreadyAttacked
	case attacker.Owner == target.Owner:
		return ErrFriendlyTarget
	case !attacker.Pos.Within(target.Pos, attacker.AttackRange):
		return ErrOutOfRange
	}
	return nil
}

// CanAttack is true when the attacker has not attacked yet this turn, the
// target is an enemy, and it lies within attack range.
func CanAttack(attacker, target *Unit) bool {
	return ValidateAttack(attacker, target) == nil
}

// Damage is attack power minus the target's defense. Every hit lands for at
// least one point.
func Damage(attacker, target *Unit) int {
	d := attacker.AttackPower - target.Defense
	if d < 1 {
		return 1
	}
	return d
}

// Attack applies one strike and marks the attacker as having attacked.
// Dead targets stay on the board until RemoveDead runs.
func Attack(attacker, target *Unit) (AttackResult, error) {
	if err := ValidateAttack(attacker, target); err != nil {
		id := NoEntity
		if attacker != nil {
			id = attacker.ID
		}
		return AttackResult{}, WrapEntityError(id, "attack", err)
	}
	return strike(attacker, target), nil
}

func strike(attacker, target *Unit) AttackResult {
	dealt := target.TakeDamage(Damage(attacker, target))
	attacker.HasAttacked = true
	return AttackResult{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Target:     target.Pos,
		Damage:     dealt,
		Remaining:  target.Health,
		Destroyed:  target.IsDead(),
	}
}
