package processor

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// ActionKind is what an Act command resolved to
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionAttack
	ActionAbility
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	case ActionAbility:
		return "ability"
	default:
		return "none"
	}
}

// Outcome describes the effect of one resolved action. Exactly one of Move,
// Attack or Ability is set, matching Kind.
type Outcome struct {
	Kind      ActionKind
	UnitID    core.EntityID
	Target    core.Coordinate
	Move      *core.MoveOutcome
	Attack    *core.AttackResult
	Ability   *core.AbilityResult
	Destroyed []*core.Unit
}

// ErrNoAction is returned when nothing the unit can do applies to the target
var ErrNoAction = errors.New("no applicable action")

// ActionProcessor resolves a unit's action against a target cell
type ActionProcessor struct {
	rules  core.AbilityRules
	logger zerolog.Logger
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(rules core.AbilityRules, logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		rules:  rules,
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
	}
}

// Resolve tries, in order: moving to target if it is reachable and the unit
// has not moved, attacking an enemy on target if the unit has not attacked,
// then each of the unit's abilities until one succeeds. A failed step has no
// effect on the board.
func (ap *ActionProcessor) Resolve(b *core.Board, unitID core.EntityID, target core.Coordinate) (Outcome, error) {
	u := b.Unit(unitID)
	if u == nil {
		return Outcome{}, core.WrapEntityError(unitID, "act", core.ErrUnknownEntity)
	}
	if !b.InBounds(target.X, target.Y) {
		return Outcome{}, core.WrapEntityError(unitID, "act", core.ErrOutOfBounds)
	}
	out := Outcome{UnitID: unitID, Target: target}

	if !u.HasMoved {
		if b.ReachableFor() != unitID {
			b.ComputeReachable(unitID)
		}
		if b.IsReachable(target) {
			mv, err := b.Move(unitID, target)
			if err != nil {
				return Outcome{}, err
			}
			out.Kind = ActionMove
			out.Move = &mv
			if mv.Destroyed {
				out.Destroyed = []*core.Unit{u}
			}
			ap.logger.Debug().
				Int("unit_id", int(unitID)).
				Str("from", mv.From.String()).
				Str("to", mv.To.String()).
				Msg("Unit moved")
			return out, nil
		}
	}

	var lastErr error = core.ErrOutOfRange
	if enemy := b.UnitAt(target); enemy != nil && enemy.Owner != u.Owner && !u.HasAttacked {
		res, err := core.Attack(u, enemy)
		if err == nil {
			out.Kind = ActionAttack
			out.Attack = &res
			out.Destroyed = b.RemoveDead()
			ap.logger.Debug().
				Int("unit_id", int(unitID)).
				Int("target_id", int(enemy.ID)).
				Int("damage", res.Damage).
				Bool("destroyed", res.Destroyed).
				Msg("Unit attacked")
			return out, nil
		}
		lastErr = err
		ap.logger.Debug().Err(err).Int("unit_id", int(unitID)).Msg("Attack rejected, trying abilities")
	}

	for _, a := range u.Abilities {
		res, err := core.UseAbility(b, unitID, a, target, ap.rules)
		if err != nil {
			lastErr = err
			continue
		}
		out.Kind = ActionAbility
		out.Ability = &res
		out.Destroyed = res.Destroyed
		ap.logger.Debug().
			Int("unit_id", int(unitID)).
			Str("ability", a.String()).
			Str("target", target.String()).
			Msg("Ability used")
		return out, nil
	}

	return Outcome{}, errors.Join(ErrNoAction, lastErr)
}
