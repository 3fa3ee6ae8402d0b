package core

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("coordinates out of bounds")
	ErrCellOccupied    = errors.New("cell is occupied")
	ErrUnknownEntity   = errors.New("entity not on board")
	ErrAlreadyMoved    = errors.New("unit has already moved this turn")
	ErrAlreadyAttacked = errors.New("unit has already attacked this turn")
	ErrFriendlyTarget  = errors.New("target belongs to the attacker's faction")
	ErrOutOfRange      = errors.New("target is out of range")
	ErrUnitDestroyed   = errors.New("unit is destroyed")
	ErrUnitExhausted   = errors.New("unit has already moved and attacked this turn")

	ErrUnknownAbility      = errors.New("unknown ability")
	ErrAbilityNotAvailable = errors.New("unit does not have this ability")
	ErrAbilityPrecondition = errors.New("ability precondition not met")

	ErrWrongTurn             = errors.New("not this faction's turn")
	ErrNoSelection           = errors.New("no unit selected")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrGameOver              = errors.New("game is over")
)

// EntityError carries the entity a rejected operation was aimed at
type EntityError struct {
	ID  EntityID
	Op  string
	Err error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s entity %d: %v", e.Op, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error { return e.Err }

// WrapEntityError attaches the operation and entity id to err
func WrapEntityError(id EntityID, op string, err error) error {
	if err == nil {
		return nil
	}
	return &EntityError{ID: id, Op: op, Err: err}
}
