package game

import (
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// GameState is the turn bookkeeping around the board: whose turn it is, the
// turn counter, the selected unit and each faction's resources.
type GameState struct {
	Turn     int
	Current  core.Faction
	Board    *core.Board
	Selected core.EntityID

	resources map[core.Faction]int
	costs     map[core.UnitClass]int
}

// NewGameState starts at turn 1 with the player to move and both factions
// holding starting resources
func NewGameState(board *core.Board, starting int, costs map[core.UnitClass]int) *GameState {
	return &GameState{
		Turn:    1,
		Current: core.FactionPlayer,
		Board:   board,
		resources: map[core.Faction]int{
			core.FactionPlayer: starting,
			core.FactionAI:     starting,
		},
		costs: costs,
	}
}

// SelectUnit selects a unit of the active faction that can still act and
// drops the reachable cache of the previous selection
func (gs *GameState) SelectUnit(id core.EntityID) error {
	u := gs.Board.Unit(id)
	if u == nil {
		return core.WrapEntityError(id, "select", core.ErrUnknownEntity)
	}
	if u.Owner != gs.Current {
		return core.WrapEntityError(id, "select", core.ErrWrongTurn)
	}
	if u.Exhausted() {
		return core.WrapEntityError(id, "select", core.ErrUnitExhausted)
	}
	gs.Selected = id
	gs.Board.ClearReachable()
	return nil
}

func (gs *GameState) ClearSelection() {
	gs.Selected = core.NoEntity
	gs.Board.ClearReachable()
}

// SelectedUnit returns the selected unit, nil when nothing is selected or
// the unit has been destroyed
func (gs *GameState) SelectedUnit() *core.Unit {
	if gs.Selected == core.NoEntity {
		return nil
	}
	return gs.Board.Unit(gs.Selected)
}

func (gs *GameState) Resources(f core.Faction) int {
	return gs.resources[f]
}

// Cost is the purchase price of a class, zero when the class is unknown
func (gs *GameState) Cost(class core.UnitClass) int {
	return gs.costs[class]
}

// CanAfford reports whether f holds enough resources to buy class
func (gs *GameState) CanAfford(class core.UnitClass, f core.Faction) bool {
	cost, ok := gs.costs[class]
	return ok && gs.resources[f] >= cost
}

// Spend deducts amount from f. Nothing is deducted when f cannot cover it.
func (gs *GameState) Spend(amount int, f core.Faction) error {
	if amount < 0 || gs.resources[f] < amount {
		return core.ErrInsufficientResources
	}
	gs.resources[f] -= amount
	return nil
}

func (gs *GameState) Credit(f core.Faction, amount int) {
	gs.resources[f] += amount
}

// advance hands the turn to the other faction
func (gs *GameState) advance() {
	gs.Turn++
	gs.Current = gs.Current.Opponent()
	gs.ClearSelection()
}
