package events

import (
	"time"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted      = "game.started"
	TypeGameEnded        = "game.ended"
	TypeTurnStarted      = "turn.started"
	TypeTurnEnded        = "turn.ended"
	TypeUnitMoved        = "unit.moved"
	TypeUnitDestroyed    = "unit.destroyed"
	TypeUnitRecruited    = "unit.recruited"
	TypeCombatResolved   = "combat.resolved"
	TypeAbilityUsed      = "ability.used"
	TypeHazardTriggered  = "hazard.triggered"
	TypeResourceCaptured = "resource.captured"
	TypeObstaclesMoved   = "obstacles.moved"
	TypeAIDecision       = "ai.decision"
	TypeStateTransition  = "state.transition"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Width    int
	Height   int
	Units    int
	Scenario string
}

func NewGameStartedEvent(gameID string, width, height, units int, scenario string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID, 1),
		Width:     width,
		Height:    height,
		Units:     units,
		Scenario:  scenario,
	}
}

// GameEndedEvent is published once, when a unit reaches the opposing base
type GameEndedEvent struct {
	BaseEvent
	Winner   core.Faction
	Duration time.Duration
}

func NewGameEndedEvent(gameID string, turn int, winner core.Faction, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID, turn),
		Winner:    winner,
		Duration:  duration,
	}
}

// TurnStartedEvent is published after the active faction changes and its
// income has been paid
type TurnStartedEvent struct {
	BaseEvent
	Faction   core.Faction
	Income    int
	Resources int
}

func NewTurnStartedEvent(gameID string, turn int, faction core.Faction, income, resources int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, gameID, turn),
		Faction:   faction,
		Income:    income,
		Resources: resources,
	}
}

// TurnEndedEvent is published when a faction hands over control
type TurnEndedEvent struct {
	BaseEvent
	Faction       core.Faction
	ProcessedTime time.Duration
}

func NewTurnEndedEvent(gameID string, turn int, faction core.Faction, processed time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID, turn),
		Faction:       faction,
		ProcessedTime: processed,
	}
}

// UnitMovedEvent is published for every accepted unit move
type UnitMovedEvent struct {
	BaseEvent
	UnitID core.EntityID
	Owner  core.Faction
	From   core.Coordinate
	To     core.Coordinate
}

func NewUnitMovedEvent(gameID string, turn int, owner core.Faction, out core.MoveOutcome) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, gameID, turn),
		UnitID:    out.UnitID,
		Owner:     owner,
		From:      out.From,
		To:        out.To,
	}
}

// HazardTriggeredEvent is published when a unit ends a move on a hazard
type HazardTriggeredEvent struct {
	BaseEvent
	UnitID    core.EntityID
	Location  core.Coordinate
	Damage    int
	Destroyed bool
}

func NewHazardTriggeredEvent(gameID string, turn int, out core.MoveOutcome) *HazardTriggeredEvent {
	return &HazardTriggeredEvent{
		BaseEvent: newBase(TypeHazardTriggered, gameID, turn),
		UnitID:    out.UnitID,
		Location:  out.To,
		Damage:    out.HazardDamage,
		Destroyed: out.Destroyed,
	}
}

// ResourceCapturedEvent is published the first time a node gets an owner
type ResourceCapturedEvent struct {
	BaseEvent
	NodeID   core.EntityID
	Location core.Coordinate
	Owner    core.Faction
	Value    int
}

func NewResourceCapturedEvent(gameID string, turn int, node *core.ResourceNode) *ResourceCapturedEvent {
	return &ResourceCapturedEvent{
		BaseEvent: newBase(TypeResourceCaptured, gameID, turn),
		NodeID:    node.ID,
		Location:  node.Pos,
		Owner:     node.Owner,
		Value:     node.Value,
	}
}

// CombatResolvedEvent is published after a direct attack
type CombatResolvedEvent struct {
	BaseEvent
	AttackerID core.EntityID
	TargetID   core.EntityID
	Location   core.Coordinate
	Damage     int
	Remaining  int
	Destroyed  bool
}

func NewCombatResolvedEvent(gameID string, turn int, res core.AttackResult) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:  newBase(TypeCombatResolved, gameID, turn),
		AttackerID: res.AttackerID,
		TargetID:   res.TargetID,
		Location:   res.Target,
		Damage:     res.Damage,
		Remaining:  res.Remaining,
		Destroyed:  res.Destroyed,
	}
}

// AbilityUsedEvent is published after an ability resolves successfully
type AbilityUsedEvent struct {
	BaseEvent
	UserID   core.EntityID
	Ability  core.Ability
	Target   core.Coordinate
	Hits     int
	Healed   int
	Revealed int
}

func NewAbilityUsedEvent(gameID string, turn int, res core.AbilityResult) *AbilityUsedEvent {
	return &AbilityUsedEvent{
		BaseEvent: newBase(TypeAbilityUsed, gameID, turn),
		UserID:    res.UserID,
		Ability:   res.Ability,
		Target:    res.Target,
		Hits:      len(res.Hits),
		Healed:    res.Healed,
		Revealed:  len(res.Revealed),
	}
}

// UnitDestroyedEvent is published for each unit removed from the board
type UnitDestroyedEvent struct {
	BaseEvent
	UnitID   core.EntityID
	Class    core.UnitClass
	Owner    core.Faction
	Location core.Coordinate
}

func NewUnitDestroyedEvent(gameID string, turn int, u *core.Unit) *UnitDestroyedEvent {
	return &UnitDestroyedEvent{
		BaseEvent: newBase(TypeUnitDestroyed, gameID, turn),
		UnitID:    u.ID,
		Class:     u.Class,
		Owner:     u.Owner,
		Location:  u.Pos,
	}
}

// UnitRecruitedEvent is published when a faction buys a unit
type UnitRecruitedEvent struct {
	BaseEvent
	UnitID   core.EntityID
	Class    core.UnitClass
	Owner    core.Faction
	Location core.Coordinate
	Cost     int
}

func NewUnitRecruitedEvent(gameID string, turn int, u *core.Unit, cost int) *UnitRecruitedEvent {
	return &UnitRecruitedEvent{
		BaseEvent: newBase(TypeUnitRecruited, gameID, turn),
		UnitID:    u.ID,
		Class:     u.Class,
		Owner:     u.Owner,
		Location:  u.Pos,
		Cost:      cost,
	}
}

// ObstaclesMovedEvent summarises one live-obstacle round
type ObstaclesMovedEvent struct {
	BaseEvent
	Obstacles int
	Moved     int
	Blocked   int
}

func NewObstaclesMovedEvent(gameID string, turn, obstacles, moved, blocked int) *ObstaclesMovedEvent {
	return &ObstaclesMovedEvent{
		BaseEvent: newBase(TypeObstaclesMoved, gameID, turn),
		Obstacles: obstacles,
		Moved:     moved,
		Blocked:   blocked,
	}
}

// AIDecisionEvent is published for every step of the AI faction
type AIDecisionEvent struct {
	BaseEvent
	UnitID   core.EntityID
	Decision string
	Action   string
	Reward   float64
}

func NewAIDecisionEvent(gameID string, turn int, unitID core.EntityID, decision, action string, reward float64) *AIDecisionEvent {
	return &AIDecisionEvent{
		BaseEvent: newBase(TypeAIDecision, gameID, turn),
		UnitID:    unitID,
		Decision:  decision,
		Action:    action,
		Reward:    reward,
	}
}

// StateTransitionEvent is published when the game phase changes
type StateTransitionEvent struct {
	BaseEvent
	FromState string
	ToState   string
	Reason    string
}

func NewStateTransitionEvent(gameID string, turn int, from, to, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID, turn),
		FromState: from,
		ToState:   to,
		Reason:    reason,
	}
}
