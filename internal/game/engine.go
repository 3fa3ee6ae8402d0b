package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/processor"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/rules"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/states"
	"github.com/mitchelldurbincs/NebulaDominion/internal/learning"
)

// Engine is the command and query surface of one match. Commands report
// acceptance as a bool and leave the game untouched when rejected.
//
// Event handlers run synchronously while the engine lock is held and must
// not call back into the Engine.
type Engine struct {
	mu sync.Mutex

	gs       *GameState
	gameOver bool
	winner   core.Faction
	logger   zerolog.Logger

	gameID       string
	scenarioName string

	actionProcessor *processor.ActionProcessor
	winCondition    *rules.WinConditionChecker
	legalMoves      *rules.LegalMoveCalculator
	eventBus        *events.EventBus
	stateMachine    *states.StateMachine
	incomeManager   *IncomeManager
	turnProcessor   *TurnProcessor
	obstacles       *learning.ObstacleController
	ai              *learning.QLearningAI
	tracer          trace.Tracer

	abilityRules  core.AbilityRules
	movesPerTurn  int
	baseClearance int

	// aiQueue holds the AI units still to act this AI turn, pass by pass
	aiQueue   []core.EntityID
	turnStart time.Time
}

// Select selects the active player's unit at (x, y) and computes where it
// can still move
func (e *Engine) Select(x, y int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkPlayerCommand(); err != nil {
		return e.reject("select", err)
	}
	c := core.NewCoordinate(x, y)
	if !e.gs.Board.InBounds(x, y) {
		return e.reject("select", core.ErrOutOfBounds)
	}
	u := e.gs.Board.UnitAt(c)
	if u == nil {
		return e.reject("select", core.ErrNoSelection)
	}
	if err := e.gs.SelectUnit(u.ID); err != nil {
		return e.reject("select", err)
	}
	if !u.HasMoved {
		e.gs.Board.ComputeReachable(u.ID)
	}
	e.logger.Debug().
		Int("unit_id", int(u.ID)).
		Str("class", u.Class.String()).
		Int("reachable", len(e.gs.Board.Reachable())).
		Msg("Unit selected")
	return true
}

// Act applies the selected unit to (x, y): move there if reachable and not
// yet moved, else attack an enemy there if not yet attacked, else the first
// of the unit's abilities that succeeds against that cell
func (e *Engine) Act(x, y int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkPlayerCommand(); err != nil {
		return e.reject("act", err)
	}
	u := e.gs.SelectedUnit()
	if u == nil {
		return e.reject("act", core.ErrNoSelection)
	}

	out, err := e.actionProcessor.Resolve(e.gs.Board, u.ID, core.NewCoordinate(x, y))
	if err != nil {
		return e.reject("act", err)
	}
	e.turnProcessor.publishOutcome(u.Owner, out)

	if out.Kind == processor.ActionMove && e.turnProcessor.checkGameOver("player move") {
		return true
	}

	switch {
	case u.IsDead():
		e.gs.ClearSelection()
	case !u.HasMoved:
		e.gs.Board.ComputeReachable(u.ID)
	default:
		e.gs.Board.ClearReachable()
	}
	return true
}

// EndTurn ends the player's turn and queues the AI's moves. The AI turn is
// then played with StepAI or RunAITurn.
func (e *Engine) EndTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkPlayerCommand(); err != nil {
		return e.reject("end turn", err)
	}
	ctx, span := e.tracer.Start(context.Background(), "engine.EndTurn")
	defer span.End()

	if err := e.turnProcessor.EndPlayerTurn(ctx); err != nil {
		span.RecordError(err)
		return e.reject("end turn", err)
	}
	return true
}

// StepAI advances the AI turn by one unit decision. When the last decision
// of the turn has been made, live obstacles take their round and the turn
// passes back to the player. Returns false when no AI turn is in progress.
func (e *Engine) StepAI(ctx context.Context) (learning.Decision, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver || e.stateMachine.CurrentPhase() != states.PhaseAITurn {
		return learning.Decision{}, false
	}
	if err := e.turnProcessor.checkContext(ctx, "ai step"); err != nil {
		return learning.Decision{}, false
	}
	return e.turnProcessor.StepAI(ctx), true
}

// RunAITurn plays the queued AI turn to completion
func (e *Engine) RunAITurn(ctx context.Context) error {
	ctx, span := e.tracer.Start(ctx, "engine.RunAITurn")
	defer span.End()

	for {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return err
		}
		if _, ok := e.StepAI(ctx); !ok {
			return ctx.Err()
		}
	}
}

// Recruit buys a unit of class for the active faction and places it at
// (x, y), which must lie within base clearance of that faction's base.
// Recruited units act from their owner's next turn.
func (e *Engine) Recruit(class core.UnitClass, x, y int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return e.reject("recruit", core.ErrGameOver)
	}
	if !e.stateMachine.CurrentPhase().IsTurn() {
		return e.reject("recruit", core.ErrWrongTurn)
	}
	f := e.gs.Current
	c := core.NewCoordinate(x, y)
	if !e.gs.Board.InBounds(x, y) {
		return e.reject("recruit", core.ErrOutOfBounds)
	}
	if !c.Within(e.winCondition.Base(f), e.baseClearance) {
		return e.reject("recruit", core.ErrOutOfRange)
	}
	if !e.gs.CanAfford(class, f) {
		return e.reject("recruit", core.ErrInsufficientResources)
	}

	u := core.NewUnit(class, f)
	u.HasMoved = true
	u.HasAttacked = true
	if err := e.gs.Board.Place(u, c); err != nil {
		return e.reject("recruit", err)
	}
	cost := e.gs.Cost(class)
	if err := e.gs.Spend(cost, f); err != nil {
		// CanAfford passed under the same lock
		e.logger.Error().Err(err).Msg("Spend failed after affordability check")
	}

	e.logger.Debug().
		Int("unit_id", int(u.ID)).
		Str("class", class.String()).
		Str("faction", f.Label()).
		Int("cost", cost).
		Int("resources", e.gs.Resources(f)).
		Msg("Unit recruited")
	e.eventBus.Publish(events.NewUnitRecruitedEvent(e.gameID, e.gs.Turn, u, cost))
	return true
}

// ScoutedEnemies lists the enemy units revealed by the active faction's
// drones that used Scout this turn
func (e *Engine) ScoutedEnemies() []UnitView {
	e.mu.Lock()
	defer e.mu.Unlock()

	f := e.gs.Current
	seen := make(map[core.EntityID]*core.Unit)
	for _, drone := range e.gs.Board.UnitsOf(f) {
		if !drone.Scouting {
			continue
		}
		for _, other := range e.gs.Board.UnitsWithin(drone.Pos, e.abilityRules.ScoutRange) {
			if other.Owner == f.Opponent() {
				seen[other.ID] = other
			}
		}
	}

	views := make([]UnitView, 0, len(seen))
	for _, u := range seen {
		views = append(views, newUnitView(u))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// checkPlayerCommand rejects commands outside the player's turn
func (e *Engine) checkPlayerCommand() error {
	if e.gameOver {
		return core.ErrGameOver
	}
	if e.stateMachine.CurrentPhase() != states.PhasePlayerTurn {
		return core.ErrWrongTurn
	}
	return nil
}

func (e *Engine) reject(command string, err error) bool {
	e.logger.Debug().
		Err(err).
		Str("command", command).
		Int("turn", e.gs.Turn).
		Msg("Command rejected")
	return false
}

// GameID returns the unique id of this match
func (e *Engine) GameID() string {
	return e.gameID
}

// EventBus returns the bus engine events are published on
func (e *Engine) EventBus() *events.EventBus {
	return e.eventBus
}

func (e *Engine) Turn() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gs.Turn
}

func (e *Engine) CurrentFaction() core.Faction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gs.Current
}

func (e *Engine) Phase() states.GamePhase {
	return e.stateMachine.CurrentPhase()
}

func (e *Engine) Resources(f core.Faction) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gs.Resources(f)
}

func (e *Engine) IsGameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameOver
}

// Winner is "Player" or "AI" once the game is over, empty before
func (e *Engine) Winner() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.gameOver {
		return ""
	}
	return e.winner.Label()
}

// Reachable is the reachable set of the selected unit, in row-major order
func (e *Engine) Reachable() []core.Coordinate {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gs.Selected == core.NoEntity || e.gs.Board.ReachableFor() != e.gs.Selected {
		return nil
	}
	return e.gs.Board.Reachable()
}

// SelectedUnit returns the selected unit's stats and turn flags
func (e *Engine) SelectedUnit() (UnitView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u := e.gs.SelectedUnit()
	if u == nil {
		return UnitView{}, false
	}
	return newUnitView(u), true
}

// Targets lists the enemies the selected unit can attack right now
func (e *Engine) Targets() []UnitView {
	e.mu.Lock()
	defer e.mu.Unlock()
	var views []UnitView
	for _, t := range e.legalMoves.AttackTargets(e.gs.Board, e.gs.SelectedUnit()) {
		views = append(views, newUnitView(t))
	}
	return views
}

// Idle lists the active faction's units that can still move or attack
func (e *Engine) Idle() []UnitView {
	e.mu.Lock()
	defer e.mu.Unlock()
	var views []UnitView
	for _, u := range e.gs.Board.UnitsOf(e.gs.Current) {
		if e.legalMoves.CanStillAct(e.gs.Board, u) {
			views = append(views, newUnitView(u))
		}
	}
	return views
}

// Units lists every unit on the board in placement order
func (e *Engine) Units() []UnitView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unitViews()
}

// Entities lists the terrain on the board: obstacles, live obstacles,
// hazards and resource nodes
func (e *Engine) Entities() []EntityView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.entityViews()
}

// History returns the phase transitions of this match
func (e *Engine) History() []states.Transition {
	return e.stateMachine.History()
}

// LearnedStates is the number of rows in the AI faction's Q-table
func (e *Engine) LearnedStates() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ai.Table().Len()
}

// Snapshot captures every query at once under a single lock
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		GameID:   e.gameID,
		Turn:     e.gs.Turn,
		Faction:  e.gs.Current,
		Phase:    e.stateMachine.CurrentPhase().String(),
		GameOver: e.gameOver,
		Resources: map[core.Faction]int{
			core.FactionPlayer: e.gs.Resources(core.FactionPlayer),
			core.FactionAI:     e.gs.Resources(core.FactionAI),
		},
		Units:    e.unitViews(),
		Entities: e.entityViews(),
	}
	if e.gameOver {
		s.Winner = e.winner.Label()
	}
	if u := e.gs.SelectedUnit(); u != nil {
		v := newUnitView(u)
		s.Selected = &v
		if e.gs.Board.ReachableFor() == u.ID {
			s.Reachable = e.gs.Board.Reachable()
		}
	}
	return s
}

func (e *Engine) unitViews() []UnitView {
	units := e.gs.Board.Units()
	views := make([]UnitView, 0, len(units))
	for _, u := range units {
		views = append(views, newUnitView(u))
	}
	return views
}

func (e *Engine) entityViews() []EntityView {
	b := e.gs.Board
	var views []EntityView
	for _, o := range b.Obstacles() {
		views = append(views, EntityView{ID: o.ID, Kind: core.KindObstacle.String(), X: o.Pos.X, Y: o.Pos.Y})
	}
	for _, l := range b.LiveObstacles() {
		views = append(views, EntityView{ID: l.ID, Kind: core.KindLiveObstacle.String(), X: l.Pos.X, Y: l.Pos.Y})
	}
	for _, h := range b.Hazards() {
		views = append(views, EntityView{ID: h.ID, Kind: core.KindHazard.String(), X: h.Pos.X, Y: h.Pos.Y, Damage: h.Damage})
	}
	for _, r := range b.Resources() {
		v := EntityView{ID: r.ID, Kind: core.KindResource.String(), X: r.Pos.X, Y: r.Pos.Y, Value: r.Value}
		if r.Owner != core.FactionNone {
			v.Owner = r.Owner.Label()
		}
		views = append(views, v)
	}
	return views
}
