package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/processor"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/states"
	"github.com/mitchelldurbincs/NebulaDominion/internal/learning"
)

// TurnProcessor handles the orchestration of turn hand-overs and the AI
// turn. Callers hold the engine lock.
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Str("phase", phase).
			Msg("Turn processing cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// EndPlayerTurn resets every unit's turn flags, hands the turn to the AI and
// queues its decisions: MovesPerTurn passes over the AI units
func (tp *TurnProcessor) EndPlayerTurn(ctx context.Context) error {
	e := tp.engine
	for _, u := range e.gs.Board.Units() {
		u.ResetTurn()
	}
	if err := tp.handOver(ctx, states.PhaseAITurn, "Player ended turn"); err != nil {
		return err
	}

	ai := e.gs.Board.UnitsOf(core.FactionAI)
	e.aiQueue = make([]core.EntityID, 0, len(ai)*e.movesPerTurn)
	for pass := 0; pass < e.movesPerTurn; pass++ {
		for _, u := range ai {
			e.aiQueue = append(e.aiQueue, u.ID)
		}
	}
	tp.logger.Debug().
		Int("turn", e.gs.Turn).
		Int("ai_units", len(ai)).
		Int("queued_decisions", len(e.aiQueue)).
		Msg("AI turn queued")
	return nil
}

// StepAI makes the next queued AI decision. Units destroyed since they were
// queued are skipped. Draining the queue finishes the AI turn.
func (tp *TurnProcessor) StepAI(ctx context.Context) learning.Decision {
	e := tp.engine
	var d learning.Decision
	for len(e.aiQueue) > 0 {
		id := e.aiQueue[0]
		e.aiQueue = e.aiQueue[1:]
		if e.gs.Board.Unit(id) == nil {
			continue
		}
		d = tp.decide(ctx, id)
		break
	}
	if len(e.aiQueue) == 0 {
		tp.finishAITurn(ctx)
	}
	return d
}

func (tp *TurnProcessor) decide(ctx context.Context, id core.EntityID) learning.Decision {
	e := tp.engine
	_, span := e.tracer.Start(ctx, "ai.decision", trace.WithAttributes(
		attribute.Int("turn", e.gs.Turn),
		attribute.Int("unit_id", int(id)),
	))
	defer span.End()

	d := e.ai.Act(e.gs.Board, id, e.winCondition.Base(core.FactionPlayer))
	span.SetAttributes(
		attribute.String("decision", d.Kind.String()),
		attribute.String("action", d.Action.String()),
		attribute.Float64("reward", d.Reward),
	)

	e.eventBus.Publish(events.NewAIDecisionEvent(e.gameID, e.gs.Turn, id, d.Kind.String(), d.Action.String(), d.Reward))
	if d.Attack != nil {
		e.eventBus.Publish(events.NewCombatResolvedEvent(e.gameID, e.gs.Turn, *d.Attack))
	}
	if d.Move != nil {
		tp.publishMove(core.FactionAI, *d.Move)
	}
	tp.publishDestroyed(d.Destroyed)
	return d
}

// finishAITurn checks for an AI win, runs the live obstacle round and hands
// the turn back to the player with the first player unit selected
func (tp *TurnProcessor) finishAITurn(ctx context.Context) {
	e := tp.engine
	if tp.checkGameOver("AI turn complete") {
		return
	}
	tp.moveObstacles(ctx)

	if err := tp.handOver(ctx, states.PhasePlayerTurn, "AI turn complete"); err != nil {
		tp.logger.Error().Err(err).Int("turn", e.gs.Turn).Msg("Failed to hand the turn back to the player")
		return
	}
	if units := e.gs.Board.UnitsOf(core.FactionPlayer); len(units) > 0 {
		if err := e.gs.SelectUnit(units[0].ID); err == nil {
			e.gs.Board.ComputeReachable(units[0].ID)
		}
	}
}

// moveObstacles gives every live obstacle one move, watching the first
// player unit. Without a player unit there is nothing to watch.
func (tp *TurnProcessor) moveObstacles(ctx context.Context) {
	e := tp.engine
	players := e.gs.Board.UnitsOf(core.FactionPlayer)
	live := e.gs.Board.LiveObstacles()
	if len(players) == 0 || len(live) == 0 {
		return
	}

	_, span := e.tracer.Start(ctx, "obstacles.round", trace.WithAttributes(
		attribute.Int("turn", e.gs.Turn),
		attribute.Int("obstacles", len(live)),
	))
	defer span.End()

	steps := e.obstacles.Step(e.gs.Board, players[0].Pos)
	moved, blocked := 0, 0
	for _, s := range steps {
		if s.Blocked {
			blocked++
		}
		if s.From != s.To {
			moved++
		}
	}
	span.SetAttributes(attribute.Int("moved", moved), attribute.Int("blocked", blocked))

	tp.logger.Debug().
		Int("turn", e.gs.Turn).
		Int("obstacles", len(steps)).
		Int("moved", moved).
		Int("blocked", blocked).
		Msg("Live obstacles moved")
	e.eventBus.Publish(events.NewObstaclesMovedEvent(e.gameID, e.gs.Turn, len(steps), moved, blocked))
}

// handOver advances the turn counter, gives the turn to the other faction,
// resets its units and pays its income. The phase machine is moved first so
// a refused transition changes nothing.
func (tp *TurnProcessor) handOver(ctx context.Context, to states.GamePhase, reason string) error {
	e := tp.engine
	gs := e.gs
	_, span := e.tracer.Start(ctx, "turn.handover", trace.WithAttributes(
		attribute.Int("turn", gs.Turn),
		attribute.String("from", gs.Current.Label()),
		attribute.String("to_phase", to.String()),
	))
	defer span.End()

	gctx := e.stateMachine.Context()
	gctx.Turn = gs.Turn + 1
	if err := e.stateMachine.TransitionTo(to, reason); err != nil {
		gctx.Turn = gs.Turn
		span.RecordError(err)
		return fmt.Errorf("turn %d hand-over: %w", gs.Turn, err)
	}

	from := gs.Current
	e.eventBus.Publish(events.NewTurnEndedEvent(e.gameID, gs.Turn, from, time.Since(e.turnStart)))

	gs.advance()
	for _, u := range gs.Board.UnitsOf(gs.Current) {
		u.ResetTurn()
	}
	income := e.incomeManager.ProcessTurnIncome(gs)
	e.turnStart = time.Now()
	tp.syncContext()

	tp.logger.Info().
		Int("turn", gs.Turn).
		Str("faction", gs.Current.Label()).
		Int("income", income).
		Int("resources", gs.Resources(gs.Current)).
		Msg("Turn started")
	return nil
}

// checkGameOver ends the game when a unit stands on the opposing base
func (tp *TurnProcessor) checkGameOver(reason string) bool {
	e := tp.engine
	over, winner := e.winCondition.CheckGameOver(e.gs.Board)
	if !over {
		return false
	}

	e.gameOver = true
	e.winner = winner
	e.aiQueue = nil
	e.gs.ClearSelection()

	tp.syncContext()
	gctx := e.stateMachine.Context()
	gctx.Winner = winner
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, reason); err != nil {
		tp.logger.Error().Err(err).Msg("Failed to transition to Ended state")
	}

	tp.logger.Info().
		Int("turn", e.gs.Turn).
		Str("winner", winner.Label()).
		Dur("duration", gctx.GetElapsedTime()).
		Msg("Game over")
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, e.gs.Turn, winner, gctx.GetElapsedTime()))
	return true
}

// syncContext copies the counters the phase states read
func (tp *TurnProcessor) syncContext() {
	e := tp.engine
	gctx := e.stateMachine.Context()
	gctx.Turn = e.gs.Turn
	gctx.PlayerUnits = len(e.gs.Board.UnitsOf(core.FactionPlayer))
	gctx.AIUnits = len(e.gs.Board.UnitsOf(core.FactionAI))
}

// publishOutcome publishes the events of one accepted Act command
func (tp *TurnProcessor) publishOutcome(owner core.Faction, out processor.Outcome) {
	e := tp.engine
	switch out.Kind {
	case processor.ActionMove:
		tp.publishMove(owner, *out.Move)
	case processor.ActionAttack:
		e.eventBus.Publish(events.NewCombatResolvedEvent(e.gameID, e.gs.Turn, *out.Attack))
	case processor.ActionAbility:
		e.eventBus.Publish(events.NewAbilityUsedEvent(e.gameID, e.gs.Turn, *out.Ability))
	}
	tp.publishDestroyed(out.Destroyed)
}

func (tp *TurnProcessor) publishMove(owner core.Faction, mv core.MoveOutcome) {
	e := tp.engine
	e.eventBus.Publish(events.NewUnitMovedEvent(e.gameID, e.gs.Turn, owner, mv))
	if mv.HazardDamage > 0 {
		e.eventBus.Publish(events.NewHazardTriggeredEvent(e.gameID, e.gs.Turn, mv))
	}
	if mv.Captured != nil {
		e.eventBus.Publish(events.NewResourceCapturedEvent(e.gameID, e.gs.Turn, mv.Captured))
	}
}

func (tp *TurnProcessor) publishDestroyed(units []*core.Unit) {
	e := tp.engine
	for _, u := range units {
		e.eventBus.Publish(events.NewUnitDestroyedEvent(e.gameID, e.gs.Turn, u))
	}
}
