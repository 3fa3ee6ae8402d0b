package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
)

// ErrInvalidTransition is returned for a phase change the phase graph does
// not allow
var ErrInvalidTransition = errors.New("invalid transition")

// historyLimit caps the transition log; a long match keeps its latest hand-overs
const historyLimit = 512

// State is one phase of a match with lifecycle hooks
type State interface {
	Phase() GamePhase
	// Enter runs after the phase became current; an error rolls the change back
	Enter(ctx *GameContext) error
	// Exit runs before leaving; errors are logged and ignored
	Exit(ctx *GameContext) error
	// Validate decides whether the phase may be entered at all
	Validate(ctx *GameContext) error
}

// Transition is one entry of the phase history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Turn      int
	Timestamp time.Time
	// InPhase is how long the match stayed in From
	InPhase time.Duration
	Reason  string
}

// StateMachine drives a match through Setup, the alternating turn phases and
// Ended, publishing a StateTransitionEvent for each change
type StateMachine struct {
	mu      sync.RWMutex
	phase   GamePhase
	entered time.Time
	states  map[GamePhase]State
	context *GameContext
	history []Transition
	bus     events.Publisher
}

// NewStateMachine starts in Setup. bus may be nil.
func NewStateMachine(ctx *GameContext, bus events.Publisher) *StateMachine {
	sm := &StateMachine{
		phase:   PhaseSetup,
		entered: time.Now(),
		states:  make(map[GamePhase]State, 4),
		context: ctx,
		bus:     bus,
	}
	for _, s := range []State{NewSetupState(), NewPlayerTurnState(), NewAITurnState(), NewEndedState()} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// register replaces the implementation of one phase
func (sm *StateMachine) register(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// Context is shared with the engine, which keeps Turn and Winner current
// before each transition
func (sm *StateMachine) Context() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.context
}

// History returns a copy of the recorded transitions, oldest first
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]Transition, len(sm.history))
	copy(out, sm.history)
	return out
}

// TransitionTo moves to target. The current phase is unchanged on error.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.phase
	if !from.CanTransitionTo(target) {
		return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, from, target)
	}
	next, ok := sm.states[target]
	if !ok {
		return fmt.Errorf("no state registered for phase %s", target)
	}
	if err := next.Validate(sm.context); err != nil {
		return fmt.Errorf("entering %s: validation failed: %w", target, err)
	}

	log := sm.context.Logger.With().
		Str("from_phase", from.String()).
		Str("to_phase", target.String()).
		Logger()

	if cur, ok := sm.states[from]; ok {
		if err := cur.Exit(sm.context); err != nil {
			log.Error().Err(err).Msg("Error exiting phase")
		}
	}

	sm.phase = target
	if err := next.Enter(sm.context); err != nil {
		sm.phase = from
		return fmt.Errorf("failed to enter %s: %w", target, err)
	}

	now := time.Now()
	sm.history = append(sm.history, Transition{
		From:      from,
		To:        target,
		Turn:      sm.context.Turn,
		Timestamp: now,
		InPhase:   now.Sub(sm.entered),
		Reason:    reason,
	})
	if n := len(sm.history); n > historyLimit {
		sm.history = sm.history[n-historyLimit:]
	}
	sm.entered = now

	if sm.bus != nil {
		sm.bus.Publish(events.NewStateTransitionEvent(sm.context.GameID, sm.context.Turn, from.String(), target.String(), reason))
	}
	log.Debug().Int("turn", sm.context.Turn).Str("reason", reason).Msg("Phase changed")
	return nil
}
