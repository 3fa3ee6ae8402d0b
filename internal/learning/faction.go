package learning

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/common"
	"github.com/mitchelldurbincs/NebulaDominion/internal/experience"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/rules"
)

// FactionConfig holds the hyperparameters of the AI faction learner
type FactionConfig struct {
	Alpha          float64
	Gamma          float64
	Epsilon        float64
	StateClamp     int
	ReplayWindow   int
	MemoryCapacity int
	TieNoise       float64
	Rewards        *experience.FactionRewardConfig
}

func DefaultFactionConfig() FactionConfig {
	return FactionConfig{
		Alpha:          0.8,
		Gamma:          0.95,
		Epsilon:        0.2,
		StateClamp:     5,
		ReplayWindow:   10,
		MemoryCapacity: 1000,
		TieNoise:       0.1,
		Rewards:        experience.DefaultFactionRewardConfig(),
	}
}

// Transition is one stored (s, a, r, s') experience
type Transition struct {
	ID     string
	State  State
	Action Action
	Reward float64
	Next   State
}

type DecisionKind int

const (
	DecisionSkip DecisionKind = iota
	DecisionAttack
	DecisionMove
	DecisionHold
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAttack:
		return "attack"
	case DecisionMove:
		return "move"
	case DecisionHold:
		return "hold"
	default:
		return "skip"
	}
}

// Decision is what one AI unit did with one step
type Decision struct {
	UnitID    core.EntityID
	Kind      DecisionKind
	State     State
	Action    Action
	Reward    float64
	Attack    *core.AttackResult
	Move      *core.MoveOutcome
	Destroyed []*core.Unit
}

type choice struct {
	state  State
	action Action
}

// QLearningAI controls every AI unit with one shared table
type QLearningAI struct {
	cfg    FactionConfig
	table  *QTable
	memory *experience.ReplayMemory[Transition]
	last   map[core.EntityID]choice
	moves  *rules.LegalMoveCalculator
	rng    *rand.Rand
	logger zerolog.Logger
}

func NewQLearningAI(cfg FactionConfig, rng *rand.Rand, logger zerolog.Logger) *QLearningAI {
	if cfg.Rewards == nil {
		cfg.Rewards = experience.DefaultFactionRewardConfig()
	}
	return &QLearningAI{
		cfg:    cfg,
		table:  NewQTable(),
		memory: experience.NewReplayMemory[Transition](cfg.MemoryCapacity, logger),
		last:   make(map[core.EntityID]choice),
		moves:  rules.NewLegalMoveCalculator(),
		rng:    rng,
		logger: logger.With().Str("component", "QLearningAI").Logger(),
	}
}

// Table is the shared action-value table
func (ai *QLearningAI) Table() *QTable { return ai.table }

// Memory is the bounded replay memory
func (ai *QLearningAI) Memory() *experience.ReplayMemory[Transition] { return ai.memory }

// StateFor is the offset from pos to target, clamped per axis
func (ai *QLearningAI) StateFor(pos, target core.Coordinate) State {
	c := ai.cfg.StateClamp
	return State{
		DX: common.Clamp(target.X-pos.X, -c, c),
		DY: common.Clamp(target.Y-pos.Y, -c, c),
	}
}

// ChooseAction explores with a softmax over the action values, otherwise
// exploits with jittered argmax
func (ai *QLearningAI) ChooseAction(s State) Action {
	values := ai.table.Values(s)
	if ai.rng.Float64() < ai.cfg.Epsilon {
		return SoftmaxSample(ai.rng, values)
	}
	return NoisyArgmax(ai.rng, ai.cfg.TieNoise, values)
}

// Learn updates the table with one transition, stores it, then replays the
// most recent stored transitions
func (ai *QLearningAI) Learn(s State, a Action, reward float64, next State) {
	ai.table.Update(s, a, reward, next, ai.cfg.Alpha, ai.cfg.Gamma)
	ai.memory.Add(Transition{ID: uuid.NewString(), State: s, Action: a, Reward: reward, Next: next})
	for _, tr := range ai.memory.Latest(ai.cfg.ReplayWindow) {
		ai.table.Update(tr.State, tr.Action, tr.Reward, tr.Next, ai.cfg.Alpha, ai.cfg.Gamma)
	}
}

// Act makes one decision for an AI unit heading for target: attack the
// first enemy in range, otherwise pick and attempt a move.
func (ai *QLearningAI) Act(b *core.Board, unitID core.EntityID, target core.Coordinate) Decision {
	u := b.Unit(unitID)
	if u == nil {
		delete(ai.last, unitID)
		return Decision{UnitID: unitID, Kind: DecisionSkip}
	}

	if targets := ai.moves.AttackTargets(b, u); len(targets) > 0 {
		return ai.attack(b, u, targets[0], target)
	}
	return ai.move(b, u, target)
}

// attack credits the attack reward to the unit's previous move decision
func (ai *QLearningAI) attack(b *core.Board, u, enemy *core.Unit, target core.Coordinate) Decision {
	res, err := core.Attack(u, enemy)
	if err != nil {
		ai.logger.Warn().Err(err).Msg("Attack target rejected")
		return Decision{UnitID: u.ID, Kind: DecisionSkip}
	}
	destroyed := b.RemoveDead()

	next := ai.StateFor(u.Pos, target)
	prev, ok := ai.last[u.ID]
	if !ok {
		prev = choice{state: next, action: Stay}
	}
	reward := ai.cfg.Rewards.Attack
	ai.Learn(prev.state, prev.action, reward, next)

	ai.logger.Debug().
		Int("unit_id", int(u.ID)).
		Int("target_id", int(enemy.ID)).
		Int("damage", res.Damage).
		Bool("destroyed", res.Destroyed).
		Msg("AI unit attacked")

	return Decision{
		UnitID:    u.ID,
		Kind:      DecisionAttack,
		State:     prev.state,
		Action:    prev.action,
		Reward:    reward,
		Attack:    &res,
		Destroyed: destroyed,
	}
}

func (ai *QLearningAI) move(b *core.Board, u *core.Unit, target core.Coordinate) Decision {
	s := ai.StateFor(u.Pos, target)
	a := ai.ChooseAction(s)
	oldDist := u.Pos.DistanceTo(target)

	d := Decision{UnitID: u.ID, Kind: DecisionHold, State: s, Action: a}
	dest := u.Pos.Add(a.Offset())
	if a != Stay && b.IsPassable(dest) {
		out, err := b.Move(u.ID, dest)
		if err == nil {
			d.Kind = DecisionMove
			d.Move = &out
			if out.Destroyed {
				d.Destroyed = []*core.Unit{u}
			}
		}
	}

	newDist := u.Pos.DistanceTo(target)
	onResource := b.ResourceAt(u.Pos) != nil
	d.Reward = experience.CalculateMoveReward(oldDist, newDist, onResource, ai.cfg.Rewards)
	ai.Learn(s, a, d.Reward, ai.StateFor(u.Pos, target))

	if u.IsDead() {
		delete(ai.last, u.ID)
	} else {
		ai.last[u.ID] = choice{state: s, action: a}
	}
	return d
}
