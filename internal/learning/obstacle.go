package learning

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/experience"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// ObstacleConfig holds the hyperparameters shared by every live obstacle
type ObstacleConfig struct {
	Alpha   float64
	Gamma   float64
	Epsilon float64
	Rewards *experience.ObstacleRewardConfig
}

func DefaultObstacleConfig() ObstacleConfig {
	return ObstacleConfig{
		Alpha:   0.5,
		Gamma:   0.9,
		Epsilon: 0.3,
		Rewards: experience.DefaultObstacleRewardConfig(),
	}
}

// ObstacleAgent is the private learner of one live obstacle
type ObstacleAgent struct {
	ID    core.EntityID
	Table *QTable

	lastState  State
	lastAction Action
	hasLast    bool
}

// Last returns the most recent decision of the agent
func (a *ObstacleAgent) Last() (State, Action, bool) {
	return a.lastState, a.lastAction, a.hasLast
}

// ObstacleStep records one obstacle's move within a round
type ObstacleStep struct {
	ID       core.EntityID
	From, To core.Coordinate
	Action   Action
	Blocked  bool
	Reward   float64
}

// ObstacleController drives every live obstacle once per round
type ObstacleController struct {
	cfg    ObstacleConfig
	rng    *rand.Rand
	agents map[core.EntityID]*ObstacleAgent
	logger zerolog.Logger
}

func NewObstacleController(cfg ObstacleConfig, rng *rand.Rand, logger zerolog.Logger) *ObstacleController {
	if cfg.Rewards == nil {
		cfg.Rewards = experience.DefaultObstacleRewardConfig()
	}
	return &ObstacleController{
		cfg:    cfg,
		rng:    rng,
		agents: make(map[core.EntityID]*ObstacleAgent),
		logger: logger.With().Str("component", "ObstacleController").Logger(),
	}
}

// Agent returns the learner for a live obstacle, creating it on first use
func (c *ObstacleController) Agent(id core.EntityID) *ObstacleAgent {
	a, ok := c.agents[id]
	if !ok {
		a = &ObstacleAgent{ID: id, Table: NewQTable()}
		c.agents[id] = a
	}
	return a
}

// Step moves every live obstacle once. Destinations are checked against the
// positions all obstacles held when the round began plus the cells claimed
// earlier in this round, so no obstacle can push into a spot another one is
// leaving.
func (c *ObstacleController) Step(b *core.Board, watched core.Coordinate) []ObstacleStep {
	obstacles := b.LiveObstacles()
	claimed := make(map[core.Coordinate]struct{}, len(obstacles)*2)
	for _, l := range obstacles {
		claimed[l.Pos] = struct{}{}
	}

	steps := make([]ObstacleStep, 0, len(obstacles))
	for _, l := range obstacles {
		agent := c.Agent(l.ID)
		from := l.Pos
		s := State{DX: watched.X - from.X, DY: watched.Y - from.Y}
		a := EpsilonGreedy(c.rng, c.cfg.Epsilon, agent.Table.Values(s))

		target := from.Add(a.Offset()).Clamp(b.W, b.H)
		to := target
		blocked := false
		if to != from {
			if _, taken := claimed[to]; taken || !b.IsPassable(to) {
				to = from
				blocked = true
			}
		}
		if err := b.MoveLiveObstacle(l.ID, to); err != nil {
			c.logger.Warn().Err(err).Int("obstacle_id", int(l.ID)).Msg("Live obstacle move rejected")
			to = from
			blocked = true
		}
		claimed[to] = struct{}{}

		reward := experience.CalculateObstacleReward(target, to, watched, c.cfg.Rewards)
		next := State{DX: watched.X - to.X, DY: watched.Y - to.Y}
		agent.Table.Update(s, a, reward, next, c.cfg.Alpha, c.cfg.Gamma)
		agent.lastState, agent.lastAction, agent.hasLast = s, a, true

		steps = append(steps, ObstacleStep{
			ID:      l.ID,
			From:    from,
			To:      to,
			Action:  a,
			Blocked: blocked,
			Reward:  reward,
		})
	}

	c.logger.Debug().
		Int("obstacles", len(steps)).
		Str("watched", watched.String()).
		Msg("Live obstacles stepped")
	return steps
}
