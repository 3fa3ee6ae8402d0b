package game

import (
	"github.com/mitchelldurbincs/NebulaDominion/internal/config"
	"github.com/mitchelldurbincs/NebulaDominion/internal/experience"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/mapgen"
	"github.com/mitchelldurbincs/NebulaDominion/internal/learning"
)

// Board size functions
func BoardWidth() int {
	return config.Get().Game.Board.Width
}

func BoardHeight() int {
	return config.Get().Game.Board.Height
}

// Economy functions
func StartingResources() int {
	return config.Get().Game.Economy.StartingResources
}

func TurnIncome() int {
	return config.Get().Game.Economy.TurnIncome
}

func ResourceNodeValue() int {
	return config.Get().Game.Economy.ResourceNodeValue
}

// UnitCosts returns the purchase price of every unit class
func UnitCosts() map[core.UnitClass]int {
	c := config.Get().Game.Economy.UnitCosts
	return map[core.UnitClass]int{
		core.Corvette:    c.Corvette,
		core.Mech:        c.Mech,
		core.Dreadnought: c.Dreadnought,
		core.Drone:       c.Drone,
	}
}

func BaseClearance() int {
	return config.Get().Game.Map.BaseClearance
}

func MovesPerTurn() int {
	return config.Get().Game.AI.MovesPerTurn
}

// AbilityRules returns the configured ability numbers
func AbilityRules() core.AbilityRules {
	a := config.Get().Game.Abilities
	return core.AbilityRules{RepairAmount: a.RepairAmount, ScoutRange: a.ScoutRange}
}

// TerrainConfig returns the map generation settings for a w x h board.
// Bases default to opposite corners.
func TerrainConfig(w, h int) mapgen.MapConfig {
	m := config.Get().Game.Map
	cfg := mapgen.DefaultMapConfig(w, h)
	cfg.Obstacles = m.Obstacles
	cfg.Hazards = m.Hazards
	cfg.ResourceNodes = m.ResourceNodes
	cfg.LiveObstacles = m.LiveObstacles
	cfg.HazardDamage = m.HazardDamage
	cfg.BaseClearance = m.BaseClearance
	cfg.ResourceValue = ResourceNodeValue()
	return cfg
}

// ObstacleLearning returns the live obstacle hyperparameters and rewards
func ObstacleLearning() learning.ObstacleConfig {
	c := config.Get()
	l, r := c.Learning.Obstacle, c.Rewards.Obstacle
	return learning.ObstacleConfig{
		Alpha:   l.Alpha,
		Gamma:   l.Gamma,
		Epsilon: l.Epsilon,
		Rewards: &experience.ObstacleRewardConfig{
			Block: r.Block,
			Crowd: r.Crowd,
			Idle:  r.Idle,
		},
	}
}

// FactionLearning returns the AI faction hyperparameters and rewards
func FactionLearning() learning.FactionConfig {
	c := config.Get()
	l, r := c.Learning.Faction, c.Rewards.Faction
	return learning.FactionConfig{
		Alpha:          l.Alpha,
		Gamma:          l.Gamma,
		Epsilon:        l.Epsilon,
		StateClamp:     l.StateClamp,
		ReplayWindow:   l.ReplayWindow,
		MemoryCapacity: l.MemoryCapacity,
		TieNoise:       l.TieNoise,
		Rewards: &experience.FactionRewardConfig{
			Attack:         r.Attack,
			Closer:         r.Closer,
			Farther:        r.Farther,
			Unchanged:      r.Unchanged,
			Resource:       r.Resource,
			Standoff:       r.Standoff,
			StandoffMin:    r.StandoffMin,
			StandoffMax:    r.StandoffMax,
			Overexposed:    r.Overexposed,
			OverexposedMax: r.OverexposedMax,
		},
	}
}
