package experience

import (
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// ObstacleRewardConfig holds reward values for live obstacle agents
type ObstacleRewardConfig struct {
	Block float64 // tried to enter the watched unit's cell
	Crowd float64 // adjacent to the watched unit
	Idle  float64 // anywhere else
}

// DefaultObstacleRewardConfig returns the default obstacle rewards
func DefaultObstacleRewardConfig() *ObstacleRewardConfig {
	return &ObstacleRewardConfig{
		Block: 2,
		Crowd: -2,
		Idle:  -1,
	}
}

// CalculateObstacleReward scores a live obstacle's move against the unit it
// watches. target is the cell it tried to enter and landed the cell it holds
// afterwards. The watched unit occupies its cell, so aiming at that cell is
// the block: the obstacle stays put and is paid Block.
func CalculateObstacleReward(target, landed, watched core.Coordinate, config *ObstacleRewardConfig) float64 {
	if target == watched {
		return config.Block
	}
	switch landed.DistanceTo(watched) {
	case 0:
		return config.Block
	case 1:
		return config.Crowd
	default:
		return config.Idle
	}
}

// FactionRewardConfig holds reward values for the AI faction learner
type FactionRewardConfig struct {
	Attack    float64
	Closer    float64
	Farther   float64
	Unchanged float64
	Resource  float64

	// Bonus while the distance to the target sits in [StandoffMin, StandoffMax]
	Standoff    float64
	StandoffMin int
	StandoffMax int

	// Penalty once the distance drops to OverexposedMax or below
	Overexposed    float64
	OverexposedMax int
}

// DefaultFactionRewardConfig returns the default faction rewards
func DefaultFactionRewardConfig() *FactionRewardConfig {
	return &FactionRewardConfig{
		Attack:         15,
		Closer:         4,
		Farther:        -3,
		Unchanged:      -1,
		Resource:       8,
		Standoff:       3,
		StandoffMin:    2,
		StandoffMax:    4,
		Overexposed:    -2,
		OverexposedMax: 1,
	}
}

// CalculateMoveReward scores one AI movement decision from the distance to
// its target before and after the move
func CalculateMoveReward(oldDist, newDist int, onResource bool, config *FactionRewardConfig) float64 {
	var reward float64
	switch {
	case newDist < oldDist:
		reward = config.Closer
	case newDist > oldDist:
		reward = config.Farther
	default:
		reward = config.Unchanged
	}

	if onResource {
		reward += config.Resource
	}
	if newDist >= config.StandoffMin && newDist <= config.StandoffMax {
		reward += config.Standoff
	}
	if newDist <= config.OverexposedMax {
		reward += config.Overexposed
	}

	return reward
}
