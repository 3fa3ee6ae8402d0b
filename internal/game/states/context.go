package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Turn is the turn counter, kept in step by the engine
	Turn int

	// PlayerUnits and AIUnits are the surviving unit counts
	PlayerUnits int
	AIUnits     int

	// StartTime is when the first turn began
	StartTime time.Time

	// EndTime is when the game ended
	EndTime time.Time

	// Winner is the winning faction, empty while the game runs
	Winner core.Faction
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
	}
}

// GetElapsedTime returns the time elapsed since the first turn, frozen once
// the game has ended
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
