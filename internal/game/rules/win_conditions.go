package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger     zerolog.Logger
	playerBase core.Coordinate
	aiBase     core.Coordinate
}

// NewWinConditionChecker creates a checker for the two base cells
func NewWinConditionChecker(logger zerolog.Logger, playerBase, aiBase core.Coordinate) *WinConditionChecker {
	return &WinConditionChecker{
		logger:     logger.With().Str("component", "WinConditionChecker").Logger(),
		playerBase: playerBase,
		aiBase:     aiBase,
	}
}

// Base returns the home cell of a faction
func (wc *WinConditionChecker) Base(f core.Faction) core.Coordinate {
	if f == core.FactionAI {
		return wc.aiBase
	}
	return wc.playerBase
}

// CheckGameOver reports whether a unit stands on the opposing base.
// A player unit on the AI base is checked first.
// Returns (isGameOver, winner)
func (wc *WinConditionChecker) CheckGameOver(b *core.Board) (bool, core.Faction) {
	if u := b.UnitAt(wc.aiBase); u != nil && u.Owner == core.FactionPlayer {
		wc.logger.Info().Int("unit_id", int(u.ID)).Str("base", wc.aiBase.String()).Msg("Player unit reached the AI base")
		return true, core.FactionPlayer
	}
	if u := b.UnitAt(wc.playerBase); u != nil && u.Owner == core.FactionAI {
		wc.logger.Info().Int("unit_id", int(u.ID)).Str("base", wc.playerBase.String()).Msg("AI unit reached the player base")
		return true, core.FactionAI
	}
	return false, core.FactionNone
}
