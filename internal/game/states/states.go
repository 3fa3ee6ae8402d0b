package states

import (
	"fmt"
	"time"
)

// SetupState represents board generation before the first turn
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() GamePhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *GameContext) error {
	ctx.Turn = 0
	ctx.StartTime = time.Time{}
	ctx.EndTime = time.Time{}
	ctx.Winner = ""
	ctx.Logger.Debug().Msg("Entering Setup state")
	return nil
}

func (s *SetupState) Exit(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Int("player_units", ctx.PlayerUnits).
		Int("ai_units", ctx.AIUnits).
		Msg("Setup complete, game starting")
	return nil
}

func (s *SetupState) Validate(ctx *GameContext) error {
	return nil
}

// PlayerTurnState represents the player faction's turn
type PlayerTurnState struct{}

func NewPlayerTurnState() State {
	return &PlayerTurnState{}
}

func (s *PlayerTurnState) Phase() GamePhase {
	return PhasePlayerTurn
}

func (s *PlayerTurnState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Player turn started")
	return nil
}

func (s *PlayerTurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *PlayerTurnState) Validate(ctx *GameContext) error {
	if ctx.Winner != "" {
		return fmt.Errorf("game already won by %s", ctx.Winner.Label())
	}
	return nil
}

// AITurnState represents the AI faction's turn
type AITurnState struct{}

func NewAITurnState() State {
	return &AITurnState{}
}

func (s *AITurnState) Phase() GamePhase {
	return PhaseAITurn
}

func (s *AITurnState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("AI turn started")
	return nil
}

func (s *AITurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *AITurnState) Validate(ctx *GameContext) error {
	if ctx.Winner != "" {
		return fmt.Errorf("game already won by %s", ctx.Winner.Label())
	}
	return nil
}

// EndedState represents a finished game
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Str("winner", ctx.Winner.Label()).
		Int("turn", ctx.Turn).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting ended state")
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if ctx.Winner == "" {
		return fmt.Errorf("cannot end game without a winner")
	}
	return nil
}
