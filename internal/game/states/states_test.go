package states

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

func TestStateImplementations(t *testing.T) {
	t.Run("SetupState clears the previous game", func(t *testing.T) {
		state := NewSetupState()
		ctx := NewGameContext("test", zerolog.Nop())
		ctx.Turn = 12
		ctx.Winner = core.FactionAI

		assert.Equal(t, PhaseSetup, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.Zero(t, ctx.Turn)
		assert.Empty(t, ctx.Winner)

		assert.NoError(t, state.Exit(ctx))
		assert.False(t, ctx.StartTime.IsZero())
	})

	turnStates := []struct {
		name  string
		state State
		phase GamePhase
	}{
		{"PlayerTurnState", NewPlayerTurnState(), PhasePlayerTurn},
		{"AITurnState", NewAITurnState(), PhaseAITurn},
	}
	for _, tt := range turnStates {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewGameContext("test", zerolog.Nop())

			assert.Equal(t, tt.phase, tt.state.Phase())
			assert.NoError(t, tt.state.Validate(ctx))
			assert.NoError(t, tt.state.Enter(ctx))
			assert.NoError(t, tt.state.Exit(ctx))

			ctx.Winner = core.FactionPlayer
			err := tt.state.Validate(ctx)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "already won by Player")
		})
	}

	t.Run("EndedState", func(t *testing.T) {
		state := NewEndedState()
		ctx := NewGameContext("test", zerolog.Nop())

		assert.Equal(t, PhaseEnded, state.Phase())
		assert.Error(t, state.Validate(ctx))

		ctx.Winner = core.FactionAI
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.EndTime.IsZero())
		assert.NoError(t, state.Exit(ctx))
	})
}
