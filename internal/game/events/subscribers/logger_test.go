package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "GameStartedEvent",
			event: events.NewGameStartedEvent("test-game-1", 10, 12, 2, "default"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(10), logLine["map_width"])
				assert.Equal(t, float64(12), logLine["map_height"])
				assert.Equal(t, float64(2), logLine["units"])
				assert.Equal(t, "default", logLine["scenario"])
			},
		},
		{
			name:  "TurnStartedEvent",
			event: events.NewTurnStartedEvent("test-game-1", 5, core.FactionAI, 30, 130),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["turn"])
				assert.Equal(t, "ai", logLine["faction"])
				assert.Equal(t, float64(30), logLine["income"])
				assert.Equal(t, float64(130), logLine["resources"])
			},
		},
		{
			name: "CombatResolvedEvent",
			event: events.NewCombatResolvedEvent("test-game-1", 3, core.AttackResult{
				AttackerID: 1,
				TargetID:   2,
				Target:     core.NewCoordinate(4, 5),
				Damage:     2,
				Remaining:  98,
			}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["attacker_id"])
				assert.Equal(t, float64(2), logLine["target_id"])
				assert.Equal(t, float64(4), logLine["location_x"])
				assert.Equal(t, float64(5), logLine["location_y"])
				assert.Equal(t, float64(2), logLine["damage"])
				assert.Equal(t, false, logLine["destroyed"])
			},
		},
		{
			name: "AbilityUsedEvent",
			event: events.NewAbilityUsedEvent("test-game-1", 2, core.AbilityResult{
				Ability: core.Repair,
				UserID:  7,
				Healed:  20,
			}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(7), logLine["user_id"])
				assert.Equal(t, "Repair", logLine["ability"])
				assert.Equal(t, float64(20), logLine["healed"])
			},
		},
		{
			name:  "AIDecisionEvent",
			event: events.NewAIDecisionEvent("test-game-1", 4, 9, "move", "left", 4),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(9), logLine["unit_id"])
				assert.Equal(t, "move", logLine["decision"])
				assert.Equal(t, "left", logLine["action"])
				assert.Equal(t, float64(4), logLine["reward"])
			},
		},
		{
			name:  "GameEndedEvent",
			event: events.NewGameEndedEvent("test-game-1", 9, core.FactionAI, 5*time.Minute),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "AI", logLine["winner"])
				assert.Equal(t, float64(300000), logLine["duration"]) // 5 minutes in ms
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(logOutput), &logLine))

			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-game-1", logLine["game_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", zerolog.Nop(), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeGameStarted, events.TypeGameEnded})

	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeGameEnded))
	assert.False(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.False(t, logSub.InterestedIn(events.TypeUnitMoved))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeUnitMoved))
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("level-logger", zerolog.New(&buf), tc.logLevel)

			logSub.HandleEvent(events.NewGameStartedEvent("game1", 10, 10, 2, "default"))

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewObstaclesMovedEvent("game1", 3, 2, 1, 1))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
	data, ok := logLine["event_data"].(map[string]interface{})
	require.True(t, ok, "dev mode embeds the raw event")
	assert.Equal(t, float64(2), data["Obstacles"])
	assert.Equal(t, events.TypeObstaclesMoved, data["type"])
}
