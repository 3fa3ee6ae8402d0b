package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Int("turn", event.Turn()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("map_width", e.Width).
			Int("map_height", e.Height).
			Int("units", e.Units).
			Str("scenario", e.Scenario)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner.Label()).
			Dur("duration", e.Duration)

	case *events.TurnStartedEvent:
		logEvent.
			Str("faction", string(e.Faction)).
			Int("income", e.Income).
			Int("resources", e.Resources)

	case *events.TurnEndedEvent:
		logEvent.
			Str("faction", string(e.Faction)).
			Dur("process_time", e.ProcessedTime)

	case *events.UnitMovedEvent:
		logEvent.
			Int("unit_id", int(e.UnitID)).
			Str("owner", string(e.Owner)).
			Int("from_x", e.From.X).
			Int("from_y", e.From.Y).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y)

	case *events.HazardTriggeredEvent:
		logEvent.
			Int("unit_id", int(e.UnitID)).
			Int("damage", e.Damage).
			Bool("destroyed", e.Destroyed)

	case *events.ResourceCapturedEvent:
		logEvent.
			Int("node_id", int(e.NodeID)).
			Str("owner", string(e.Owner)).
			Int("value", e.Value)

	case *events.CombatResolvedEvent:
		logEvent.
			Int("attacker_id", int(e.AttackerID)).
			Int("target_id", int(e.TargetID)).
			Int("location_x", e.Location.X).
			Int("location_y", e.Location.Y).
			Int("damage", e.Damage).
			Int("remaining", e.Remaining).
			Bool("destroyed", e.Destroyed)

	case *events.AbilityUsedEvent:
		logEvent.
			Int("user_id", int(e.UserID)).
			Str("ability", e.Ability.String()).
			Int("hits", e.Hits).
			Int("healed", e.Healed).
			Int("revealed", e.Revealed)

	case *events.UnitDestroyedEvent:
		logEvent.
			Int("unit_id", int(e.UnitID)).
			Str("class", e.Class.String()).
			Str("owner", string(e.Owner))

	case *events.UnitRecruitedEvent:
		logEvent.
			Int("unit_id", int(e.UnitID)).
			Str("class", e.Class.String()).
			Str("owner", string(e.Owner)).
			Int("cost", e.Cost)

	case *events.ObstaclesMovedEvent:
		logEvent.
			Int("obstacles", e.Obstacles).
			Int("moved", e.Moved).
			Int("blocked", e.Blocked)

	case *events.AIDecisionEvent:
		logEvent.
			Int("unit_id", int(e.UnitID)).
			Str("decision", e.Decision).
			Str("action", e.Action).
			Float64("reward", e.Reward)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromState).
			Str("to", e.ToState).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
