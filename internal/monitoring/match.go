package monitoring

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
)

// MatchMonitor tracks match metrics from the event stream and logs them
// periodically while a match runs
type MatchMonitor struct {
	mu            sync.RWMutex
	id            string
	started       time.Time
	turn          int
	eventCounts   map[string]int
	destroyed     map[core.Faction]int
	captured      map[core.Faction]int
	hazardDamage  int
	aiReward      float64
	aiDecisions   int
	winner        string
	checkInterval time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
	logger        zerolog.Logger
}

// NewMatchMonitor creates a monitor; interval <= 0 disables periodic logging
func NewMatchMonitor(id string, interval time.Duration, logger zerolog.Logger) *MatchMonitor {
	return &MatchMonitor{
		id:            id,
		started:       time.Now(),
		eventCounts:   make(map[string]int),
		destroyed:     make(map[core.Faction]int),
		captured:      make(map[core.Faction]int),
		checkInterval: interval,
		stopChan:      make(chan struct{}),
		logger:        logger.With().Str("component", "MatchMonitor").Logger(),
	}
}

// ID implements events.Subscriber
func (m *MatchMonitor) ID() string {
	return m.id
}

// InterestedIn implements events.Subscriber
func (m *MatchMonitor) InterestedIn(string) bool {
	return true
}

// HandleEvent implements events.Subscriber
func (m *MatchMonitor) HandleEvent(event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.eventCounts[event.Type()]++
	if event.Turn() > m.turn {
		m.turn = event.Turn()
	}

	switch e := event.(type) {
	case *events.UnitDestroyedEvent:
		m.destroyed[e.Owner]++
	case *events.ResourceCapturedEvent:
		m.captured[e.Owner]++
	case *events.HazardTriggeredEvent:
		m.hazardDamage += e.Damage
	case *events.AIDecisionEvent:
		m.aiDecisions++
		m.aiReward += e.Reward
	case *events.GameEndedEvent:
		m.winner = string(e.Winner)
	}
}

// Start begins periodic metric logging
func (m *MatchMonitor) Start() {
	if m.checkInterval <= 0 {
		return
	}
	go m.monitor()
	m.logger.Info().
		Dur("interval", m.checkInterval).
		Msg("Started match monitoring")
}

// Stop stops the monitor. It is safe to call more than once.
func (m *MatchMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

func (m *MatchMonitor) monitor() {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().
				Interface("panic", r).
				Msg("Match monitor panicked")
		}
	}()

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.logMetrics()
		case <-m.stopChan:
			return
		}
	}
}

func (m *MatchMonitor) logMetrics() {
	metrics := m.GetMetrics()
	m.logger.Info().
		Int("turn", metrics.Turn).
		Int("events", metrics.TotalEvents).
		Int("ai_decisions", metrics.AIDecisions).
		Float64("ai_mean_reward", metrics.AIMeanReward).
		Interface("destroyed", metrics.Destroyed).
		Msg("Match metrics")
}

// GetMetrics returns a copy of the current metrics
func (m *MatchMonitor) GetMetrics() MatchMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, n := range m.eventCounts {
		total += n
	}
	mean := 0.0
	if m.aiDecisions > 0 {
		mean = m.aiReward / float64(m.aiDecisions)
	}

	return MatchMetrics{
		Turn:         m.turn,
		Elapsed:      time.Since(m.started),
		TotalEvents:  total,
		EventCounts:  copyMap(m.eventCounts),
		Destroyed:    factionMap(m.destroyed),
		Captured:     factionMap(m.captured),
		HazardDamage: m.hazardDamage,
		AIDecisions:  m.aiDecisions,
		AIMeanReward: mean,
		Winner:       m.winner,
	}
}

// MatchMetrics contains match statistics
type MatchMetrics struct {
	Turn         int            `json:"turn"`
	Elapsed      time.Duration  `json:"elapsed"`
	TotalEvents  int            `json:"total_events"`
	EventCounts  map[string]int `json:"event_counts"`
	Destroyed    map[string]int `json:"destroyed"`
	Captured     map[string]int `json:"captured"`
	HazardDamage int            `json:"hazard_damage"`
	AIDecisions  int            `json:"ai_decisions"`
	AIMeanReward float64        `json:"ai_mean_reward"`
	Winner       string         `json:"winner,omitempty"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

func factionMap(m map[core.Faction]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[string(k)] = v
	}
	return result
}
