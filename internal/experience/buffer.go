package experience

import (
	"sync"

	"github.com/rs/zerolog"
)

// DefaultMemoryCapacity is used when a non-positive capacity is requested
const DefaultMemoryCapacity = 1000

// ReplayMemory is a bounded, goroutine-safe store of learner transitions.
// When full, each Add evicts the oldest entry.
type ReplayMemory[T any] struct {
	mu      sync.RWMutex
	ring    []T
	next    int // slot the next Add writes
	count   int
	added   int64
	evicted int64
	logger  zerolog.Logger
}

func NewReplayMemory[T any](capacity int, logger zerolog.Logger) *ReplayMemory[T] {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &ReplayMemory[T]{
		ring:   make([]T, capacity),
		logger: logger.With().Str("component", "ReplayMemory").Logger(),
	}
}

// Add stores item, evicting the oldest entry once the memory is full
func (m *ReplayMemory[T]) Add(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.count == len(m.ring) {
		m.evicted++
		if m.evicted == 1 {
			m.logger.Debug().Int("capacity", len(m.ring)).Msg("Replay memory full, evicting oldest transitions")
		}
	} else {
		m.count++
	}
	m.ring[m.next] = item
	m.next = (m.next + 1) % len(m.ring)
	m.added++
}

// Latest returns up to n of the most recent entries, oldest first
func (m *ReplayMemory[T]) Latest(n int) []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestLocked(n)
}

func (m *ReplayMemory[T]) latestLocked(n int) []T {
	n = min(n, m.count)
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	start := m.next - n + len(m.ring)
	for i := range out {
		out[i] = m.ring[(start+i)%len(m.ring)]
	}
	return out
}

// All returns every stored entry, oldest first
func (m *ReplayMemory[T]) All() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestLocked(m.count)
}

func (m *ReplayMemory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.count
}

func (m *ReplayMemory[T]) Cap() int {
	return len(m.ring)
}

// MemoryStats summarises replay memory usage
type MemoryStats struct {
	Size     int     `json:"size"`
	Capacity int     `json:"capacity"`
	Added    int64   `json:"added"`
	Evicted  int64   `json:"evicted"`
	FillPct  float64 `json:"fill_pct"`
}

func (m *ReplayMemory[T]) Stats() MemoryStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MemoryStats{
		Size:     m.count,
		Capacity: len(m.ring),
		Added:    m.added,
		Evicted:  m.evicted,
		FillPct:  float64(m.count) / float64(len(m.ring)) * 100,
	}
}
