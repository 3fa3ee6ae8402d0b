package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// TestSeed is the seed shared by tests that only need some fixed RNG
const TestSeed = 12345

// NewTestRNG returns a deterministic source; the same seed replays the same
// map, obstacle moves and AI choices
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// TestLogger routes debug output through t.Log so it only shows for failing
// or verbose tests
func TestLogger(t testing.TB) zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}
