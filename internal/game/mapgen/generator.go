package mapgen

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width         int
	Height        int
	Obstacles     int
	Hazards       int
	ResourceNodes int
	LiveObstacles int
	HazardDamage  int
	ResourceValue int
	// BaseClearance is the Manhattan distance around each base kept free of
	// static terrain
	BaseClearance int
	PlayerBase    core.Coordinate
	AIBase        core.Coordinate
}

// DefaultMapConfig returns a sensible default configuration with the bases
// in opposite corners
func DefaultMapConfig(w, h int) MapConfig {
	return MapConfig{
		Width:         w,
		Height:        h,
		Obstacles:     5,
		Hazards:       3,
		ResourceNodes: 4,
		LiveObstacles: 2,
		HazardDamage:  50,
		ResourceValue: 20,
		BaseClearance: 2,
		PlayerBase:    core.NewCoordinate(0, 0),
		AIBase:        core.NewCoordinate(w-1, h-1),
	}
}

// Placement counts what a generation pass actually put on the board
type Placement struct {
	Obstacles     int
	Hazards       int
	ResourceNodes int
	LiveObstacles int
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand, logger zerolog.Logger) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
		logger: logger.With().Str("component", "MapGenerator").Logger(),
	}
}

// GenerateMap creates a new board and populates it
func (g *Generator) GenerateMap() (*core.Board, Placement) {
	board := core.NewBoard(g.config.Width, g.config.Height)
	return board, g.Populate(board)
}

// Populate scatters terrain over the interior band [2, size-3] of an
// existing board. Cells already holding something are skipped, so units
// placed beforehand are never displaced.
func (g *Generator) Populate(b *core.Board) Placement {
	var p Placement
	p.Obstacles = g.placeStatic(b, g.config.Obstacles, func() core.Entity {
		return core.NewObstacle()
	})
	p.Hazards = g.placeStatic(b, g.config.Hazards, func() core.Entity {
		return core.NewHazard(g.config.HazardDamage)
	})
	p.ResourceNodes = g.placeStatic(b, g.config.ResourceNodes, func() core.Entity {
		return core.NewResourceNode(g.config.ResourceValue)
	})
	p.LiveObstacles = g.placeLiveObstacles(b)

	g.logger.Debug().
		Int("obstacles", p.Obstacles).
		Int("hazards", p.Hazards).
		Int("resource_nodes", p.ResourceNodes).
		Int("live_obstacles", p.LiveObstacles).
		Msg("Map populated")
	return p
}

// interior reports whether the band [2, size-3] exists on both axes
func (g *Generator) interior(b *core.Board) bool {
	return b.W >= 5 && b.H >= 5
}

func (g *Generator) randomInterior(b *core.Board) core.Coordinate {
	return core.NewCoordinate(2+g.rng.Intn(b.W-4), 2+g.rng.Intn(b.H-4))
}

// NearBase reports whether c lies within the clearance of either base
func (g *Generator) NearBase(c core.Coordinate) bool {
	return c.Within(g.config.PlayerBase, g.config.BaseClearance) ||
		c.Within(g.config.AIBase, g.config.BaseClearance)
}

func (g *Generator) placeStatic(b *core.Board, want int, build func() core.Entity) int {
	if want <= 0 || !g.interior(b) {
		return 0
	}

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	placed := 0
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		c := g.randomInterior(b)
		if g.NearBase(c) || !b.GetCell(c).IsEmpty() {
			continue
		}
		if err := b.Place(build(), c); err != nil {
			g.logger.Warn().Err(err).Str("cell", c.String()).Msg("Terrain placement rejected")
			continue
		}
		placed++
	}
	if placed < want {
		g.logger.Warn().Int("wanted", want).Int("placed", placed).Msg("Board too crowded for requested terrain")
	}
	return placed
}

// placeLiveObstacles ignores base clearance and only needs an empty cell
func (g *Generator) placeLiveObstacles(b *core.Board) int {
	want := g.config.LiveObstacles
	if want <= 0 || !g.interior(b) {
		return 0
	}

	maxAttempts := b.W * b.H * want
	placed := 0
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		c := g.randomInterior(b)
		if !b.GetCell(c).IsEmpty() {
			continue
		}
		if err := b.Place(core.NewLiveObstacle(), c); err != nil {
			continue
		}
		placed++
	}
	return placed
}
