package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/testutil"
)

func TestDefaultMapConfig(t *testing.T) {
	config := DefaultMapConfig(12, 10)

	assert.Equal(t, 12, config.Width)
	assert.Equal(t, 10, config.Height)
	assert.Equal(t, 5, config.Obstacles)
	assert.Equal(t, 3, config.Hazards)
	assert.Equal(t, 4, config.ResourceNodes)
	assert.Equal(t, 2, config.LiveObstacles)
	assert.Equal(t, 50, config.HazardDamage)
	assert.Equal(t, 2, config.BaseClearance)
	assert.Equal(t, core.NewCoordinate(0, 0), config.PlayerBase)
	assert.Equal(t, core.NewCoordinate(11, 9), config.AIBase)
}

func TestGenerateMap(t *testing.T) {
	config := DefaultMapConfig(10, 10)
	gen := NewGenerator(config, testutil.NewTestRNG(12345), testutil.NopLogger())

	board, placed := gen.GenerateMap()

	require.NotNil(t, board)
	assert.Equal(t, len(board.Obstacles()), placed.Obstacles)
	assert.Equal(t, len(board.Hazards()), placed.Hazards)
	assert.Equal(t, len(board.Resources()), placed.ResourceNodes)
	assert.Equal(t, 2, placed.LiveObstacles, "live obstacles retry until they find room")
	assert.Equal(t, 2, len(board.LiveObstacles()))
	assert.LessOrEqual(t, placed.Obstacles, config.Obstacles)

	inBand := func(c core.Coordinate) bool {
		return c.X >= 2 && c.X <= 7 && c.Y >= 2 && c.Y <= 7
	}
	for _, o := range board.Obstacles() {
		assert.True(t, inBand(o.Pos), "obstacle %s outside the band", o.Pos)
		assert.False(t, gen.NearBase(o.Pos), "obstacle %s too close to a base", o.Pos)
	}
	for _, h := range board.Hazards() {
		assert.True(t, inBand(h.Pos))
		assert.False(t, gen.NearBase(h.Pos))
		assert.Equal(t, 50, h.Damage)
	}
	for _, r := range board.Resources() {
		assert.True(t, inBand(r.Pos))
		assert.False(t, gen.NearBase(r.Pos))
		assert.Equal(t, 20, r.Value)
		assert.Equal(t, core.FactionNone, r.Owner)
	}
	for _, l := range board.LiveObstacles() {
		assert.True(t, inBand(l.Pos))
	}
}

func TestGenerateMap_Deterministic(t *testing.T) {
	layout := func() []core.Coordinate {
		gen := NewGenerator(DefaultMapConfig(10, 10), testutil.NewTestRNG(7), testutil.NopLogger())
		board, _ := gen.GenerateMap()
		var cells []core.Coordinate
		for _, o := range board.Obstacles() {
			cells = append(cells, o.Pos)
		}
		for _, h := range board.Hazards() {
			cells = append(cells, h.Pos)
		}
		for _, r := range board.Resources() {
			cells = append(cells, r.Pos)
		}
		for _, l := range board.LiveObstacles() {
			cells = append(cells, l.Pos)
		}
		return cells
	}

	assert.Equal(t, layout(), layout())
}

func TestPopulate_KeepsExistingUnits(t *testing.T) {
	config := DefaultMapConfig(6, 6)
	config.Obstacles = 20
	config.BaseClearance = 0
	board := testutil.CreateTestBoard(6, 6)
	u := testutil.PlaceUnit(t, board, core.Mech, core.FactionPlayer, 2, 2)

	placed := NewGenerator(config, testutil.NewTestRNG(3), testutil.NopLogger()).Populate(board)

	assert.Equal(t, u, board.UnitAt(core.NewCoordinate(2, 2)))
	total := placed.Obstacles + placed.Hazards + placed.ResourceNodes + placed.LiveObstacles
	assert.LessOrEqual(t, total, 3, "only three free interior cells remain")
}

func TestPopulate_NoInterior(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"narrow", 4, 10},
		{"short", 10, 3},
		{"tiny", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(DefaultMapConfig(tt.w, tt.h), testutil.NewTestRNG(1), testutil.NopLogger())
			_, placed := gen.GenerateMap()
			assert.Equal(t, Placement{}, placed)
		})
	}
}

func TestPopulate_ZeroCounts(t *testing.T) {
	config := DefaultMapConfig(10, 10)
	config.Obstacles, config.Hazards, config.ResourceNodes, config.LiveObstacles = 0, 0, 0, 0

	board, placed := NewGenerator(config, testutil.NewTestRNG(1), testutil.NopLogger()).GenerateMap()

	assert.Equal(t, Placement{}, placed)
	assert.Empty(t, board.Obstacles())
}
