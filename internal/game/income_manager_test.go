package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
	"github.com/mitchelldurbincs/NebulaDominion/internal/testutil"
)

func TestIncomeManager_ProcessTurnIncome(t *testing.T) {
	b := testutil.CreateTestBoard(10, 10)
	owned := []*core.ResourceNode{core.NewResourceNode(20), core.NewResourceNode(20)}
	testutil.PlaceEntity(t, b, owned[0], 3, 3)
	testutil.PlaceEntity(t, b, owned[1], 4, 4)
	enemy := core.NewResourceNode(20)
	testutil.PlaceEntity(t, b, enemy, 5, 5)
	testutil.PlaceEntity(t, b, core.NewResourceNode(20), 6, 6)
	owned[0].Owner = core.FactionPlayer
	owned[1].Owner = core.FactionPlayer
	enemy.Owner = core.FactionAI

	bus := events.NewEventBus(testutil.NopLogger())
	var started []*events.TurnStartedEvent
	bus.SubscribeFunc(events.TypeTurnStarted, func(e events.Event) {
		started = append(started, e.(*events.TurnStartedEvent))
	})
	im := NewIncomeManager(bus, "g", 10, testutil.NopLogger())
	gs := NewGameState(b, 100, testCosts)

	assert.Equal(t, 50, im.Income(b, core.FactionPlayer))
	assert.Equal(t, 30, im.Income(b, core.FactionAI))

	income := im.ProcessTurnIncome(gs)

	assert.Equal(t, 50, income)
	assert.Equal(t, 150, gs.Resources(core.FactionPlayer))
	assert.Equal(t, 100, gs.Resources(core.FactionAI), "only the active faction is paid")
	require.Len(t, started, 1)
	assert.Equal(t, core.FactionPlayer, started[0].Faction)
	assert.Equal(t, 50, started[0].Income)
	assert.Equal(t, 150, started[0].Resources)
}

func TestIncomeManager_NilBus(t *testing.T) {
	gs := NewGameState(testutil.CreateTestBoard(5, 5), 0, testCosts)
	im := NewIncomeManager(nil, "g", 10, testutil.NopLogger())

	assert.Equal(t, 10, im.ProcessTurnIncome(gs))
	assert.Equal(t, 10, gs.Resources(core.FactionPlayer))
}
