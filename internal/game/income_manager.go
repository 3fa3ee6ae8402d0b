package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
)

// IncomeManager pays out resources at the start of each faction's turn
type IncomeManager struct {
	eventBus   events.Publisher
	gameID     string
	turnIncome int
	logger     zerolog.Logger
}

// NewIncomeManager creates a new income manager
func NewIncomeManager(eventBus events.Publisher, gameID string, turnIncome int, logger zerolog.Logger) *IncomeManager {
	return &IncomeManager{
		eventBus:   eventBus,
		gameID:     gameID,
		turnIncome: turnIncome,
		logger:     logger.With().Str("component", "IncomeManager").Logger(),
	}
}

// Income is the flat turn income plus the value of every node f owns
func (im *IncomeManager) Income(b *core.Board, f core.Faction) int {
	total := im.turnIncome
	for _, node := range b.ResourcesOwnedBy(f) {
		total += node.Value
	}
	return total
}

// ProcessTurnIncome credits the active faction and announces the new turn
func (im *IncomeManager) ProcessTurnIncome(gs *GameState) int {
	f := gs.Current
	nodes := len(gs.Board.ResourcesOwnedBy(f))
	income := im.Income(gs.Board, f)
	gs.Credit(f, income)

	im.logger.Debug().
		Int("turn", gs.Turn).
		Str("faction", f.Label()).
		Int("owned_nodes", nodes).
		Int("income", income).
		Int("resources", gs.Resources(f)).
		Msg("Turn income applied")

	if im.eventBus != nil {
		im.eventBus.Publish(events.NewTurnStartedEvent(im.gameID, gs.Turn, f, income, gs.Resources(f)))
	}
	return income
}
