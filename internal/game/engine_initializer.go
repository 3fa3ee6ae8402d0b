package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/mapgen"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/processor"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/rules"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/states"
	"github.com/mitchelldurbincs/NebulaDominion/internal/learning"
	"github.com/mitchelldurbincs/NebulaDominion/internal/scenario"
	"github.com/mitchelldurbincs/NebulaDominion/internal/telemetry"
)

// GameConfig holds everything needed to build an Engine
type GameConfig struct {
	Width  int
	Height int

	// Scenario places the starting units. Nil loads the embedded default.
	Scenario *scenario.Scenario

	// Terrain drives generation when the scenario has no fixed layout.
	// Width, Height and the bases are filled in by the initializer.
	Terrain mapgen.MapConfig

	StartingResources int
	TurnIncome        int
	UnitCosts         map[core.UnitClass]int
	AbilityRules      core.AbilityRules
	MovesPerTurn      int

	Obstacles learning.ObstacleConfig
	Faction   learning.FactionConfig

	Rng    *rand.Rand
	Logger zerolog.Logger
	GameID string

	// EventBus is optional; a fresh bus is created when nil
	EventBus *events.EventBus
	// Tracer is optional; the global "engine" tracer is used when nil
	Tracer trace.Tracer
}

// DefaultGameConfig reads every tunable from the loaded configuration
func DefaultGameConfig() GameConfig {
	w, h := BoardWidth(), BoardHeight()
	return GameConfig{
		Width:             w,
		Height:            h,
		Terrain:           TerrainConfig(w, h),
		StartingResources: StartingResources(),
		TurnIncome:        TurnIncome(),
		UnitCosts:         UnitCosts(),
		AbilityRules:      AbilityRules(),
		MovesPerTurn:      MovesPerTurn(),
		Obstacles:         ObstacleLearning(),
		Faction:           FactionLearning(),
		Logger:            zerolog.Nop(),
	}
}

// EngineInitializer handles the complex initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// NewGameEngine builds a ready engine with the player to move
func NewGameEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	if err := ei.setupDefaults(); err != nil {
		return nil, err
	}

	board, units, err := ei.generateMap()
	if err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	gs := NewGameState(board, ei.config.StartingResources, ei.config.UnitCosts)
	engine := ei.createEngine(gs)

	if err := ei.initializeStateMachine(engine); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(
		engine.gameID,
		board.W,
		board.H,
		len(units),
		engine.scenarioName,
	))

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Str("scenario", engine.scenarioName).
		Int("width", board.W).
		Int("height", board.H).
		Int("units", len(units)).
		Int("live_obstacles", len(board.LiveObstacles())).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in missing collaborators and settles the board size
func (ei *EngineInitializer) setupDefaults() error {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	if ei.config.Scenario == nil {
		sc, err := scenario.Default()
		if err != nil {
			return fmt.Errorf("loading default scenario: %w", err)
		}
		ei.config.Scenario = sc
	}
	if ei.config.UnitCosts == nil {
		ei.config.UnitCosts = UnitCosts()
	}
	if ei.config.MovesPerTurn < 1 {
		ei.config.MovesPerTurn = 1
	}
	if ei.config.Tracer == nil {
		ei.config.Tracer = telemetry.Tracer("engine")
	}

	ei.config.Width, ei.config.Height = ei.config.Scenario.Size(ei.config.Width, ei.config.Height)
	playerBase, aiBase := ei.config.Scenario.Bases(ei.config.Width, ei.config.Height)
	ei.config.Terrain.Width = ei.config.Width
	ei.config.Terrain.Height = ei.config.Height
	ei.config.Terrain.PlayerBase = playerBase
	ei.config.Terrain.AIBase = aiBase
	return nil
}

// generateMap places the scenario units, then either its fixed terrain or
// generated terrain around them
func (ei *EngineInitializer) generateMap() (*core.Board, []*core.Unit, error) {
	sc := ei.config.Scenario
	board := core.NewBoard(ei.config.Width, ei.config.Height)
	units, err := sc.Apply(board, ei.config.Terrain.HazardDamage, ei.config.Terrain.ResourceValue)
	if err != nil {
		return nil, nil, err
	}
	if sc.HasTerrain() {
		ei.logger.Debug().Str("scenario", sc.Name).Msg("Using fixed scenario terrain")
		return board, units, nil
	}
	generator := mapgen.NewGenerator(ei.config.Terrain, ei.config.Rng, ei.logger)
	generator.Populate(board)
	return board, units, nil
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(gs *GameState) *Engine {
	cfg := ei.config
	eventBus := cfg.EventBus
	if eventBus == nil {
		eventBus = events.NewEventBus(ei.logger)
	}

	gameContext := states.NewGameContext(cfg.GameID, ei.logger)
	gameContext.Turn = gs.Turn
	gameContext.PlayerUnits = len(gs.Board.UnitsOf(core.FactionPlayer))
	gameContext.AIUnits = len(gs.Board.UnitsOf(core.FactionAI))

	engine := &Engine{
		gs:              gs,
		logger:          ei.logger,
		gameID:          cfg.GameID,
		scenarioName:    cfg.Scenario.Name,
		actionProcessor: processor.NewActionProcessor(cfg.AbilityRules, ei.logger),
		winCondition:    rules.NewWinConditionChecker(ei.logger, cfg.Terrain.PlayerBase, cfg.Terrain.AIBase),
		legalMoves:      rules.NewLegalMoveCalculator(),
		eventBus:        eventBus,
		stateMachine:    states.NewStateMachine(gameContext, eventBus),
		obstacles:       learning.NewObstacleController(cfg.Obstacles, cfg.Rng, ei.logger),
		ai:              learning.NewQLearningAI(cfg.Faction, cfg.Rng, ei.logger),
		tracer:          cfg.Tracer,
		abilityRules:    cfg.AbilityRules,
		movesPerTurn:    cfg.MovesPerTurn,
		baseClearance:   cfg.Terrain.BaseClearance,
	}

	engine.incomeManager = NewIncomeManager(eventBus, cfg.GameID, cfg.TurnIncome, ei.logger)
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

// initializeStateMachine moves the machine out of setup into the first
// player turn
func (ei *EngineInitializer) initializeStateMachine(engine *Engine) error {
	if err := engine.stateMachine.TransitionTo(states.PhasePlayerTurn, "Game setup complete"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to PlayerTurn state")
		return err
	}
	engine.turnStart = time.Now()
	return nil
}
