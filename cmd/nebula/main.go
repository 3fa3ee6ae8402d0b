package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/NebulaDominion/internal/config"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/NebulaDominion/internal/monitoring"
	"github.com/mitchelldurbincs/NebulaDominion/internal/scenario"
	"github.com/mitchelldurbincs/NebulaDominion/internal/telemetry"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	seed := flag.Int64("seed", -1, "RNG seed (-1 to use config default, 0 for time based)")
	rounds := flag.Int("rounds", -1, "Maximum rounds to play (-1 to use config default)")
	scenarioRef := flag.String("scenario", "", "Built-in scenario name or YAML file (empty to use config default)")
	greedy := flag.Float64("greedy", 0.7, "Probability the baseline player heads straight for the AI base")
	aiDelay := flag.Duration("ai-delay", 0, "Pause between AI decisions")
	quiet := flag.Bool("quiet", false, "Only print the final board")
	colored := flag.Bool("color", true, "Color the board output")
	logEvents := flag.Bool("log-events", false, "Log every game event")
	monitorInterval := flag.Duration("monitor-interval", 0, "Log match metrics at this interval (0 disables)")
	jsonOut := flag.Bool("json", false, "Print the final snapshot as JSON instead of the board")
	flag.Parse()

	// Not fatal: variables may be set directly
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if *seed == -1 {
		*seed = cfg.Server.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *rounds == -1 {
		*rounds = cfg.Server.MaxRounds
	}
	if *scenarioRef == "" {
		*scenarioRef = cfg.Server.Scenario
	}

	setupLogging(*logLevel, cfg.Server.LogFormat)

	if path := config.ConfigFilePath(); path != "" {
		config.WatchConfig(func(next *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config reload")
				return
			}
			setupLogging(next.Server.LogLevel, next.Server.LogFormat)
			log.Info().Str("path", path).Msg("Config reloaded; game rules apply to the next match")
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Server.Telemetry.ServiceName)
		if err != nil {
			log.Warn().Err(err).Msg("Telemetry setup failed, running without tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Error().Err(err).Msg("Error shutting down telemetry")
				}
			}()
		}
	}

	sc, err := scenario.Resolve(*scenarioRef)
	if err != nil {
		log.Fatal().Err(err).Str("scenario", *scenarioRef).Strs("builtin", scenario.Builtin()).Msg("Failed to load scenario")
	}

	gameCfg := game.DefaultGameConfig()
	gameCfg.Scenario = sc
	gameCfg.Rng = rand.New(rand.NewSource(*seed))
	gameCfg.Logger = log.Logger

	engine, err := game.NewGameEngine(ctx, gameCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game engine")
	}
	if *logEvents {
		engine.EventBus().Subscribe(subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.InfoLevel))
	}

	monitor := monitoring.NewMatchMonitor("match-monitor", *monitorInterval, log.Logger)
	engine.EventBus().Subscribe(monitor)
	monitor.Start()
	defer monitor.Stop()

	log.Info().
		Str("game_id", engine.GameID()).
		Str("scenario", sc.Name).
		Int64("seed", *seed).
		Int("max_rounds", *rounds).
		Msg("Starting match")

	policy := rand.New(rand.NewSource(*seed + 1))
	if err := play(ctx, engine, policy, *rounds, *greedy, *aiDelay, *quiet, *colored); err != nil {
		log.Warn().Err(err).Msg("Match interrupted")
	}

	if *jsonOut {
		out, err := json.MarshalIndent(engine.Snapshot(), "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode snapshot")
		}
		fmt.Println(string(out))
	} else {
		fmt.Print(engine.Render(*colored))
	}
	metrics := monitor.GetMetrics()
	winner := engine.Winner()
	if winner == "" {
		winner = "none"
	}
	log.Info().
		Str("game_id", engine.GameID()).
		Int("turn", engine.Turn()).
		Str("winner", winner).
		Int("ai_learned_states", engine.LearnedStates()).
		Int("events", metrics.TotalEvents).
		Interface("destroyed", metrics.Destroyed).
		Interface("captured", metrics.Captured).
		Float64("ai_mean_reward", metrics.AIMeanReward).
		Msg("Match finished")
}

// play alternates the baseline player and the learning AI until the game
// ends, the round limit is hit or ctx is cancelled
func play(ctx context.Context, engine *game.Engine, policy *rand.Rand, rounds int, greedy float64, aiDelay time.Duration, quiet, colored bool) error {
	for round := 1; round <= rounds && !engine.IsGameOver(); round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		game.PlayRandomPlayerTurn(engine, policy, greedy)

		if aiDelay <= 0 {
			if err := engine.RunAITurn(ctx); err != nil {
				return err
			}
		} else {
			for {
				if _, ok := engine.StepAI(ctx); !ok {
					break
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(aiDelay):
				}
			}
		}

		if !quiet {
			fmt.Printf("Round %d:\n%s\n", round, engine.Render(colored))
		}
	}
	return nil
}

func setupLogging(level, format string) {
	// Parse log level
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" || format == "json" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
