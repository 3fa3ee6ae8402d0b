package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Learning LearningConfig `mapstructure:"learning"`
	Rewards  RewardsConfig  `mapstructure:"rewards"`
	Server   ServerConfig   `mapstructure:"server"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Board     BoardConfig     `mapstructure:"board"`
	Economy   EconomyConfig   `mapstructure:"economy"`
	Map       MapConfig       `mapstructure:"map"`
	Abilities AbilitiesConfig `mapstructure:"abilities"`
	AI        AIConfig        `mapstructure:"ai"`
}

type BoardConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// EconomyConfig holds income and unit purchase settings
type EconomyConfig struct {
	StartingResources int            `mapstructure:"starting_resources"`
	TurnIncome        int            `mapstructure:"turn_income"`
	ResourceNodeValue int            `mapstructure:"resource_node_value"`
	UnitCosts         UnitCostConfig `mapstructure:"unit_costs"`
}

type UnitCostConfig struct {
	Corvette    int `mapstructure:"corvette"`
	Mech        int `mapstructure:"mech"`
	Dreadnought int `mapstructure:"dreadnought"`
	Drone       int `mapstructure:"drone"`
}

// MapConfig holds terrain generation settings
type MapConfig struct {
	Obstacles     int `mapstructure:"obstacles"`
	Hazards       int `mapstructure:"hazards"`
	ResourceNodes int `mapstructure:"resource_nodes"`
	LiveObstacles int `mapstructure:"live_obstacles"`
	HazardDamage  int `mapstructure:"hazard_damage"`
	BaseClearance int `mapstructure:"base_clearance"`
}

type AbilitiesConfig struct {
	RepairAmount int `mapstructure:"repair_amount"`
	ScoutRange   int `mapstructure:"scout_range"`
}

type AIConfig struct {
	MovesPerTurn int `mapstructure:"moves_per_turn"`
}

// LearningConfig holds the Q-learning hyperparameters of both controllers
type LearningConfig struct {
	Obstacle ObstacleLearningConfig `mapstructure:"obstacle"`
	Faction  FactionLearningConfig  `mapstructure:"faction"`
}

type ObstacleLearningConfig struct {
	Alpha   float64 `mapstructure:"alpha"`
	Gamma   float64 `mapstructure:"gamma"`
	Epsilon float64 `mapstructure:"epsilon"`
}

type FactionLearningConfig struct {
	Alpha          float64 `mapstructure:"alpha"`
	Gamma          float64 `mapstructure:"gamma"`
	Epsilon        float64 `mapstructure:"epsilon"`
	StateClamp     int     `mapstructure:"state_clamp"`
	ReplayWindow   int     `mapstructure:"replay_window"`
	MemoryCapacity int     `mapstructure:"memory_capacity"`
	TieNoise       float64 `mapstructure:"tie_noise"`
}

// RewardsConfig holds reward shaping for both controllers
type RewardsConfig struct {
	Obstacle ObstacleRewardsConfig `mapstructure:"obstacle"`
	Faction  FactionRewardsConfig  `mapstructure:"faction"`
}

type ObstacleRewardsConfig struct {
	Block float64 `mapstructure:"block"`
	Crowd float64 `mapstructure:"crowd"`
	Idle  float64 `mapstructure:"idle"`
}

type FactionRewardsConfig struct {
	Attack         float64 `mapstructure:"attack"`
	Closer         float64 `mapstructure:"closer"`
	Farther        float64 `mapstructure:"farther"`
	Unchanged      float64 `mapstructure:"unchanged"`
	Resource       float64 `mapstructure:"resource"`
	Standoff       float64 `mapstructure:"standoff"`
	StandoffMin    int     `mapstructure:"standoff_min"`
	StandoffMax    int     `mapstructure:"standoff_max"`
	Overexposed    float64 `mapstructure:"overexposed"`
	OverexposedMax int     `mapstructure:"overexposed_max"`
}

// ServerConfig holds settings of the headless runner
type ServerConfig struct {
	LogLevel  string          `mapstructure:"log_level"`
	LogFormat string          `mapstructure:"log_format"`
	Seed      int64           `mapstructure:"seed"`
	MaxRounds int             `mapstructure:"max_rounds"`
	Scenario  string          `mapstructure:"scenario"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.board.width", 10)
	v.SetDefault("game.board.height", 10)

	// Economy defaults
	v.SetDefault("game.economy.starting_resources", 100)
	v.SetDefault("game.economy.turn_income", 10)
	v.SetDefault("game.economy.resource_node_value", 20)
	v.SetDefault("game.economy.unit_costs.corvette", 30)
	v.SetDefault("game.economy.unit_costs.mech", 50)
	v.SetDefault("game.economy.unit_costs.dreadnought", 100)
	v.SetDefault("game.economy.unit_costs.drone", 20)

	// Terrain defaults
	v.SetDefault("game.map.obstacles", 5)
	v.SetDefault("game.map.hazards", 3)
	v.SetDefault("game.map.resource_nodes", 4)
	v.SetDefault("game.map.live_obstacles", 2)
	v.SetDefault("game.map.hazard_damage", 50)
	v.SetDefault("game.map.base_clearance", 2)

	v.SetDefault("game.abilities.repair_amount", 20)
	v.SetDefault("game.abilities.scout_range", 4)
	v.SetDefault("game.ai.moves_per_turn", 2)

	// Learning defaults
	v.SetDefault("learning.obstacle.alpha", 0.5)
	v.SetDefault("learning.obstacle.gamma", 0.9)
	v.SetDefault("learning.obstacle.epsilon", 0.3)
	v.SetDefault("learning.faction.alpha", 0.8)
	v.SetDefault("learning.faction.gamma", 0.95)
	v.SetDefault("learning.faction.epsilon", 0.2)
	v.SetDefault("learning.faction.state_clamp", 5)
	v.SetDefault("learning.faction.replay_window", 10)
	v.SetDefault("learning.faction.memory_capacity", 1000)
	v.SetDefault("learning.faction.tie_noise", 0.1)

	// Reward defaults
	v.SetDefault("rewards.obstacle.block", 2.0)
	v.SetDefault("rewards.obstacle.crowd", -2.0)
	v.SetDefault("rewards.obstacle.idle", -1.0)
	v.SetDefault("rewards.faction.attack", 15.0)
	v.SetDefault("rewards.faction.closer", 4.0)
	v.SetDefault("rewards.faction.farther", -3.0)
	v.SetDefault("rewards.faction.unchanged", -1.0)
	v.SetDefault("rewards.faction.resource", 8.0)
	v.SetDefault("rewards.faction.standoff", 3.0)
	v.SetDefault("rewards.faction.standoff_min", 2)
	v.SetDefault("rewards.faction.standoff_max", 4)
	v.SetDefault("rewards.faction.overexposed", -2.0)
	v.SetDefault("rewards.faction.overexposed_max", 1)

	// Server defaults
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")
	v.SetDefault("server.seed", 0)
	v.SetDefault("server.max_rounds", 100)
	v.SetDefault("server.scenario", "")
	v.SetDefault("server.telemetry.enabled", false)
	v.SetDefault("server.telemetry.service_name", "nebula-dominion")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/nebula-dominion")
	}

	v.SetEnvPrefix("NEBULA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the search
		// path only ConfigFileNotFoundError is tolerated.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	v.Set(key, value)
	return v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. Reloaded values that
// fail validation are dropped and the previous config stays in effect.
func WatchConfig(onChange func(*Config, error)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			cfg = next
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.Board.Width < 2 || c.Game.Board.Height < 2 {
		return fmt.Errorf("game.board dimensions must be at least 2x2")
	}

	e := c.Game.Economy
	if e.StartingResources < 0 || e.TurnIncome < 0 || e.ResourceNodeValue < 0 {
		return fmt.Errorf("game.economy values must be non-negative")
	}
	for name, cost := range map[string]int{
		"corvette":    e.UnitCosts.Corvette,
		"mech":        e.UnitCosts.Mech,
		"dreadnought": e.UnitCosts.Dreadnought,
		"drone":       e.UnitCosts.Drone,
	} {
		if cost <= 0 {
			return fmt.Errorf("game.economy.unit_costs.%s must be positive", name)
		}
	}

	m := c.Game.Map
	if m.Obstacles < 0 || m.Hazards < 0 || m.ResourceNodes < 0 || m.LiveObstacles < 0 {
		return fmt.Errorf("game.map counts must be non-negative")
	}
	if m.HazardDamage <= 0 {
		return fmt.Errorf("game.map.hazard_damage must be positive")
	}
	if m.BaseClearance < 0 {
		return fmt.Errorf("game.map.base_clearance must be non-negative")
	}

	if c.Game.Abilities.RepairAmount < 0 || c.Game.Abilities.ScoutRange < 0 {
		return fmt.Errorf("game.abilities values must be non-negative")
	}
	if c.Game.AI.MovesPerTurn < 1 {
		return fmt.Errorf("game.ai.moves_per_turn must be at least 1")
	}

	// Validate learning rates
	validateUnit := func(val float64, name string) error {
		if val < 0 || val > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
		return nil
	}
	checks := []struct {
		val  float64
		name string
	}{
		{c.Learning.Obstacle.Alpha, "learning.obstacle.alpha"},
		{c.Learning.Obstacle.Gamma, "learning.obstacle.gamma"},
		{c.Learning.Obstacle.Epsilon, "learning.obstacle.epsilon"},
		{c.Learning.Faction.Alpha, "learning.faction.alpha"},
		{c.Learning.Faction.Gamma, "learning.faction.gamma"},
		{c.Learning.Faction.Epsilon, "learning.faction.epsilon"},
	}
	for _, chk := range checks {
		if err := validateUnit(chk.val, chk.name); err != nil {
			return err
		}
	}

	f := c.Learning.Faction
	if f.StateClamp < 1 {
		return fmt.Errorf("learning.faction.state_clamp must be at least 1")
	}
	if f.ReplayWindow < 0 {
		return fmt.Errorf("learning.faction.replay_window must be non-negative")
	}
	if f.MemoryCapacity < 1 {
		return fmt.Errorf("learning.faction.memory_capacity must be positive")
	}
	if f.TieNoise < 0 {
		return fmt.Errorf("learning.faction.tie_noise must be non-negative")
	}

	r := c.Rewards.Faction
	if r.StandoffMin > r.StandoffMax {
		return fmt.Errorf("rewards.faction.standoff_min must not exceed standoff_max")
	}

	if c.Server.MaxRounds < 0 {
		return fmt.Errorf("server.max_rounds must be non-negative")
	}

	return nil
}
