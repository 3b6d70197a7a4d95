package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Replay     ReplayConfig     `mapstructure:"replay"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Map     MapConfig     `mapstructure:"map"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Players PlayersConfig `mapstructure:"players"`
}

// MapConfig holds map generation settings
type MapConfig struct {
	Width               int `mapstructure:"width"`
	Height              int `mapstructure:"height"`
	MaxTerritories      int `mapstructure:"max_territories"`
	TargetTerritorySize int `mapstructure:"target_territory_size"`
	CullThreshold       int `mapstructure:"cull_threshold"`
}

// RulesConfig holds battle and reinforcement settings
type RulesConfig struct {
	AvgDicePerTerritory int `mapstructure:"avg_dice_per_territory"`
	MaxTerritoryDice    int `mapstructure:"max_territory_dice"`
	MaxStock            int `mapstructure:"max_stock"`
}

// PlayersConfig holds seat assignment settings
type PlayersConfig struct {
	Count      int      `mapstructure:"count"`
	HumanSlot  int      `mapstructure:"human_slot"`
	Strategies []string `mapstructure:"strategies"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SimulationConfig holds batch run settings
type SimulationConfig struct {
	Games      int  `mapstructure:"games"`
	MaxTurns   int  `mapstructure:"max_turns"`
	PrintBoard bool `mapstructure:"print_board"`
}

// ReplayConfig holds replay persistence settings
type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Map defaults match the classic 28x32 board
	v.SetDefault("game.map.width", 28)
	v.SetDefault("game.map.height", 32)
	v.SetDefault("game.map.max_territories", 32)
	v.SetDefault("game.map.target_territory_size", 8)
	v.SetDefault("game.map.cull_threshold", 5)

	// Rules defaults
	v.SetDefault("game.rules.avg_dice_per_territory", 3)
	v.SetDefault("game.rules.max_territory_dice", 8)
	v.SetDefault("game.rules.max_stock", 64)

	// Player defaults
	v.SetDefault("game.players.count", 7)
	v.SetDefault("game.players.human_slot", -1)
	v.SetDefault("game.players.strategies", []string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Simulation defaults
	v.SetDefault("simulation.games", 1)
	v.SetDefault("simulation.max_turns", 1000)
	v.SetDefault("simulation.print_board", true)

	// Replay defaults
	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.db_path", "replays.db")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/dicewars")
	}

	v.SetEnvPrefix("DICEWARS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file just means defaults; anything else, including a
		// malformed file at an explicit path, is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
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

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.Map.Width <= 0 || c.Game.Map.Height <= 0 {
		return fmt.Errorf("game.map dimensions must be positive")
	}
	if c.Game.Map.MaxTerritories < 2 {
		return fmt.Errorf("game.map.max_territories must be at least 2")
	}
	if c.Game.Map.TargetTerritorySize < 1 {
		return fmt.Errorf("game.map.target_territory_size must be at least 1")
	}
	if c.Game.Map.CullThreshold < 0 {
		return fmt.Errorf("game.map.cull_threshold must be non-negative")
	}

	if c.Game.Rules.AvgDicePerTerritory < 1 {
		return fmt.Errorf("game.rules.avg_dice_per_territory must be at least 1")
	}
	if c.Game.Rules.MaxTerritoryDice < 1 {
		return fmt.Errorf("game.rules.max_territory_dice must be at least 1")
	}
	if c.Game.Rules.MaxStock < 0 {
		return fmt.Errorf("game.rules.max_stock must be non-negative")
	}

	if c.Game.Players.Count < 2 || c.Game.Players.Count > 8 {
		return fmt.Errorf("game.players.count must be between 2 and 8")
	}
	if c.Game.Players.HumanSlot < -1 || c.Game.Players.HumanSlot >= c.Game.Players.Count {
		return fmt.Errorf("game.players.human_slot must be -1 or a valid seat index")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation.games must be at least 1")
	}
	if c.Simulation.MaxTurns < 1 {
		return fmt.Errorf("simulation.max_turns must be at least 1")
	}

	if c.Replay.Enabled && c.Replay.DBPath == "" {
		return fmt.Errorf("replay.db_path must be set when replay.enabled is true")
	}

	return nil
}
