// Package config reads the game's settings from the environment and an
// optional .env file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"trek/internal/log"
)

// Environment variable names
const (
	EnvSavePath   = "TREK_SAVE_PATH"
	EnvLogFile    = "TREK_LOG_FILE"
	EnvLogLevel   = "TREK_LOG_LEVEL"
	EnvSeed       = "TREK_SEED"
	EnvPlayerName = "TREK_PLAYER_NAME"
	EnvPlayerShip = "TREK_PLAYER_SHIP"
	EnvShipData   = "TREK_SHIP_DATA"
	EnvNameData   = "TREK_NAME_DATA"
	EnvLanguage   = "TREK_LANGUAGE"
)

type Config struct {
	Game    GameConfig
	Storage StorageConfig
	Logging LoggingConfig
}

type GameConfig struct {
	PlayerName string
	PlayerShip string
	// Seed of the random source; zero picks one from the clock
	Seed int64
	// Optional YAML files replacing the built in ship and name data
	ShipData string
	NameData string
	Language string
}

type StorageConfig struct {
	SavePath string
}

type LoggingConfig struct {
	File  string
	Level string
}

// Load reads the given .env files, or .env in the working directory when
// none are named, then builds and validates the configuration. A missing
// default .env is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		log.Debug("no .env file found, using environment variables")
	}

	config, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func load() (*Config, error) {
	seed, err := strconv.ParseInt(GetEnv(EnvSeed, "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvSeed, err)
	}

	return &Config{
		Game: GameConfig{
			PlayerName: GetEnv(EnvPlayerName, "Commander"),
			PlayerShip: GetEnv(EnvPlayerShip, "Venture Starship"),
			Seed:       seed,
			ShipData:   GetEnv(EnvShipData, ""),
			NameData:   GetEnv(EnvNameData, ""),
			Language:   GetEnv(EnvLanguage, "en"),
		},
		Storage: StorageConfig{
			SavePath: GetEnv(EnvSavePath, "trek.db"),
		},
		Logging: LoggingConfig{
			File:  GetEnv(EnvLogFile, "trek_debug.log"),
			Level: GetEnv(EnvLogLevel, "info"),
		},
	}, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Game.PlayerName) == "" {
		return fmt.Errorf("%s must not be blank", EnvPlayerName)
	}

	if strings.TrimSpace(c.Game.PlayerShip) == "" {
		return fmt.Errorf("%s must not be blank", EnvPlayerShip)
	}

	if c.Game.Seed < 0 {
		return fmt.Errorf("%s must not be negative", EnvSeed)
	}

	if c.Storage.SavePath == "" {
		return fmt.Errorf("%s is required", EnvSavePath)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%s must be one of debug, info, warn, error", EnvLogLevel)
	}

	for name, path := range map[string]string{EnvShipData: c.Game.ShipData, EnvNameData: c.Game.NameData} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// GetEnv returns the value of key, or fallback when it is unset or empty
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
