package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend selectors.
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// AI provider selectors. ProviderMock answers free-chat questions with
// canned text and is the default for local development.
const (
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Language is the BCP 47 tag engine messages resolve to.
	Language string `env:"GAME_LANGUAGE" envDefault:"en"`

	// DataDir holds the authored game content as one JSON file per game.
	DataDir string `env:"DATA_DIR" envDefault:"./data/games"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"./sessions.db"`

	AIProvider   string `env:"AI_PROVIDER" envDefault:"mock"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	// AutosaveDebounce is how long a session must stay quiet before a
	// dirty snapshot is flushed to storage.
	AutosaveDebounce time.Duration `env:"AUTOSAVE_DEBOUNCE" envDefault:"2s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	switch c.AIProvider {
	case ProviderMock:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown AI provider %q", c.AIProvider)
	}
	return nil
}

// SlogLevel maps the configured log level string onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
