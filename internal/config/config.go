package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DBPath   string `envconfig:"SLIDERY_DB_PATH" default:"./data/slidery.sqlite"`
	Port     int    `envconfig:"SLIDERY_PORT" default:"8080"`
	LogLevel string `envconfig:"SLIDERY_LOG_LEVEL" default:"info"`
	LogDir   string `envconfig:"SLIDERY_LOG_DIR" default:"./logs"`

	BoardWidth  int `envconfig:"SLIDERY_BOARD_WIDTH" default:"4"`
	BoardHeight int `envconfig:"SLIDERY_BOARD_HEIGHT" default:"4"`

	MaxSessions    int `envconfig:"SLIDERY_MAX_SESSIONS" default:"256"`
	SessionTTLMin  int `envconfig:"SLIDERY_SESSION_TTL_MIN" default:"120"`
	LeaderboardMax int `envconfig:"SLIDERY_LEADERBOARD_MAX" default:"100"`

	AdminUsername string `envconfig:"SLIDERY_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"SLIDERY_ADMIN_PASSWORD" required:"true"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars, so real environment
	// variables take precedence over .env values.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Warn("failed to load .env file", "error", err)
		} else {
			slog.Info("loaded .env file")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.BoardWidth < MinBoardSide || c.BoardWidth > MaxBoardSide {
		return fmt.Errorf("%w: board width must be %d-%d, got %d",
			ErrInvalidConfig, MinBoardSide, MaxBoardSide, c.BoardWidth)
	}
	if c.BoardHeight < MinBoardSide || c.BoardHeight > MaxBoardSide {
		return fmt.Errorf("%w: board height must be %d-%d, got %d",
			ErrInvalidConfig, MinBoardSide, MaxBoardSide, c.BoardHeight)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("%w: max sessions must be positive, got %d", ErrInvalidConfig, c.MaxSessions)
	}
	if c.SessionTTLMin < 1 {
		return fmt.Errorf("%w: session TTL must be positive, got %d", ErrInvalidConfig, c.SessionTTLMin)
	}
	// The envconfig required tag only checks presence, not content, so an
	// empty SLIDERY_ADMIN_PASSWORD would still reach here.
	if c.AdminPassword == "" {
		return fmt.Errorf("%w: admin password must not be empty", ErrInvalidConfig)
	}
	return nil
}
