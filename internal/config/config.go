// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/soulsense/internal/llm"
	"github.com/abhisek/soulsense/internal/store"
)

// File names inside the data dir.
const (
	DBFile  = "soulsense.db"
	LogFile = "soulsense.log"
)

// Config is the process configuration.
type Config struct {
	DataDir  string `env:"SOULSENSE_DATA_DIR"`
	DBPath   string `env:"SOULSENSE_DB"`
	LogLevel string `env:"SOULSENSE_LOG_LEVEL" envDefault:"info"`

	LLM llm.Config
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Empty paths fall back to the XDG data dir.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := store.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, DBFile)
	}
	return &cfg, nil
}

// SetDBPath overrides the database location, e.g. from a --db flag.
func (c *Config) SetDBPath(path string) {
	if path != "" {
		c.DBPath = path
	}
}

// LogPath is where the log file is written.
func (c *Config) LogPath() string { return filepath.Join(c.DataDir, LogFile) }

// ModelPath is the saved risk model, kept next to the database.
func (c *Config) ModelPath() string {
	return filepath.Join(filepath.Dir(c.DBPath), "risk_model.json")
}
