// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime settings.
type Config struct {
	// DBPath is the history database; empty means the XDG default.
	DBPath string `env:"DETECTIVE_DB"`

	// LogPath is the log file; empty means the XDG state default.
	LogPath string `env:"DETECTIVE_LOG"`

	LogLevel slog.Level `env:"DETECTIVE_LOG_LEVEL" envDefault:"info"`

	// Seed fixes the random case picker; 0 seeds from the clock.
	Seed uint64 `env:"DETECTIVE_SEED"`

	// AutoAdvance is the pause before the next scenario step is shown.
	AutoAdvance time.Duration `env:"DETECTIVE_AUTO_ADVANCE" envDefault:"1500ms"`

	// NoHistory disables the history database.
	NoHistory bool `env:"DETECTIVE_NO_HISTORY" envDefault:"false"`
}

// Load reads the given .env files (missing files are ignored; none means
// ".env" in the working directory), then parses the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AutoAdvance < 0 {
		return Config{}, fmt.Errorf("DETECTIVE_AUTO_ADVANCE must be >= 0, got %s", cfg.AutoAdvance)
	}
	return cfg, nil
}

// ResolveLogPath returns LogPath or, when empty,
// $XDG_STATE_HOME/detective/detective.log (~/.local/state as fallback).
func (c Config) ResolveLogPath() (string, error) {
	if c.LogPath != "" {
		return c.LogPath, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "detective", "detective.log"), nil
}
