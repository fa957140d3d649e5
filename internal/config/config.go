// Package config loads run parameters from an optional YAML file, then lets
// DESTINY_* environment variables override them.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/talgya/destiny/internal/engine"
	"github.com/talgya/destiny/internal/galaxy"
)

// ErrInvalid marks a configuration that cannot drive a run.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Seed       int64   `yaml:"seed" env:"DESTINY_SEED"` // 0 = random
	Years      int     `yaml:"years" env:"DESTINY_YEARS"`
	TargetSize int     `yaml:"target_size" env:"DESTINY_TARGET_SIZE"` // people per pop
	Multiplier float64 `yaml:"population_multiplier" env:"DESTINY_POPULATION_MULTIPLIER"`

	// Output
	LogLevel   string `yaml:"log_level" env:"DESTINY_LOG_LEVEL"`
	HistoryDB  string `yaml:"history_db" env:"DESTINY_HISTORY_DB"` // empty disables history
	ExportPath string `yaml:"export_path" env:"DESTINY_EXPORT_PATH"`

	// Observer API
	APIPort      int           `yaml:"api_port" env:"DESTINY_API_PORT"` // 0 disables the API
	AdminKey     string        `yaml:"-" env:"DESTINY_ADMIN_KEY"`
	YearInterval time.Duration `yaml:"year_interval" env:"DESTINY_YEAR_INTERVAL"` // minimum wall time per year

	Galaxy    galaxy.GenConfig   `yaml:"galaxy"`
	HomeWorld []engine.Headcount `yaml:"home_world"`
}

// Default returns the parameters of a standard run.
func Default() Config {
	return Config{
		Years:      300,
		TargetSize: 1_000_000,
		Multiplier: 1.25,
		LogLevel:   "info",
		HistoryDB:  "data/history.db",
		ExportPath: "data/starmap.json.zst",
		Galaxy:     galaxy.DefaultGenConfig(),
		HomeWorld:  engine.DefaultHeadcounts(),
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Galaxy.Seed == 0 {
		cfg.Galaxy.Seed = cfg.Seed
	}
	return cfg, cfg.Validate()
}

// Validate reports the first parameter out of range.
func (c Config) Validate() error {
	switch {
	case c.Years < 0:
		return fmt.Errorf("%w: years %d is negative", ErrInvalid, c.Years)
	case c.TargetSize <= 0:
		return fmt.Errorf("%w: target_size must be positive", ErrInvalid)
	case c.Multiplier <= 0:
		return fmt.Errorf("%w: population_multiplier must be positive", ErrInvalid)
	case c.Galaxy.Stars < 0:
		return fmt.Errorf("%w: galaxy.stars %d is negative", ErrInvalid, c.Galaxy.Stars)
	case c.Galaxy.Radius <= 0:
		return fmt.Errorf("%w: galaxy.radius must be positive", ErrInvalid)
	case c.APIPort < 0 || c.APIPort > 65535:
		return fmt.Errorf("%w: api_port %d out of range", ErrInvalid, c.APIPort)
	case c.YearInterval < 0:
		return fmt.Errorf("%w: year_interval is negative", ErrInvalid)
	case len(c.HomeWorld) == 0:
		return fmt.Errorf("%w: home_world has no cultures", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}
