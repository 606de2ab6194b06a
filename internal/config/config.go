// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting. Command-line flags are
// applied on top by the caller.
type Config struct {
	LogLevel         string  `env:"LEVAIN_LOG_LEVEL"         envDefault:"normal"`
	LogFile          string  `env:"LEVAIN_LOG_FILE"          envDefault:".levain/levain.log"`
	DBPath           string  `env:"LEVAIN_DB_PATH"           envDefault:".levain/levain.db"`
	PresetFile       string  `env:"LEVAIN_PRESET_FILE"`
	HydrationCeiling float64 `env:"LEVAIN_HYDRATION_CEILING" envDefault:"120"`
	HydrationLimit   float64 `env:"LEVAIN_HYDRATION_LIMIT"   envDefault:"200"`
	BuildRatio       float64 `env:"LEVAIN_BUILD_RATIO"       envDefault:"5"`
	ScaldingAbove    float64 `env:"LEVAIN_SCALDING_ABOVE"    envDefault:"45"`
	MetricsAddr      string  `env:"LEVAIN_METRICS_ADDR"`
}

// Load reads an optional .env file from the working directory and parses
// the environment into a Config. Variables already set in the process
// environment win over .env entries.
func Load(files ...string) (Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the calculator cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.HydrationCeiling <= 0 {
		errs = append(errs, fmt.Errorf("LEVAIN_HYDRATION_CEILING must be positive, got %g", c.HydrationCeiling))
	}
	if c.HydrationLimit <= 0 {
		errs = append(errs, fmt.Errorf("LEVAIN_HYDRATION_LIMIT must be positive, got %g", c.HydrationLimit))
	}
	if c.HydrationCeiling > c.HydrationLimit {
		errs = append(errs, fmt.Errorf("LEVAIN_HYDRATION_CEILING (%g) exceeds LEVAIN_HYDRATION_LIMIT (%g)", c.HydrationCeiling, c.HydrationLimit))
	}
	if c.BuildRatio < 0 {
		errs = append(errs, fmt.Errorf("LEVAIN_BUILD_RATIO must not be negative, got %g", c.BuildRatio))
	}
	if c.ScaldingAbove <= 0 {
		errs = append(errs, fmt.Errorf("LEVAIN_SCALDING_ABOVE must be positive, got %g", c.ScaldingAbove))
	}
	return errors.Join(errs...)
}
