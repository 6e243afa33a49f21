package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned when a configuration value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for the game
type Config struct {
	Width            int           `json:"width" env:"GOL_WIDTH"`
	Height           int           `json:"height" env:"GOL_HEIGHT"`
	FrameRate        time.Duration `json:"frame_rate" env:"GOL_FRAME_RATE"`
	MaxGenerations   int           `json:"max_generations" env:"GOL_MAX_GENERATIONS"`
	RandomDensity    float64       `json:"random_density" env:"GOL_RANDOM_DENSITY"`
	Seed             int64         `json:"seed" env:"GOL_SEED"`
	Workers          int           `json:"workers" env:"GOL_WORKERS"`
	StrictInput      bool          `json:"strict_input" env:"GOL_STRICT_INPUT"`
	StopOnStagnation bool          `json:"stop_on_stagnation" env:"GOL_STOP_ON_STAGNATION"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:            60,
		Height:           30,
		FrameRate:        70 * time.Millisecond,
		MaxGenerations:   0, // Run until interrupted
		RandomDensity:    0.15,
		Seed:             42,
		Workers:          1,
		StrictInput:      false,
		StopOnStagnation: false,
	}
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ApplyEnv overrides fields with any GOL_* environment variables that are set
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.Wrap(err, "[ApplyEnv] failed to parse environment")
	}
	return nil
}

// Validate reports the first out-of-range value
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid size must be positive, got %dx%d", c.Width, c.Height)
	case c.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame rate must be positive, got %v", c.FrameRate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random density must be within [0,1], got %v", c.RandomDensity)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] max generations must not be negative, got %d", c.MaxGenerations)
	}
	return nil
}
