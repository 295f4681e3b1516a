package engine

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds engine runtime settings
type Config struct {
	// TickInterval is the fixed update rate, 60Hz by default
	TickInterval time.Duration `env:"DIRECTOR_TICK_INTERVAL" envDefault:"16ms"`
}

// DefaultConfig returns the standard 60Hz configuration
func DefaultConfig() Config {
	return Config{TickInterval: 16 * time.Millisecond}
}

// ConfigFromEnv reads configuration from the environment
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 16 * time.Millisecond
	}
	return cfg, nil
}
