// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds the bgserver settings. Command-line flags override them.
type Server struct {
	Host         string        `env:"BG_HOST"          envDefault:"localhost"`
	Port         int           `env:"BG_PORT"          envDefault:"8080"`
	ReadTimeout  time.Duration `env:"BG_READ_TIMEOUT"  envDefault:"30s"`
	WriteTimeout time.Duration `env:"BG_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"BG_IDLE_TIMEOUT"  envDefault:"60s"`

	MaxFastWorkers int `env:"BG_MAX_FAST_WORKERS" envDefault:"100"`
	MaxSlowWorkers int `env:"BG_MAX_SLOW_WORKERS" envDefault:"4"`

	// MaxGames caps the number of live games; GameTTL drops games idle
	// for longer than it (0 keeps them forever).
	MaxGames int           `env:"BG_MAX_GAMES" envDefault:"1000"`
	GameTTL  time.Duration `env:"BG_GAME_TTL"  envDefault:"2h"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer returns the server settings from the environment.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Server{}, fmt.Errorf("BG_PORT %d out of range", cfg.Port)
	}
	return cfg, nil
}
