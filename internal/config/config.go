package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings for the API process.
type Config struct {
	Port        string `env:"APP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// SessionSecret signs store-owner session tokens.
	SessionSecret string `env:"SESSION_SECRET" envDefault:"dev-session-secret"`

	DBMaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns int `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
