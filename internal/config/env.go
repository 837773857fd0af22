package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Env holds process settings taken from the environment.
type Env struct {
	// Config file override (default: config.json beside the executable)
	ConfigPath string `env:"YEARSAGO_CONFIG"`

	// Optional sqlite journal of queued reblogs; disabled when empty
	HistoryPath string `env:"YEARSAGO_HISTORY"`

	// Tumblr API
	APIBaseURL  string        `env:"TUMBLR_API_BASE" envDefault:"https://api.tumblr.com/v2"`
	CallbackURL string        `env:"TUMBLR_CALLBACK_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadEnv reads settings from environment variables.
// It automatically loads .env file if present.
func LoadEnv() (*Env, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if e.ConfigPath == "" {
		e.ConfigPath = DefaultPath()
	}

	return &e, nil
}
