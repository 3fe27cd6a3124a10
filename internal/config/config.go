// Package config loads chepilot settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds process-wide settings. Command-line flags take precedence
// over these values.
type Config struct {
	Store    string `env:"CHEPILOT_STORE" envDefault:"memory"`
	SeedFile string `env:"CHEPILOT_SEED_FILE"`

	LogLevel  string `env:"CHEPILOT_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"CHEPILOT_LOG_FORMAT" envDefault:"console"`
}

// Load reads dotenv files, when present, and then parses the environment.
// Variables already set in the environment win over dotenv values.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
