// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the environment configuration for the supernova binary.
type Config struct {
	// GeminiAPIKey authenticates against the Gemini API.
	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`

	// DataDir holds the database and log file. Defaults to ~/.supernova.
	DataDir string `env:"SUPERNOVA_DATA_DIR"`

	// Model is the initially selected model.
	Model string `env:"SUPERNOVA_MODEL" envDefault:"gemini-2.5-pro"`

	// PaymentSuccess is the payment-completed redirect hook: when set,
	// premium is granted before any session logic runs.
	PaymentSuccess bool `env:"SUPERNOVA_PAYMENT_SUCCESS"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ResolveDataDir returns DataDir, defaulting to ~/.supernova.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".supernova"), nil
}
