// Package config loads the lake's configuration from the environment, with
// optional overrides from a .env file in the working directory.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config holds the process configuration. All variables are read with the
// DATALAKE_ prefix, e.g. DATALAKE_ROOT.
type Config struct {
	Root         string `envconfig:"ROOT" default:"my-datalake"`
	Environment  string `envconfig:"ENVIRONMENT" default:"dev"`
	GitSnapshots bool   `envconfig:"GIT_SNAPSHOTS" default:"true"`
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env entries.
func Load() (Config, error) {
	// Missing .env is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("datalake", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
