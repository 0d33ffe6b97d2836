package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"request-tracker/internal/logger"
	"request-tracker/internal/repository/postgres"
	"request-tracker/internal/server"
)

type Config struct {
	HTTP     server.Config
	Postgres postgres.Config
	Logger   logger.Config
}

// New reads configuration from the environment, optionally pre-loading
// the file at path first.
func New(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment config: %w", err)
	}

	return &cfg, nil
}
