package main

import (
	"fmt"

	"bookmirror/internal/config"

	"github.com/caarlos0/env/v11"
)

type migrateConfig struct {
	DBDSN         string     `env:"DB_DSN,required,notEmpty"`
	MigrationsDir string     `env:"MIGRATIONS_DIR" envDefault:"db/migrations"`
	Log           config.Log `envPrefix:"LOG_"`
}

func loadConfig() (*migrateConfig, error) {
	// Do not override environment provided by the runtime (e.g. Docker).
	config.LoadEnvFiles()

	cfg, err := env.ParseAs[migrateConfig]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
