// Command migrate applies the goose migrations under db/migrations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bookmirror/internal/logging"
	"bookmirror/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, version, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	if *command == "create" {
		if *name == "" {
			logger.Error("name is required for 'create' command")
			return 1
		}
		if err := goose.Create(nil, cfg.MigrationsDir, *name, "sql"); err != nil {
			logger.Error("failed to create migration", "error", err)
			return 1
		}
		logger.Info("migration created", "name", *name)
		return 0
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Error("set dialect", "error", err)
		return 1
	}

	switch *command {
	case "up":
		err = goose.UpContext(ctx, db, cfg.MigrationsDir)
	case "down":
		err = goose.DownContext(ctx, db, cfg.MigrationsDir)
	case "status":
		err = goose.StatusContext(ctx, db, cfg.MigrationsDir)
	case "version":
		err = goose.VersionContext(ctx, db, cfg.MigrationsDir)
	default:
		logger.Error("unknown command, use: up, down, status, version, create", "command", *command)
		return 1
	}
	if err != nil {
		logger.Error("migration failed", "command", *command, "error", err)
		return 1
	}
	logger.Info("migration command finished", "command", *command)
	return 0
}
