// Package postgres opens the pgx connection pool shared by the commands.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxConns       = 8
	connectTimeout = 5 * time.Second
	pingTimeout    = 2 * time.Second
)

// NewPool creates a pool and pings it once. The DSN is redacted in errors.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN %s: %w", RedactDSN(dsn), err)
	}
	poolConfig.MaxConns = maxConns
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: cannot create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: cannot ping database (%s): %w", RedactDSN(dsn), err)
	}

	logger.Info("database connection OK", slog.Int("max_conns", int(poolConfig.MaxConns)))
	return pool, nil
}

// RedactDSN hides the credentials part of a postgres:// URL.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
