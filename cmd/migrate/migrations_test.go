package main

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pressly/goose/v3"
)

func migrationsPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file lives in cmd/migrate/, so repo root is ../..
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))
	return filepath.Join(repoRoot, "db", "migrations")
}

func TestCollectMigrations_ParsesMigrationsDir(t *testing.T) {
	migrations, err := goose.CollectMigrations(migrationsPath(t), 0, goose.MaxVersion)
	if err != nil {
		t.Fatalf("expected migrations to parse, got error: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	for i, m := range migrations {
		if m.Version != int64(i+1) {
			t.Fatalf("expected contiguous versions, got %d at position %d", m.Version, i)
		}
	}
}
