package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MigrationsDirOverride(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/custom/migrations", cfg.MigrationsDir)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("MIGRATIONS_DIR", "")
	_ = os.Unsetenv("MIGRATIONS_DIR")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_RequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Chdir(t.TempDir())

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestLoadConfig_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\n"), 0644))

	t.Setenv("DB_DSN", "from_env")
	t.Chdir(tmp)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.DBDSN)
}
