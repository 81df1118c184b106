package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage:
  driver: sqlite
  sqlite_path: /var/lib/registrar/registrar.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "/var/lib/registrar/registrar.db", cfg.SQLitePath)
	assert.Equal(t, "courses.txt", cfg.CoursesPath)
	assert.Equal(t, "students.txt", cfg.StudentsPath)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: dev\n"))
	require.NoError(t, err)
	assert.Equal(t, DriverText, cfg.Driver)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("COURSES_PATH", "/tmp/c.txt")
	cfg, err := Load(writeConfig(t, "env: dev\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/c.txt", cfg.CoursesPath)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	_, err := Load(writeConfig(t, "storage:\n  driver: postgres\n"))
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "registrar.db", cfg.SQLitePath)
}
