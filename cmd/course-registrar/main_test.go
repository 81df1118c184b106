package main

import (
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/course-registrar/internal/config"
	"github.com/aanand-mishra/course-registrar/internal/storage/sqlite"
	"github.com/aanand-mishra/course-registrar/internal/storage/textfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()
	log := setupLogger("prod")

	cfg := &config.Config{Storage: config.Storage{
		Driver:       config.DriverText,
		CoursesPath:  filepath.Join(dir, "courses.txt"),
		StudentsPath: filepath.Join(dir, "students.txt"),
	}}
	store, closeStore, err := openStorage(cfg, log)
	require.NoError(t, err)
	closeStore()
	assert.IsType(t, &textfile.TextFile{}, store)

	cfg.Driver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(dir, "registrar.db")
	store, closeStore, err = openStorage(cfg, log)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &sqlite.SQLite{}, store)
}
