// main is the entry point of the course registrar.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file, environment, or defaults)
//  2. Initialise the logger
//  3. Open the store and load the registry
//  4. Run the interactive console (first-run setup included)
//  5. Save on "Save and Exit" or end of input
//
// An interrupt (Ctrl+C / kill) exits without saving, like any other
// termination outside the menu.
//
// RUNNING:
//
//	go run ./cmd/course-registrar --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/course-registrar
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/course-registrar/internal/config"
	"github.com/aanand-mishra/course-registrar/internal/console"
	"github.com/aanand-mishra/course-registrar/internal/session"
	"github.com/aanand-mishra/course-registrar/internal/storage"
	"github.com/aanand-mishra/course-registrar/internal/storage/sqlite"
	"github.com/aanand-mishra/course-registrar/internal/storage/textfile"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// stdout belongs to the menu, so logs go to stderr.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting course-registrar",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Driver),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, closeStore, err := openStorage(cfg, log)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	sess, err := session.Open(store, log)
	if err != nil {
		log.Error("failed to load registrar", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 4. Run the Console ────────────────────────────────────────────────
	done := make(chan error, 1)
	go func() {
		done <- console.New(sess, os.Stdin, os.Stdout).Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			log.Error("failed to save registrar", slog.String("error", err.Error()))
			closeStore()
			os.Exit(1)
		}
		log.Info("registrar stopped")
	case sig := <-stop:
		log.Warn("interrupted, unsaved changes discarded", slog.String("signal", sig.String()))
		closeStore()
		os.Exit(130)
	}
}

// openStorage returns the configured backend and a function that releases it.
func openStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("storage initialised", slog.String("path", cfg.SQLitePath))
		return db, func() { db.Close() }, nil
	default:
		log.Info("storage initialised",
			slog.String("courses", cfg.CoursesPath),
			slog.String("students", cfg.StudentsPath))
		return textfile.New(cfg.CoursesPath, cfg.StudentsPath, log), func() {}, nil
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
