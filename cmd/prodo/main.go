package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodo-app/prodo/internal/category"
	"github.com/prodo-app/prodo/internal/scheduler"
	"github.com/prodo-app/prodo/internal/sessionlog"
	"github.com/prodo-app/prodo/internal/stats"
	"github.com/prodo-app/prodo/internal/storage"
	"github.com/prodo-app/prodo/internal/store"
	"github.com/prodo-app/prodo/internal/timer"
	"github.com/prodo-app/prodo/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "prodo failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	dataDir, err := resolveDataDir(cfg.DataDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	cfg.DataDir = dataDir
	if !filepath.IsAbs(cfg.UIStatePath) {
		cfg.UIStatePath = filepath.Join(dataDir, cfg.UIStatePath)
	}

	logFile, err := os.OpenFile(filepath.Join(dataDir, "prodo.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, nil))

	prefs, err := storage.OpenSQLite(filepath.Join(dataDir, "prefs.db"))
	if err != nil {
		return fmt.Errorf("open prefs: %w", err)
	}
	defer prefs.Close()

	taskStore := store.Open(filepath.Join(dataDir, "tasks.json"), logger)
	defer taskStore.Close()

	registry := category.Open(context.Background(), prefs, logger)
	sessions := sessionlog.New(prefs, logger)

	machine := timer.NewMachine(timer.Config{
		Work:       time.Duration(cfg.WorkMinutes) * time.Minute,
		ShortBreak: time.Duration(cfg.ShortBreakMinutes) * time.Minute,
		LongBreak:  time.Duration(cfg.LongBreakMinutes) * time.Minute,
	}, timer.NewSessionSink(taskStore, sessions, logger))

	controller := stats.NewController(
		stats.NewAggregator(taskStore, sessions, time.Duration(cfg.WorkMinutes)*time.Minute),
		time.Now(),
	)

	engine := scheduler.NewEngine(cfg.DueBuffer)
	engine.Start()
	defer engine.Stop()
	engine.Sync(taskStore.All(), time.Now())

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications && (runtime.GOOS == "linux" || runtime.GOOS == "darwin") {
		notifier = update.ExecDesktopNotifier{}
	}

	model := update.NewModel(update.Deps{
		Store:      taskStore,
		Categories: registry,
		SessionLog: sessions,
		Timer:      machine,
		Stats:      controller,
		Scheduler:  engine,
		Notifier:   notifier,
		Logger:     logger,
	}, cfg)

	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func resolveDataDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("resolve data dir: %w", err)
		}
		return filepath.Join(home, ".prodo"), nil
	}
	return filepath.Join(base, "prodo"), nil
}
