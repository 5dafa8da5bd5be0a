package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"pomoflow/internal/core/engine"
	"pomoflow/internal/core/model"
	"pomoflow/internal/platform"
	"pomoflow/internal/server"
	"pomoflow/internal/storage"
)

const appName = "pomoflow"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Error("another instance is already running", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	config, err := storage.LoadConfig(appName)
	if err != nil {
		logger.Warn("settings not loaded, using defaults", "error", err)
		config = model.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		logger.Warn("stored settings invalid, using defaults", "error", err)
		config = model.DefaultConfig()
	}

	store, err := storage.NewSessionStore(sessionDBPath())
	if err != nil {
		logger.Error("session store unavailable", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	eng := engine.New(config, store, engine.Options{Logger: logger})
	eng.Run()
	defer eng.Close()

	if configPath, err := storage.ConfigPath(appName); err == nil {
		watcher, err := storage.WatchConfig(configPath, logger, eng.UpdateConfig)
		if err != nil {
			logger.Warn("settings watcher unavailable", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	srv := server.New(eng, store, server.Options{
		Logger: logger,
		PersistConfig: func(config model.Config) error {
			return storage.SaveConfig(appName, config)
		},
	})

	addr := getEnv("POMOFLOW_ADDR", "127.0.0.1:7317")
	logger.Info("starting", "addr", addr, "work_seconds", config.WorkSeconds)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func sessionDBPath() string {
	if path := os.Getenv("POMOFLOW_DB"); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", appName, "sessions.db")
	}
	return filepath.Join(configDir, appName, "sessions.db")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
