package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"pomoflow/internal/core/model"
)

// ConfigWatcher reloads the settings file whenever it changes on disk and
// hands each successfully parsed config to an apply callback, typically
// Engine.UpdateConfig.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	apply   func(model.Config) error
	logger  *slog.Logger
	stopCh  chan struct{}
}

// WatchConfig starts watching the settings file at path. The parent
// directory is watched so editor rename-and-replace saves are seen.
func WatchConfig(path string, logger *slog.Logger, apply func(model.Config) error) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch settings directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &ConfigWatcher{
		watcher: watcher,
		path:    path,
		apply:   apply,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Stop ends the watch loop and releases the watcher.
func (w *ConfigWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *ConfigWatcher) watchLoop() {
	target := filepath.Base(w.path)
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watcher error", "error", err)
		}
	}
}

func (w *ConfigWatcher) reload() {
	config, err := LoadConfigFile(w.path)
	if err != nil {
		w.logger.Warn("settings reload failed", "path", w.path, "error", err)
		return
	}
	if err := w.apply(config); err != nil {
		w.logger.Warn("settings change rejected", "path", w.path, "error", err)
		return
	}
	w.logger.Info("settings reloaded", "path", w.path)
}
