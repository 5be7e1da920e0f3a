// Package watcher reloads logging settings when the config file changes
// on disk, so log level and output can be adjusted without a restart.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sydlexius/crossfade/internal/config"
	"github.com/sydlexius/crossfade/internal/logging"
)

// debounce absorbs the bursts of events editors and atomic-rename writes
// produce for a single logical change.
const debounce = 500 * time.Millisecond

// ConfigWatcher watches one config file and applies logging changes.
type ConfigWatcher struct {
	path    string
	manager *logging.Manager
	logger  *slog.Logger
}

// New creates a ConfigWatcher for the given config file path.
func New(path string, manager *logging.Manager, logger *slog.Logger) *ConfigWatcher {
	return &ConfigWatcher{
		path:    path,
		manager: manager,
		logger:  logger.With(slog.String("component", "config-watcher")),
	}
}

// Run watches until the context is canceled. The parent directory is
// watched rather than the file itself so atomic replaces (write temp,
// rename over) keep delivering events.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close() //nolint:errcheck

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))

		case <-reload:
			w.apply()
		}
	}
}

// apply reloads the config file and pushes the logging section into the
// manager. A config that fails to load leaves the current settings alone.
func (w *ConfigWatcher) apply() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", slog.String("error", err.Error()))
		return
	}

	w.manager.Reconfigure(logging.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FilePath:       cfg.Logging.FilePath,
		FileMaxSizeMB:  cfg.Logging.FileMaxSizeMB,
		FileMaxFiles:   cfg.Logging.FileMaxFiles,
		FileMaxAgeDays: cfg.Logging.FileMaxAgeDays,
	})
	w.logger.Info("logging settings reloaded",
		slog.String("level", cfg.Logging.Level),
		slog.String("format", cfg.Logging.Format))
}
