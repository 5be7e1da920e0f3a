// Command crossfade serves the cross-catalog music link resolver: it
// accepts Spotify share links and redirects to the equivalent Apple Music
// entry found through the iTunes Search API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sydlexius/crossfade/internal/api"
	"github.com/sydlexius/crossfade/internal/catalog"
	"github.com/sydlexius/crossfade/internal/catalog/itunes"
	"github.com/sydlexius/crossfade/internal/catalog/spotify"
	"github.com/sydlexius/crossfade/internal/config"
	"github.com/sydlexius/crossfade/internal/logging"
	"github.com/sydlexius/crossfade/internal/resolver"
	"github.com/sydlexius/crossfade/internal/version"
	"github.com/sydlexius/crossfade/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("XF_CONFIG_PATH")
	if configPath == "" {
		configPath = "/data/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logManager, logger := logging.NewManager(logging.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FilePath:       cfg.Logging.FilePath,
		FileMaxSizeMB:  cfg.Logging.FileMaxSizeMB,
		FileMaxFiles:   cfg.Logging.FileMaxFiles,
		FileMaxAgeDays: cfg.Logging.FileMaxAgeDays,
	})
	defer logManager.Close() //nolint:errcheck
	slog.SetDefault(logger)

	logger.Info("starting crossfade",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("country", cfg.Target.Country))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := catalog.NewRateLimiterMap()
	source := spotify.New(limiter, logger)
	target := itunes.New(limiter, logger, cfg.Target.Country)
	pipeline := resolver.New(target, logger)

	router := api.NewRouter(api.RouterDeps{
		Metadata: source,
		Resolver: pipeline,
		Logger:   logger,
		BasePath: cfg.Server.BasePath,
	})

	// Reload logging settings when the config file changes on disk.
	go func() {
		cw := watcher.New(configPath, logManager, logger)
		if err := cw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("config watcher stopped", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
