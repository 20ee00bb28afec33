// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/pool"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/schedule"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Logging.Options())

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("store", cfg.Store.Backend).
		Str("schedule", scheduleSource(cfg.Schedule.Path)).
		Str("catalog", cfg.Catalog.BaseURL).
		Str("api_key", logging.RedactSecret(cfg.Catalog.APIKey)).
		Str("bearer_token", logging.RedactSecret(cfg.Catalog.BearerToken)).
		Msg("Starting Marquee")

	if !cfg.Catalog.HasCredentials() {
		logging.Warn().Msg("No catalog credentials configured (TMDB_API_KEY or TMDB_READ_ACCESS_TOKEN); only manual overrides will resolve")
	}
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin")
	}

	st, err := cfg.Store.OpenStore(logging.WithComponent("store"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	fetcher, breaker := cfg.Catalog.NewFetcher()

	watcher, err := schedule.NewWatcher(cfg.Schedule.Path, logging.Logger())
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	builder := pool.NewBuilder(fetcher, st, cfg.Pool.BuilderOptions(logging.WithComponent("pool")))

	engine, err := recommend.NewEngine(fetcher, watcher, builder, cfg.Recommend.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	opts := api.HandlerOptions{
		Engine:             engine,
		Schedule:           watcher,
		Pool:               builder,
		Version:            version,
		RequestTimeout:     cfg.Server.Timeout,
		SelectionCacheTTL:  cfg.Recommend.SelectionCacheTTL,
		SelectionCacheSize: cfg.Recommend.SelectionCacheSize,
		Logger:             logging.WithComponent("api"),
	}
	if breaker != nil {
		opts.Breaker = breaker
	}
	handler := api.NewHandler(opts)

	invalidateSelectionsOn(watcher, builder, handler)

	if path := config.FindConfigFile(); path != "" {
		watchLogLevel(path)
	}

	apiServer := services.NewAPIServerService(
		api.NewRouter(handler, middlewareConfig(cfg)).SetupChi(),
		services.APIServerConfig{
			Addr:            fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			RequestTimeout:  cfg.Server.Timeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		},
		logging.Logger(),
	)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	// Data layer
	tree.AddDataService(services.NewPoolWarmerService(builder, services.PoolWarmerConfig{
		WarmOnStart:  cfg.Pool.WarmOnStart,
		BuildTimeout: cfg.Pool.BuildTimeout,
	}, logging.Logger()))
	if st.GC != nil {
		gc := st.GC
		tree.AddDataService(services.NewPeriodicService("badger-gc", cfg.Store.GCInterval,
			func(context.Context) error { return gc() }, logging.Logger()))
	}

	// Control layer
	if cfg.Schedule.Path != "" && cfg.Schedule.Watch {
		tree.AddControlService(services.NewScheduleWatchService(watcher, logging.Logger()))
	}
	tree.AddControlService(services.NewPeriodicService("selection-cache-purge", time.Hour,
		func(context.Context) error {
			if n := handler.PurgeSelections(); n > 0 {
				logging.Debug().Int("purged", n).Msg("Expired selections purged")
			}
			return nil
		}, logging.Logger()))

	// API layer
	tree.AddAPIService(apiServer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	err = <-tree.ServeBackground(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mw.RateLimitRequests = cfg.Server.RateLimitRequests
	mw.RateLimitWindow = cfg.Server.RateLimitWindow
	mw.RateLimitDisabled = cfg.Server.RateLimitDisabled
	return mw
}

// watchLogLevel applies logging.level changes from the config file.
func watchLogLevel(path string) {
	err := config.WatchConfigFile(path, func() {
		cfg, err := config.LoadFile(path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring invalid config change")
			return
		}
		logging.SetLevelString(cfg.Logging.Level)
		logging.Info().Str("level", cfg.Logging.Level).Msg("Log level updated")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
	}
}

func scheduleSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

// invalidateSelectionsOn clears cached picks on schedule reload and explicit
// pool invalidation. Picks are fetched live and never read the pool, so a
// scheduled pool rebuild leaves them valid.
func invalidateSelectionsOn(watcher *schedule.Watcher, builder *pool.Builder, handler *api.Handler) {
	watcher.OnReload(func(*schedule.Table) { handler.InvalidateSelections() })
	builder.OnInvalidate(handler.InvalidateSelections)
}
