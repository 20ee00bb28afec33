// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/pool"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/store"
)

// ClientOptions translates the catalog section into client options.
//
//nolint:gocritic // zerolog.Logger is passed by value
func (c CatalogConfig) ClientOptions(logger zerolog.Logger) []catalog.ClientOption {
	opts := []catalog.ClientOption{
		catalog.WithBaseURL(c.BaseURL),
		catalog.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
		catalog.WithRateLimit(c.RateLimitPerSecond, c.RateLimitBurst),
		catalog.WithLogger(logger),
	}
	if c.APIKey != "" {
		opts = append(opts, catalog.WithAPIKey(c.APIKey))
	}
	if c.BearerToken != "" {
		opts = append(opts, catalog.WithBearerToken(c.BearerToken))
	}
	if c.Language != "" {
		opts = append(opts, catalog.WithLanguage(c.Language))
	}
	if c.Region != "" {
		opts = append(opts, catalog.WithRegion(c.Region))
	}
	return opts
}

// BreakerSettings returns the circuit breaker tuning. Zero fields fall back
// to catalog.DefaultBreakerSettings.
func (c CatalogConfig) BreakerSettings() catalog.BreakerSettings {
	return catalog.BreakerSettings{
		Name:         "catalog-api",
		MaxRequests:  c.BreakerMaxRequests,
		Interval:     c.BreakerInterval,
		Timeout:      c.BreakerTimeout,
		MinRequests:  c.BreakerMinRequests,
		FailureRatio: c.BreakerFailureRatio,
	}
}

// NewFetcher builds the catalog client, wrapped in a circuit breaker when
// enabled. The breaker is nil when disabled.
func (c CatalogConfig) NewFetcher() (catalog.Fetcher, *catalog.BreakerClient) {
	client := catalog.NewClient(c.ClientOptions(logging.WithComponent("catalog"))...)
	if !c.BreakerEnabled {
		return client, nil
	}
	breaker := catalog.NewBreakerClient(client, c.BreakerSettings())
	return breaker, breaker
}

// BuilderOptions translates the pool section into builder options.
//
//nolint:gocritic // zerolog.Logger is passed by value
func (p PoolConfig) BuilderOptions(logger zerolog.Logger) pool.Options {
	return pool.Options{
		TTL:           p.TTL,
		PagesPerQuery: p.PagesPerQuery,
		CacheKey:      p.CacheKey,
		ServeStale:    p.ServeStale,
		BuildTimeout:  p.BuildTimeout,
		Logger:        logger,
	}
}

// EngineConfig translates the recommend section into engine settings.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.PremiereEnabled = r.PremiereEnabled
	cfg.PremiereMinPopularity = r.PremiereMinPopularity
	if len(r.PremiereReleaseTypes) > 0 {
		cfg.PremiereReleaseTypes = append([]int(nil), r.PremiereReleaseTypes...)
	}
	if r.ShortlistDefault > 0 {
		cfg.ShortlistDefault = r.ShortlistDefault
	}
	if r.ShortlistMax > 0 {
		cfg.ShortlistMax = r.ShortlistMax
	}
	return cfg
}

// Options returns the settings for logging.Init.
func (l LoggingConfig) Options() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// OpenedStore is a cache backend plus its lifecycle hooks. GC is nil for
// the memory backend.
type OpenedStore struct {
	store.Store
	Close func() error
	GC    func() error
}

// OpenStore opens the configured backend.
func (s StoreConfig) OpenStore(logger zerolog.Logger) (*OpenedStore, error) {
	switch s.Backend {
	case StoreMemory:
		m := store.NewMemory()
		return &OpenedStore{Store: m, Close: m.Close}, nil
	case StoreBadger, "":
		db, err := store.OpenBadger(store.BadgerOptions{Path: s.Path, Logger: &logger})
		if err != nil {
			return nil, err
		}
		return &OpenedStore{Store: db, Close: db.Close, GC: db.RunGC}, nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", s.Backend)
	}
}
