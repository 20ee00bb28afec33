// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/pool"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/schedule"
)

// Recommender produces daily picks (*recommend.Engine).
type Recommender interface {
	DailyMovie(ctx context.Context, date time.Time) (*recommend.DailySelection, error)
	Shortlist(ctx context.Context, date time.Time, n int) ([]pool.Candidate, error)
}

// ScheduleSource exposes the active schedule (*schedule.Watcher).
type ScheduleSource interface {
	schedule.Resolver
	Current() *schedule.Table
	Path() string
}

// PoolSource exposes the global candidate pool (*pool.Builder).
type PoolSource interface {
	Pool(ctx context.Context) (*pool.Pool, error)
	Refresh(ctx context.Context) (*pool.Pool, error)
	TTL() time.Duration
}

// BreakerState reports the catalog circuit breaker (*catalog.BreakerClient).
type BreakerState interface {
	State() string
	Open() bool
}

// Default handler settings.
const (
	DefaultRequestTimeout     = 15 * time.Second
	DefaultSelectionCacheTTL  = 10 * time.Minute
	DefaultSelectionCacheSize = 366
)

// HandlerOptions configures NewHandler. Pool and Breaker are optional.
type HandlerOptions struct {
	Engine   Recommender
	Schedule ScheduleSource
	Pool     PoolSource
	Breaker  BreakerState

	Version            string
	RequestTimeout     time.Duration
	SelectionCacheTTL  time.Duration
	SelectionCacheSize int

	Logger zerolog.Logger

	// Now defaults to time.Now; it decides "today" when no date is given.
	Now func() time.Time
}

// Handler serves the API endpoints.
type Handler struct {
	engine   Recommender
	schedule ScheduleSource
	pool     PoolSource
	breaker  BreakerState

	selections *cache.Cache[*recommend.DailySelection]

	version        string
	requestTimeout time.Duration
	startTime      time.Time
	now            func() time.Time
	logger         zerolog.Logger
}

// NewHandler creates a handler.
func NewHandler(opts HandlerOptions) *Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.SelectionCacheTTL <= 0 {
		opts.SelectionCacheTTL = DefaultSelectionCacheTTL
	}
	if opts.SelectionCacheSize <= 0 {
		opts.SelectionCacheSize = DefaultSelectionCacheSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	return &Handler{
		engine:         opts.Engine,
		schedule:       opts.Schedule,
		pool:           opts.Pool,
		breaker:        opts.Breaker,
		selections:     cache.New[*recommend.DailySelection](opts.SelectionCacheSize, opts.SelectionCacheTTL),
		version:        opts.Version,
		requestTimeout: opts.RequestTimeout,
		startTime:      time.Now(),
		now:            opts.Now,
		logger:         opts.Logger.With().Str("component", "api").Logger(),
	}
}

// InvalidateSelections drops every cached daily selection. It is
// registered as a schedule reload and pool invalidation observer.
func (h *Handler) InvalidateSelections() {
	h.selections.Clear()
	h.logger.Debug().Msg("Selection cache cleared")
}

// SelectionCacheStats returns selection cache counters.
func (h *Handler) SelectionCacheStats() cache.Stats {
	return h.selections.Stats()
}

// PurgeSelections removes expired selections and returns how many were removed.
func (h *Handler) PurgeSelections() int {
	return h.selections.Purge()
}
