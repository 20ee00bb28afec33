// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/pool"
)

// PoolRefresher rebuilds the candidate pool (*pool.Builder).
type PoolRefresher interface {
	Refresh(ctx context.Context) (*pool.Pool, error)
	TTL() time.Duration
}

// PoolWarmerConfig configures PoolWarmerService.
type PoolWarmerConfig struct {
	// WarmOnStart builds the pool as soon as the service starts.
	WarmOnStart bool

	// Interval between rebuilds. Zero uses the builder TTL.
	Interval time.Duration

	// BuildTimeout bounds a single rebuild. Default: 2m
	BuildTimeout time.Duration
}

// PoolWarmerService rebuilds the candidate pool ahead of expiry so request
// paths rarely pay for a cold build.
type PoolWarmerService struct {
	builder PoolRefresher
	config  PoolWarmerConfig
	logger  zerolog.Logger
	name    string
}

// NewPoolWarmerService creates the service.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewPoolWarmerService(builder PoolRefresher, cfg PoolWarmerConfig, logger zerolog.Logger) *PoolWarmerService {
	if cfg.Interval <= 0 {
		cfg.Interval = builder.TTL()
	}
	if cfg.BuildTimeout <= 0 {
		cfg.BuildTimeout = 2 * time.Minute
	}
	return &PoolWarmerService{
		builder: builder,
		config:  cfg,
		logger:  logger.With().Str("service", "pool-warmer").Logger(),
		name:    "pool-warmer",
	}
}

// Serve implements suture.Service. Build failures are logged and retried on
// the next tick.
func (s *PoolWarmerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_start", s.config.WarmOnStart).
		Dur("interval", s.config.Interval).
		Msg("Pool warmer starting")

	if s.config.WarmOnStart {
		s.warm(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Pool warmer stopping")
			return ctx.Err()
		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

func (s *PoolWarmerService) warm(ctx context.Context) {
	buildCtx, cancel := context.WithTimeout(ctx, s.config.BuildTimeout)
	defer cancel()

	start := time.Now()
	p, err := s.builder.Refresh(buildCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("Candidate pool rebuild failed")
		}
		return
	}
	s.logger.Info().
		Int("size", len(p.Items)).
		Dur("duration", time.Since(start)).
		Msg("Candidate pool warmed")
}

// String implements fmt.Stringer.
func (s *PoolWarmerService) String() string {
	return s.name
}
