// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// PeriodicService calls fn every interval until stopped. Errors from fn are
// logged, never returned.
type PeriodicService struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	logger   zerolog.Logger
}

// NewPeriodicService creates the service. A non-positive interval means 1h.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewPeriodicService(name string, interval time.Duration, fn func(ctx context.Context) error, logger zerolog.Logger) *PeriodicService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PeriodicService{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger.With().Str("service", name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.fn(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("Periodic task failed")
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *PeriodicService) String() string {
	return s.name
}
