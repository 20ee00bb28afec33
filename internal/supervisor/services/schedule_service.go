// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// FileWatcher starts and stops change notifications (*schedule.Watcher).
type FileWatcher interface {
	Watch() error
	Unwatch() error
	Path() string
}

// ScheduleWatchService keeps a schedule file watch alive for the lifetime
// of the supervisor.
type ScheduleWatchService struct {
	watcher FileWatcher
	logger  zerolog.Logger
	name    string
}

// NewScheduleWatchService creates the service.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewScheduleWatchService(watcher FileWatcher, logger zerolog.Logger) *ScheduleWatchService {
	return &ScheduleWatchService{
		watcher: watcher,
		logger:  logger.With().Str("service", "schedule-watcher").Logger(),
		name:    "schedule-watcher",
	}
}

// Serve implements suture.Service. A failed Watch is returned so the
// supervisor retries it with backoff.
func (s *ScheduleWatchService) Serve(ctx context.Context) error {
	if err := s.watcher.Watch(); err != nil {
		return fmt.Errorf("watch schedule %s: %w", s.watcher.Path(), err)
	}
	s.logger.Info().Str("path", s.watcher.Path()).Msg("Watching schedule file")

	<-ctx.Done()

	if err := s.watcher.Unwatch(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to stop schedule watch")
	}
	return ctx.Err()
}

// String implements fmt.Stringer.
func (s *ScheduleWatchService) String() string {
	return s.name
}
