// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package schedule

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/knadh/koanf/providers/file"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
)

// Resolver is satisfied by *Table and *Watcher.
type Resolver interface {
	Resolve(date time.Time) Resolution
}

// Watcher holds the active Table for a file and swaps it atomically when
// the file changes. A reload that fails validation keeps the previous table.
type Watcher struct {
	path    string
	current atomic.Pointer[Table]
	logger  zerolog.Logger

	mu        sync.Mutex
	listeners []func(*Table)
	provider  *file.File
}

// NewWatcher loads path (or the built-in table when path is empty).
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWatcher(path string, logger zerolog.Logger) (*Watcher, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:   path,
		logger: logger.With().Str("component", "schedule").Logger(),
	}
	w.current.Store(t)
	weekly, events, overrides := t.Stats()
	metrics.RecordScheduleReload(nil, weekly, events, overrides)
	return w, nil
}

// Current returns the active table.
func (w *Watcher) Current() *Table {
	return w.current.Load()
}

// Resolve resolves date against the active table.
func (w *Watcher) Resolve(date time.Time) Resolution {
	return w.Current().Resolve(date)
}

// Path returns the watched file, or "" for the built-in table.
func (w *Watcher) Path() string {
	return w.path
}

// OnReload registers fn to run after every successful reload.
func (w *Watcher) OnReload(fn func(*Table)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Reload re-reads the file. On failure the active table is unchanged.
func (w *Watcher) Reload() error {
	if w.path == "" {
		return nil
	}

	t, err := Load(w.path)
	if err != nil {
		metrics.RecordScheduleReload(err, 0, 0, 0)
		w.logger.Error().Err(err).Str("path", w.path).Msg("Schedule reload rejected, keeping previous table")
		return err
	}

	w.current.Store(t)
	weekly, events, overrides := t.Stats()
	metrics.RecordScheduleReload(nil, weekly, events, overrides)
	w.logger.Info().
		Str("path", w.path).
		Int("events", events).
		Int("overrides", overrides).
		Msg("Schedule reloaded")

	w.mu.Lock()
	listeners := append([]func(*Table){}, w.listeners...)
	w.mu.Unlock()
	for _, fn := range listeners {
		fn(t)
	}
	return nil
}

// Watch starts watching the file for changes. It is a no-op for the
// built-in table.
func (w *Watcher) Watch() error {
	if w.path == "" {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.provider != nil {
		return errors.New("schedule: already watching")
	}

	p := file.Provider(w.path)
	err := p.Watch(func(_ interface{}, err error) {
		if err != nil {
			w.logger.Warn().Err(err).Msg("Schedule watch error")
			return
		}
		_ = w.Reload()
	})
	if err != nil {
		return fmt.Errorf("schedule: watch %s: %w", w.path, err)
	}
	w.provider = p
	return nil
}

// Unwatch stops watching.
func (w *Watcher) Unwatch() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.provider == nil {
		return nil
	}
	err := w.provider.Unwatch()
	w.provider = nil
	return err
}
