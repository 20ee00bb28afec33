// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/schedule"
	"github.com/tomtom215/marquee/internal/selector"
)

// dateLayout is the calendar date format used for keys and premiere queries.
const dateLayout = "2006-01-02"

// Engine orchestrates the daily pick.
type Engine struct {
	fetcher    catalog.Fetcher
	resolver   schedule.Resolver
	candidates CandidateSource
	config     *Config
	logger     zerolog.Logger

	selections atomic.Int64
	overrides  atomic.Int64
	premieres  atomic.Int64
	fallbacks  atomic.Int64
	failures   atomic.Int64
}

// NewEngine creates an engine. candidates may be nil, in which case
// Shortlist returns ErrNoCandidates.
func NewEngine(fetcher catalog.Fetcher, resolver schedule.Resolver, candidates CandidateSource, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if fetcher == nil {
		return nil, errors.New("recommend: fetcher is required")
	}
	if resolver == nil {
		return nil, errors.New("recommend: resolver is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		fetcher:    fetcher,
		resolver:   resolver,
		candidates: candidates,
		config:     cfg.Clone(),
		logger:     logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Stats returns counters since the engine was created.
func (e *Engine) Stats() Stats {
	return Stats{
		Selections: e.selections.Load(),
		Overrides:  e.overrides.Load(),
		Premieres:  e.premieres.Load(),
		Fallbacks:  e.fallbacks.Load(),
		Failures:   e.failures.Load(),
	}
}

// DailyMovie picks the movie for date. Only the UTC calendar date matters.
// It returns ErrNoSelection when neither the computed page nor the
// fallback page yields a movie.
func (e *Engine) DailyMovie(ctx context.Context, date time.Time) (*DailySelection, error) {
	start := time.Now()
	day := date.UTC()
	key := day.Format(dateLayout)
	log := e.logger.With().Str("date", key).Logger()

	sel, err := e.pick(ctx, day, key, log)
	if err != nil {
		e.failures.Add(1)
		metrics.RecordSelection("", false, time.Since(start))
		log.Warn().Err(err).Msg("No daily selection")
		return nil, err
	}

	e.selections.Add(1)
	if sel.Fallback {
		e.fallbacks.Add(1)
	}
	metrics.RecordSelection(sel.Source.String(), sel.Fallback, time.Since(start))

	ev := log.Info().
		Str("source", sel.Source.String()).
		Int("item_id", sel.Item.ID).
		Str("title", sel.Item.Title).
		Bool("fallback", sel.Fallback)
	if sel.Position != nil {
		ev = ev.Str("theme", sel.ThemeID).
			Int("pool_size", sel.PoolSize).
			Int("index", sel.Position.Index).
			Int("page", sel.Position.Page).
			Int("offset", sel.Position.Offset)
	}
	ev.Msg("Daily selection")
	return sel, nil
}

func (e *Engine) pick(ctx context.Context, day time.Time, key string, log zerolog.Logger) (*DailySelection, error) {
	res := e.resolver.Resolve(day)

	if res.Kind == schedule.KindManual && res.Override != nil {
		e.overrides.Add(1)
		return &DailySelection{
			Date:    key,
			Item:    catalog.Movie{ID: res.Override.ItemID, Title: res.Override.Title},
			Source:  SourceManual,
			Context: res.Context,
		}, nil
	}

	if movie := e.premiere(ctx, key, log); movie != nil {
		e.premieres.Add(1)
		return &DailySelection{
			Date:   key,
			Item:   *movie,
			Source: SourcePremiere,
			Context: schedule.Context{
				Name:        "Premiere",
				Description: "Released today",
			},
		}, nil
	}

	if res.Theme == nil {
		// Resolve guarantees a theme for event and weekly rules.
		panic(fmt.Sprintf("recommend: %s rule %q resolved without a theme", res.Kind, res.MatchedKey))
	}

	pos := selector.ForDate(day, res.PoolSize)
	sel := &DailySelection{
		Date:     key,
		Source:   sourceForKind(res.Kind),
		Context:  res.Context,
		ThemeID:  res.Theme.ID,
		Position: &pos,
		PoolSize: res.PoolSize,
	}

	primary, primaryErr := e.fetcher.Discover(ctx, res.Theme.Filter, pos.Page)
	if primaryErr == nil && len(primary.Results) > pos.Offset {
		sel.Item = primary.Results[pos.Offset]
		return sel, nil
	}
	if primaryErr != nil {
		log.Warn().Err(primaryErr).Int("page", pos.Page).Msg("Primary page fetch failed, falling back to page 1")
	} else {
		log.Debug().
			Int("page", pos.Page).
			Int("offset", pos.Offset).
			Int("results", len(primary.Results)).
			Msg("Computed page is short, falling back to page 1")
	}

	// The primary fetch already was page 1; refetching cannot help.
	fallback, fallbackErr := primary, primaryErr
	if pos.Page != 1 {
		fallback, fallbackErr = e.fetcher.Discover(ctx, res.Theme.Filter, 1)
	}
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSelection, fallbackErr)
	}
	if len(fallback.Results) == 0 {
		return nil, fmt.Errorf("%w: theme %q returned no results", ErrNoSelection, res.Theme.ID)
	}

	sel.Item = fallback.Results[0]
	sel.Fallback = true
	return sel, nil
}

// premiere looks for a popular movie released on key. Errors are logged
// and treated as a miss.
func (e *Engine) premiere(ctx context.Context, key string, log zerolog.Logger) *catalog.Movie {
	if !e.config.PremiereEnabled {
		metrics.PremiereChecks.WithLabelValues("disabled").Inc()
		return nil
	}

	filter := catalog.FilterSpec{
		SortBy:         "popularity.desc",
		ReleasedAfter:  key,
		ReleasedBefore: key,
		ReleaseTypes:   e.config.PremiereReleaseTypes,
	}
	page, err := e.fetcher.Discover(ctx, filter, 1)
	if err != nil {
		metrics.PremiereChecks.WithLabelValues("error").Inc()
		log.Debug().Err(err).Msg("Premiere check failed, continuing with schedule")
		return nil
	}

	for i := range page.Results {
		m := page.Results[i]
		if m.ReleaseDate == key && m.Popularity > e.config.PremiereMinPopularity {
			metrics.PremiereChecks.WithLabelValues("hit").Inc()
			return &m
		}
	}
	metrics.PremiereChecks.WithLabelValues("miss").Inc()
	return nil
}
