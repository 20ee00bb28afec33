// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/pool"
	"github.com/tomtom215/marquee/internal/selector"
)

// Shortlist returns up to n candidates from the global pool in an order
// fixed by the date. n <= 0 means Config.ShortlistDefault; n is capped at
// Config.ShortlistMax.
func (e *Engine) Shortlist(ctx context.Context, date time.Time, n int) ([]pool.Candidate, error) {
	if e.candidates == nil {
		return nil, ErrNoCandidates
	}
	if n <= 0 {
		n = e.config.ShortlistDefault
	}
	if n > e.config.ShortlistMax {
		n = e.config.ShortlistMax
	}

	items, err := e.candidates.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("shortlist: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoCandidates
	}

	// Shuffle a copy; the pool slice may be shared with other callers.
	shuffled := make([]pool.Candidate, len(items))
	copy(shuffled, items)

	rng := selector.NewMulberry32(selector.Seed(date.UTC().Format(dateLayout)))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n], nil
}
