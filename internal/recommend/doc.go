// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend picks "today's movie".
//
// # Pipeline
//
// DailyMovie runs these steps for a date, stopping at the first that
// produces a movie:
//
//  1. Manual override: a fixed item for the day, no catalog calls
//  2. Premiere: a sufficiently popular movie released that very day
//     (best effort, failures ignored, can be disabled)
//  3. Rule resolution: the day's event or weekly theme and its pool size
//  4. Permutation: (year*123 + dayOfYear*997) mod poolSize located on a
//     page of 20
//  5. Live fetch of that page of the theme's filter; if the page is short
//     (the catalog shrank since the pool size was chosen) the first item
//     of page 1 is used instead
//
// If both fetches in step 5 fail, DailyMovie returns ErrNoSelection.
//
// # Design Principles
//
//   - Deterministic: the same UTC date and catalog give the same movie
//   - Degrading: upstream failures reduce quality before they fail a request
//   - Observable: every pick is logged with its source and page position
//
// Premiere precedence is deliberate: a popular release on its opening day
// beats the scheduled theme. Set Config.PremiereEnabled to false for a
// purely schedule-driven pick.
//
// # Shortlist
//
// Shortlist returns n candidates from the global pool shuffled with a PRNG
// seeded from the date, for "more like today" listings.
//
// # Usage
//
//	engine, err := recommend.NewEngine(fetcher, watcher, builder, recommend.DefaultConfig(), logger)
//	sel, err := engine.DailyMovie(ctx, time.Now())
//	if errors.Is(err, recommend.ErrNoSelection) {
//	    // catalog unavailable
//	}
package recommend
