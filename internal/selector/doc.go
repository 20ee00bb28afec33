// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package selector maps a calendar date onto a position inside a paged
candidate list.

Every visitor asking on the same UTC day must land on the same movie, and
consecutive days must land far apart. The selector achieves both with a
simple affine permutation of the day:

	index  = (year*123 + dayOfYear*997) mod poolSize
	page   = index/20 + 1
	offset = index % 20

The multipliers are coprime with typical pool sizes, so adjacent days are
spread across the pool instead of walking it one slot at a time, and the
year term shifts the whole cycle so the same day-of-year does not repeat
its pick every year.

# Seeded Randomness

Seed and Mulberry32 provide a reproducible PRNG for features that need more
than one deterministic draw per day (the daily shortlist). The primary
daily pick does not use them.

	rng := selector.NewMulberry32(selector.Seed("2024-03-14"))
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

All functions in this package are pure and safe for concurrent use, except
a Mulberry32 value, which must not be shared across goroutines.
*/
package selector
