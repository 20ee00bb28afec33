// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cache provides a bounded, thread-safe in-memory cache with TTL
expiration and least-recently-used eviction.

The API layer keeps one Cache of daily selections keyed by date so that
repeated requests for the same day do not hit the catalog. Past dates are
stable; the current date is cached with a short TTL because a premiere
can replace the scheduled pick during the day.

# Behavior

  - Get, Set and Delete are O(1)
  - Expired entries are removed lazily on Get and in bulk by Purge
  - When capacity is reached the least recently used entry is evicted
  - Hit, miss and eviction counts are available from Stats

# Usage

	c := cache.New[*recommend.DailySelection](366, 6*time.Hour)
	if sel, ok := c.Get("2024-10-31"); ok {
	    return sel
	}
	c.SetWithTTL("2024-10-31", sel, 15*time.Minute)
*/
package cache
