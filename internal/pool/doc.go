// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package pool builds and caches the global candidate pool: a deduplicated
set of movies drawn from a mainstream query and a hidden-gem query.

# Build

Each query is fetched for a fixed number of pages (two by default), all
concurrently. A failed fetch is logged and skipped; the pool is built from
whatever succeeded. Only when every fetch fails does the build report
ErrNoCandidates.

Results are merged in query order, mainstream first. When a movie appears
in both queries the later query wins the Source tag, so an item that is
both popular and a hidden gem is tagged SourceHiddenGem.

# Cache

The merged pool is stored as JSON in a store.Store under a single key that
does not depend on the date, stamped with its build time. Reads within the
TTL (24h by default) make no catalog calls. Cache writes are best effort:
a failing store never fails a build. Concurrent cold callers share one
rebuild.

# Observers

OnRebuild and OnInvalidate register callbacks that run after a fresh
pool is stored or the cached pool is dropped.
*/
package pool
