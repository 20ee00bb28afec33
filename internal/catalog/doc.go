// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog is the HTTP client for the remote movie catalog (a
TMDB-compatible /discover/movie endpoint).

The rest of Marquee depends only on the Fetcher interface:

	type Fetcher interface {
	    Discover(ctx context.Context, filter FilterSpec, page int) (*Page, error)
	}

Two implementations are provided:
  - Client: plain HTTP with API-key or bearer authentication, a token
    bucket rate limiter (golang.org/x/time/rate) and status-code to
    sentinel error mapping
  - BreakerClient: wraps any Fetcher with a sony/gobreaker circuit breaker
    and exports its state as Prometheus metrics

# Filters

FilterSpec is the declarative query used by schedule themes and the pool
builder. Params renders it into discover query parameters:

	f := catalog.FilterSpec{SortBy: "vote_average.desc", MinRating: 7.5, Genres: []int{27}}
	page, err := client.Discover(ctx, f, 3)

# Errors

Non-2xx responses are returned as *Error wrapping one of ErrUnauthorized,
ErrNotFound, ErrRateLimited, ErrBadRequest or ErrServer, so callers can use
errors.Is without inspecting status codes.
*/
package catalog
