// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware for the Marquee API.

Key Components:

  - RequestID: X-Request-ID propagation into the response and the logging context
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request counters, latency histogram, in-flight gauge

All middleware has the chi signature func(http.Handler) http.Handler.
The router installs them in this order:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics labels requests with the chi route pattern
("/api/v1/daily") rather than the raw path, so query strings and path
parameters do not create new series.
*/
package middleware
