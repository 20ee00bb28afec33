// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the Marquee HTTP API on a chi router.

# Endpoints

	GET  /api/v1/daily?date=YYYY-MM-DD             today's movie (date defaults to today, UTC)
	GET  /api/v1/daily/shortlist?date=&n=          deterministic shortlist from the candidate pool
	GET  /api/v1/schedule                          active schedule tables
	GET  /api/v1/schedule/resolve?date=            which rule applies to a date (no network)
	GET  /api/v1/selector/index?date=&pool_size=   permutation index and page position
	GET  /api/v1/candidates?items=true             global candidate pool summary
	POST /api/v1/candidates/refresh                rebuild the candidate pool
	GET  /api/v1/health/live                       liveness probe
	GET  /api/v1/health/ready                      readiness probe (503 while the catalog breaker is open)
	GET  /metrics                                  Prometheus metrics

Every JSON response uses the models.APIResponse envelope. Errors carry a
machine-readable code: BAD_REQUEST, VALIDATION_ERROR, NO_RECOMMENDATION,
NO_CANDIDATES, SERVICE_UNAVAILABLE or INTERNAL_ERROR.

# Caching

Daily selections are cached per date in a bounded cache.Cache. The cache is
cleared when the schedule reloads or the candidate pool is invalidated.
Scheduled pool rebuilds leave it alone; picks never read the pool.

# Middleware

Global: request ID, real IP, access log, panic recovery, compression, CORS.
API routes add per-IP rate limiting (go-chi/httprate) and Prometheus
instrumentation. Health routes use a separate, more permissive limit.
*/
package api
