// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry at package init via
promauto and exposed by the API server at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Catalog:
  - marquee_catalog_requests_total{operation,status}
  - marquee_catalog_request_duration_seconds{operation}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}, circuit_breaker_transitions_total{name,from,to}

Candidate pool:
  - marquee_pool_builds_total{result}, marquee_pool_build_duration_seconds
  - marquee_pool_fetch_failures_total{source}
  - marquee_pool_cache_lookups_total{result}, marquee_pool_size

Selection:
  - marquee_selections_total{source,outcome}, marquee_selection_duration_seconds
  - marquee_premiere_checks_total{result}
  - marquee_selection_cache_lookups_total{result}

Schedule:
  - marquee_schedule_reloads_total{result}, marquee_schedule_rules{kind}

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}, api_active_requests

# Useful Queries

Share of daily picks that needed the page-1 fallback:

	sum(rate(marquee_selections_total{outcome="fallback"}[1d]))
	  / sum(rate(marquee_selections_total[1d]))

Pool cache hit rate:

	rate(marquee_pool_cache_lookups_total{result="hit"}[1h])
	  / rate(marquee_pool_cache_lookups_total[1h])
*/
package metrics
