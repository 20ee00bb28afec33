// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - Catalog API requests and the circuit breaker in front of them
// - Candidate pool builds and cache efficiency
// - Daily selections by source and fallback rate
// - Schedule reloads
// - HTTP API latency and throughput

var (
	// Catalog Metrics
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_catalog_requests_total",
			Help: "Total number of catalog API requests",
		},
		[]string{"operation", "status"}, // status: "success", "error", "rate_limited", "cancelled"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_catalog_request_duration_seconds",
			Help:    "Duration of catalog API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Candidate Pool Metrics
	PoolBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_pool_builds_total",
			Help: "Total number of candidate pool rebuilds",
		},
		[]string{"result"}, // "complete", "partial", "failed"
	)

	PoolBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_pool_build_duration_seconds",
			Help:    "Duration of candidate pool rebuilds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PoolFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_pool_fetch_failures_total",
			Help: "Candidate page fetches that failed during a pool build",
		},
		[]string{"source"}, // "mainstream", "hidden-gem"
	)

	PoolCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_pool_cache_lookups_total",
			Help: "Candidate pool cache lookups",
		},
		[]string{"result"}, // "hit", "miss", "expired", "corrupt", "error"
	)

	PoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_pool_size",
			Help: "Number of candidates in the most recently built or loaded pool",
		},
	)

	// Selection Metrics
	Selections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_selections_total",
			Help: "Daily selections by source and outcome",
		},
		[]string{"source", "outcome"}, // outcome: "selected", "fallback", "none"
	)

	SelectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_selection_duration_seconds",
			Help:    "Duration of daily selection requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PremiereChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_premiere_checks_total",
			Help: "Premiere short-circuit checks",
		},
		[]string{"result"}, // "hit", "miss", "error", "disabled"
	)

	SelectionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_selection_cache_lookups_total",
			Help: "Per-date selection cache lookups in the HTTP layer",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Schedule Metrics
	ScheduleReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_schedule_reloads_total",
			Help: "Schedule table reloads from disk",
		},
		[]string{"result"}, // "success", "failure"
	)

	ScheduleRules = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_schedule_rules",
			Help: "Number of rules in the active schedule table",
		},
		[]string{"kind"}, // "weekly", "event", "override"
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of active API requests",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPoolBuild records the outcome of a pool rebuild. failed is the
// number of page fetches that errored out of total.
func RecordPoolBuild(duration time.Duration, size, failed, total int) {
	PoolBuildDuration.Observe(duration.Seconds())
	switch {
	case failed == 0:
		PoolBuilds.WithLabelValues("complete").Inc()
	case failed < total:
		PoolBuilds.WithLabelValues("partial").Inc()
	default:
		PoolBuilds.WithLabelValues("failed").Inc()
	}
	if failed < total {
		PoolSize.Set(float64(size))
	}
}

// RecordSelection records a daily pick. source is empty when nothing was selected.
func RecordSelection(source string, fallback bool, duration time.Duration) {
	SelectionDuration.Observe(duration.Seconds())
	switch {
	case source == "":
		Selections.WithLabelValues("none", "none").Inc()
	case fallback:
		Selections.WithLabelValues(source, "fallback").Inc()
	default:
		Selections.WithLabelValues(source, "selected").Inc()
	}
}

// RecordScheduleReload records a schedule reload and, on success, the
// size of each rule table.
func RecordScheduleReload(err error, weekly, events, overrides int) {
	if err != nil {
		ScheduleReloads.WithLabelValues("failure").Inc()
		return
	}
	ScheduleReloads.WithLabelValues("success").Inc()
	ScheduleRules.WithLabelValues("weekly").Set(float64(weekly))
	ScheduleRules.WithLabelValues("event").Set(float64(events))
	ScheduleRules.WithLabelValues("override").Set(float64(overrides))
}
