// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"time"

	"github.com/tomtom215/marquee/internal/pool"
	"github.com/tomtom215/marquee/internal/schedule"
)

// APIResponse is the envelope for every API response.
//
// Status is "success" (see Data) or "error" (see Error).
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine-readable error code with a human message.
//
// Codes: BAD_REQUEST, VALIDATION_ERROR, NO_RECOMMENDATION, NO_CANDIDATES,
// SERVICE_UNAVAILABLE, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the readiness report.
type HealthStatus struct {
	Status        string    `json:"status"` // "healthy" or "degraded"
	Version       string    `json:"version"`
	Uptime        float64   `json:"uptime_seconds"`
	CatalogState  string    `json:"catalog_breaker_state"`
	ScheduleRules RuleCount `json:"schedule_rules"`
}

// RuleCount is the size of each schedule table.
type RuleCount struct {
	Weekly    int `json:"weekly"`
	Events    int `json:"events"`
	Overrides int `json:"overrides"`
}

// CandidatesSummary describes the global candidate pool.
type CandidatesSummary struct {
	BuiltAt   time.Time           `json:"built_at"`
	ExpiresAt time.Time           `json:"expires_at"`
	Size      int                 `json:"size"`
	Counts    map[pool.Source]int `json:"counts"`
	Items     []pool.Candidate    `json:"items,omitempty"`
}

// Shortlist is the deterministic list of candidates for a date.
type Shortlist struct {
	Date  string           `json:"date"`
	Items []pool.Candidate `json:"items"`
}

// ScheduleView is the active schedule.
type ScheduleView struct {
	Source         string              `json:"source"` // file path, or "built-in"
	Weekly         []schedule.Theme    `json:"weekly"`
	Events         []schedule.Event    `json:"events"`
	Overrides      []schedule.Override `json:"overrides"`
	EventPoolSize  int                 `json:"event_pool_size"`
	WeeklyPoolSize int                 `json:"weekly_pool_size"`
}
