// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// HealthLive handles GET /api/v1/health/live. It answers 200 while the
// process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady handles GET /api/v1/health/ready. It answers 503 while the
// catalog circuit breaker is open, since no live pick can succeed then.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := &models.HealthStatus{
		Status:       "healthy",
		Version:      h.version,
		Uptime:       time.Since(h.startTime).Seconds(),
		CatalogState: "unknown",
	}

	if table := h.schedule.Current(); table != nil {
		weekly, events, overrides := table.Stats()
		status.ScheduleRules = models.RuleCount{Weekly: weekly, Events: events, Overrides: overrides}
	}

	code := http.StatusOK
	if h.breaker != nil {
		status.CatalogState = h.breaker.State()
		if h.breaker.Open() {
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, code, &models.APIResponse{
		Status:   "success",
		Data:     status,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
