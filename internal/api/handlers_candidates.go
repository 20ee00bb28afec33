// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/pool"
)

// Candidates handles GET /api/v1/candidates. Pass items=true to include
// the candidates themselves.
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.pool == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Candidate pool is not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	p, err := h.pool.Pool(ctx)
	if err != nil {
		h.respondPoolError(w, err)
		return
	}

	respondSuccess(w, h.summarize(p, getBoolParam(r, "items", false)), start, false)
}

// RefreshCandidates handles POST /api/v1/candidates/refresh.
func (h *Handler) RefreshCandidates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.pool == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Candidate pool is not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	p, err := h.pool.Refresh(ctx)
	if err != nil {
		h.respondPoolError(w, err)
		return
	}

	h.logger.Info().Int("size", len(p.Items)).Msg("Candidate pool refreshed via API")
	respondSuccess(w, h.summarize(p, false), start, false)
}

func (h *Handler) summarize(p *pool.Pool, withItems bool) *models.CandidatesSummary {
	s := &models.CandidatesSummary{
		BuiltAt:   p.BuiltAt,
		ExpiresAt: p.BuiltAt.Add(h.pool.TTL()),
		Size:      len(p.Items),
		Counts:    p.Counts(),
	}
	if withItems {
		s.Items = p.Items
	}
	return s
}

func (h *Handler) respondPoolError(w http.ResponseWriter, err error) {
	if errors.Is(err, pool.ErrNoCandidates) {
		respondError(w, http.StatusServiceUnavailable, "NO_CANDIDATES", "No candidates available", err)
		return
	}
	respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load candidate pool", err)
}
