// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

type dailyRequest struct {
	Date string `query:"date" validate:"omitempty,calendar_date"`
}

type shortlistRequest struct {
	Date string `query:"date" validate:"omitempty,calendar_date"`
	N    int    `query:"n" validate:"gte=0,lte=100"`
}

// Daily handles GET /api/v1/daily?date=YYYY-MM-DD.
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := dailyRequest{Date: r.URL.Query().Get("date")}
	if !validateRequest(w, &req) {
		return
	}
	date := h.resolveDate(req.Date)
	key := date.Format(validation.DateLayout)

	if sel, ok := h.selections.Get(key); ok {
		metrics.SelectionCacheLookups.WithLabelValues("hit").Inc()
		respondSuccess(w, sel, start, true)
		return
	}
	metrics.SelectionCacheLookups.WithLabelValues("miss").Inc()

	ctx, cancel := context.WithTimeout(logging.ContextWithDate(r.Context(), key), h.requestTimeout)
	defer cancel()

	sel, err := h.engine.DailyMovie(ctx, date)
	if err != nil {
		h.respondEngineError(w, key, err)
		return
	}

	h.selections.Set(key, sel)
	logging.FromContext(ctx, h.logger).Debug().
		Str("source", sel.Source.String()).
		Int("item_id", sel.Item.ID).
		Msg("Daily selection cached")

	respondSuccess(w, sel, start, false)
}

// Shortlist handles GET /api/v1/daily/shortlist?date=&n=.
func (h *Handler) Shortlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, ok := getIntParam(r, "n", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "n must be an integer", nil)
		return
	}
	req := shortlistRequest{Date: r.URL.Query().Get("date"), N: n}
	if !validateRequest(w, &req) {
		return
	}
	date := h.resolveDate(req.Date)
	key := date.Format(validation.DateLayout)

	ctx, cancel := context.WithTimeout(logging.ContextWithDate(r.Context(), key), h.requestTimeout)
	defer cancel()

	items, err := h.engine.Shortlist(ctx, date, req.N)
	if err != nil {
		h.respondEngineError(w, key, err)
		return
	}

	respondSuccess(w, &models.Shortlist{Date: key, Items: items}, start, false)
}

// respondEngineError maps engine errors to API errors.
func (h *Handler) respondEngineError(w http.ResponseWriter, key string, err error) {
	switch {
	case errors.Is(err, recommend.ErrNoSelection):
		respondError(w, http.StatusServiceUnavailable, "NO_RECOMMENDATION",
			fmt.Sprintf("No recommendation available for %s", key), err)
	case errors.Is(err, recommend.ErrNoCandidates):
		respondError(w, http.StatusServiceUnavailable, "NO_CANDIDATES",
			"No candidates available", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "SERVICE_UNAVAILABLE",
			"Catalog did not respond in time", err)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to compute recommendation", err)
	}
}
