// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/selector"
)

type selectorRequest struct {
	Date     string `query:"date" validate:"omitempty,calendar_date"`
	PoolSize int    `query:"pool_size" validate:"min=1,max=10000"`
}

// Schedule handles GET /api/v1/schedule.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	table := h.schedule.Current()
	source := h.schedule.Path()
	if source == "" {
		source = "built-in"
	}

	respondSuccess(w, &models.ScheduleView{
		Source:         source,
		Weekly:         table.Weekly,
		Events:         table.Events,
		Overrides:      table.Overrides,
		EventPoolSize:  table.EventPoolSize,
		WeeklyPoolSize: table.WeeklyPoolSize,
	}, start, false)
}

// ResolveSchedule handles GET /api/v1/schedule/resolve?date=. It makes no
// catalog calls.
func (h *Handler) ResolveSchedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := dailyRequest{Date: r.URL.Query().Get("date")}
	if !validateRequest(w, &req) {
		return
	}

	respondSuccess(w, h.schedule.Resolve(h.resolveDate(req.Date)), start, false)
}

// SelectorIndex handles GET /api/v1/selector/index?date=&pool_size=.
// Without pool_size the pool size of the date's rule is used.
func (h *Handler) SelectorIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := selectorRequest{Date: r.URL.Query().Get("date")}
	date := h.resolveDate(req.Date)

	size, ok := getIntParam(r, "pool_size", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "pool_size must be an integer", nil)
		return
	}
	if size == 0 {
		size = h.schedule.Resolve(date).PoolSize
	}
	req.PoolSize = size
	if !validateRequest(w, &req) { // also rejects a malformed date
		return
	}

	pos := selector.ForDate(date, req.PoolSize)
	respondSuccess(w, map[string]interface{}{
		"date":        date.Format("2006-01-02"),
		"day_of_year": selector.DayOfYear(date),
		"pool_size":   req.PoolSize,
		"position":    pos,
	}, start, false)
}
