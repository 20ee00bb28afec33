// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/pool"
	"github.com/tomtom215/marquee/internal/schedule"
	"github.com/tomtom215/marquee/internal/selector"
)

var (
	// ErrNoSelection means no movie could be picked for the date, usually
	// because the catalog is unreachable.
	ErrNoSelection = errors.New("recommend: no selection available")

	// ErrNoCandidates means the global candidate pool is empty.
	ErrNoCandidates = pool.ErrNoCandidates
)

// CandidateSource supplies the global candidate pool (*pool.Builder).
type CandidateSource interface {
	Candidates(ctx context.Context) ([]pool.Candidate, error)
}

// Source identifies which rule produced a selection.
type Source string

const (
	SourceManual   Source = "manual"
	SourcePremiere Source = "premiere"
	SourceEvent    Source = "event"
	SourceWeekly   Source = "weekly"
)

// String returns the source name.
func (s Source) String() string {
	return string(s)
}

// sourceForKind maps a rule kind to a selection source.
func sourceForKind(k schedule.Kind) Source {
	switch k {
	case schedule.KindManual:
		return SourceManual
	case schedule.KindEvent:
		return SourceEvent
	default:
		return SourceWeekly
	}
}

// DailySelection is the movie chosen for a date and why.
type DailySelection struct {
	// Date is the UTC calendar date, YYYY-MM-DD.
	Date string `json:"date"`

	// Item is the chosen movie. Manual overrides carry only ID and Title.
	Item catalog.Movie `json:"item"`

	Source  Source           `json:"source"`
	Context schedule.Context `json:"context"`

	// ThemeID is set for event and weekly picks.
	ThemeID string `json:"theme_id,omitempty"`

	// Position and PoolSize describe where in the theme's listing the pick
	// was taken from. Nil for manual and premiere picks.
	Position *selector.Position `json:"position,omitempty"`
	PoolSize int                `json:"pool_size,omitempty"`

	// Fallback is true when the computed page was short and the first
	// item of page 1 was used instead.
	Fallback bool `json:"fallback"`
}

// Stats summarises engine activity since start.
type Stats struct {
	Selections int64 `json:"selections"`
	Overrides  int64 `json:"overrides"`
	Premieres  int64 `json:"premieres"`
	Fallbacks  int64 `json:"fallbacks"`
	Failures   int64 `json:"failures"`
}
