// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package selector

import (
	"fmt"
	"time"
)

// PageSize is the number of results the catalog returns per page.
// Offsets computed by PositionOf are always in [0, PageSize).
const PageSize = 20

const (
	yearMultiplier = 123
	dayMultiplier  = 997
)

// Position locates a permutation index inside a paged listing.
type Position struct {
	Index  int `json:"index"`
	Page   int `json:"page"`   // 1-based
	Offset int `json:"offset"` // 0-based within Page
}

// String returns a compact human-readable form used in logs.
func (p Position) String() string {
	return fmt.Sprintf("index=%d page=%d offset=%d", p.Index, p.Page, p.Offset)
}

// DayOfYear returns the 1-based ordinal day of t's UTC calendar date.
// January 1st is day 1 regardless of the caller's local timezone.
func DayOfYear(t time.Time) int {
	return t.UTC().YearDay()
}

// PermutationIndex returns (year*123 + dayOfYear*997) mod poolSize,
// normalized into [0, poolSize). A non-positive poolSize yields 0.
func PermutationIndex(dayOfYear, poolSize, year int) int {
	if poolSize <= 0 {
		return 0
	}
	idx := (year*yearMultiplier + dayOfYear*dayMultiplier) % poolSize
	if idx < 0 {
		idx += poolSize
	}
	return idx
}

// PositionOf converts an index into a 1-based page and 0-based offset.
func PositionOf(index int) Position {
	if index < 0 {
		index = 0
	}
	return Position{
		Index:  index,
		Page:   index/PageSize + 1,
		Offset: index % PageSize,
	}
}

// ForDate is the composition used by the recommendation engine: UTC
// day-of-year and year of date, permuted over poolSize and located on a page.
func ForDate(date time.Time, poolSize int) Position {
	u := date.UTC()
	return PositionOf(PermutationIndex(DayOfYear(u), poolSize, u.Year()))
}
