// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package pool

import (
	"errors"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
)

// ErrNoCandidates is returned when no candidate could be fetched.
var ErrNoCandidates = errors.New("pool: no candidates available")

// Source records which query produced a candidate.
type Source string

const (
	SourceMainstream Source = "mainstream"
	SourceHiddenGem  Source = "hidden-gem"
)

// Candidate is a movie tagged with its provenance.
type Candidate struct {
	catalog.Movie
	Source Source `json:"source"`
}

// Pool is a merged candidate set and the time it was built.
type Pool struct {
	BuiltAt time.Time   `json:"built_at"`
	Items   []Candidate `json:"items"`
}

// Counts returns the number of candidates per source.
func (p *Pool) Counts() map[Source]int {
	out := make(map[Source]int, 2)
	for i := range p.Items {
		out[p.Items[i].Source]++
	}
	return out
}

// Query is one of the fixed filters the pool is built from.
type Query struct {
	Source Source
	Filter catalog.FilterSpec
}

// DefaultQueries returns the mainstream query followed by the hidden-gem
// query. The order is the merge order.
func DefaultQueries() []Query {
	return []Query{
		{
			Source: SourceMainstream,
			Filter: catalog.FilterSpec{
				SortBy:       "popularity.desc",
				MinVoteCount: 1000,
			},
		},
		{
			Source: SourceHiddenGem,
			Filter: catalog.FilterSpec{
				SortBy:       "vote_average.desc",
				MinRating:    7.5,
				MinVoteCount: 200,
				MaxVoteCount: 1500,
			},
		},
	}
}
