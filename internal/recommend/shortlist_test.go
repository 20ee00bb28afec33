// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/pool"
)

type staticCandidates struct {
	items []pool.Candidate
	err   error
}

func (s *staticCandidates) Candidates(context.Context) ([]pool.Candidate, error) {
	if s.err != nil {
		return []pool.Candidate{}, s.err
	}
	return s.items, nil
}

func candidateList(n int) []pool.Candidate {
	out := make([]pool.Candidate, n)
	for i := range out {
		out[i] = pool.Candidate{Movie: catalog.Movie{ID: i + 1}, Source: pool.SourceMainstream}
	}
	return out
}

func ids(items []pool.Candidate) []int {
	out := make([]int, len(items))
	for i, c := range items {
		out[i] = c.ID
	}
	return out
}

func newShortlistEngine(t *testing.T, src CandidateSource) *Engine {
	t.Helper()
	e, err := NewEngine(newScriptedFetcher(), weeklyRule(1000), src, nil, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestShortlist_StablePerDate(t *testing.T) {
	src := &staticCandidates{items: candidateList(40)}
	e := newShortlistEngine(t, src)
	ctx := context.Background()

	morning, err := e.Shortlist(ctx, time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatalf("Shortlist: %v", err)
	}
	evening, err := e.Shortlist(ctx, time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatalf("Shortlist: %v", err)
	}
	if len(morning) != 10 {
		t.Fatalf("len = %d, want 10", len(morning))
	}
	a, b := ids(morning), ids(evening)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs within a day: %v vs %v", a, b)
		}
	}

	next, err := e.Shortlist(ctx, time.Date(2024, 6, 2, 6, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatalf("Shortlist: %v", err)
	}
	same := true
	for i, id := range ids(next) {
		if id != a[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("consecutive days produced the same shortlist")
	}
}

func TestShortlist_DoesNotMutatePool(t *testing.T) {
	items := candidateList(10)
	src := &staticCandidates{items: items}
	e := newShortlistEngine(t, src)

	if _, err := e.Shortlist(context.Background(), time.Now(), 10); err != nil {
		t.Fatalf("Shortlist: %v", err)
	}
	for i, c := range items {
		if c.ID != i+1 {
			t.Fatalf("pool order changed at %d: %d", i, c.ID)
		}
	}
}

func TestShortlist_Bounds(t *testing.T) {
	e := newShortlistEngine(t, &staticCandidates{items: candidateList(50)})
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		n    int
		want int
	}{
		{0, 5},
		{-3, 5},
		{7, 7},
		{100, 20},
	}
	for _, tt := range tests {
		got, err := e.Shortlist(ctx, now, tt.n)
		if err != nil {
			t.Fatalf("Shortlist(%d): %v", tt.n, err)
		}
		if len(got) != tt.want {
			t.Errorf("Shortlist(%d) len = %d, want %d", tt.n, len(got), tt.want)
		}
	}

	small := newShortlistEngine(t, &staticCandidates{items: candidateList(3)})
	got, err := small.Shortlist(ctx, now, 10)
	if err != nil {
		t.Fatalf("Shortlist: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want whole pool of 3", len(got))
	}
}

func TestShortlist_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := newShortlistEngine(t, nil).Shortlist(ctx, time.Now(), 5); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("nil source: err = %v, want ErrNoCandidates", err)
	}
	if _, err := newShortlistEngine(t, &staticCandidates{}).Shortlist(ctx, time.Now(), 5); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("empty pool: err = %v, want ErrNoCandidates", err)
	}

	failing := &staticCandidates{err: pool.ErrNoCandidates}
	if _, err := newShortlistEngine(t, failing).Shortlist(ctx, time.Now(), 5); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("failing pool: err = %v, want wrapped ErrNoCandidates", err)
	}
}
