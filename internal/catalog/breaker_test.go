// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

type stubFetcher struct {
	calls atomic.Int32
	err   error
	page  *Page
}

func (s *stubFetcher) Discover(ctx context.Context, filter FilterSpec, page int) (*Page, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func testBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:         name,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  4,
		FailureRatio: 0.5,
	}
}

func TestBreakerClient_PassesThrough(t *testing.T) {
	stub := &stubFetcher{page: &Page{Page: 1, Results: []Movie{{ID: 1}}}}
	b := NewBreakerClient(stub, testBreakerSettings("test-pass"))

	page, err := b.Discover(context.Background(), FilterSpec{}, 1)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != 1 {
		t.Errorf("Discover() = %+v", page)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerClient_TripsOnTransientFailures(t *testing.T) {
	stub := &stubFetcher{err: &Error{Op: "discover", StatusCode: 503, Err: ErrServer}}
	b := NewBreakerClient(stub, testBreakerSettings("test-trip"))

	for i := 0; i < 4; i++ {
		if _, err := b.Discover(context.Background(), FilterSpec{}, 1); !errors.Is(err, ErrServer) {
			t.Fatalf("call %d error = %v, want ErrServer", i, err)
		}
	}

	if !b.Open() {
		t.Fatalf("State() = %q after 4 failures, want open", b.State())
	}

	_, err := b.Discover(context.Background(), FilterSpec{}, 1)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Discover() while open error = %v, want ErrOpenState", err)
	}
	if got := stub.calls.Load(); got != 4 {
		t.Errorf("upstream calls = %d, want 4 (open breaker must not call through)", got)
	}
}

func TestBreakerClient_PermanentErrorsDoNotTrip(t *testing.T) {
	stub := &stubFetcher{err: &Error{Op: "discover", StatusCode: 401, Err: ErrUnauthorized}}
	b := NewBreakerClient(stub, testBreakerSettings("test-permanent"))

	for i := 0; i < 10; i++ {
		if _, err := b.Discover(context.Background(), FilterSpec{}, 1); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("call %d error = %v, want ErrUnauthorized", i, err)
		}
	}
	if b.Open() {
		t.Error("breaker opened on authentication errors")
	}
}

func TestBreakerSettings_Defaults(t *testing.T) {
	s := BreakerSettings{}.withDefaults()
	d := DefaultBreakerSettings()
	if s != d {
		t.Errorf("withDefaults() = %+v, want %+v", s, d)
	}

	custom := BreakerSettings{Name: "x", FailureRatio: 2}.withDefaults()
	if custom.Name != "x" {
		t.Errorf("Name = %q, want x", custom.Name)
	}
	if custom.FailureRatio != d.FailureRatio {
		t.Errorf("FailureRatio = %v, want default for out-of-range input", custom.FailureRatio)
	}
}

func TestStateToString(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		str   string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.str)
		}
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
	}
}
