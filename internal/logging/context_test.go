// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	id1 := GenerateRequestID()
	id2 := GenerateRequestID()

	if len(id1) != 36 {
		t.Errorf("len(id) = %d, want 36", len(id1))
	}
	if id1 == id2 {
		t.Error("request IDs are not unique")
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || DateFromContext(ctx) != "" {
		t.Fatal("empty context returned values")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithDate(ctx, "2024-02-14")

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
	if got := DateFromContext(ctx); got != "2024-02-14" {
		t.Errorf("DateFromContext() = %q, want 2024-02-14", got)
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "abc")
	ctx = ContextWithDate(ctx, "2024-12-25")

	Ctx(ctx).Info().Msg("resolved")

	out := buf.String()
	for _, want := range []string{`"request_id":"abc"`, `"selection_date":"2024-12-25"`, "resolved"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestFromContext_NoValues(t *testing.T) {
	var buf bytes.Buffer
	l := FromContext(context.Background(), NewTestLogger(&buf))
	l.Info().Msg("plain")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("output %q has request_id without one in context", buf.String())
	}
}

func TestFromContext_ChainsLevelMethods(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRequestID(context.Background(), "req-9")

	FromContext(ctx, NewTestLogger(&buf)).Warn().Msg("cache write failed")
	FromContext(ctx, NewTestLogger(&buf)).Debug().Msg("cached")

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"level":"debug"`, `"request_id":"req-9"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}
