// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package schedule

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestDefault_Resolve(t *testing.T) {
	table := Default()

	tests := []struct {
		name     string
		date     time.Time
		kind     Kind
		key      string
		themeID  string
		poolSize int
		itemID   int
	}{
		{"manual override", date(2024, 5, 4), KindManual, "05-04", "", 0, 11},
		{"exact event beats month event", date(2024, 10, 31), KindEvent, "10-31", "halloween", 100, 0},
		{"month event", date(2024, 10, 15), KindEvent, "10", "spooky-season", DefaultEventPoolSize, 0},
		{"exact december event", date(2024, 12, 25), KindEvent, "12-25", "christmas", DefaultEventPoolSize, 0},
		{"december month event", date(2024, 12, 10), KindEvent, "12", "holiday-season", DefaultEventPoolSize, 0},
		{"weekly wednesday", date(2024, 3, 13), KindWeekly, "wednesday", "animation-wednesday", DefaultWeeklyPoolSize, 0},
		{"weekly sunday", date(2024, 3, 10), KindWeekly, "sunday", "sunday-classics", DefaultWeeklyPoolSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := table.Resolve(tt.date)
			if res.Kind != tt.kind {
				t.Fatalf("Kind = %q, want %q", res.Kind, tt.kind)
			}
			if res.MatchedKey != tt.key {
				t.Errorf("MatchedKey = %q, want %q", res.MatchedKey, tt.key)
			}
			if res.PoolSize != tt.poolSize {
				t.Errorf("PoolSize = %d, want %d", res.PoolSize, tt.poolSize)
			}
			if tt.kind == KindManual {
				if res.Override == nil || res.Override.ItemID != tt.itemID {
					t.Errorf("Override = %+v, want item %d", res.Override, tt.itemID)
				}
				if res.Theme != nil {
					t.Error("manual resolution carries a theme")
				}
				return
			}
			if res.Theme == nil || res.Theme.ID != tt.themeID {
				t.Errorf("Theme = %+v, want %q", res.Theme, tt.themeID)
			}
			if res.Context.Name == "" {
				t.Error("Context.Name is empty")
			}
		})
	}
}

func TestResolve_UsesUTC(t *testing.T) {
	// 23:30 on Oct 31 in UTC-5 is already Nov 1 (a Friday) in UTC.
	est := time.FixedZone("UTC-5", -5*60*60)
	res := Default().Resolve(time.Date(2024, 10, 31, 23, 30, 0, 0, est))

	if res.Kind != KindWeekly || res.Theme.ID != "feel-good-friday" {
		t.Errorf("Resolve() = %s/%v, want weekly feel-good-friday", res.Kind, res.Theme)
	}
	if got := res.Date.Format("2006-01-02"); got != "2024-11-01" {
		t.Errorf("Date = %s, want 2024-11-01", got)
	}
}

func TestResolve_EveryWeekdayHasATheme(t *testing.T) {
	table := Default()
	seen := make(map[string]bool)
	// 2024-03-10 .. 2024-03-16 is a plain Sunday..Saturday with no events.
	for i := 0; i < 7; i++ {
		res := table.Resolve(date(2024, 3, 10+i))
		if res.Kind != KindWeekly {
			t.Fatalf("day %d resolved to %s", i, res.Kind)
		}
		seen[res.Theme.ID] = true
	}
	if len(seen) != 7 {
		t.Errorf("distinct weekly themes = %d, want 7", len(seen))
	}
}

func TestResolve_OverrideDefaultName(t *testing.T) {
	table := mustParse(t, weeklyYAML(7)+`
overrides:
  - key: "07-04"
    item_id: 42
`)
	res := table.Resolve(date(2025, 7, 4))
	if res.Context.Name != DefaultOverrideName {
		t.Errorf("Context.Name = %q, want %q", res.Context.Name, DefaultOverrideName)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	table := Default()
	d := date(2023, 6, 6)
	first := table.Resolve(d)
	for i := 0; i < 5; i++ {
		if got := table.Resolve(d); got.MatchedKey != first.MatchedKey || got.PoolSize != first.PoolSize {
			t.Fatalf("Resolve() not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestResolve_UncompiledTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Resolve() on zero Table did not panic")
		}
	}()
	var table Table
	table.Resolve(time.Now())
}

func TestStats(t *testing.T) {
	weekly, events, overrides := Default().Stats()
	if weekly != 7 || events != 6 || overrides != 2 {
		t.Errorf("Stats() = %d/%d/%d, want 7/6/2", weekly, events, overrides)
	}
}

func TestKeys(t *testing.T) {
	d := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
	if got := DayKey(d); got != "02-09" {
		t.Errorf("DayKey() = %q, want 02-09", got)
	}
	if got := MonthKey(d); got != "02" {
		t.Errorf("MonthKey() = %q, want 02", got)
	}

	valid := []string{"01-01", "02-29", "12-31", "10-31"}
	invalid := []string{"", "1-1", "13-01", "00-10", "02-30", "04-31", "12/25", "ab-cd"}
	for _, k := range valid {
		if !validDayKey(k) {
			t.Errorf("validDayKey(%q) = false", k)
		}
	}
	for _, k := range invalid {
		if validDayKey(k) {
			t.Errorf("validDayKey(%q) = true", k)
		}
	}
	if !validMonthKey("10") || validMonthKey("13") || validMonthKey("1") {
		t.Error("validMonthKey() misclassifies")
	}
}

// weeklyYAML returns a table document with n weekly themes.
func weeklyYAML(n int) string {
	var b strings.Builder
	b.WriteString("weekly:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  - id: day-%d\n    name: Day %d\n    filter:\n      sort_by: popularity.desc\n", i, i)
	}
	return b.String()
}

func mustParse(t *testing.T, doc string) *Table {
	t.Helper()
	table, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return table
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"six weekly themes", weeklyYAML(6), ErrIncompleteWeek},
		{"no weekly themes", "events: []\n", ErrIncompleteWeek},
		{"bad event month", weeklyYAML(7) + "events:\n  - key: \"13\"\n    theme: {id: x, name: X}\n", ErrInvalidKey},
		{"impossible event day", weeklyYAML(7) + "events:\n  - key: \"02-30\"\n    theme: {id: x, name: X}\n", ErrInvalidKey},
		{"month key on override", weeklyYAML(7) + "overrides:\n  - key: \"05\"\n    item_id: 1\n", ErrInvalidKey},
		{"duplicate event", weeklyYAML(7) + "events:\n  - key: \"10\"\n    theme: {id: a, name: A}\n  - key: \"10\"\n    theme: {id: b, name: B}\n", ErrDuplicateKey},
		{"duplicate override", weeklyYAML(7) + "overrides:\n  - key: \"05-04\"\n    item_id: 1\n  - key: \"05-04\"\n    item_id: 2\n", ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"override without item", weeklyYAML(7) + "overrides:\n  - key: \"05-04\"\n"},
		{"event theme without name", weeklyYAML(7) + "events:\n  - key: \"10\"\n    theme: {id: x}\n"},
		{"rating out of range", weeklyYAML(7) + "events:\n  - key: \"10\"\n    theme: {id: x, name: X, filter: {min_rating: 11}}\n"},
		{"bad release date", weeklyYAML(7) + "events:\n  - key: \"10\"\n    theme: {id: x, name: X, filter: {released_after: \"1999/01/01\"}}\n"},
		{"weekly theme without name", strings.Replace(weeklyYAML(7), "name: Day 3", "name: \"\"", 1)},
		{"malformed yaml", "weekly: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("Parse() error = nil, want validation failure")
			}
		})
	}
}

func TestParse_PoolSizeDefaultsAndOverrides(t *testing.T) {
	table := mustParse(t, weeklyYAML(7)+`
event_pool_size: 50
weekly_pool_size: 400
events:
  - key: "06"
    theme: {id: june, name: June}
`)
	if res := table.Resolve(date(2025, 6, 2)); res.PoolSize != 50 {
		t.Errorf("event PoolSize = %d, want 50", res.PoolSize)
	}
	if res := table.Resolve(date(2025, 7, 2)); res.PoolSize != 400 {
		t.Errorf("weekly PoolSize = %d, want 400", res.PoolSize)
	}
}

func TestParse_ExtraKeysWithDots(t *testing.T) {
	table := mustParse(t, weeklyYAML(7)+`
events:
  - key: "08"
    theme:
      id: short
      name: Short Films
      filter:
        extra:
          with_runtime.lte: "40"
`)
	res := table.Resolve(date(2025, 8, 1))
	if got := res.Theme.Filter.Extra["with_runtime.lte"]; got != "40" {
		t.Errorf("Extra[with_runtime.lte] = %q, want 40 (extra = %v)", got, res.Theme.Filter.Extra)
	}
}
