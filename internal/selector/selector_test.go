// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package selector

import (
	"testing"
	"time"
)

func TestDayOfYear(t *testing.T) {
	plus5 := time.FixedZone("UTC+5", 5*60*60)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"first day of year", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{"last day of common year", time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC), 365},
		{"last day of leap year", time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), 366},
		{"leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 60},
		{"local midnight maps to previous UTC day", time.Date(2023, 1, 1, 0, 30, 0, 0, plus5), 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayOfYear(tt.date); got != tt.want {
				t.Errorf("DayOfYear(%v) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}

	t.Run("deterministic", func(t *testing.T) {
		d := time.Date(2023, 7, 4, 8, 0, 0, 0, time.UTC)
		for i := 0; i < 10; i++ {
			if got := DayOfYear(d); got != 185 {
				t.Fatalf("DayOfYear() = %d on iteration %d, want 185", got, i)
			}
		}
	})
}

func TestPermutationIndex(t *testing.T) {
	tests := []struct {
		name      string
		dayOfYear int
		poolSize  int
		year      int
		want      int
	}{
		{"reference day", 100, 500, 2023, 29},
		{"next day", 101, 500, 2023, 26},
		{"next year", 100, 500, 2024, 152},
		{"pool of one", 200, 1, 2023, 0},
		{"zero pool", 10, 0, 2023, 0},
		{"negative pool", 10, -5, 2023, 0},
		{"negative input normalized", -1000, 7, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PermutationIndex(tt.dayOfYear, tt.poolSize, tt.year); got != tt.want {
				t.Errorf("PermutationIndex(%d, %d, %d) = %d, want %d",
					tt.dayOfYear, tt.poolSize, tt.year, got, tt.want)
			}
		})
	}
}

func TestPermutationIndex_Range(t *testing.T) {
	for _, poolSize := range []int{1, 7, 20, 200, 1000} {
		for year := 1999; year <= 2031; year++ {
			for day := 1; day <= 366; day++ {
				idx := PermutationIndex(day, poolSize, year)
				if idx < 0 || idx >= poolSize {
					t.Fatalf("PermutationIndex(%d, %d, %d) = %d, out of [0,%d)",
						day, poolSize, year, idx, poolSize)
				}
			}
		}
	}
}

func TestPermutationIndex_Spread(t *testing.T) {
	t.Run("adjacent days differ", func(t *testing.T) {
		a := PermutationIndex(100, 500, 2023)
		b := PermutationIndex(101, 500, 2023)
		if a == b {
			t.Errorf("adjacent days both map to index %d", a)
		}
	})

	t.Run("same day next year differs", func(t *testing.T) {
		a := PermutationIndex(100, 500, 2023)
		b := PermutationIndex(100, 500, 2024)
		if a == b {
			t.Errorf("consecutive years both map to index %d", a)
		}
	})

	t.Run("a year of picks covers most of a weekly pool", func(t *testing.T) {
		seen := make(map[int]bool)
		for day := 1; day <= 365; day++ {
			seen[PermutationIndex(day, 1000, 2023)] = true
		}
		// 997 is coprime with 1000, so all 365 days are distinct.
		if len(seen) != 365 {
			t.Errorf("distinct indexes = %d, want 365", len(seen))
		}
	})
}

func TestPositionOf(t *testing.T) {
	tests := []struct {
		index      int
		wantPage   int
		wantOffset int
	}{
		{0, 1, 0},
		{19, 1, 19},
		{20, 2, 0},
		{29, 2, 9},
		{152, 8, 12},
		{999, 50, 19},
		{-3, 1, 0},
	}

	for _, tt := range tests {
		pos := PositionOf(tt.index)
		if pos.Page != tt.wantPage || pos.Offset != tt.wantOffset {
			t.Errorf("PositionOf(%d) = page %d offset %d, want page %d offset %d",
				tt.index, pos.Page, pos.Offset, tt.wantPage, tt.wantOffset)
		}
		if pos.Offset < 0 || pos.Offset >= PageSize {
			t.Errorf("PositionOf(%d).Offset = %d, out of range", tt.index, pos.Offset)
		}
	}
}

func TestForDate(t *testing.T) {
	// 2023-04-10 is day 100 of 2023.
	date := time.Date(2023, 4, 10, 18, 0, 0, 0, time.UTC)
	if DayOfYear(date) != 100 {
		t.Fatalf("DayOfYear(%v) = %d, want 100", date, DayOfYear(date))
	}

	pos := ForDate(date, 500)
	want := Position{Index: 29, Page: 2, Offset: 9}
	if pos != want {
		t.Errorf("ForDate() = %+v, want %+v", pos, want)
	}

	again := ForDate(date.Add(3*time.Hour), 500)
	if again != pos {
		t.Errorf("ForDate() later the same day = %+v, want %+v", again, pos)
	}
}
