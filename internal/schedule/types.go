// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package schedule

import (
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
)

// Default candidate budgets when a theme does not set PoolSize.
const (
	DefaultEventPoolSize  = 200
	DefaultWeeklyPoolSize = 1000
)

// DefaultOverrideName labels a manual override that has no name of its own.
const DefaultOverrideName = "Special Event"

// Kind identifies which rule table produced a Resolution.
type Kind string

const (
	KindManual Kind = "manual"
	KindEvent  Kind = "event"
	KindWeekly Kind = "weekly"
)

// Theme is a named catalog filter with a candidate budget.
type Theme struct {
	ID          string             `koanf:"id" json:"id" validate:"required"`
	Name        string             `koanf:"name" json:"name" validate:"required"`
	Description string             `koanf:"description" json:"description,omitempty"`
	Filter      catalog.FilterSpec `koanf:"filter" json:"filter"`

	// PoolSize is how many top results the permutation ranges over.
	// Zero means the table's default for the rule kind.
	PoolSize int `koanf:"pool_size" json:"pool_size,omitempty" validate:"gte=0,lte=10000"`
}

// Event binds a Theme to an exact day ("MM-DD") or a month ("MM").
type Event struct {
	Key   string `koanf:"key" json:"key" validate:"required,event_key"`
	Theme Theme  `koanf:"theme" json:"theme"`
}

// Override pins a specific catalog item to a day.
type Override struct {
	Key         string `koanf:"key" json:"key" validate:"required,day_key"`
	ItemID      int    `koanf:"item_id" json:"item_id" validate:"gt=0"`
	Title       string `koanf:"title" json:"title,omitempty"`
	Name        string `koanf:"name" json:"name,omitempty"`
	Description string `koanf:"description" json:"description,omitempty"`
}

// Context is the human-facing label attached to a pick.
type Context struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Date time.Time `json:"date"`
	Kind Kind      `json:"kind"`

	// MatchedKey is the "MM-DD" or "MM" key that matched, or the weekday
	// name for weekly rules.
	MatchedKey string `json:"matched_key"`

	// Theme is nil for manual overrides.
	Theme *Theme `json:"theme,omitempty"`

	// Override is set only for manual overrides.
	Override *Override `json:"override,omitempty"`

	// PoolSize is the effective candidate budget (0 for manual).
	PoolSize int     `json:"pool_size"`
	Context  Context `json:"context"`
}
