// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
)

// Config tunes the engine.
type Config struct {
	// PremiereEnabled lets a movie released on the requested date replace
	// the scheduled pick.
	PremiereEnabled bool `json:"premiere_enabled"`

	// PremiereMinPopularity is the popularity a release must exceed to count.
	PremiereMinPopularity float64 `json:"premiere_min_popularity"`

	// PremiereReleaseTypes restricts premieres to these release types
	// (2 = limited theatrical, 3 = theatrical).
	PremiereReleaseTypes []int `json:"premiere_release_types"`

	// ShortlistDefault and ShortlistMax bound Shortlist's n.
	ShortlistDefault int `json:"shortlist_default"`
	ShortlistMax     int `json:"shortlist_max"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		PremiereEnabled:       true,
		PremiereMinPopularity: 50,
		PremiereReleaseTypes:  []int{2, 3},
		ShortlistDefault:      5,
		ShortlistMax:          20,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.PremiereMinPopularity < 0 {
		return fmt.Errorf("premiere_min_popularity must be non-negative, got %f", c.PremiereMinPopularity)
	}
	for _, rt := range c.PremiereReleaseTypes {
		if rt < 1 || rt > 6 {
			return fmt.Errorf("premiere_release_types: %d is not a release type (1-6)", rt)
		}
	}
	if c.ShortlistMax < 1 {
		return fmt.Errorf("shortlist_max must be positive, got %d", c.ShortlistMax)
	}
	if c.ShortlistDefault < 1 || c.ShortlistDefault > c.ShortlistMax {
		return fmt.Errorf("shortlist_default must be in [1, %d], got %d", c.ShortlistMax, c.ShortlistDefault)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.PremiereReleaseTypes = append([]int(nil), c.PremiereReleaseTypes...)
	return &out
}
