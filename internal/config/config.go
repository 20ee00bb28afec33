// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"time"
)

// Store backends.
const (
	StoreBadger = "badger"
	StoreMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Pool      PoolConfig      `koanf:"pool"`
	Store     StoreConfig     `koanf:"store"`
	Schedule  ScheduleConfig  `koanf:"schedule"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig configures the catalog client and its circuit breaker.
type CatalogConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required,url"`
	APIKey      string        `koanf:"api_key"`
	BearerToken string        `koanf:"bearer_token"`
	Language    string        `koanf:"language"`
	Region      string        `koanf:"region" validate:"omitempty,len=2"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`

	// RateLimitPerSecond <= 0 disables client-side rate limiting.
	RateLimitPerSecond float64 `koanf:"rate_limit_per_second"`
	RateLimitBurst     int     `koanf:"rate_limit_burst" validate:"gte=0"`

	BreakerEnabled      bool          `koanf:"breaker_enabled"`
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval" validate:"gte=0"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout" validate:"gte=0"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio" validate:"gte=0,lte=1"`
}

// HasCredentials reports whether an API key or bearer token is set.
func (c CatalogConfig) HasCredentials() bool {
	return c.APIKey != "" || c.BearerToken != ""
}

// PoolConfig configures the global candidate pool.
type PoolConfig struct {
	TTL           time.Duration `koanf:"ttl" validate:"gt=0"`
	PagesPerQuery int           `koanf:"pages_per_query" validate:"min=1,max=500"`
	CacheKey      string        `koanf:"cache_key" validate:"required"`
	ServeStale    bool          `koanf:"serve_stale"`
	WarmOnStart   bool          `koanf:"warm_on_start"`
	BuildTimeout  time.Duration `koanf:"build_timeout" validate:"gte=0"`
}

// StoreConfig selects the local cache backend.
type StoreConfig struct {
	Backend    string        `koanf:"backend" validate:"oneof=badger memory"`
	Path       string        `koanf:"path" validate:"required_if=Backend badger"`
	GCInterval time.Duration `koanf:"gc_interval" validate:"gte=0"`
}

// ScheduleConfig locates the schedule tables. An empty Path uses the
// built-in schedule.
type ScheduleConfig struct {
	Path  string `koanf:"path"`
	Watch bool   `koanf:"watch"`
}

// RecommendConfig tunes the recommendation engine and the selection cache.
type RecommendConfig struct {
	PremiereEnabled       bool          `koanf:"premiere_enabled"`
	PremiereMinPopularity float64       `koanf:"premiere_min_popularity" validate:"gte=0"`
	PremiereReleaseTypes  []int         `koanf:"premiere_release_types" validate:"dive,min=1,max=6"`
	ShortlistDefault      int           `koanf:"shortlist_default" validate:"min=1"`
	ShortlistMax          int           `koanf:"shortlist_max" validate:"min=1,gtefield=ShortlistDefault"`
	SelectionCacheTTL     time.Duration `koanf:"selection_cache_ttl" validate:"gte=0"`
	SelectionCacheSize    int           `koanf:"selection_cache_size" validate:"gte=0"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}
