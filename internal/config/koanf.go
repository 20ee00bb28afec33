// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/marquee/internal/catalog"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. They are applied first,
// then overridden by the config file and environment variables.
func defaultConfig() *Config {
	breaker := catalog.DefaultBreakerSettings()
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:             catalog.DefaultBaseURL,
			Language:            "en-US",
			Timeout:             10 * time.Second,
			RateLimitPerSecond:  20,
			RateLimitBurst:      10,
			BreakerEnabled:      true,
			BreakerMaxRequests:  breaker.MaxRequests,
			BreakerInterval:     breaker.Interval,
			BreakerTimeout:      breaker.Timeout,
			BreakerMinRequests:  breaker.MinRequests,
			BreakerFailureRatio: breaker.FailureRatio,
		},
		Pool: PoolConfig{
			TTL:           24 * time.Hour,
			PagesPerQuery: 2,
			CacheKey:      "pool:candidates:v1",
			ServeStale:    true,
			WarmOnStart:   true,
			BuildTimeout:  2 * time.Minute,
		},
		Store: StoreConfig{
			Backend:    StoreBadger,
			Path:       "/data/marquee",
			GCInterval: 30 * time.Minute,
		},
		Schedule: ScheduleConfig{
			Path:  "",
			Watch: true,
		},
		Recommend: RecommendConfig{
			PremiereEnabled:       true,
			PremiereMinPopularity: 50,
			PremiereReleaseTypes:  []int{2, 3},
			ShortlistDefault:      5,
			ShortlistMax:          20,
			SelectionCacheTTL:     10 * time.Minute,
			SelectionCacheSize:    366,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			Timeout:           30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, the first config file
// found, and environment variables, then validates it.
//
// Precedence: ENV > File > Defaults.
func Load() (*Config, error) {
	return LoadFile(FindConfigFile())
}

// LoadFile is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// FindConfigFile returns $CONFIG_PATH or the first existing default
// config file, or "".
func FindConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive
// as strings from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"recommend.premiere_release_types",
}

// processSliceFields converts comma-separated strings to slices for known
// slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config paths.
var envMappings = map[string]string{
	// Catalog
	"tmdb_api_key":            "catalog.api_key",
	"tmdb_read_access_token":  "catalog.bearer_token",
	"tmdb_base_url":           "catalog.base_url",
	"tmdb_language":           "catalog.language",
	"tmdb_region":             "catalog.region",
	"catalog_timeout":         "catalog.timeout",
	"catalog_rate_limit":      "catalog.rate_limit_per_second",
	"catalog_rate_burst":      "catalog.rate_limit_burst",
	"catalog_breaker_enabled": "catalog.breaker_enabled",

	// Candidate pool
	"marquee_pool_ttl":           "pool.ttl",
	"marquee_pool_pages":         "pool.pages_per_query",
	"marquee_pool_serve_stale":   "pool.serve_stale",
	"marquee_pool_warm":          "pool.warm_on_start",
	"marquee_pool_build_timeout": "pool.build_timeout",

	// Store
	"store_backend":     "store.backend",
	"store_path":        "store.path",
	"store_gc_interval": "store.gc_interval",

	// Schedule
	"schedule_path":  "schedule.path",
	"schedule_watch": "schedule.watch",

	// Recommendation engine
	"premiere_enabled":        "recommend.premiere_enabled",
	"premiere_min_popularity": "recommend.premiere_min_popularity",
	"premiere_release_types":  "recommend.premiere_release_types",
	"shortlist_default":       "recommend.shortlist_default",
	"shortlist_max":           "recommend.shortlist_max",
	"selection_cache_ttl":     "recommend.selection_cache_ttl",
	"selection_cache_size":    "recommend.selection_cache_size",

	// Server
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config path.
// Unmapped variables return "" and are skipped.
//
// Examples:
//   - TMDB_API_KEY -> catalog.api_key
//   - MARQUEE_POOL_TTL -> pool.ttl
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile calls callback whenever the file at path changes. The
// caller reloads and swaps the configuration itself.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
