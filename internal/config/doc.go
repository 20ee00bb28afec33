// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config loads and validates Marquee's runtime configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, else config.yaml, config.yml,
    /etc/marquee/config.yaml
 3. Environment variables, through an explicit mapping table so unrelated
    variables never leak into the configuration

The schedule tables (weekly themes, events, overrides) are a separate YAML
document referenced by schedule.path and loaded by package schedule.

# Environment Variables

Catalog:
  - TMDB_API_KEY: v3 API key
  - TMDB_READ_ACCESS_TOKEN: v4 bearer token (alternative to the API key)
  - TMDB_BASE_URL, TMDB_LANGUAGE, TMDB_REGION
  - CATALOG_TIMEOUT, CATALOG_RATE_LIMIT, CATALOG_RATE_BURST
  - CATALOG_BREAKER_ENABLED

Candidate pool:
  - MARQUEE_POOL_TTL: pool cache lifetime (default: 24h)
  - MARQUEE_POOL_PAGES: pages fetched per query (default: 2)
  - MARQUEE_POOL_SERVE_STALE: serve an expired pool when a rebuild fails
  - MARQUEE_POOL_WARM: build the pool at startup
  - MARQUEE_POOL_BUILD_TIMEOUT: bound on one shared rebuild (default: 2m)

Store:
  - STORE_BACKEND: badger or memory (default: badger)
  - STORE_PATH: badger directory (default: /data/marquee)

Schedule and engine:
  - SCHEDULE_PATH, SCHEDULE_WATCH
  - PREMIERE_ENABLED, PREMIERE_MIN_POPULARITY
  - SELECTION_CACHE_TTL, SELECTION_CACHE_SIZE

Server and logging:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
  - CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
    DISABLE_RATE_LIMIT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
