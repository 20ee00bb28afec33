// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee answers one question per calendar day: which movie should be
featured today? The answer is deterministic, so every instance that shares a
schedule and catalog returns the same pick for the same date.

# Application Architecture

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   ├── Pool warmer (rebuilds the candidate pool every TTL)
	│   └── Badger GC (badger backend only)
	├── ControlSupervisor ("control-layer")
	│   ├── Schedule watcher (SCHEDULE_PATH with SCHEDULE_WATCH=true)
	│   └── Selection cache purge
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: koanf v2 (defaults, config file, environment)
 2. Logging: zerolog, JSON or console
 3. Store: BadgerDB on disk, or in memory
 4. Catalog client: TMDB discover API with rate limiting and a circuit breaker
 5. Schedule: built-in table or a YAML file, optionally hot-reloaded
 6. Candidate pool builder and recommendation engine
 7. HTTP API: chi router with CORS, rate limiting and Prometheus metrics
 8. Supervisor tree: suture v4

# Configuration

Precedence: environment variables > config file > defaults.

	TMDB_READ_ACCESS_TOKEN=<token>   # or TMDB_API_KEY
	HTTP_PORT=8080
	STORE_BACKEND=badger             # badger or memory
	STORE_PATH=/data/marquee
	SCHEDULE_PATH=/etc/marquee/schedule.yaml
	SCHEDULE_WATCH=true
	LOG_LEVEL=info
	LOG_FORMAT=json

The config file is read from $CONFIG_PATH or the first of DefaultConfigPaths
that exists. Changing logging.level in that file takes effect without a
restart.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
server.shutdown_timeout, then the store is closed.
*/
package main
