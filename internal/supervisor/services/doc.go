// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services adapts Marquee components to suture's Serve(ctx) model.

# Available Services

APIServerService serves the API router. Every Serve call binds a new
listener and *http.Server, so suture can restart it after a bind or serve
failure. Context cancellation drains in-flight requests within
ShutdownTimeout.

PoolWarmerService keeps the global candidate pool warm: an optional build
at start, then a rebuild every interval (the pool TTL by default). Failed
builds are logged and retried on the next tick instead of crashing the
service, because the builder can keep serving a stale pool.

ScheduleWatchService watches the schedule file and unwatches on shutdown.
Reload callbacks are registered on the watcher itself.

PeriodicService runs a named function on a fixed interval. It backs the
badger value-log GC and the selection cache purge.

All services implement fmt.Stringer so suture logs name them.
*/
package services
