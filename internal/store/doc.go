// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package store is the local key-value cache the candidate pool is
// persisted in between rebuilds.
//
// Values are opaque strings; TTL semantics belong to the caller (the pool
// builder stores its own build timestamp), so a store never expires
// entries on its own.
//
// Two backends implement Store:
//   - Badger: persistent, survives restarts (dgraph-io/badger/v4)
//   - Memory: process-local map for tests and the CLI
package store
