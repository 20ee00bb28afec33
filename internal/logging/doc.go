// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides centralized zerolog-based structured logging for Marquee.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("date", "2024-10-31").Msg("Daily pick resolved")
//	logging.Error().Err(err).Msg("Pool rebuild failed")
//
// Components receive a zerolog.Logger and tag it:
//
//	logger := logging.WithComponent("pool")
//
// # Request Correlation
//
// The HTTP middleware stores a request ID in the context; Ctx returns a
// logger carrying it so engine and pool log lines can be joined to the
// access log:
//
//	logging.Ctx(ctx).Warn().Int("page", 3).Msg("Short page, falling back")
//
// # Suture Integration
//
// NewSlogLogger bridges zerolog to log/slog for sutureslog, so supervisor
// restarts land in the same stream as application logs.
//
// # Sanitisation
//
// SanitizeLogValue strips control characters from untrusted strings and
// RedactSecret masks credentials before they are logged.
package logging
