// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package schedule maps a calendar date to the rule that governs its pick.

A Table holds three kinds of rule:
  - Overrides: a fixed catalog item for an exact "MM-DD"
  - Events: a themed filter for an exact "MM-DD" or a whole month "MM"
  - Weekly themes: exactly seven, indexed by weekday (0 = Sunday)

Resolve applies them in that order, most specific first, using the UTC
calendar components of the date. It never touches the network.

# Tables as Data

Tables are YAML documents loaded through koanf and validated with
go-playground/validator. A table that does not define all seven weekly
themes is rejected at load time, so Resolve can assume it always finds
one. The built-in table (defaults.yaml) is embedded in the binary.

	table, err := schedule.Load("/etc/marquee/schedule.yaml")
	res := table.Resolve(time.Now())
	fmt.Println(res.Kind, res.Context.Name, res.PoolSize)

Watcher keeps a Table current as its file changes and notifies listeners,
so cached picks can be dropped after an edit.
*/
package schedule
