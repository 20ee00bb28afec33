// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the HTTP API's wire types.

Every endpoint answers with an APIResponse envelope. Domain values
(recommend.DailySelection, schedule.Resolution, selector.Position) are
placed in Data as they are; the types here cover the responses that
aggregate several domain values.

Example successful response:

	{
	  "status": "success",
	  "data": {"date": "2024-10-31", "source": "event", ...},
	  "metadata": {"timestamp": "2024-10-31T08:00:00Z", "query_time_ms": 312}
	}

Example error response:

	{
	  "status": "error",
	  "error": {"code": "NO_RECOMMENDATION", "message": "No recommendation available for 2024-10-31"},
	  "metadata": {"timestamp": "2024-10-31T08:00:00Z"}
	}
*/
package models
