// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation validates API request structs with
// go-playground/validator v10 and renders failures as VALIDATION_ERROR
// API errors.
//
// Field names in messages come from the `query` struct tag so that errors
// name the query parameter the client sent:
//
//	type dailyRequest struct {
//	    Date string `query:"date" validate:"omitempty,calendar_date"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Custom tags:
//   - calendar_date: a YYYY-MM-DD date that exists on the calendar
package validation
