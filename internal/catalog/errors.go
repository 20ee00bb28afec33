// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for catalog responses.
var (
	ErrUnauthorized = errors.New("catalog: unauthorized")
	ErrNotFound     = errors.New("catalog: not found")
	ErrRateLimited  = errors.New("catalog: rate limited")
	ErrBadRequest   = errors.New("catalog: bad request")
	ErrServer       = errors.New("catalog: server error")
)

// Error describes a failed catalog operation.
type Error struct {
	Op         string // e.g. "discover"
	Page       int
	StatusCode int // 0 when no response was received
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s page %d: status %d: %v", e.Op, e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog %s page %d: %v", e.Op, e.Page, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// statusError maps a non-2xx status code to a sentinel.
func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return ErrBadRequest
	case code >= 500:
		return ErrServer
	default:
		return fmt.Errorf("catalog: unexpected status %d", code)
	}
}

// IsTransient reports whether err is worth retrying later: rate limits,
// server errors and transport failures. Authentication and request errors
// are permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrBadRequest) || errors.Is(err, ErrNotFound) {
		return false
	}
	return true
}
