// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/marquee/internal/logging"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks the configuration. All field violations are reported
// together.
func (c *Config) Validate() error {
	var errs []error

	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	if err := c.validateLogging(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateRateLimits(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// fieldError renders a validator error with the koanf path of the field,
// e.g. "server.port: must be <= 65535".
func fieldError(fe validator.FieldError) error {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "required_if":
		msg = fmt.Sprintf("is required when %s", strings.Replace(fe.Param(), " ", " is ", 1))
	case "url":
		msg = "must be a valid URL"
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	case "gt":
		msg = fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte", "min":
		msg = fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value())
	case "lte", "max":
		msg = fmt.Sprintf("must be <= %s, got %v", fe.Param(), fe.Value())
	case "len":
		msg = fmt.Sprintf("must be %s characters", fe.Param())
	case "gtefield":
		msg = fmt.Sprintf("must be >= %s", fe.Param())
	default:
		msg = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return fmt.Errorf("%s: %s", ns, msg)
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level: must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitRequests < 1 {
		return fmt.Errorf("server.rate_limit_requests: must be positive when rate limiting is enabled")
	}
	if c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window: must be positive when rate limiting is enabled")
	}
	return nil
}

// HasWildcardCORS reports whether any CORS origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, o := range c.Server.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
