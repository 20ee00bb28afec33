// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"strings"
	"testing"
)

type testRequest struct {
	Date     string `query:"date" validate:"omitempty,calendar_date"`
	PoolSize int    `query:"pool_size" validate:"min=1,max=10000"`
	Mode     string `validate:"omitempty,oneof=fast slow"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestIsCalendarDate(t *testing.T) {
	tests := map[string]bool{
		"2024-02-29": true,
		"2023-02-29": false,
		"2024-13-01": false,
		"2024-1-01":  false,
		"20240101":   false,
		"":           false,
		"2024-12-31": true,
	}
	for in, want := range tests {
		if got := IsCalendarDate(in); got != want {
			t.Errorf("IsCalendarDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	for _, req := range []testRequest{
		{PoolSize: 1},
		{Date: "2024-10-31", PoolSize: 10000, Mode: "fast"},
	} {
		if err := ValidateStruct(&req); err != nil {
			t.Errorf("ValidateStruct(%+v) = %v", req, err)
		}
	}
}

func TestValidateStruct_SingleError(t *testing.T) {
	err := ValidateStruct(&testRequest{Date: "2024-02-30", PoolSize: 5})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Message != "date must be a valid date in YYYY-MM-DD format" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "date" {
		t.Errorf("Details[field] = %v, want date", apiErr.Details["field"])
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&testRequest{Date: "nope", PoolSize: 0, Mode: "medium"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Errors()) != 3 {
		t.Fatalf("len(Errors) = %d, want 3", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	for _, want := range []string{"date must be", "pool_size must be at least 1", "Mode must be one of: fast slow"} {
		if !strings.Contains(apiErr.Message, want) {
			t.Errorf("message %q missing %q", apiErr.Message, want)
		}
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Errorf("Details[fields] = %v", apiErr.Details["fields"])
	}
}

func TestValidationError_Accessors(t *testing.T) {
	err := ValidateStruct(&testRequest{PoolSize: 20000})
	if err == nil {
		t.Fatal("expected error")
	}
	fe := err.Errors()[0]
	if fe.Field() != "pool_size" || fe.Tag() != "max" || fe.Param() != "10000" || fe.Value() != 20000 {
		t.Errorf("unexpected field error: field=%s tag=%s param=%s value=%v", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.ToAPIError().Message != "Validation failed" {
		t.Errorf("ToAPIError().Message = %q", ve.ToAPIError().Message)
	}
}
