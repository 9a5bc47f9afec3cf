// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "direct invalid token error",
			err:      ErrInvalidToken,
			sentinel: ErrInvalidToken,
			want:     true,
		},
		{
			name:     "wrapped invalid token error",
			err:      fmt.Errorf("failed to authenticate: %w", ErrInvalidToken),
			sentinel: ErrInvalidToken,
			want:     true,
		},
		{
			name:     "different error type",
			err:      ErrNotFound,
			sentinel: ErrInvalidToken,
			want:     false,
		},
		{
			name:     "wrapped network error",
			err:      fmt.Errorf("connection failed: %w", ErrNetworkFailure),
			sentinel: ErrNetworkFailure,
			want:     true,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrInvalidToken,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.sentinel)
			if got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestAPIErrorUnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"forbidden", NewAPIError(403, "scope missing", ErrForbidden), ErrForbidden},
		{"not found", NewAPIError(404, "Not Found", ErrNotFound), ErrNotFound},
		{"generic failure", NewAPIError(500, "boom", ErrRequestFailed), ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
			var apiErr *APIError
			if !errors.As(tt.err, &apiErr) {
				t.Fatalf("errors.As failed for %v", tt.err)
			}
		})
	}
}

func TestRateLimitErrorCarriesReset(t *testing.T) {
	reset := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	err := &RateLimitError{Reset: reset}

	if !errors.Is(err, ErrRateLimit) {
		t.Error("RateLimitError should unwrap to ErrRateLimit")
	}
	if !strings.Contains(err.Error(), "2025-06-01T12:30:00Z") {
		t.Errorf("Error() = %q, want reset timestamp included", err.Error())
	}

	var rlErr *RateLimitError
	if !errors.As(error(err), &rlErr) {
		t.Fatal("errors.As failed for RateLimitError")
	}
	if !rlErr.Reset.Equal(reset) {
		t.Errorf("Reset = %v, want %v", rlErr.Reset, reset)
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := &ValidationError{
		Message: "Validation Failed",
		Fields: []FieldError{
			{Resource: "Issue", Field: "title", Code: "missing_field"},
			{Message: "body is too long"},
		},
	}

	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should unwrap to ErrValidation")
	}
	msg := err.Error()
	for _, want := range []string{"Validation Failed", "title", "missing_field", "body is too long"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want substring %q", msg, want)
		}
	}
}

func TestValidationErrorNoFields(t *testing.T) {
	err := &ValidationError{Message: "Validation Failed"}
	if got := err.Error(); got != "Validation Failed" {
		t.Errorf("Error() = %q, want %q", got, "Validation Failed")
	}
}
