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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidToken indicates GitHub authentication failed (401).
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrForbidden indicates the token lacks the scope or permission for
	// the requested operation (403 without an exhausted rate limit).
	// Maps to exit code 2.
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound indicates the requested resource does not exist or is
	// not accessible (404). Maps to exit code 2.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimit indicates GitHub API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrValidation indicates the remote API rejected the request body (422).
	// Maps to exit code 1.
	ErrValidation = errors.New("validation failed")

	// ErrRequestFailed indicates a non-2xx response outside the classified set.
	// Maps to exit code 1.
	ErrRequestFailed = errors.New("request failed")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrInvalidInput indicates malformed or missing CLI input, caught
	// before any network call. Maps to exit code 1.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueryComplexity indicates a GraphQL query exceeded GitHub's
	// complexity budget. The export path reacts by halving the page size.
	ErrQueryComplexity = errors.New("query complexity exceeded")
)

// APIError carries the HTTP status and remote message for a classified
// API failure. It unwraps to one of the sentinel errors above so callers
// can keep using errors.Is for exit-code mapping.
type APIError struct {
	StatusCode int
	Message    string
	sentinel   error
}

// NewAPIError builds an APIError that unwraps to the given sentinel.
func NewAPIError(status int, message string, sentinel error) *APIError {
	return &APIError{StatusCode: status, Message: message, sentinel: sentinel}
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github api error %d: %v", e.StatusCode, e.sentinel)
	}
	return fmt.Sprintf("github api error %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *APIError) Unwrap() error { return e.sentinel }

// RateLimitError is returned for a rate-limited response. It carries the
// reset time from the X-RateLimit-Reset header so the caller can decide
// when to retry; the tool itself does not wait.
type RateLimitError struct {
	Reset time.Time
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return ErrRateLimit.Error()
	}
	return fmt.Sprintf("%v, resets at %s", ErrRateLimit, e.Reset.UTC().Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimit }

// FieldError is a single remote-supplied validation diagnostic.
type FieldError struct {
	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (f FieldError) String() string {
	parts := make([]string, 0, 3)
	if f.Field != "" {
		parts = append(parts, f.Field)
	}
	if f.Code != "" {
		parts = append(parts, f.Code)
	}
	if f.Message != "" {
		parts = append(parts, f.Message)
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, ": ")
}

// ValidationError is returned for a 422 response. It retains the field
// diagnostics GitHub reports alongside the top-level message.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = ErrValidation.Error()
	}
	if len(e.Fields) == 0 {
		return msg
	}
	details := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		details[i] = f.String()
	}
	return fmt.Sprintf("%s (%s)", msg, strings.Join(details, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
