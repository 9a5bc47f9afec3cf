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

// Package ratelimit inspects GitHub rate-limit response headers and
// decodes the /rate_limit status endpoint. The tool never waits out a
// rate limit itself; detection only determines how a 403/429 response
// is classified for the caller.
package ratelimit

import (
	"net/http"
	"strconv"
	"time"
)

// Info describes the rate-limit state reported by a single response.
type Info struct {
	// Limit and Remaining mirror X-RateLimit-Limit / X-RateLimit-Remaining.
	Limit     int
	Remaining int

	// Reset is the window reset instant from X-RateLimit-Reset.
	// Zero when the header is absent.
	Reset time.Time

	// RetryAfter is the server-suggested wait from Retry-After.
	// Zero when the header is absent.
	RetryAfter time.Duration
}

// Detector classifies responses as rate-limited based on GitHub's
// documented headers. GitHub signals primary limits with a 403 or 429
// plus X-RateLimit-Remaining: 0, and secondary limits with Retry-After.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// IsRateLimited reports whether the response represents an exhausted
// rate limit rather than a plain authorization failure.
func (d *Detector) IsRateLimited(resp *http.Response) bool {
	if resp == nil {
		return false
	}
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return false
	}
	if resp.Header.Get("Retry-After") != "" {
		return true
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// Detect extracts rate-limit information from response headers.
func (d *Detector) Detect(resp *http.Response) Info {
	info := Info{}
	if resp == nil {
		return info
	}

	if v := resp.Header.Get("X-RateLimit-Limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			info.Limit = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			info.Remaining = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			info.Reset = time.Unix(epoch, 0).UTC()
		}
	}
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			info.RetryAfter = time.Duration(secs) * time.Second
		}
	}

	return info
}
