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

package ratelimit

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func makeResponse(status int, headers map[string]string) *http.Response {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return &http.Response{StatusCode: status, Header: h}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		want    bool
	}{
		{
			name:    "403 with remaining zero",
			status:  403,
			headers: map[string]string{"X-RateLimit-Remaining": "0"},
			want:    true,
		},
		{
			name:    "403 without rate limit headers",
			status:  403,
			headers: map[string]string{},
			want:    false,
		},
		{
			name:    "403 with remaining budget",
			status:  403,
			headers: map[string]string{"X-RateLimit-Remaining": "4999"},
			want:    false,
		},
		{
			name:    "429 with retry-after",
			status:  429,
			headers: map[string]string{"Retry-After": "60"},
			want:    true,
		},
		{
			name:    "200 with remaining zero is not limited",
			status:  200,
			headers: map[string]string{"X-RateLimit-Remaining": "0"},
			want:    false,
		},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.IsRateLimited(makeResponse(tt.status, tt.headers))
			if got != tt.want {
				t.Errorf("IsRateLimited() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	resp := makeResponse(403, map[string]string{
		"X-RateLimit-Limit":     "5000",
		"X-RateLimit-Remaining": "0",
		"X-RateLimit-Reset":     "1750000000",
		"Retry-After":           "30",
	})

	info := NewDetector().Detect(resp)

	if info.Limit != 5000 {
		t.Errorf("Limit = %d, want 5000", info.Limit)
	}
	if info.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", info.Remaining)
	}
	if want := time.Unix(1750000000, 0).UTC(); !info.Reset.Equal(want) {
		t.Errorf("Reset = %v, want %v", info.Reset, want)
	}
	if info.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", info.RetryAfter)
	}
}

func TestDetectMissingHeaders(t *testing.T) {
	info := NewDetector().Detect(makeResponse(403, nil))
	if !info.Reset.IsZero() {
		t.Errorf("Reset = %v, want zero", info.Reset)
	}
	if info.RetryAfter != 0 {
		t.Errorf("RetryAfter = %v, want 0", info.RetryAfter)
	}
}

func TestStatusFromRecord(t *testing.T) {
	record := map[string]any{
		"resources": map[string]any{
			"core":    map[string]any{"limit": 5000, "remaining": 4321, "reset": 1750000000},
			"search":  map[string]any{"limit": 30, "remaining": 28, "reset": 1750000000},
			"graphql": map[string]any{"limit": 5000, "remaining": 5000, "reset": 1750000000},
		},
	}

	status, err := StatusFromRecord(record)
	if err != nil {
		t.Fatalf("StatusFromRecord() error = %v", err)
	}
	if status.Resources.Core.Remaining != 4321 {
		t.Errorf("Core.Remaining = %d, want 4321", status.Resources.Core.Remaining)
	}

	summary := status.Summary()
	for _, want := range []string{"Core API", "4321/5000", "Search API", "GraphQL API"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() missing %q:\n%s", want, summary)
		}
	}
}

func TestSummaryWarnsWhenLow(t *testing.T) {
	var status Status
	status.Resources.Core = Bucket{Limit: 5000, Remaining: 12, Reset: 1750000000}
	status.Resources.Search = Bucket{Limit: 30, Remaining: 30}

	if !strings.Contains(status.Summary(), "resets at") {
		t.Error("Summary() should warn about reset time when core budget is low")
	}
}
