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
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Bucket is one resource bucket from the /rate_limit endpoint.
type Bucket struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Used      int   `json:"used"`
	Reset     int64 `json:"reset"`
}

// ResetTime converts the epoch reset value to a time.
func (b Bucket) ResetTime() time.Time {
	return time.Unix(b.Reset, 0).UTC()
}

// Status is the decoded /rate_limit response.
type Status struct {
	Resources struct {
		Core    Bucket `json:"core"`
		Search  Bucket `json:"search"`
		GraphQL Bucket `json:"graphql"`
	} `json:"resources"`
}

// StatusFromRecord re-decodes a generic API record into a Status.
// The client hands back loosely typed records; this narrows the one
// endpoint where the CLI renders its own summary.
func StatusFromRecord(record any) (*Status, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode rate limit record: %w", err)
	}
	var status Status
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, fmt.Errorf("failed to decode rate limit record: %w", err)
	}
	return &status, nil
}

// Summary renders a short human-readable report of the main buckets.
func (s *Status) Summary() string {
	var b strings.Builder
	b.WriteString("Rate Limit Status:\n")
	fmt.Fprintf(&b, "  Core API:    %5d/%d remaining\n", s.Resources.Core.Remaining, s.Resources.Core.Limit)
	fmt.Fprintf(&b, "  Search API:  %5d/%d remaining\n", s.Resources.Search.Remaining, s.Resources.Search.Limit)
	if s.Resources.GraphQL.Limit > 0 {
		fmt.Fprintf(&b, "  GraphQL API: %5d/%d remaining\n", s.Resources.GraphQL.Remaining, s.Resources.GraphQL.Limit)
	}
	if s.Resources.Core.Remaining < 100 {
		fmt.Fprintf(&b, "\n  Core API resets at: %s\n", s.Resources.Core.ResetTime().Format("15:04:05"))
	}
	return b.String()
}
