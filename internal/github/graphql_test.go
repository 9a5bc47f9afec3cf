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

package github

import (
	"errors"
	"testing"
	"time"

	"github.com/shurcooL/graphql"
	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
	"github.com/sirseerhq/sirseer-hub/internal/giterror"
)

func TestConvertPRNodeFlattensToRESTShape(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mergedAt := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)

	node := &prNode{
		Number:             graphql.Int(42),
		Title:              graphql.String("Add retry transport"),
		State:              graphql.String("MERGED"),
		URL:                graphql.String("https://github.com/octo/repo/pull/42"),
		CreatedAt:          created,
		UpdatedAt:          mergedAt,
		MergedAt:           &mergedAt,
		Merged:             graphql.Boolean(true),
		Additions:          graphql.Int(120),
		Deletions:          graphql.Int(8),
		ChangedFiles:       graphql.Int(3),
		TotalCommentsCount: graphql.Int(5),
		BaseRefName:        graphql.String("main"),
		HeadRefName:        graphql.String("retry-transport"),
	}
	node.Author.Login = graphql.String("octocat")
	node.MergeCommit = &struct {
		OID graphql.String `graphql:"oid"`
	}{OID: graphql.String("abc123")}
	node.Labels.Nodes = []struct{ Name graphql.String }{
		{Name: graphql.String("enhancement")},
	}

	record := convertPRNode(node)

	if record["number"] != 42 {
		t.Errorf("number = %v, want 42", record["number"])
	}
	if record["state"] != "MERGED" {
		t.Errorf("state = %v, want MERGED", record["state"])
	}
	if record["created_at"] != "2024-03-01T12:00:00Z" {
		t.Errorf("created_at = %v", record["created_at"])
	}
	if record["merged_at"] != "2024-03-02T09:30:00Z" {
		t.Errorf("merged_at = %v", record["merged_at"])
	}
	if record["merge_commit_sha"] != "abc123" {
		t.Errorf("merge_commit_sha = %v", record["merge_commit_sha"])
	}
	user, ok := record["user"].(map[string]any)
	if !ok || user["login"] != "octocat" {
		t.Errorf("user = %v, want login octocat", record["user"])
	}
	labels, ok := record["labels"].([]any)
	if !ok || len(labels) != 1 {
		t.Fatalf("labels = %v, want one entry", record["labels"])
	}

	// Open PRs have no closed/merged fields at all, mirroring REST.
	open := convertPRNode(&prNode{Number: graphql.Int(7)})
	for _, key := range []string{"closed_at", "merged_at", "merged_by", "merge_commit_sha"} {
		if _, present := open[key]; present {
			t.Errorf("open PR record unexpectedly has %q", key)
		}
	}
}

func TestGraphQLErrorMapping(t *testing.T) {
	client := &GraphQLClient{inspector: giterror.NewInspector()}

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "rate limit",
			err:      errors.New("API rate limit exceeded for user"),
			sentinel: huberrors.ErrRateLimit,
		},
		{
			name:     "bad credentials",
			err:      errors.New("non-200 OK status code: 401 Unauthorized"),
			sentinel: huberrors.ErrInvalidToken,
		},
		{
			name:     "missing repository",
			err:      errors.New("Could not resolve to a Repository with the name 'octo/missing'"),
			sentinel: huberrors.ErrNotFound,
		},
		{
			name:     "query complexity",
			err:      errors.New("query has complexity of 120000, which exceeds maximum"),
			sentinel: huberrors.ErrQueryComplexity,
		},
		{
			name:     "network",
			err:      errors.New("dial tcp: connection refused"),
			sentinel: huberrors.ErrNetworkFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := client.mapError(tt.err, "octo", "repo")
			if !errors.Is(mapped, tt.sentinel) {
				t.Errorf("mapError(%v) = %v, want %v", tt.err, mapped, tt.sentinel)
			}
		})
	}

	if client.mapError(nil, "octo", "repo") != nil {
		t.Error("mapError(nil) should be nil")
	}
}
