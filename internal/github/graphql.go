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
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shurcooL/graphql"
	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
	"github.com/sirseerhq/sirseer-hub/internal/giterror"
)

// defaultExportPageSize is where export pagination starts. The full PR
// node is an expensive query, so pages are kept well under GitHub's
// maximum of 100 and halved further on complexity errors.
const defaultExportPageSize = 50

// ExportOptions controls one page of the bulk pull request export.
type ExportOptions struct {
	PageSize int
	After    string
	States   []string
}

// PullRequestPage is one page of exported pull requests plus the
// cursor needed to fetch the next one.
type PullRequestPage struct {
	HasNextPage  bool
	EndCursor    string
	PullRequests []map[string]any
}

// GraphQLClient exports pull request data in bulk via the GitHub
// GraphQL API. One GraphQL page replaces dozens of REST calls when
// pulling a repository's full PR history.
type GraphQLClient struct {
	client    *graphql.Client
	inspector giterror.Inspector
}

// NewGraphQLClient creates a GraphQL client for the given endpoint.
// It reuses the same authenticated transport stack as the REST client.
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	httpClient := &http.Client{Transport: newTransport(token)}
	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, httpClient),
		inspector: giterror.NewInspector(),
	}
}

// RepositoryInfo summarizes a repository ahead of a bulk export.
type RepositoryInfo struct {
	TotalPullRequests int
}

// GetRepositoryInfo fetches the total PR count so callers can report
// progress during an export.
func (c *GraphQLClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	var query struct {
		Repository struct {
			PullRequests struct {
				TotalCount graphql.Int
			} `graphql:"pullRequests"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	return &RepositoryInfo{
		TotalPullRequests: int(query.Repository.PullRequests.TotalCount),
	}, nil
}

// prNode is the exported pull request shape. Field names mirror the
// REST payload so exported records and single-PR lookups line up.
type prNode struct {
	Number    graphql.Int
	Title     graphql.String
	State     graphql.String
	Body      graphql.String
	URL       graphql.String
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
	MergedAt  *time.Time
	Merged    graphql.Boolean
	Additions graphql.Int
	Deletions graphql.Int

	ChangedFiles       graphql.Int
	TotalCommentsCount graphql.Int

	Author struct {
		Login graphql.String `graphql:"login"`
	} `graphql:"author"`

	MergedBy *struct {
		Login graphql.String `graphql:"login"`
	} `graphql:"mergedBy"`

	BaseRefName graphql.String
	HeadRefName graphql.String

	MergeCommit *struct {
		OID graphql.String `graphql:"oid"`
	} `graphql:"mergeCommit"`

	Labels struct {
		Nodes []struct {
			Name graphql.String
		}
	} `graphql:"labels(first: 100)"`

	Assignees struct {
		Nodes []struct {
			Login graphql.String
		}
	} `graphql:"assignees(first: 100)"`
}

// FetchPullRequests fetches one page of pull requests ordered by most
// recently updated. Pagination is cursor based via opts.After.
func (c *GraphQLClient) FetchPullRequests(ctx context.Context, owner, repo string, opts ExportOptions) (*PullRequestPage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > defaultExportPageSize {
		pageSize = defaultExportPageSize
	}

	var query struct {
		Repository struct {
			PullRequests struct {
				PageInfo struct {
					HasNextPage graphql.Boolean
					EndCursor   graphql.String
				}
				Nodes []prNode
			} `graphql:"pullRequests(first: $first, after: $after, orderBy: {field: UPDATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
		"first": graphql.Int(int32(pageSize)), // #nosec G115 - pageSize is capped at 100
		"after": (*graphql.String)(nil),
	}
	if opts.After != "" {
		variables["after"] = graphql.String(opts.After)
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	page := &PullRequestPage{
		HasNextPage:  bool(query.Repository.PullRequests.PageInfo.HasNextPage),
		EndCursor:    string(query.Repository.PullRequests.PageInfo.EndCursor),
		PullRequests: make([]map[string]any, 0, len(query.Repository.PullRequests.Nodes)),
	}
	for i := range query.Repository.PullRequests.Nodes {
		page.PullRequests = append(page.PullRequests, convertPRNode(&query.Repository.PullRequests.Nodes[i]))
	}
	return page, nil
}

// ExportPullRequests walks every page of a repository's pull requests
// and hands each record to emit. When GitHub rejects a page for query
// complexity, the page size is halved and the page retried; the cursor
// is only advanced after a page succeeds, so no records are skipped.
func (c *GraphQLClient) ExportPullRequests(ctx context.Context, owner, repo string, emit func(map[string]any) error) (int, error) {
	pageSize := defaultExportPageSize
	cursor := ""
	total := 0

	for {
		page, err := c.FetchPullRequests(ctx, owner, repo, ExportOptions{
			PageSize: pageSize,
			After:    cursor,
		})
		if err != nil {
			if c.inspector.IsComplexityError(err) && pageSize > 1 {
				pageSize /= 2
				continue
			}
			return total, err
		}

		for _, pr := range page.PullRequests {
			if err := emit(pr); err != nil {
				return total, err
			}
			total++
		}

		if !page.HasNextPage {
			return total, nil
		}
		cursor = page.EndCursor
	}
}

// convertPRNode flattens a GraphQL node into the record shape the
// output layer renders.
func convertPRNode(n *prNode) map[string]any {
	record := map[string]any{
		"number":        int(n.Number),
		"title":         string(n.Title),
		"state":         string(n.State),
		"body":          string(n.Body),
		"html_url":      string(n.URL),
		"created_at":    n.CreatedAt.Format(time.RFC3339),
		"updated_at":    n.UpdatedAt.Format(time.RFC3339),
		"merged":        bool(n.Merged),
		"additions":     int(n.Additions),
		"deletions":     int(n.Deletions),
		"changed_files": int(n.ChangedFiles),
		"comments":      int(n.TotalCommentsCount),
		"base_ref":      string(n.BaseRefName),
		"head_ref":      string(n.HeadRefName),
		"user":          map[string]any{"login": string(n.Author.Login)},
	}

	if n.ClosedAt != nil {
		record["closed_at"] = n.ClosedAt.Format(time.RFC3339)
	}
	if n.MergedAt != nil {
		record["merged_at"] = n.MergedAt.Format(time.RFC3339)
	}
	if n.MergedBy != nil {
		record["merged_by"] = map[string]any{"login": string(n.MergedBy.Login)}
	}
	if n.MergeCommit != nil {
		record["merge_commit_sha"] = string(n.MergeCommit.OID)
	}

	labels := make([]any, 0, len(n.Labels.Nodes))
	for _, label := range n.Labels.Nodes {
		labels = append(labels, map[string]any{"name": string(label.Name)})
	}
	record["labels"] = labels

	assignees := make([]any, 0, len(n.Assignees.Nodes))
	for _, assignee := range n.Assignees.Nodes {
		assignees = append(assignees, map[string]any{"login": string(assignee.Login)})
	}
	record["assignees"] = assignees

	return record
}

// mapError classifies GraphQL transport errors, which arrive as plain
// error strings rather than HTTP status codes.
func (c *GraphQLClient) mapError(err error, owner, repo string) error {
	if err == nil {
		return nil
	}

	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", huberrors.ErrRateLimit)
	}
	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or GITHUB_TOKEN environment variable: %w", huberrors.ErrInvalidToken)
	}
	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", owner, repo, huberrors.ErrNotFound)
	}
	if c.inspector.IsComplexityError(err) {
		return fmt.Errorf("GraphQL query complexity exceeded. Reducing batch size may help: %w", huberrors.ErrQueryComplexity)
	}
	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", huberrors.ErrNetworkFailure)
	}

	return fmt.Errorf("failed to fetch pull requests: %w", err)
}
