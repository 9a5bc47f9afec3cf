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
	"net/http"
)

// Commit and topic search sit behind preview media types that GitHub
// never promoted to the stable Accept header.
const (
	commitSearchAccept = "application/vnd.github.cloak-preview+json"
	topicSearchAccept  = "application/vnd.github.mercy-preview+json"
)

// SearchOptions carries the query and ordering parameters shared by
// the search endpoints.
type SearchOptions struct {
	Query string
	Sort  string
	Order string
	ListOptions
}

func (o SearchOptions) searchParams() Params {
	return o.merge(Params{
		"q":     o.Query,
		"sort":  o.Sort,
		"order": o.Order,
	})
}

// SearchRepos searches repositories using GitHub's query syntax.
func (c *Client) SearchRepos(ctx context.Context, opts SearchOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/search/repositories",
		Query:  opts.searchParams(),
	})
}

// SearchCode searches file contents. Code search requires an
// authenticated token.
func (c *Client) SearchCode(ctx context.Context, opts SearchOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/search/code",
		Query:  opts.searchParams(),
	})
}

// SearchIssues searches issues and pull requests.
func (c *Client) SearchIssues(ctx context.Context, opts SearchOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/search/issues",
		Query:  opts.searchParams(),
	})
}

// SearchUsers searches users and organizations.
func (c *Client) SearchUsers(ctx context.Context, opts SearchOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/search/users",
		Query:  opts.searchParams(),
	})
}

// SearchCommits searches commit messages.
func (c *Client) SearchCommits(ctx context.Context, opts SearchOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/search/commits",
		Query:  opts.searchParams(),
		Accept: commitSearchAccept,
	})
}

// SearchTopics searches repository topics. Topics ignore sort and
// order.
func (c *Client) SearchTopics(ctx context.Context, opts SearchOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/search/topics",
		Query:  opts.merge(Params{"q": opts.Query}),
		Accept: topicSearchAccept,
	})
}
