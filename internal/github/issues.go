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
	"net/url"
)

// ListIssues lists repository issues filtered by the given options.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, opts IssueListOptions) (any, error) {
	params := Params{
		"state":     opts.State,
		"sort":      opts.Sort,
		"direction": opts.Direction,
		"assignee":  opts.Assignee,
		"creator":   opts.Creator,
		"mentioned": opts.Mentioned,
		"since":     opts.Since,
		"labels":    opts.Labels,
	}
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/issues", owner, repo),
		Query:  opts.merge(params),
	})
}

// GetIssue fetches a single issue by number.
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number),
	})
}

// CreateIssue creates a new issue. Only the fields set on req are sent.
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, req IssueRequest) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/issues", owner, repo),
		Body:   req.body(),
	})
}

// UpdateIssue patches an existing issue. Unset fields are left as-is.
func (c *Client) UpdateIssue(ctx context.Context, owner, repo string, number int, req IssueRequest) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number),
		Body:   req.body(),
	})
}

// AddIssueComment adds a comment to an issue or pull request.
func (c *Client) AddIssueComment(ctx context.Context, owner, repo string, number int, body string) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, number),
		Body:   map[string]any{"body": body},
	})
}

// ListIssueComments lists comments on an issue or pull request.
func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, number int, since string, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, number),
		Query:  opts.merge(Params{"since": since}),
	})
}

// UpdateIssueComment replaces the body of an existing comment.
func (c *Client) UpdateIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/comments/%d", owner, repo, commentID),
		Body:   map[string]any{"body": body},
	})
}

// DeleteIssueComment deletes a comment. GitHub returns no body on
// success, so a confirmation record is synthesized for the output layer.
func (c *Client) DeleteIssueComment(ctx context.Context, owner, repo string, commentID int64) (any, error) {
	if _, err := c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/comments/%d", owner, repo, commentID),
	}); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": true, "comment_id": commentID}, nil
}

// AddIssueLabels adds labels to an issue, returning the full label set.
func (c *Client) AddIssueLabels(ctx context.Context, owner, repo string, number int, labels []string) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/%d/labels", owner, repo, number),
		Body:   map[string]any{"labels": labels},
	})
}

// RemoveIssueLabel removes one label from an issue.
func (c *Client) RemoveIssueLabel(ctx context.Context, owner, repo string, number int, label string) (any, error) {
	if _, err := c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/%d/labels/%s", owner, repo, number, url.PathEscape(label)),
	}); err != nil {
		return nil, err
	}
	return map[string]any{"removed": true, "label": label}, nil
}

// LockIssue locks an issue conversation. The reason, if given, must be
// one of GitHub's accepted lock reasons.
func (c *Client) LockIssue(ctx context.Context, owner, repo string, number int, reason string) (any, error) {
	var body any
	if reason != "" {
		body = map[string]any{"lock_reason": reason}
	}
	if _, err := c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/%d/lock", owner, repo, number),
		Body:   body,
	}); err != nil {
		return nil, err
	}
	return map[string]any{"locked": true, "issue_number": number}, nil
}

// UnlockIssue unlocks an issue conversation.
func (c *Client) UnlockIssue(ctx context.Context, owner, repo string, number int) (any, error) {
	if _, err := c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/repos/%s/%s/issues/%d/lock", owner, repo, number),
	}); err != nil {
		return nil, err
	}
	return map[string]any{"unlocked": true, "issue_number": number}, nil
}
