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
)

// ListPulls lists pull requests filtered by the given options.
func (c *Client) ListPulls(ctx context.Context, owner, repo string, opts PullListOptions) (any, error) {
	params := Params{
		"state":     opts.State,
		"head":      opts.Head,
		"base":      opts.Base,
		"sort":      opts.Sort,
		"direction": opts.Direction,
	}
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls", owner, repo),
		Query:  opts.merge(params),
	})
}

// GetPull fetches a single pull request by number.
func (c *Client) GetPull(ctx context.Context, owner, repo string, number int) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number),
	})
}

// CreatePull opens a pull request from head into base.
func (c *Client) CreatePull(ctx context.Context, owner, repo, title, head, base, body string, draft bool) (any, error) {
	payload := map[string]any{
		"title":                 title,
		"head":                  head,
		"base":                  base,
		"draft":                 draft,
		"maintainer_can_modify": true,
	}
	if body != "" {
		payload["body"] = body
	}
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls", owner, repo),
		Body:   payload,
	})
}

// UpdatePull patches an existing pull request.
func (c *Client) UpdatePull(ctx context.Context, owner, repo string, number int, req PullRequestUpdate) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number),
		Body:   req.body(),
	})
}

// ListPullFiles lists the files changed by a pull request.
func (c *Client) ListPullFiles(ctx context.Context, owner, repo string, number int, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/files", owner, repo, number),
		Query:  opts.params(),
	})
}

// ListPullCommits lists the commits on a pull request.
func (c *Client) ListPullCommits(ctx context.Context, owner, repo string, number int, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/commits", owner, repo, number),
		Query:  opts.params(),
	})
}

// MergePull merges a pull request using the given method. An optional
// SHA pins the expected head commit so a merge fails if the branch
// moved since the caller last looked.
func (c *Client) MergePull(ctx context.Context, owner, repo string, number int, opts MergeOptions) (any, error) {
	payload := map[string]any{"merge_method": opts.Method}
	if opts.CommitTitle != "" {
		payload["commit_title"] = opts.CommitTitle
	}
	if opts.CommitMessage != "" {
		payload["commit_message"] = opts.CommitMessage
	}
	if opts.SHA != "" {
		payload["sha"] = opts.SHA
	}
	return c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/merge", owner, repo, number),
		Body:   payload,
	})
}

// CheckMergeable fetches a pull request and reduces it to its merge
// readiness fields. GitHub computes mergeability asynchronously, so
// "mergeable" may be null shortly after a push.
func (c *Client) CheckMergeable(ctx context.Context, owner, repo string, number int) (any, error) {
	record, err := c.GetPull(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	pr, ok := record.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected pull request payload shape")
	}
	return map[string]any{
		"number":           number,
		"mergeable":        pr["mergeable"],
		"mergeable_state":  pr["mergeable_state"],
		"rebaseable":       pr["rebaseable"],
		"merge_commit_sha": pr["merge_commit_sha"],
	}, nil
}

// UpdatePullBranch merges the latest base branch into the pull request
// branch.
func (c *Client) UpdatePullBranch(ctx context.Context, owner, repo string, number int, expectedHeadSHA string) (any, error) {
	var body any
	if expectedHeadSHA != "" {
		body = map[string]any{"expected_head_sha": expectedHeadSHA}
	}
	return c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/update-branch", owner, repo, number),
		Body:   body,
	})
}

// ListReviews lists the reviews on a pull request.
func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews", owner, repo, number),
		Query:  opts.params(),
	})
}

// CreateReview submits a review with the given event (APPROVE,
// REQUEST_CHANGES, or COMMENT).
func (c *Client) CreateReview(ctx context.Context, owner, repo string, number int, req ReviewRequest) (any, error) {
	payload := map[string]any{"event": req.Event}
	if req.Body != "" {
		payload["body"] = req.Body
	}
	if len(req.Comments) > 0 {
		payload["comments"] = req.Comments
	}
	if req.CommitID != "" {
		payload["commit_id"] = req.CommitID
	}
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews", owner, repo, number),
		Body:   payload,
	})
}

// DismissReview dismisses a submitted review with a message.
func (c *Client) DismissReview(ctx context.Context, owner, repo string, number int, reviewID int64, message string) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews/%d/dismissals", owner, repo, number, reviewID),
		Body:   map[string]any{"message": message},
	})
}

// RequestReviewers asks users or teams to review a pull request.
func (c *Client) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers, teamReviewers []string) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/requested_reviewers", owner, repo, number),
		Body:   reviewerBody(reviewers, teamReviewers),
	})
}

// RemoveReviewers withdraws review requests from users or teams.
func (c *Client) RemoveReviewers(ctx context.Context, owner, repo string, number int, reviewers, teamReviewers []string) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/repos/%s/%s/pulls/%d/requested_reviewers", owner, repo, number),
		Body:   reviewerBody(reviewers, teamReviewers),
	})
}

func reviewerBody(reviewers, teamReviewers []string) map[string]any {
	body := map[string]any{}
	if len(reviewers) > 0 {
		body["reviewers"] = reviewers
	}
	if len(teamReviewers) > 0 {
		body["team_reviewers"] = teamReviewers
	}
	return body
}

// PullStatus combines the commit status and check runs for a pull
// request's head commit into one record. It issues three requests:
// the pull request itself, the combined status, and the check runs.
func (c *Client) PullStatus(ctx context.Context, owner, repo string, number int) (any, error) {
	record, err := c.GetPull(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}
	pr, ok := record.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected pull request payload shape")
	}
	head, ok := pr["head"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("pull request %d has no head commit", number)
	}
	headSHA, ok := head["sha"].(string)
	if !ok || headSHA == "" {
		return nil, fmt.Errorf("pull request %d has no head commit", number)
	}

	statusRecord, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/commits/%s/status", owner, repo, headSHA),
	})
	if err != nil {
		return nil, err
	}
	checksRecord, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/commits/%s/check-runs", owner, repo, headSHA),
	})
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"sha":         headSHA,
		"state":       nil,
		"total_count": 0,
		"statuses":    []any{},
		"check_runs":  []any{},
	}
	if status, ok := statusRecord.(map[string]any); ok {
		result["state"] = status["state"]
		if count, ok := status["total_count"]; ok {
			result["total_count"] = count
		}
		if statuses, ok := status["statuses"]; ok {
			result["statuses"] = statuses
		}
	}
	if checks, ok := checksRecord.(map[string]any); ok {
		if runs, ok := checks["check_runs"]; ok {
			result["check_runs"] = runs
		}
	}
	return result, nil
}
