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
	"strings"
	"unicode/utf8"
)

// RunListOptions filters the workflow run list endpoint. WorkflowID
// narrows the listing to one workflow; it accepts a numeric ID or a
// workflow filename like "ci.yml".
type RunListOptions struct {
	WorkflowID string
	Actor      string
	Branch     string
	Event      string
	Status     string
	Created    string
	HeadSHA    string
	ListOptions
}

// ListWorkflows lists the workflows defined in a repository.
func (c *Client) ListWorkflows(ctx context.Context, owner, repo string, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/workflows", owner, repo),
		Query:  opts.params(),
	})
}

// GetWorkflow fetches a workflow by ID or filename.
func (c *Client) GetWorkflow(ctx context.Context, owner, repo, workflowID string) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/workflows/%s", owner, repo, workflowID),
	})
}

// ListRuns lists workflow runs, optionally scoped to one workflow.
func (c *Client) ListRuns(ctx context.Context, owner, repo string, opts RunListOptions) (any, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/runs", owner, repo)
	if opts.WorkflowID != "" {
		path = fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/runs", owner, repo, opts.WorkflowID)
	}
	params := Params{
		"actor":    opts.Actor,
		"branch":   opts.Branch,
		"event":    opts.Event,
		"status":   opts.Status,
		"created":  opts.Created,
		"head_sha": opts.HeadSHA,
	}
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  opts.merge(params),
	})
}

// GetRun fetches a workflow run.
func (c *Client) GetRun(ctx context.Context, owner, repo string, runID int64) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/runs/%d", owner, repo, runID),
	})
}

// ListJobs lists the jobs of a workflow run. The filter is "latest"
// (default on the API side) or "all".
func (c *Client) ListJobs(ctx context.Context, owner, repo string, runID int64, filter string, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/runs/%d/jobs", owner, repo, runID),
		Query:  opts.merge(Params{"filter": filter}),
	})
}

// GetJob fetches a single job.
func (c *Client) GetJob(ctx context.Context, owner, repo string, jobID int64) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/jobs/%d", owner, repo, jobID),
	})
}

// GetJobLogs downloads the plain-text log of one job and wraps it in a
// record the output layer can render.
func (c *Client) GetJobLogs(ctx context.Context, owner, repo string, jobID int64) (any, error) {
	data, err := c.DoRaw(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/jobs/%d/logs", owner, repo, jobID),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"job_id": jobID, "logs": toValidUTF8(data)}, nil
}

// GetRunLogs downloads the zip archive of a run's logs. The raw bytes
// are returned for the caller to write to disk; run logs are only
// available as an archive.
func (c *Client) GetRunLogs(ctx context.Context, owner, repo string, runID int64) ([]byte, error) {
	return c.DoRaw(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/runs/%d/logs", owner, repo, runID),
	})
}

// DeleteRunLogs deletes the logs of a workflow run.
func (c *Client) DeleteRunLogs(ctx context.Context, owner, repo string, runID int64) (any, error) {
	if _, err := c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/runs/%d/logs", owner, repo, runID),
	}); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": true, "run_id": runID}, nil
}

// RerunWorkflow re-queues a workflow run, or only its failed jobs.
func (c *Client) RerunWorkflow(ctx context.Context, owner, repo string, runID int64, failedOnly bool) (any, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/runs/%d/rerun", owner, repo, runID)
	if failedOnly {
		path = fmt.Sprintf("/repos/%s/%s/actions/runs/%d/rerun-failed-jobs", owner, repo, runID)
	}
	if _, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path}); err != nil {
		return nil, err
	}
	return map[string]any{"rerun_triggered": true, "run_id": runID, "failed_only": failedOnly}, nil
}

// CancelRun cancels an in-progress workflow run.
func (c *Client) CancelRun(ctx context.Context, owner, repo string, runID int64) (any, error) {
	if _, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/runs/%d/cancel", owner, repo, runID),
	}); err != nil {
		return nil, err
	}
	return map[string]any{"cancelled": true, "run_id": runID}, nil
}

// DeleteRun deletes a workflow run.
func (c *Client) DeleteRun(ctx context.Context, owner, repo string, runID int64) (any, error) {
	if _, err := c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/runs/%d", owner, repo, runID),
	}); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": true, "run_id": runID}, nil
}

// DispatchWorkflow triggers a workflow_dispatch event on the given ref.
// GitHub returns no body on success, so the dispatch parameters are
// echoed back as the result.
func (c *Client) DispatchWorkflow(ctx context.Context, owner, repo, workflowID, ref string, inputs map[string]any) (any, error) {
	body := map[string]any{"ref": ref}
	if len(inputs) > 0 {
		body["inputs"] = inputs
	}
	if _, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/dispatches", owner, repo, workflowID),
		Body:   body,
	}); err != nil {
		return nil, err
	}
	result := map[string]any{"dispatched": true, "workflow": workflowID, "ref": ref}
	if len(inputs) > 0 {
		result["inputs"] = inputs
	}
	return result, nil
}

// ListArtifacts lists artifacts for a run, or for the whole repository
// when runID is zero.
func (c *Client) ListArtifacts(ctx context.Context, owner, repo string, runID int64, opts ListOptions) (any, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/artifacts", owner, repo)
	if runID > 0 {
		path = fmt.Sprintf("/repos/%s/%s/actions/runs/%d/artifacts", owner, repo, runID)
	}
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  opts.params(),
	})
}

// GetArtifact fetches artifact metadata.
func (c *Client) GetArtifact(ctx context.Context, owner, repo string, artifactID int64) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/artifacts/%d", owner, repo, artifactID),
	})
}

// DeleteArtifact deletes an artifact.
func (c *Client) DeleteArtifact(ctx context.Context, owner, repo string, artifactID int64) (any, error) {
	if _, err := c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/repos/%s/%s/actions/artifacts/%d", owner, repo, artifactID),
	}); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": true, "artifact_id": artifactID}, nil
}

// toValidUTF8 replaces invalid byte sequences so log text can always
// be JSON-encoded.
func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}
