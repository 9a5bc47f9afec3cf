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

// AlertListOptions filters the security alert list endpoints. Not all
// fields apply to every alert type; unused filters are simply omitted
// from the query.
type AlertListOptions struct {
	State      string
	Severity   string
	Ecosystem  string
	Package    string
	Scope      string
	ToolName   string
	Ref        string
	SecretType string
	Resolution string
	Sort       string
	Direction  string
	ListOptions
}

// AlertUpdate changes the state of a security alert. Dependabot and
// code scanning alerts use DismissedReason; secret scanning alerts use
// Resolution.
type AlertUpdate struct {
	State             string
	DismissedReason   string
	DismissedComment  string
	Resolution        string
	ResolutionComment string
}

// ListDependabotAlerts lists Dependabot alerts for a repository.
func (c *Client) ListDependabotAlerts(ctx context.Context, owner, repo string, opts AlertListOptions) (any, error) {
	params := Params{
		"state":     opts.State,
		"severity":  opts.Severity,
		"ecosystem": opts.Ecosystem,
		"package":   opts.Package,
		"scope":     opts.Scope,
		"sort":      opts.Sort,
		"direction": opts.Direction,
	}
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/dependabot/alerts", owner, repo),
		Query:  opts.merge(params),
	})
}

// GetDependabotAlert fetches a single Dependabot alert.
func (c *Client) GetDependabotAlert(ctx context.Context, owner, repo string, number int) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/dependabot/alerts/%d", owner, repo, number),
	})
}

// UpdateDependabotAlert dismisses or reopens a Dependabot alert.
func (c *Client) UpdateDependabotAlert(ctx context.Context, owner, repo string, number int, update AlertUpdate) (any, error) {
	body := map[string]any{"state": update.State}
	if update.DismissedReason != "" {
		body["dismissed_reason"] = update.DismissedReason
	}
	if update.DismissedComment != "" {
		body["dismissed_comment"] = update.DismissedComment
	}
	return c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/repos/%s/%s/dependabot/alerts/%d", owner, repo, number),
		Body:   body,
	})
}

// ListCodeScanningAlerts lists code scanning alerts for a repository.
func (c *Client) ListCodeScanningAlerts(ctx context.Context, owner, repo string, opts AlertListOptions) (any, error) {
	params := Params{
		"state":     opts.State,
		"severity":  opts.Severity,
		"tool_name": opts.ToolName,
		"ref":       opts.Ref,
		"sort":      opts.Sort,
		"direction": opts.Direction,
	}
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/code-scanning/alerts", owner, repo),
		Query:  opts.merge(params),
	})
}

// GetCodeScanningAlert fetches a single code scanning alert.
func (c *Client) GetCodeScanningAlert(ctx context.Context, owner, repo string, number int) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/code-scanning/alerts/%d", owner, repo, number),
	})
}

// UpdateCodeScanningAlert dismisses or reopens a code scanning alert.
func (c *Client) UpdateCodeScanningAlert(ctx context.Context, owner, repo string, number int, update AlertUpdate) (any, error) {
	body := map[string]any{"state": update.State}
	if update.DismissedReason != "" {
		body["dismissed_reason"] = update.DismissedReason
	}
	if update.DismissedComment != "" {
		body["dismissed_comment"] = update.DismissedComment
	}
	return c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/repos/%s/%s/code-scanning/alerts/%d", owner, repo, number),
		Body:   body,
	})
}

// ListCodeScanningAnalyses lists code scanning analyses.
func (c *Client) ListCodeScanningAnalyses(ctx context.Context, owner, repo, ref, toolName string, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/code-scanning/analyses", owner, repo),
		Query:  opts.merge(Params{"ref": ref, "tool_name": toolName}),
	})
}

// GetCodeScanningAnalysis fetches a single code scanning analysis.
func (c *Client) GetCodeScanningAnalysis(ctx context.Context, owner, repo string, analysisID int64) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/code-scanning/analyses/%d", owner, repo, analysisID),
	})
}

// ListSecretScanningAlerts lists secret scanning alerts for a
// repository.
func (c *Client) ListSecretScanningAlerts(ctx context.Context, owner, repo string, opts AlertListOptions) (any, error) {
	params := Params{
		"state":       opts.State,
		"secret_type": opts.SecretType,
		"resolution":  opts.Resolution,
		"sort":        opts.Sort,
		"direction":   opts.Direction,
	}
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/secret-scanning/alerts", owner, repo),
		Query:  opts.merge(params),
	})
}

// GetSecretScanningAlert fetches a single secret scanning alert.
func (c *Client) GetSecretScanningAlert(ctx context.Context, owner, repo string, number int) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/secret-scanning/alerts/%d", owner, repo, number),
	})
}

// UpdateSecretScanningAlert resolves or reopens a secret scanning
// alert.
func (c *Client) UpdateSecretScanningAlert(ctx context.Context, owner, repo string, number int, update AlertUpdate) (any, error) {
	body := map[string]any{"state": update.State}
	if update.Resolution != "" {
		body["resolution"] = update.Resolution
	}
	if update.ResolutionComment != "" {
		body["resolution_comment"] = update.ResolutionComment
	}
	return c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/repos/%s/%s/secret-scanning/alerts/%d", owner, repo, number),
		Body:   body,
	})
}

// ListSecretScanningLocations lists where a leaked secret was found.
func (c *Client) ListSecretScanningLocations(ctx context.Context, owner, repo string, number int, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/secret-scanning/alerts/%d/locations", owner, repo, number),
		Query:  opts.params(),
	})
}

// ListSecurityAdvisories lists repository security advisories.
func (c *Client) ListSecurityAdvisories(ctx context.Context, owner, repo string, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/security-advisories", owner, repo),
		Query:  opts.params(),
	})
}
