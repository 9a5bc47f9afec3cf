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

// ListOptions carries the pagination parameters shared by every list
// operation. Zero values are omitted from the request so GitHub's
// defaults apply.
type ListOptions struct {
	PerPage int
	Page    int
}

// params returns the pagination query parameters.
func (o ListOptions) params() Params {
	p := Params{}
	if o.PerPage > 0 {
		p["per_page"] = o.PerPage
	}
	if o.Page > 0 {
		p["page"] = o.Page
	}
	return p
}

// merge folds pagination parameters into an existing parameter set.
func (o ListOptions) merge(p Params) Params {
	for k, v := range o.params() {
		p[k] = v
	}
	return p
}

// IssueListOptions filters the issue list endpoint.
type IssueListOptions struct {
	State     string
	Labels    []string
	Assignee  string
	Creator   string
	Mentioned string
	Sort      string
	Direction string
	Since     string
	ListOptions
}

// IssueRequest holds the mutable fields of an issue. Nil pointers mean
// "leave unchanged" on update and "omit" on create, so a create with
// only a title sends exactly {"title": ...}.
type IssueRequest struct {
	Title       *string
	Body        *string
	State       *string
	StateReason *string
	Labels      []string
	Assignees   []string
	Milestone   *int
}

// body renders the request as the JSON object GitHub expects,
// including only the fields that were set.
func (r IssueRequest) body() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["title"] = *r.Title
	}
	if r.Body != nil {
		m["body"] = *r.Body
	}
	if r.State != nil {
		m["state"] = *r.State
	}
	if r.StateReason != nil {
		m["state_reason"] = *r.StateReason
	}
	if r.Labels != nil {
		m["labels"] = r.Labels
	}
	if r.Assignees != nil {
		m["assignees"] = r.Assignees
	}
	if r.Milestone != nil {
		m["milestone"] = *r.Milestone
	}
	return m
}

// PullListOptions filters the pull request list endpoint.
type PullListOptions struct {
	State     string
	Head      string
	Base      string
	Sort      string
	Direction string
	ListOptions
}

// PullRequestUpdate holds the mutable fields of a pull request.
type PullRequestUpdate struct {
	Title               *string
	Body                *string
	State               *string
	Base                *string
	MaintainerCanModify *bool
}

func (r PullRequestUpdate) body() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["title"] = *r.Title
	}
	if r.Body != nil {
		m["body"] = *r.Body
	}
	if r.State != nil {
		m["state"] = *r.State
	}
	if r.Base != nil {
		m["base"] = *r.Base
	}
	if r.MaintainerCanModify != nil {
		m["maintainer_can_modify"] = *r.MaintainerCanModify
	}
	return m
}

// MergeOptions controls how a pull request is merged.
type MergeOptions struct {
	Method        string
	CommitTitle   string
	CommitMessage string
	SHA           string
}

// ReviewRequest describes a pull request review to create.
type ReviewRequest struct {
	Event    string
	Body     string
	CommitID string
	Comments []map[string]any
}

// String returns a pointer to s, for optional request fields.
func String(s string) *string { return &s }

// Int returns a pointer to n, for optional request fields.
func Int(n int) *int { return &n }

// Bool returns a pointer to b, for optional request fields.
func Bool(b bool) *bool { return &b }
