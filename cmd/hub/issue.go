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

package main

import (
	"fmt"
	"strconv"

	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
	"github.com/sirseerhq/sirseer-hub/internal/github"
	"github.com/spf13/cobra"
)

func newIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Manage repository issues",
	}

	cmd.AddCommand(
		newIssueListCommand(),
		newIssueGetCommand(),
		newIssueCreateCommand(),
		newIssueUpdateCommand(),
		newIssueCommentCommand(),
		newIssueListCommentsCommand(),
		newIssueUpdateCommentCommand(),
		newIssueDeleteCommentCommand(),
		newIssueAddLabelsCommand(),
		newIssueRemoveLabelCommand(),
		newIssueLockCommand(),
		newIssueUnlockCommand(),
	)

	return cmd
}

func newIssueListCommand() *cobra.Command {
	var opts github.IssueListOptions

	cmd := &cobra.Command{
		Use:   "list <owner>/<repo>",
		Short: "List issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			opts.ListOptions = a.listOptions(opts.PerPage, opts.Page)
			record, err := client.ListIssues(cmd.Context(), owner, repo, opts)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&opts.State, "state", "open", "Issue state filter (open, closed, all)")
	cmd.Flags().StringSliceVar(&opts.Labels, "labels", nil, "Filter by label names")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Filter by assignee username")
	cmd.Flags().StringVar(&opts.Creator, "creator", "", "Filter by creator username")
	cmd.Flags().StringVar(&opts.Mentioned, "mentioned", "", "Filter by mentioned username")
	cmd.Flags().StringVar(&opts.Sort, "sort", "created", "Sort field (created, updated, comments)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "desc", "Sort direction (asc, desc)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Only issues updated after this time (ISO 8601)")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Results per page (max 100)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")

	return cmd
}

func newIssueGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <owner>/<repo> <number>",
		Short: "Get a single issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "issue number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetIssue(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newIssueCreateCommand() *cobra.Command {
	var (
		title     string
		body      string
		labels    []string
		assignees []string
		milestone int
	)

	cmd := &cobra.Command{
		Use:   "create <owner>/<repo>",
		Short: "Create a new issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}

			req := github.IssueRequest{Title: github.String(title)}
			if cmd.Flags().Changed("body") {
				req.Body = github.String(body)
			}
			if len(labels) > 0 {
				req.Labels = labels
			}
			if len(assignees) > 0 {
				req.Assignees = assignees
			}
			if cmd.Flags().Changed("milestone") {
				req.Milestone = github.Int(milestone)
			}

			record, err := client.CreateIssue(cmd.Context(), owner, repo, req)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Issue title")
	cmd.Flags().StringVar(&body, "body", "", "Issue body/description")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "Label names")
	cmd.Flags().StringSliceVar(&assignees, "assignees", nil, "Usernames to assign")
	cmd.Flags().IntVar(&milestone, "milestone", 0, "Milestone number")
	cmd.MarkFlagRequired("title")

	return cmd
}

func newIssueUpdateCommand() *cobra.Command {
	var (
		title       string
		body        string
		state       string
		stateReason string
		labels      []string
		assignees   []string
		milestone   int
	)

	cmd := &cobra.Command{
		Use:   "update <owner>/<repo> <number>",
		Short: "Update an existing issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "issue number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}

			var req github.IssueRequest
			if cmd.Flags().Changed("title") {
				req.Title = github.String(title)
			}
			if cmd.Flags().Changed("body") {
				req.Body = github.String(body)
			}
			if cmd.Flags().Changed("state") {
				req.State = github.String(state)
			}
			if cmd.Flags().Changed("state-reason") {
				req.StateReason = github.String(stateReason)
			}
			if cmd.Flags().Changed("labels") {
				req.Labels = labels
			}
			if cmd.Flags().Changed("assignees") {
				req.Assignees = assignees
			}
			if cmd.Flags().Changed("milestone") {
				req.Milestone = github.Int(milestone)
			}

			record, err := client.UpdateIssue(cmd.Context(), owner, repo, number, req)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&body, "body", "", "New body")
	cmd.Flags().StringVar(&state, "state", "", "New state (open, closed)")
	cmd.Flags().StringVar(&stateReason, "state-reason", "", "Reason for state change (completed, not_planned, reopened)")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "Labels (replaces existing)")
	cmd.Flags().StringSliceVar(&assignees, "assignees", nil, "Assignees (replaces existing)")
	cmd.Flags().IntVar(&milestone, "milestone", 0, "Milestone number")

	return cmd
}

func newIssueCommentCommand() *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "comment <owner>/<repo> <number>",
		Short: "Add a comment to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "issue number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.AddIssueComment(cmd.Context(), owner, repo, number, body)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Comment text")
	cmd.MarkFlagRequired("body")

	return cmd
}

func newIssueListCommentsCommand() *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "list-comments <owner>/<repo> <number>",
		Short: "List issue comments",
		Args:  cobra.ExactArgs(2),
	}
	pagination := paginationFlags(cmd)
	cmd.Flags().StringVar(&since, "since", "", "Only comments after this time (ISO 8601)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, owner, repo, err := setupRepoCommand(args[0])
		if err != nil {
			return err
		}
		number, err := parseNumber(args[1], "issue number")
		if err != nil {
			return err
		}
		client, err := a.restClient()
		if err != nil {
			return err
		}
		record, err := client.ListIssueComments(cmd.Context(), owner, repo, number, since, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}

func newIssueUpdateCommentCommand() *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "update-comment <owner>/<repo> <comment-id>",
		Short: "Update an existing comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			commentID, err := parseID(args[1], "comment id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.UpdateIssueComment(cmd.Context(), owner, repo, commentID, body)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "New comment text")
	cmd.MarkFlagRequired("body")

	return cmd
}

func newIssueDeleteCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-comment <owner>/<repo> <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			commentID, err := parseID(args[1], "comment id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.DeleteIssueComment(cmd.Context(), owner, repo, commentID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newIssueAddLabelsCommand() *cobra.Command {
	var labels []string

	cmd := &cobra.Command{
		Use:   "add-labels <owner>/<repo> <number>",
		Short: "Add labels to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "issue number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.AddIssueLabels(cmd.Context(), owner, repo, number, labels)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringSliceVar(&labels, "labels", nil, "Labels to add")
	cmd.MarkFlagRequired("labels")

	return cmd
}

func newIssueRemoveLabelCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "remove-label <owner>/<repo> <number>",
		Short: "Remove a label from an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "issue number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.RemoveIssueLabel(cmd.Context(), owner, repo, number, label)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Label name to remove")
	cmd.MarkFlagRequired("label")

	return cmd
}

func newIssueLockCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "lock <owner>/<repo> <number>",
		Short: "Lock an issue conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "issue number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.LockIssue(cmd.Context(), owner, repo, number, reason)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Lock reason (off-topic, too heated, resolved, spam)")

	return cmd
}

func newIssueUnlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <owner>/<repo> <number>",
		Short: "Unlock an issue conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "issue number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.UnlockIssue(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

// setupRepoCommand loads the app and parses the owner/repo argument,
// the first two steps of nearly every command.
func setupRepoCommand(repoArg string) (*app, string, string, error) {
	a, err := newApp()
	if err != nil {
		return nil, "", "", err
	}
	owner, repo, err := parseRepository(repoArg)
	if err != nil {
		return nil, "", "", err
	}
	return a, owner, repo, nil
}

// parseNumber parses a positional issue or PR number.
func parseNumber(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %s: %w", what, arg, huberrors.ErrInvalidInput)
	}
	return n, nil
}

// parseID parses a positional numeric identifier (comment, run, job,
// artifact, or review IDs).
func parseID(arg, what string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %s: %w", what, arg, huberrors.ErrInvalidInput)
	}
	return n, nil
}
