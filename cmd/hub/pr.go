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
	"os"

	"github.com/sirseerhq/sirseer-hub/internal/github"
	"github.com/sirseerhq/sirseer-hub/internal/output"
	"github.com/spf13/cobra"
)

func newPRCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pr",
		Aliases: []string{"pull-request"},
		Short:   "Manage pull requests",
	}

	cmd.AddCommand(
		newPRListCommand(),
		newPRGetCommand(),
		newPRCreateCommand(),
		newPRUpdateCommand(),
		newPRFilesCommand(),
		newPRCommitsCommand(),
		newPRMergeCommand(),
		newPRCheckMergeableCommand(),
		newPRUpdateBranchCommand(),
		newPRReviewsCommand(),
		newPRReviewCommand(),
		newPRDismissReviewCommand(),
		newPRRequestReviewersCommand(),
		newPRRemoveReviewersCommand(),
		newPRStatusCommand(),
		newPRCommentCommand(),
		newPRListCommentsCommand(),
		newPRExportCommand(),
	)

	return cmd
}

func newPRListCommand() *cobra.Command {
	var opts github.PullListOptions

	cmd := &cobra.Command{
		Use:   "list <owner>/<repo>",
		Short: "List pull requests",
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
			record, err := client.ListPulls(cmd.Context(), owner, repo, opts)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&opts.State, "state", "open", "PR state filter (open, closed, all)")
	cmd.Flags().StringVar(&opts.Head, "head", "", "Filter by head branch (user:branch or branch)")
	cmd.Flags().StringVar(&opts.Base, "base", "", "Filter by base branch")
	cmd.Flags().StringVar(&opts.Sort, "sort", "created", "Sort field (created, updated, popularity, long-running)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "desc", "Sort direction (asc, desc)")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Results per page (max 100)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")

	return cmd
}

func newPRGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <owner>/<repo> <number>",
		Short: "Get pull request details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetPull(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newPRCreateCommand() *cobra.Command {
	var (
		title string
		head  string
		base  string
		body  string
		draft bool
	)

	cmd := &cobra.Command{
		Use:   "create <owner>/<repo>",
		Short: "Create a pull request",
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
			record, err := client.CreatePull(cmd.Context(), owner, repo, title, head, base, body, draft)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "PR title")
	cmd.Flags().StringVar(&head, "head", "", "Head branch (source)")
	cmd.Flags().StringVar(&base, "base", "", "Base branch (target)")
	cmd.Flags().StringVar(&body, "body", "", "PR description")
	cmd.Flags().BoolVar(&draft, "draft", false, "Create as draft PR")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("head")
	cmd.MarkFlagRequired("base")

	return cmd
}

func newPRUpdateCommand() *cobra.Command {
	var (
		title string
		body  string
		state string
		base  string
	)

	cmd := &cobra.Command{
		Use:   "update <owner>/<repo> <number>",
		Short: "Update a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}

			var req github.PullRequestUpdate
			if cmd.Flags().Changed("title") {
				req.Title = github.String(title)
			}
			if cmd.Flags().Changed("body") {
				req.Body = github.String(body)
			}
			if cmd.Flags().Changed("state") {
				req.State = github.String(state)
			}
			if cmd.Flags().Changed("base") {
				req.Base = github.String(base)
			}

			record, err := client.UpdatePull(cmd.Context(), owner, repo, number, req)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&body, "body", "", "New description")
	cmd.Flags().StringVar(&state, "state", "", "New state (open, closed)")
	cmd.Flags().StringVar(&base, "base", "", "New base branch")

	return cmd
}

func newPRFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files <owner>/<repo> <number>",
		Short: "List files changed in a pull request",
		Args:  cobra.ExactArgs(2),
	}
	pagination := paginationFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, owner, repo, err := setupRepoCommand(args[0])
		if err != nil {
			return err
		}
		number, err := parseNumber(args[1], "PR number")
		if err != nil {
			return err
		}
		client, err := a.restClient()
		if err != nil {
			return err
		}
		record, err := client.ListPullFiles(cmd.Context(), owner, repo, number, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}

func newPRCommitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commits <owner>/<repo> <number>",
		Short: "List commits in a pull request",
		Args:  cobra.ExactArgs(2),
	}
	pagination := paginationFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, owner, repo, err := setupRepoCommand(args[0])
		if err != nil {
			return err
		}
		number, err := parseNumber(args[1], "PR number")
		if err != nil {
			return err
		}
		client, err := a.restClient()
		if err != nil {
			return err
		}
		record, err := client.ListPullCommits(cmd.Context(), owner, repo, number, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}

func newPRMergeCommand() *cobra.Command {
	var opts github.MergeOptions

	cmd := &cobra.Command{
		Use:   "merge <owner>/<repo> <number>",
		Short: "Merge a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.MergePull(cmd.Context(), owner, repo, number, opts)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&opts.Method, "method", "merge", "Merge method (merge, squash, rebase)")
	cmd.Flags().StringVar(&opts.CommitTitle, "commit-title", "", "Custom merge commit title")
	cmd.Flags().StringVar(&opts.CommitMessage, "commit-message", "", "Custom merge commit message")
	cmd.Flags().StringVar(&opts.SHA, "sha", "", "Expected head SHA (safety check)")

	return cmd
}

func newPRCheckMergeableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-mergeable <owner>/<repo> <number>",
		Short: "Check if a pull request is mergeable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.CheckMergeable(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newPRUpdateBranchCommand() *cobra.Command {
	var expectedSHA string

	cmd := &cobra.Command{
		Use:   "update-branch <owner>/<repo> <number>",
		Short: "Update a pull request branch with its base",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.UpdatePullBranch(cmd.Context(), owner, repo, number, expectedSHA)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&expectedSHA, "expected-sha", "", "Expected head SHA (safety check)")

	return cmd
}

func newPRReviewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews <owner>/<repo> <number>",
		Short: "List pull request reviews",
		Args:  cobra.ExactArgs(2),
	}
	pagination := paginationFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, owner, repo, err := setupRepoCommand(args[0])
		if err != nil {
			return err
		}
		number, err := parseNumber(args[1], "PR number")
		if err != nil {
			return err
		}
		client, err := a.restClient()
		if err != nil {
			return err
		}
		record, err := client.ListReviews(cmd.Context(), owner, repo, number, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}

func newPRReviewCommand() *cobra.Command {
	var req github.ReviewRequest

	cmd := &cobra.Command{
		Use:   "review <owner>/<repo> <number>",
		Short: "Create a pull request review",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.CreateReview(cmd.Context(), owner, repo, number, req)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&req.Event, "event", "", "Review decision (APPROVE, REQUEST_CHANGES, COMMENT)")
	cmd.Flags().StringVar(&req.Body, "body", "", "Review comment")
	cmd.Flags().StringVar(&req.CommitID, "commit-id", "", "SHA of the commit to review")
	cmd.MarkFlagRequired("event")

	return cmd
}

func newPRDismissReviewCommand() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "dismiss-review <owner>/<repo> <number> <review-id>",
		Short: "Dismiss a review",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			reviewID, err := parseID(args[2], "review id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.DismissReview(cmd.Context(), owner, repo, number, reviewID, message)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Dismissal reason")
	cmd.MarkFlagRequired("message")

	return cmd
}

func newPRRequestReviewersCommand() *cobra.Command {
	var reviewers, teamReviewers []string

	cmd := &cobra.Command{
		Use:   "request-reviewers <owner>/<repo> <number>",
		Short: "Request reviewers for a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.RequestReviewers(cmd.Context(), owner, repo, number, reviewers, teamReviewers)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringSliceVar(&reviewers, "reviewers", nil, "Usernames to request")
	cmd.Flags().StringSliceVar(&teamReviewers, "team-reviewers", nil, "Team slugs to request")

	return cmd
}

func newPRRemoveReviewersCommand() *cobra.Command {
	var reviewers, teamReviewers []string

	cmd := &cobra.Command{
		Use:   "remove-reviewers <owner>/<repo> <number>",
		Short: "Remove requested reviewers from a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.RemoveReviewers(cmd.Context(), owner, repo, number, reviewers, teamReviewers)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringSliceVar(&reviewers, "reviewers", nil, "Usernames to remove")
	cmd.Flags().StringSliceVar(&teamReviewers, "team-reviewers", nil, "Team slugs to remove")

	return cmd
}

func newPRStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <owner>/<repo> <number>",
		Short: "Get CI and check status for a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.PullStatus(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newPRCommentCommand() *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "comment <owner>/<repo> <number>",
		Short: "Add a comment to a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "PR number")
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

func newPRListCommentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-comments <owner>/<repo> <number>",
		Short: "List pull request comments",
		Args:  cobra.ExactArgs(2),
	}
	pagination := paginationFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, owner, repo, err := setupRepoCommand(args[0])
		if err != nil {
			return err
		}
		number, err := parseNumber(args[1], "PR number")
		if err != nil {
			return err
		}
		client, err := a.restClient()
		if err != nil {
			return err
		}
		record, err := client.ListIssueComments(cmd.Context(), owner, repo, number, "", pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}

func newPRExportCommand() *cobra.Command {
	var (
		outputFile string
		exportAll  bool
	)

	cmd := &cobra.Command{
		Use:   "export <owner>/<repo>",
		Short: "Export pull requests as NDJSON",
		Long: `Export pull request records in NDJSON format, one per line, ordered by
most recently updated. By default only the first page is fetched; with
--all the export paginates through the entire repository with
cursor-based pagination, so it handles large repositories without
loading everything into memory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			client, err := a.graphqlClient()
			if err != nil {
				return err
			}

			var writer *output.Writer
			if outputFile == "" {
				writer = output.NewWriter(os.Stdout)
			} else {
				writer, err = output.NewFileWriter(outputFile)
				if err != nil {
					return err
				}
			}
			defer writer.Close()

			if !exportAll {
				page, err := client.FetchPullRequests(cmd.Context(), owner, repo, github.ExportOptions{})
				if err != nil {
					return err
				}
				for _, record := range page.PullRequests {
					if err := writer.Write(record); err != nil {
						return err
					}
				}
				fmt.Fprintf(os.Stderr, "Exported %d pull requests\n", writer.Count())
				return nil
			}

			info, err := client.GetRepositoryInfo(cmd.Context(), owner, repo)
			if err != nil {
				return err
			}
			if info.TotalPullRequests == 0 {
				fmt.Fprintf(os.Stderr, "No pull requests found in %s/%s\n", owner, repo)
				return nil
			}

			fmt.Fprintf(os.Stderr, "Exporting %d pull requests from %s/%s...\n",
				info.TotalPullRequests, owner, repo)

			count, err := client.ExportPullRequests(cmd.Context(), owner, repo, func(record map[string]any) error {
				return writer.Write(record)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Exported %d pull requests\n", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&exportAll, "all", false, "Export every pull request, not just the first page")

	return cmd
}
