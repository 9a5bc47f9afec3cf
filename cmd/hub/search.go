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
	"context"

	"github.com/sirseerhq/sirseer-hub/internal/github"
	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search GitHub using the query syntax",
		Long: `Search repositories, code, issues, users, commits, and topics using
GitHub's search query syntax, for example:

  sirseer-hub search repos -q "language:go stars:>1000"
  sirseer-hub search issues -q "repo:golang/go is:open label:bug"`,
	}

	cmd.AddCommand(
		newSearchSubcommand("repos", "Search repositories", (*github.Client).SearchRepos),
		newSearchSubcommand("code", "Search file contents", (*github.Client).SearchCode),
		newSearchSubcommand("issues", "Search issues and pull requests", (*github.Client).SearchIssues),
		newSearchSubcommand("users", "Search users and organizations", (*github.Client).SearchUsers),
		newSearchSubcommand("commits", "Search commit messages", (*github.Client).SearchCommits),
		newSearchSubcommand("topics", "Search repository topics", (*github.Client).SearchTopics),
	)

	return cmd
}

// newSearchSubcommand builds one search command. The six endpoints take
// the same parameters, so only the path-selecting method differs.
func newSearchSubcommand(use, short string, search func(*github.Client, context.Context, github.SearchOptions) (any, error)) *cobra.Command {
	var opts github.SearchOptions

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			opts.ListOptions = a.listOptions(opts.PerPage, opts.Page)
			record, err := search(client, cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Search query")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort field (endpoint-specific)")
	cmd.Flags().StringVar(&opts.Order, "order", "", "Sort order (asc, desc)")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Results per page (max 100)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.MarkFlagRequired("query")

	return cmd
}
