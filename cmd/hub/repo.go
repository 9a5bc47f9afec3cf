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
	"encoding/json"
	"fmt"

	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
	"github.com/spf13/cobra"
)

func newRepoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage repositories, branches, and files",
	}

	cmd.AddCommand(
		newRepoGetCommand(),
		newRepoCreateCommand(),
		newRepoForkCommand(),
		newRepoListBranchesCommand(),
		newRepoGetFileCommand(),
		newRepoListFilesCommand(),
		newRepoCreateFileCommand(),
		newRepoDeleteFileCommand(),
		newRepoPushFilesCommand(),
		newRepoCreateBranchCommand(),
	)

	return cmd
}

func newRepoGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <owner>/<repo>",
		Short: "Get repository details",
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
			record, err := client.GetRepo(cmd.Context(), owner, repo)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newRepoCreateCommand() *cobra.Command {
	var (
		name        string
		description string
		private     bool
		autoInit    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a repository for the authenticated user",
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
			record, err := client.CreateRepo(cmd.Context(), name, description, private, autoInit)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Repository name")
	cmd.Flags().StringVar(&description, "description", "", "Repository description")
	cmd.Flags().BoolVar(&private, "private", false, "Create as private repository")
	cmd.Flags().BoolVar(&autoInit, "auto-init", false, "Initialize with a README")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newRepoForkCommand() *cobra.Command {
	var organization string

	cmd := &cobra.Command{
		Use:   "fork <owner>/<repo>",
		Short: "Fork a repository",
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
			record, err := client.ForkRepo(cmd.Context(), owner, repo, organization)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&organization, "organization", "", "Fork into this organization instead of the user account")

	return cmd
}

func newRepoListBranchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-branches <owner>/<repo>",
		Short: "List repository branches",
		Args:  cobra.ExactArgs(1),
	}
	pagination := paginationFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, owner, repo, err := setupRepoCommand(args[0])
		if err != nil {
			return err
		}
		client, err := a.restClient()
		if err != nil {
			return err
		}
		record, err := client.ListBranches(cmd.Context(), owner, repo, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}

func newRepoGetFileCommand() *cobra.Command {
	var (
		path string
		ref  string
	)

	cmd := &cobra.Command{
		Use:   "get-file <owner>/<repo>",
		Short: "Get file or directory contents",
		Long: `Fetch a file or directory from a repository. File content is
base64-decoded into a decoded_content field; directories come back as
the raw listing. Use an empty --path for the repository root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetContents(cmd.Context(), owner, repo, path, ref)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path to the file or directory")
	cmd.Flags().StringVar(&ref, "ref", "", "Branch, tag, or commit SHA")

	return cmd
}

func newRepoListFilesCommand() *cobra.Command {
	var (
		path string
		ref  string
	)

	cmd := &cobra.Command{
		Use:   "list-files <owner>/<repo>",
		Short: "List the contents of a directory",
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
			record, err := client.GetContents(cmd.Context(), owner, repo, path, ref)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Directory path (default: repository root)")
	cmd.Flags().StringVar(&ref, "ref", "", "Branch, tag, or commit SHA")

	return cmd
}

func newRepoCreateFileCommand() *cobra.Command {
	var (
		path    string
		content string
		message string
		branch  string
		sha     string
	)

	cmd := &cobra.Command{
		Use:   "create-file <owner>/<repo>",
		Short: "Create or update a single file",
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
			record, err := client.PutFile(cmd.Context(), owner, repo, path, content, message, branch, sha)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path of the file in the repository")
	cmd.Flags().StringVar(&content, "content", "", "File content")
	cmd.Flags().StringVar(&message, "message", "", "Commit message")
	cmd.Flags().StringVar(&branch, "branch", "", "Target branch (default: repository default branch)")
	cmd.Flags().StringVar(&sha, "sha", "", "Current file SHA (required when updating an existing file)")
	cmd.MarkFlagRequired("path")
	cmd.MarkFlagRequired("content")
	cmd.MarkFlagRequired("message")

	return cmd
}

func newRepoDeleteFileCommand() *cobra.Command {
	var (
		path    string
		message string
		sha     string
		branch  string
	)

	cmd := &cobra.Command{
		Use:   "delete-file <owner>/<repo>",
		Short: "Delete a file",
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
			record, err := client.DeleteFile(cmd.Context(), owner, repo, path, message, sha, branch)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path of the file in the repository")
	cmd.Flags().StringVar(&message, "message", "", "Commit message")
	cmd.Flags().StringVar(&sha, "sha", "", "Current file SHA")
	cmd.Flags().StringVar(&branch, "branch", "", "Target branch (default: repository default branch)")
	cmd.MarkFlagRequired("path")
	cmd.MarkFlagRequired("message")
	cmd.MarkFlagRequired("sha")

	return cmd
}

func newRepoPushFilesCommand() *cobra.Command {
	var (
		branch    string
		message   string
		filesJSON string
	)

	cmd := &cobra.Command{
		Use:   "push-files <owner>/<repo>",
		Short: "Push multiple files in a single commit",
		Long: `Write several files to a branch in one commit using the git data
API. Files are given as a JSON object mapping repository paths to file
contents, for example:

  --files '{"docs/a.md": "# A", "docs/b.md": "# B"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}

			var files map[string]string
			if err := json.Unmarshal([]byte(filesJSON), &files); err != nil {
				return fmt.Errorf("invalid --files value, expected a JSON object of path to content: %w",
					huberrors.ErrInvalidInput)
			}

			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.PushFiles(cmd.Context(), owner, repo, branch, message, files)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Target branch")
	cmd.Flags().StringVar(&message, "message", "", "Commit message")
	cmd.Flags().StringVar(&filesJSON, "files", "", "JSON object mapping paths to file contents")
	cmd.MarkFlagRequired("branch")
	cmd.MarkFlagRequired("message")
	cmd.MarkFlagRequired("files")

	return cmd
}

func newRepoCreateBranchCommand() *cobra.Command {
	var (
		branch     string
		fromBranch string
	)

	cmd := &cobra.Command{
		Use:   "create-branch <owner>/<repo>",
		Short: "Create a branch",
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
			record, err := client.CreateBranch(cmd.Context(), owner, repo, branch, fromBranch)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Name of the branch to create")
	cmd.Flags().StringVar(&fromBranch, "from-branch", "", "Source branch (default: main, falling back to master)")
	cmd.MarkFlagRequired("branch")

	return cmd
}
