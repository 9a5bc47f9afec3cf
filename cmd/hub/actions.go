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
	"os"

	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
	"github.com/sirseerhq/sirseer-hub/internal/github"
	"github.com/spf13/cobra"
)

func newActionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Inspect and control GitHub Actions workflows",
	}

	cmd.AddCommand(
		newActionsListWorkflowsCommand(),
		newActionsGetWorkflowCommand(),
		newActionsListRunsCommand(),
		newActionsGetRunCommand(),
		newActionsListJobsCommand(),
		newActionsGetJobCommand(),
		newActionsJobLogsCommand(),
		newActionsRunLogsCommand(),
		newActionsDeleteLogsCommand(),
		newActionsRerunCommand(),
		newActionsCancelCommand(),
		newActionsDeleteRunCommand(),
		newActionsDispatchCommand(),
		newActionsListArtifactsCommand(),
		newActionsGetArtifactCommand(),
		newActionsDeleteArtifactCommand(),
	)

	return cmd
}

func newActionsListWorkflowsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-workflows <owner>/<repo>",
		Short: "List workflows in a repository",
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
		record, err := client.ListWorkflows(cmd.Context(), owner, repo, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}

func newActionsGetWorkflowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-workflow <owner>/<repo> <workflow-id>",
		Short: "Get a workflow by ID or filename",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetWorkflow(cmd.Context(), owner, repo, args[1])
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newActionsListRunsCommand() *cobra.Command {
	var opts github.RunListOptions

	cmd := &cobra.Command{
		Use:   "list-runs <owner>/<repo>",
		Short: "List workflow runs",
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
			record, err := client.ListRuns(cmd.Context(), owner, repo, opts)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&opts.WorkflowID, "workflow", "", "Limit to one workflow (ID or filename like ci.yml)")
	cmd.Flags().StringVar(&opts.Actor, "actor", "", "Filter by the user who triggered the run")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Filter by branch")
	cmd.Flags().StringVar(&opts.Event, "event", "", "Filter by trigger event (push, pull_request, ...)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (queued, in_progress, completed, success, failure, ...)")
	cmd.Flags().StringVar(&opts.Created, "created", "", "Filter by creation date range (e.g. >=2024-01-01)")
	cmd.Flags().StringVar(&opts.HeadSHA, "head-sha", "", "Filter by head commit SHA")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Results per page (max 100)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")

	return cmd
}

func newActionsGetRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-run <owner>/<repo> <run-id>",
		Short: "Get a workflow run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			runID, err := parseID(args[1], "run id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetRun(cmd.Context(), owner, repo, runID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newActionsListJobsCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list-jobs <owner>/<repo> <run-id>",
		Short: "List jobs for a workflow run",
		Args:  cobra.ExactArgs(2),
	}
	pagination := paginationFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, owner, repo, err := setupRepoCommand(args[0])
		if err != nil {
			return err
		}
		runID, err := parseID(args[1], "run id")
		if err != nil {
			return err
		}
		client, err := a.restClient()
		if err != nil {
			return err
		}
		record, err := client.ListJobs(cmd.Context(), owner, repo, runID, filter, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Attempt filter (latest or all)")

	return cmd
}

func newActionsGetJobCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-job <owner>/<repo> <job-id>",
		Short: "Get a workflow job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			jobID, err := parseID(args[1], "job id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetJob(cmd.Context(), owner, repo, jobID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newActionsJobLogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "job-logs <owner>/<repo> <job-id>",
		Short: "Download the plain-text log of one job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			jobID, err := parseID(args[1], "job id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetJobLogs(cmd.Context(), owner, repo, jobID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newActionsRunLogsCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "run-logs <owner>/<repo> <run-id>",
		Short: "Download the log archive of a workflow run",
		Long: `Run logs are only available as a zip archive. With --output-file the
archive is written to disk; without it only the archive size is
reported, since the zip bytes are not useful on a terminal.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			runID, err := parseID(args[1], "run id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			data, err := client.GetRunLogs(cmd.Context(), owner, repo, runID)
			if err != nil {
				return err
			}

			if outputFile != "" {
				if err := os.WriteFile(outputFile, data, 0o644); err != nil {
					return fmt.Errorf("writing log archive to %s: %w", outputFile, err)
				}
				return a.render(map[string]any{
					"run_id":     runID,
					"saved_to":   outputFile,
					"size_bytes": len(data),
				})
			}
			return a.render(map[string]any{
				"run_id":     runID,
				"size_bytes": len(data),
				"note":       "logs are a zip archive, use --output-file to save them",
			})
		},
	}

	cmd.Flags().StringVar(&outputFile, "output-file", "", "Write the zip archive to this path")

	return cmd
}

func newActionsDeleteLogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-logs <owner>/<repo> <run-id>",
		Short: "Delete the logs of a workflow run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			runID, err := parseID(args[1], "run id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.DeleteRunLogs(cmd.Context(), owner, repo, runID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newActionsRerunCommand() *cobra.Command {
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "rerun <owner>/<repo> <run-id>",
		Short: "Re-run a workflow run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			runID, err := parseID(args[1], "run id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.RerunWorkflow(cmd.Context(), owner, repo, runID, failedOnly)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().BoolVar(&failedOnly, "failed-only", false, "Re-run only the failed jobs")

	return cmd
}

func newActionsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <owner>/<repo> <run-id>",
		Short: "Cancel an in-progress workflow run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			runID, err := parseID(args[1], "run id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.CancelRun(cmd.Context(), owner, repo, runID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newActionsDeleteRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-run <owner>/<repo> <run-id>",
		Short: "Delete a workflow run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			runID, err := parseID(args[1], "run id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.DeleteRun(cmd.Context(), owner, repo, runID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newActionsDispatchCommand() *cobra.Command {
	var (
		workflow   string
		ref        string
		inputsJSON string
	)

	cmd := &cobra.Command{
		Use:   "dispatch <owner>/<repo>",
		Short: "Trigger a workflow_dispatch event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}

			var inputs map[string]any
			if inputsJSON != "" {
				if err := json.Unmarshal([]byte(inputsJSON), &inputs); err != nil {
					return fmt.Errorf("invalid --inputs value, expected a JSON object: %w",
						huberrors.ErrInvalidInput)
				}
			}

			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.DispatchWorkflow(cmd.Context(), owner, repo, workflow, ref, inputs)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&workflow, "workflow", "", "Workflow ID or filename (e.g. ci.yml)")
	cmd.Flags().StringVar(&ref, "ref", "", "Branch or tag to run the workflow on")
	cmd.Flags().StringVar(&inputsJSON, "inputs", "", "Workflow inputs as a JSON object")
	cmd.MarkFlagRequired("workflow")
	cmd.MarkFlagRequired("ref")

	return cmd
}

func newActionsListArtifactsCommand() *cobra.Command {
	var runID int64

	cmd := &cobra.Command{
		Use:   "list-artifacts <owner>/<repo>",
		Short: "List artifacts for a run or the whole repository",
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
		record, err := client.ListArtifacts(cmd.Context(), owner, repo, runID, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	cmd.Flags().Int64Var(&runID, "run-id", 0, "Limit to one workflow run")

	return cmd
}

func newActionsGetArtifactCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-artifact <owner>/<repo> <artifact-id>",
		Short: "Get artifact metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			artifactID, err := parseID(args[1], "artifact id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetArtifact(cmd.Context(), owner, repo, artifactID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newActionsDeleteArtifactCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-artifact <owner>/<repo> <artifact-id>",
		Short: "Delete an artifact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			artifactID, err := parseID(args[1], "artifact id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.DeleteArtifact(cmd.Context(), owner, repo, artifactID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}
