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
	"github.com/sirseerhq/sirseer-hub/internal/github"
	"github.com/spf13/cobra"
)

func newSecurityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security",
		Short: "Work with Dependabot, code scanning, and secret scanning alerts",
	}

	cmd.AddCommand(
		newDependabotAlertsCommand(),
		newGetDependabotAlertCommand(),
		newUpdateDependabotAlertCommand(),
		newCodeScanningAlertsCommand(),
		newGetCodeScanningAlertCommand(),
		newUpdateCodeScanningAlertCommand(),
		newCodeScanningAnalysesCommand(),
		newGetCodeScanningAnalysisCommand(),
		newSecretScanningAlertsCommand(),
		newGetSecretScanningAlertCommand(),
		newUpdateSecretScanningAlertCommand(),
		newSecretScanningLocationsCommand(),
		newSecurityAdvisoriesCommand(),
	)

	return cmd
}

func newDependabotAlertsCommand() *cobra.Command {
	var opts github.AlertListOptions

	cmd := &cobra.Command{
		Use:   "dependabot-alerts <owner>/<repo>",
		Short: "List Dependabot alerts",
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
			record, err := client.ListDependabotAlerts(cmd.Context(), owner, repo, opts)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&opts.State, "state", "", "Filter by state (open, fixed, dismissed, auto_dismissed)")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Filter by severity (low, medium, high, critical)")
	cmd.Flags().StringVar(&opts.Ecosystem, "ecosystem", "", "Filter by package ecosystem (npm, pip, go, ...)")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Filter by package name")
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "Filter by dependency scope (development, runtime)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort field (created, updated)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "Sort direction (asc, desc)")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Results per page (max 100)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")

	return cmd
}

func newGetDependabotAlertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-dependabot-alert <owner>/<repo> <number>",
		Short: "Get a Dependabot alert",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "alert number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetDependabotAlert(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newUpdateDependabotAlertCommand() *cobra.Command {
	var update github.AlertUpdate

	cmd := &cobra.Command{
		Use:   "update-dependabot-alert <owner>/<repo> <number>",
		Short: "Dismiss or reopen a Dependabot alert",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "alert number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.UpdateDependabotAlert(cmd.Context(), owner, repo, number, update)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&update.State, "state", "", "New state (open, dismissed)")
	cmd.Flags().StringVar(&update.DismissedReason, "dismissed-reason", "", "Reason when dismissing (fix_started, inaccurate, no_bandwidth, not_used, tolerable_risk)")
	cmd.Flags().StringVar(&update.DismissedComment, "dismissed-comment", "", "Optional dismissal comment")
	cmd.MarkFlagRequired("state")

	return cmd
}

func newCodeScanningAlertsCommand() *cobra.Command {
	var opts github.AlertListOptions

	cmd := &cobra.Command{
		Use:   "code-scanning-alerts <owner>/<repo>",
		Short: "List code scanning alerts",
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
			record, err := client.ListCodeScanningAlerts(cmd.Context(), owner, repo, opts)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&opts.State, "state", "", "Filter by state (open, closed, dismissed, fixed)")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Filter by severity (critical, high, medium, low, warning, note, error)")
	cmd.Flags().StringVar(&opts.ToolName, "tool-name", "", "Filter by analysis tool (e.g. CodeQL)")
	cmd.Flags().StringVar(&opts.Ref, "ref", "", "Filter by git ref")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort field (created, updated)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "Sort direction (asc, desc)")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Results per page (max 100)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")

	return cmd
}

func newGetCodeScanningAlertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-code-scanning-alert <owner>/<repo> <number>",
		Short: "Get a code scanning alert",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "alert number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetCodeScanningAlert(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newUpdateCodeScanningAlertCommand() *cobra.Command {
	var update github.AlertUpdate

	cmd := &cobra.Command{
		Use:   "update-code-scanning-alert <owner>/<repo> <number>",
		Short: "Dismiss or reopen a code scanning alert",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "alert number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.UpdateCodeScanningAlert(cmd.Context(), owner, repo, number, update)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&update.State, "state", "", "New state (open, dismissed)")
	cmd.Flags().StringVar(&update.DismissedReason, "dismissed-reason", "", "Reason when dismissing (false positive, won't fix, used in tests)")
	cmd.Flags().StringVar(&update.DismissedComment, "dismissed-comment", "", "Optional dismissal comment")
	cmd.MarkFlagRequired("state")

	return cmd
}

func newCodeScanningAnalysesCommand() *cobra.Command {
	var (
		ref      string
		toolName string
	)

	cmd := &cobra.Command{
		Use:   "code-scanning-analyses <owner>/<repo>",
		Short: "List code scanning analyses",
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
		record, err := client.ListCodeScanningAnalyses(cmd.Context(), owner, repo, ref, toolName, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Filter by git ref")
	cmd.Flags().StringVar(&toolName, "tool-name", "", "Filter by analysis tool")

	return cmd
}

func newGetCodeScanningAnalysisCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-code-scanning-analysis <owner>/<repo> <analysis-id>",
		Short: "Get a code scanning analysis",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			analysisID, err := parseID(args[1], "analysis id")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetCodeScanningAnalysis(cmd.Context(), owner, repo, analysisID)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newSecretScanningAlertsCommand() *cobra.Command {
	var opts github.AlertListOptions

	cmd := &cobra.Command{
		Use:   "secret-scanning-alerts <owner>/<repo>",
		Short: "List secret scanning alerts",
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
			record, err := client.ListSecretScanningAlerts(cmd.Context(), owner, repo, opts)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&opts.State, "state", "", "Filter by state (open, resolved)")
	cmd.Flags().StringVar(&opts.SecretType, "secret-type", "", "Filter by secret type (comma-separated)")
	cmd.Flags().StringVar(&opts.Resolution, "resolution", "", "Filter by resolution (false_positive, wont_fix, revoked, used_in_tests)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort field (created, updated)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "Sort direction (asc, desc)")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Results per page (max 100)")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")

	return cmd
}

func newGetSecretScanningAlertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-secret-scanning-alert <owner>/<repo> <number>",
		Short: "Get a secret scanning alert",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "alert number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.GetSecretScanningAlert(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newUpdateSecretScanningAlertCommand() *cobra.Command {
	var update github.AlertUpdate

	cmd := &cobra.Command{
		Use:   "update-secret-scanning-alert <owner>/<repo> <number>",
		Short: "Resolve or reopen a secret scanning alert",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, owner, repo, err := setupRepoCommand(args[0])
			if err != nil {
				return err
			}
			number, err := parseNumber(args[1], "alert number")
			if err != nil {
				return err
			}
			client, err := a.restClient()
			if err != nil {
				return err
			}
			record, err := client.UpdateSecretScanningAlert(cmd.Context(), owner, repo, number, update)
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}

	cmd.Flags().StringVar(&update.State, "state", "", "New state (open, resolved)")
	cmd.Flags().StringVar(&update.Resolution, "resolution", "", "Resolution when closing (false_positive, wont_fix, revoked, used_in_tests)")
	cmd.Flags().StringVar(&update.ResolutionComment, "resolution-comment", "", "Optional resolution comment")
	cmd.MarkFlagRequired("state")

	return cmd
}

func newSecretScanningLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret-scanning-locations <owner>/<repo> <number>",
		Short: "List locations of a leaked secret",
		Args:  cobra.ExactArgs(2),
	}
	pagination := paginationFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, owner, repo, err := setupRepoCommand(args[0])
		if err != nil {
			return err
		}
		number, err := parseNumber(args[1], "alert number")
		if err != nil {
			return err
		}
		client, err := a.restClient()
		if err != nil {
			return err
		}
		record, err := client.ListSecretScanningLocations(cmd.Context(), owner, repo, number, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}

func newSecurityAdvisoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security-advisories <owner>/<repo>",
		Short: "List repository security advisories",
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
		record, err := client.ListSecurityAdvisories(cmd.Context(), owner, repo, pagination(a))
		if err != nil {
			return err
		}
		return a.render(record)
	}

	return cmd
}
