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
	"errors"
	"fmt"
	"os"

	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
	"github.com/sirseerhq/sirseer-hub/pkg/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sirseer-hub",
		Short: "Work with GitHub repositories, issues, and workflows from the command line",
		Long: `SirSeer Hub maps GitHub REST API operations onto subcommands, one
operation per command. Results are printed as JSON by default; use
--format to get markdown summaries or compact single-line JSON.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Output format: json, markdown, or minimal")

	rootCmd.AddCommand(
		newIssueCommand(),
		newPRCommand(),
		newRepoCommand(),
		newActionsCommand(),
		newSecurityCommand(),
		newSearchCommand(),
		newCheckAuthCommand(),
		newRateLimitCommand(),
	)

	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, huberrors.ErrInvalidToken) ||
		errors.Is(err, huberrors.ErrForbidden) ||
		errors.Is(err, huberrors.ErrNotFound) ||
		errors.Is(err, huberrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, huberrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
