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
	"strings"

	"github.com/sirseerhq/sirseer-hub/internal/config"
	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
	"github.com/sirseerhq/sirseer-hub/internal/format"
	"github.com/sirseerhq/sirseer-hub/internal/github"
	"github.com/spf13/cobra"
)

// Persistent flags shared by every command.
var (
	flagConfig string
	flagToken  string
	flagFormat string
)

// app bundles the resolved configuration and output format for one
// command invocation.
type app struct {
	cfg    *config.Config
	format format.Format
	out    *os.File
}

// newApp loads configuration and resolves the output format. Flags win
// over config file values.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	name := cfg.Defaults.OutputFormat
	if flagFormat != "" {
		name = flagFormat
	}
	f, err := format.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, huberrors.ErrInvalidInput)
	}

	return &app{cfg: cfg, format: f, out: os.Stdout}, nil
}

// token resolves the GitHub token from the --token flag or the
// configured environment variable. No request is made without one.
func (a *app) token() (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if token := os.Getenv(a.cfg.GitHub.TokenEnv); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("GitHub token not found. Set %s or use --token flag: %w",
		a.cfg.GitHub.TokenEnv, huberrors.ErrInvalidToken)
}

// restClient builds the REST client against the configured endpoint.
func (a *app) restClient() (*github.Client, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	return github.NewClient(token, a.cfg.GitHub.APIEndpoint), nil
}

// graphqlClient builds the GraphQL client used by the bulk export.
func (a *app) graphqlClient() (*github.GraphQLClient, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	return github.NewGraphQLClient(token, a.cfg.GitHub.GraphQLEndpoint), nil
}

// render writes a record to stdout in the selected format.
func (a *app) render(record any) error {
	return format.Render(a.out, record, a.format)
}

// listOptions applies the configured default page size when the flag
// was left at zero.
func (a *app) listOptions(perPage, page int) github.ListOptions {
	if perPage <= 0 {
		perPage = a.cfg.Defaults.PerPage
	}
	return github.ListOptions{PerPage: perPage, Page: page}
}

// parseRepository parses an owner/repo string into its components.
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s: %w",
			repoArg, huberrors.ErrInvalidInput)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s: %w",
			repoArg, huberrors.ErrInvalidInput)
	}

	return owner, repo, nil
}

// paginationFlags registers --per-page and --page on a command and
// returns a getter for their values.
func paginationFlags(cmd *cobra.Command) func(a *app) github.ListOptions {
	var perPage, page int
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Results per page (max 100)")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	return func(a *app) github.ListOptions {
		return a.listOptions(perPage, page)
	}
}
