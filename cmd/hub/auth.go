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

	"github.com/sirseerhq/sirseer-hub/internal/format"
	"github.com/sirseerhq/sirseer-hub/internal/ratelimit"
	"github.com/spf13/cobra"
)

func newCheckAuthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-auth",
		Short: "Verify the GitHub token by fetching the authenticated user",
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
			record, err := client.CheckAuth(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(record)
		},
	}
}

func newRateLimitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rate-limit",
		Short: "Show the current API rate limit budgets",
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
			record, err := client.RateLimit(cmd.Context())
			if err != nil {
				return err
			}

			// The generic markdown renderer has no useful shape for this
			// payload, so the markdown format gets a purpose-built summary.
			if a.format == format.Markdown {
				status, err := ratelimit.StatusFromRecord(record)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, status.Summary())
				return err
			}
			return a.render(record)
		},
	}
}
