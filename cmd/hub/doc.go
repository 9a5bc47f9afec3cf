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

// Package main implements the sirseer-hub command-line interface.
// Each subcommand maps onto one GitHub REST API operation, grouped by
// resource: issues, pull requests, repositories, Actions workflows,
// security alerts, and search.
//
// The CLI supports:
//   - Three output formats: indented JSON, markdown summaries, and
//     compact single-line JSON (--format)
//   - GitHub token authentication via flag or environment variable
//   - GitHub Enterprise endpoints via the config file
//   - Bulk pull request export to NDJSON over the GraphQL API
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	sirseer-hub <resource> <operation> [<owner>/<repo>] [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	sirseer-hub issue list golang/go --state open --format markdown
//	sirseer-hub pr export golang/go --output prs.ndjson
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
