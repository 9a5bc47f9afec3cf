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

// Package github provides the GitHub API client used by sirseer-hub.
//
// The package exposes one method per REST operation, grouped by resource
// (issues, pull requests, repositories, workflows, security alerts, and
// search), plus a GraphQL client for bulk pull request export. All
// responses are returned as decoded JSON values rather than typed
// structs so the output layer can re-encode them without field loss.
//
// Error classification happens here: every non-2xx response is mapped
// onto a sentinel from the errors package so callers can branch with
// errors.Is instead of inspecting status codes.
package github
