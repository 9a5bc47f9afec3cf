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

package github

import (
	"context"
	"net/http"
)

// CheckAuth fetches the authenticated user, proving the token works.
func (c *Client) CheckAuth(ctx context.Context) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/user",
	})
}

// RateLimit fetches the current rate limit budgets. This endpoint does
// not count against the core limit.
func (c *Client) RateLimit(ctx context.Context) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/rate_limit",
	})
}
