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
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirseerhq/sirseer-hub/internal/giterror"
	"github.com/sirseerhq/sirseer-hub/pkg/version"
)

// maxResponseSize caps decoded response bodies at 10MB to prevent
// memory issues on unexpectedly large payloads.
const maxResponseSize = 10 * 1024 * 1024

// newTransport builds the transport stack used by all clients:
// a pooled base transport, wrapped with authentication headers,
// wrapped with transient-failure retry.
func newTransport(token string) http.RoundTripper {
	base := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return newRetryTransport(&authTransport{
		token: token,
		base:  base,
	})
}

// authTransport adds authentication headers and safety limits to HTTP requests.
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", fmt.Sprintf("sirseer-hub/%s", version.Version))
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", defaultAccept)
	}
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseSize,
		}
	}

	return resp, nil
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// retryTransport adds exponential backoff retry logic for transient failures.
// Rate limits are deliberately excluded: a rate-limited response is surfaced
// to the caller with its reset time rather than waited out.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

// newRetryTransport creates a new transport with retry logic.
func newRetryTransport(base http.RoundTripper) http.RoundTripper {
	return &retryTransport{
		base:       base,
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// RoundTrip implements http.RoundTripper with retry logic.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastErr error
	backoff := t.backoff
	inspector := giterror.NewInspector()

	for attempt := 0; attempt < t.maxRetries; attempt++ {
		clonedReq := req.Clone(req.Context())
		if req.Body != nil && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			clonedReq.Body = body
		}

		resp, err := t.base.RoundTrip(clonedReq)

		if err == nil && !isRetryableStatusCode(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			if !inspector.IsNetworkError(err) {
				return nil, err
			}
			lastErr = err
		} else {
			// A retryable status with an unreplayable body cannot be retried safely.
			if req.Body != nil && req.GetBody == nil {
				return resp, nil
			}
			lastErr = fmt.Errorf("received status %d (attempt %d/%d)", resp.StatusCode, attempt+1, t.maxRetries)
			resp.Body.Close()
		}

		if attempt < t.maxRetries-1 {
			select {
			case <-time.After(backoff):
				backoff *= 2
				if backoff > 30*time.Second {
					backoff = 30 * time.Second
				}
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		}
	}

	return nil, lastErr
}

// isRetryableStatusCode checks if an HTTP status code should trigger a retry.
func isRetryableStatusCode(code int) bool {
	switch code {
	case http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
