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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
	"github.com/sirseerhq/sirseer-hub/internal/giterror"
	"github.com/sirseerhq/sirseer-hub/internal/ratelimit"
)

const (
	defaultAccept = "application/vnd.github+json"
	apiVersion    = "2022-11-28"
)

// Params holds query parameters for a request. Values may be strings,
// integers, booleans, or string slices (joined with commas, matching
// GitHub's list syntax). Nil values and empty strings are omitted.
type Params map[string]any

// Request describes a single REST API call.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string

	// Path is the endpoint path, e.g. "/repos/owner/repo/issues".
	Path string

	// Query holds optional query parameters.
	Query Params

	// Body is an optional JSON-encodable request body.
	Body any

	// Accept overrides the default GitHub JSON media type, used by the
	// handful of endpoints that require a preview media type.
	Accept string
}

// Client issues authenticated requests against the GitHub REST API and
// classifies failures into the module's error taxonomy. It holds no
// state between calls beyond the underlying connection pool.
type Client struct {
	httpClient *http.Client
	baseURL    string
	detector   *ratelimit.Detector
	inspector  giterror.Inspector
}

// NewClient creates a REST client for the given endpoint. The token is
// attached to every request as a bearer credential; validating its
// presence is the caller's responsibility and happens before any
// network traffic.
func NewClient(token, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Transport: newTransport(token)},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		detector:   ratelimit.NewDetector(),
		inspector:  giterror.NewInspector(),
	}
}

// Do issues the request and returns the decoded JSON body. Numbers are
// decoded as json.Number so re-encoding is lossless. A 204/205 or empty
// body yields nil. Any non-2xx response is returned as a classified
// error; see the errors package for the taxonomy.
func (c *Client) Do(ctx context.Context, req Request) (any, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	return decodeRecord(data)
}

// DoRaw issues the request and returns the raw response bytes without
// JSON decoding. Used for log downloads and other non-JSON payloads.
func (c *Client) DoRaw(ctx context.Context, req Request) ([]byte, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// send builds, issues, and status-checks one request. The returned
// response always has a 2xx status; everything else comes back as a
// classified error with the body consumed.
func (c *Client) send(ctx context.Context, req Request) (*http.Response, error) {
	u := c.baseURL + req.Path
	if query := encodeQuery(req.Query); query != "" {
		u += "?" + query
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.inspector.IsNetworkError(err) {
			return nil, fmt.Errorf("request to %s failed: %v: %w", req.Path, err, huberrors.ErrNetworkFailure)
		}
		return nil, fmt.Errorf("request to %s failed: %w", req.Path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	return nil, c.classifyError(resp)
}

// classifyError maps a non-2xx response onto the error taxonomy.
func (c *Client) classifyError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	message, fields := parseErrorBody(data)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return huberrors.NewAPIError(resp.StatusCode, message, huberrors.ErrInvalidToken)
	case http.StatusForbidden, http.StatusTooManyRequests:
		if c.detector.IsRateLimited(resp) {
			info := c.detector.Detect(resp)
			return &huberrors.RateLimitError{Reset: info.Reset}
		}
		return huberrors.NewAPIError(resp.StatusCode, message, huberrors.ErrForbidden)
	case http.StatusNotFound:
		return huberrors.NewAPIError(resp.StatusCode, message, huberrors.ErrNotFound)
	case http.StatusUnprocessableEntity:
		return &huberrors.ValidationError{Message: message, Fields: fields}
	default:
		return huberrors.NewAPIError(resp.StatusCode, message, huberrors.ErrRequestFailed)
	}
}

// parseErrorBody extracts the remote message and any validation
// diagnostics from an error response. GitHub reports errors either as
// objects with resource/field/code keys or as bare strings; both forms
// are preserved.
func parseErrorBody(data []byte) (string, []huberrors.FieldError) {
	var payload struct {
		Message string            `json:"message"`
		Errors  []json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data)), nil
	}

	message := payload.Message
	if message == "" {
		message = strings.TrimSpace(string(data))
	}

	var fields []huberrors.FieldError
	for _, raw := range payload.Errors {
		var field huberrors.FieldError
		if err := json.Unmarshal(raw, &field); err == nil && field != (huberrors.FieldError{}) {
			fields = append(fields, field)
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			fields = append(fields, huberrors.FieldError{Message: s})
		}
	}

	return message, fields
}

// decodeRecord decodes a JSON payload preserving number precision.
func decodeRecord(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var record any
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return record, nil
}

// encodeQuery renders Params as a URL query string with stable key
// ordering. Nil values and empty strings are dropped so commands can
// pass option structs through without presence checks.
func encodeQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		switch v := params[k].(type) {
		case nil:
			continue
		case string:
			if v != "" {
				values.Set(k, v)
			}
		case []string:
			if len(v) > 0 {
				values.Set(k, strings.Join(v, ","))
			}
		case int:
			values.Set(k, strconv.Itoa(v))
		case int64:
			values.Set(k, strconv.FormatInt(v, 10))
		case bool:
			values.Set(k, strconv.FormatBool(v))
		default:
			values.Set(k, fmt.Sprint(v))
		}
	}

	return values.Encode()
}
