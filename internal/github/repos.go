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
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
)

// GetRepo fetches repository metadata.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s", owner, repo),
	})
}

// CreateRepo creates a repository for the authenticated user.
func (c *Client) CreateRepo(ctx context.Context, name, description string, private, autoInit bool) (any, error) {
	body := map[string]any{
		"name":      name,
		"private":   private,
		"auto_init": autoInit,
	}
	if description != "" {
		body["description"] = description
	}
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/user/repos",
		Body:   body,
	})
}

// ForkRepo forks a repository into the authenticated user's account,
// or into an organization if one is given.
func (c *Client) ForkRepo(ctx context.Context, owner, repo, organization string) (any, error) {
	var body any
	if organization != "" {
		body = map[string]any{"organization": organization}
	}
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/forks", owner, repo),
		Body:   body,
	})
}

// ListBranches lists repository branches.
func (c *Client) ListBranches(ctx context.Context, owner, repo string, opts ListOptions) (any, error) {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/branches", owner, repo),
		Query:  opts.params(),
	})
}

// GetContents fetches a file or directory. For files, the base64
// payload is decoded into a "decoded_content" field alongside the raw
// response; binary content that is not valid UTF-8 gets a placeholder.
func (c *Client) GetContents(ctx context.Context, owner, repo, path, ref string) (any, error) {
	record, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path),
		Query:  Params{"ref": ref},
	})
	if err != nil {
		return nil, err
	}

	file, ok := record.(map[string]any)
	if !ok {
		return record, nil
	}
	if t, _ := file["type"].(string); t != "file" {
		return record, nil
	}
	encoded, _ := file["content"].(string)
	if encoded == "" {
		return record, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(encoded, "\n", ""))
	if err != nil || !utf8.Valid(decoded) {
		file["decoded_content"] = "[Binary file - cannot decode as text]"
	} else {
		file["decoded_content"] = string(decoded)
	}
	return file, nil
}

// PutFile creates or updates a single file via the contents API. The
// sha of the current version is required for updates; omitting it on
// an existing path makes GitHub reject the write.
func (c *Client) PutFile(ctx context.Context, owner, repo, path, content, message, branch, sha string) (any, error) {
	body := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
	}
	if branch != "" {
		body["branch"] = branch
	}
	if sha != "" {
		body["sha"] = sha
	}
	return c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path),
		Body:   body,
	})
}

// DeleteFile removes a file via the contents API. The current file sha
// is mandatory.
func (c *Client) DeleteFile(ctx context.Context, owner, repo, path, message, sha, branch string) (any, error) {
	body := map[string]any{
		"message": message,
		"sha":     sha,
	}
	if branch != "" {
		body["branch"] = branch
	}
	return c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path),
		Body:   body,
	})
}

// CreateBranch creates a branch pointing at the head of fromBranch.
// When fromBranch is empty, main is tried first and then master.
func (c *Client) CreateBranch(ctx context.Context, owner, repo, branch, fromBranch string) (any, error) {
	source := fromBranch
	var sha string

	if source == "" {
		for _, candidate := range []string{"main", "master"} {
			ref, err := c.getRef(ctx, owner, repo, candidate)
			if err != nil {
				if errors.Is(err, huberrors.ErrNotFound) {
					continue
				}
				return nil, err
			}
			source = candidate
			sha = ref
			break
		}
		if source == "" {
			return nil, fmt.Errorf("could not find main or master branch, specify a source branch: %w", huberrors.ErrInvalidInput)
		}
	} else {
		ref, err := c.getRef(ctx, owner, repo, source)
		if err != nil {
			return nil, err
		}
		sha = ref
	}

	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/git/refs", owner, repo),
		Body: map[string]any{
			"ref": "refs/heads/" + branch,
			"sha": sha,
		},
	})
}

// getRef resolves a branch name to its head commit sha.
func (c *Client) getRef(ctx context.Context, owner, repo, branch string) (string, error) {
	record, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", owner, repo, branch),
	})
	if err != nil {
		return "", err
	}
	ref, ok := record.(map[string]any)
	if !ok {
		return "", fmt.Errorf("unexpected ref payload shape")
	}
	obj, ok := ref["object"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("ref for %s has no object", branch)
	}
	sha, ok := obj["sha"].(string)
	if !ok || sha == "" {
		return "", fmt.Errorf("ref for %s has no sha", branch)
	}
	return sha, nil
}

// PushFiles writes multiple files to a branch in one commit using the
// git data API. The sequence is: resolve the branch head, read its
// tree, create a blob per file, build a new tree on top of the old one,
// commit it, and move the branch ref. The result summarizes the commit
// rather than echoing the final API response.
func (c *Client) PushFiles(ctx context.Context, owner, repo, branch, message string, files map[string]string) (any, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to push: %w", huberrors.ErrInvalidInput)
	}

	currentSHA, err := c.getRef(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	commitRecord, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repos/%s/%s/git/commits/%s", owner, repo, currentSHA),
	})
	if err != nil {
		return nil, err
	}
	baseTree, err := nestedString(commitRecord, "tree", "sha")
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", currentSHA, err)
	}

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	treeItems := make([]map[string]any, 0, len(paths))
	for _, path := range paths {
		blobRecord, err := c.Do(ctx, Request{
			Method: http.MethodPost,
			Path:   fmt.Sprintf("/repos/%s/%s/git/blobs", owner, repo),
			Body:   map[string]any{"content": files[path], "encoding": "utf-8"},
		})
		if err != nil {
			return nil, fmt.Errorf("creating blob for %s: %w", path, err)
		}
		blobSHA, err := nestedString(blobRecord, "sha")
		if err != nil {
			return nil, fmt.Errorf("blob for %s: %w", path, err)
		}
		treeItems = append(treeItems, map[string]any{
			"path": path,
			"mode": "100644",
			"type": "blob",
			"sha":  blobSHA,
		})
	}

	treeRecord, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/git/trees", owner, repo),
		Body:   map[string]any{"base_tree": baseTree, "tree": treeItems},
	})
	if err != nil {
		return nil, err
	}
	treeSHA, err := nestedString(treeRecord, "sha")
	if err != nil {
		return nil, err
	}

	newCommit, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/repos/%s/%s/git/commits", owner, repo),
		Body: map[string]any{
			"message": message,
			"tree":    treeSHA,
			"parents": []string{currentSHA},
		},
	})
	if err != nil {
		return nil, err
	}
	newSHA, err := nestedString(newCommit, "sha")
	if err != nil {
		return nil, err
	}

	if _, err := c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/repos/%s/%s/git/refs/heads/%s", owner, repo, branch),
		Body:   map[string]any{"sha": newSHA},
	}); err != nil {
		return nil, err
	}

	return map[string]any{
		"sha":          newSHA,
		"message":      message,
		"files_pushed": paths,
		"html_url":     fmt.Sprintf("https://github.com/%s/%s/commit/%s", owner, repo, newSHA),
	}, nil
}

// nestedString walks a decoded JSON object along keys and returns the
// string at the end of the path.
func nestedString(record any, keys ...string) (string, error) {
	current := record
	for i, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return "", fmt.Errorf("unexpected payload shape at %q", strings.Join(keys[:i], "."))
		}
		current = obj[key]
	}
	s, ok := current.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("missing %q in response", strings.Join(keys, "."))
	}
	return s, nil
}
