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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestGetContentsDecodesFile(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("hello world\n"))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"type":    "file",
			"path":    "README.md",
			"content": encoded,
		})
	}))
	defer server.Close()

	client := NewClient("t", server.URL)
	record, err := client.GetContents(context.Background(), "o", "r", "README.md", "")
	if err != nil {
		t.Fatalf("GetContents() error = %v", err)
	}

	file := record.(map[string]any)
	if file["decoded_content"] != "hello world\n" {
		t.Errorf("decoded_content = %q", file["decoded_content"])
	}
}

func TestGetContentsBinaryFallback(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x01})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"type":    "file",
			"path":    "logo.png",
			"content": encoded,
		})
	}))
	defer server.Close()

	client := NewClient("t", server.URL)
	record, err := client.GetContents(context.Background(), "o", "r", "logo.png", "")
	if err != nil {
		t.Fatalf("GetContents() error = %v", err)
	}

	file := record.(map[string]any)
	if file["decoded_content"] != "[Binary file - cannot decode as text]" {
		t.Errorf("decoded_content = %q", file["decoded_content"])
	}
}

func TestGetContentsDirectoryPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"type": "file", "path": "a.go"}, {"type": "dir", "path": "sub"}]`))
	}))
	defer server.Close()

	client := NewClient("t", server.URL)
	record, err := client.GetContents(context.Background(), "o", "r", "src", "")
	if err != nil {
		t.Fatalf("GetContents() error = %v", err)
	}
	entries, ok := record.([]any)
	if !ok || len(entries) != 2 {
		t.Errorf("directory listing = %v", record)
	}
}

func TestCreateBranchFallsBackToMaster(t *testing.T) {
	var createBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/o/r/git/ref/heads/main":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
		case r.URL.Path == "/repos/o/r/git/ref/heads/master":
			w.Write([]byte(`{"object": {"sha": "abc123"}}`))
		case r.URL.Path == "/repos/o/r/git/refs" && r.Method == http.MethodPost:
			data, _ := io.ReadAll(r.Body)
			json.Unmarshal(data, &createBody)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"ref": "refs/heads/feature-x"}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient("t", server.URL)
	if _, err := client.CreateBranch(context.Background(), "o", "r", "feature-x", ""); err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}

	if createBody["ref"] != "refs/heads/feature-x" {
		t.Errorf("ref = %v", createBody["ref"])
	}
	if createBody["sha"] != "abc123" {
		t.Errorf("sha = %v, want master head", createBody["sha"])
	}
}

func TestPushFilesSequence(t *testing.T) {
	var order []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/repos/o/r/git/ref/heads/main":
			w.Write([]byte(`{"object": {"sha": "head0"}}`))
		case r.URL.Path == "/repos/o/r/git/commits/head0":
			w.Write([]byte(`{"tree": {"sha": "tree0"}}`))
		case r.URL.Path == "/repos/o/r/git/blobs":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"sha": "blob1"}`))
		case r.URL.Path == "/repos/o/r/git/trees":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"sha": "tree1"}`))
		case r.URL.Path == "/repos/o/r/git/commits" && r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"sha": "commit1"}`))
		case r.URL.Path == "/repos/o/r/git/refs/heads/main" && r.Method == http.MethodPatch:
			w.Write([]byte(`{"object": {"sha": "commit1"}}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient("t", server.URL)
	record, err := client.PushFiles(context.Background(), "o", "r", "main", "add files", map[string]string{
		"a.txt": "alpha",
		"b.txt": "beta",
	})
	if err != nil {
		t.Fatalf("PushFiles() error = %v", err)
	}

	want := []string{
		"GET /repos/o/r/git/ref/heads/main",
		"GET /repos/o/r/git/commits/head0",
		"POST /repos/o/r/git/blobs",
		"POST /repos/o/r/git/blobs",
		"POST /repos/o/r/git/trees",
		"POST /repos/o/r/git/commits",
		"PATCH /repos/o/r/git/refs/heads/main",
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("call order = %v, want %v", order, want)
	}

	result := record.(map[string]any)
	if result["sha"] != "commit1" {
		t.Errorf("sha = %v", result["sha"])
	}
	if !reflect.DeepEqual(result["files_pushed"], []string{"a.txt", "b.txt"}) {
		t.Errorf("files_pushed = %v", result["files_pushed"])
	}
}

func TestPushFilesRejectsEmptySet(t *testing.T) {
	client := NewClient("t", "http://unused.invalid")
	if _, err := client.PushFiles(context.Background(), "o", "r", "main", "msg", nil); err == nil {
		t.Error("PushFiles() with no files should fail")
	}
}

func TestPullStatusCombinesChecks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/pulls/7":
			w.Write([]byte(`{"number": 7, "head": {"sha": "deadbeef"}}`))
		case "/repos/o/r/commits/deadbeef/status":
			w.Write([]byte(`{"state": "success", "total_count": 2, "statuses": [{"context": "ci"}, {"context": "lint"}]}`))
		case "/repos/o/r/commits/deadbeef/check-runs":
			w.Write([]byte(`{"check_runs": [{"name": "build", "conclusion": "success"}]}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient("t", server.URL)
	record, err := client.PullStatus(context.Background(), "o", "r", 7)
	if err != nil {
		t.Fatalf("PullStatus() error = %v", err)
	}

	result := record.(map[string]any)
	if result["sha"] != "deadbeef" {
		t.Errorf("sha = %v", result["sha"])
	}
	if result["state"] != "success" {
		t.Errorf("state = %v", result["state"])
	}
	statuses := result["statuses"].([]any)
	if len(statuses) != 2 {
		t.Errorf("statuses = %v", statuses)
	}
	runs := result["check_runs"].([]any)
	if len(runs) != 1 {
		t.Errorf("check_runs = %v", runs)
	}
}

func TestDeleteCommentSynthesizesConfirmation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient("t", server.URL)
	record, err := client.DeleteIssueComment(context.Background(), "o", "r", 42)
	if err != nil {
		t.Fatalf("DeleteIssueComment() error = %v", err)
	}

	result := record.(map[string]any)
	if result["deleted"] != true {
		t.Errorf("deleted = %v", result["deleted"])
	}
	if result["comment_id"] != int64(42) {
		t.Errorf("comment_id = %v", result["comment_id"])
	}
}

func TestDispatchWorkflowEchoesParameters(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient("t", server.URL)
	record, err := client.DispatchWorkflow(context.Background(), "o", "r", "ci.yml", "main", map[string]any{"debug": "true"})
	if err != nil {
		t.Fatalf("DispatchWorkflow() error = %v", err)
	}

	if body["ref"] != "main" {
		t.Errorf("request ref = %v", body["ref"])
	}
	inputs := body["inputs"].(map[string]any)
	if inputs["debug"] != "true" {
		t.Errorf("request inputs = %v", inputs)
	}

	result := record.(map[string]any)
	if result["dispatched"] != true || result["workflow"] != "ci.yml" {
		t.Errorf("result = %v", result)
	}
}
