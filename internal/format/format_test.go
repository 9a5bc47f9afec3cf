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

package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestParse(t *testing.T) {
	for _, name := range []string{"json", "markdown", "minimal"} {
		if _, err := Parse(name); err != nil {
			t.Errorf("Parse(%q) error = %v", name, err)
		}
	}
	if _, err := Parse("xml"); err == nil {
		t.Error("Parse(xml) should fail")
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	record := decode(t, `{"id": 9007199254740993, "title": "big id"}`)

	var buf bytes.Buffer
	if err := Render(&buf, record, JSON); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(buf.String(), "9007199254740993") {
		t.Errorf("large integer lost precision: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "  \"id\"") {
		t.Errorf("json format should be indented: %s", buf.String())
	}
}

func TestRenderMinimalIsCompact(t *testing.T) {
	record := decode(t, `{"a": 1, "b": [1, 2]}`)

	var buf bytes.Buffer
	if err := Render(&buf, record, Minimal); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, " ") || strings.Contains(out, "\n ") {
		t.Errorf("minimal output should be compact: %q", out)
	}
	var back any
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Errorf("minimal output is not valid JSON: %v", err)
	}
}

func TestMarkdownIssue(t *testing.T) {
	record := decode(t, `{
		"number": 42,
		"state": "open",
		"title": "Crash on startup",
		"html_url": "https://github.com/o/r/issues/42",
		"body": "It crashes.",
		"labels": [{"name": "bug"}, {"name": "p1"}],
		"assignees": [{"login": "octocat"}]
	}`)

	out := AsMarkdown(record)
	for _, want := range []string{
		"### [Crash on startup](https://github.com/o/r/issues/42)",
		"**#42** - open",
		"It crashes.",
		"**Labels**: bug, p1",
		"**Assignees**: octocat",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownTruncatesLongBody(t *testing.T) {
	body := strings.Repeat("x", 300)
	record := decode(t, `{"number": 1, "state": "open", "body": "`+body+`"}`)

	out := AsMarkdown(record)
	if !strings.Contains(out, strings.Repeat("x", 200)+"...") {
		t.Errorf("long body should be truncated at 200 chars:\n%s", out)
	}
	if strings.Contains(out, strings.Repeat("x", 201)) {
		t.Error("body not truncated")
	}
}

func TestMarkdownCommit(t *testing.T) {
	record := decode(t, `{
		"sha": "deadbeefcafe1234",
		"commit": {"message": "Fix the bug\n\nLonger explanation."}
	}`)

	out := AsMarkdown(record)
	if !strings.Contains(out, "**deadbee**: Fix the bug") {
		t.Errorf("commit markdown = %q", out)
	}
	if strings.Contains(out, "Longer explanation") {
		t.Error("commit message should show first line only")
	}
}

func TestMarkdownDirectoryListing(t *testing.T) {
	record := decode(t, `[
		{"path": "src", "type": "dir"},
		{"path": "main.go", "type": "file"}
	]`)

	out := AsMarkdown(record)
	if !strings.Contains(out, "📁 `src`") || !strings.Contains(out, "📄 `main.go`") {
		t.Errorf("listing markdown = %q", out)
	}
	if !strings.Contains(out, "\n\n---\n\n") {
		t.Error("list items should be separated by horizontal rules")
	}
}

func TestMarkdownUserAndRepo(t *testing.T) {
	user := decode(t, `{"login": "octocat", "name": "The Octocat"}`)
	out := AsMarkdown(user)
	if !strings.Contains(out, "**@octocat**") || !strings.Contains(out, "Name: The Octocat") {
		t.Errorf("user markdown = %q", out)
	}

	repo := decode(t, `{"full_name": "o/r", "description": "A repo", "stargazers_count": 12, "forks_count": 3}`)
	out = AsMarkdown(repo)
	if !strings.Contains(out, "**o/r**") || !strings.Contains(out, "⭐ 12 | 🍴 3") {
		t.Errorf("repo markdown = %q", out)
	}
}

func TestMarkdownFileContent(t *testing.T) {
	record := decode(t, `{"path": "README.md", "size": 12, "decoded_content": "hello world\n", "type": "file", "sha": "abc", "number": null}`)
	delete(record.(map[string]any), "number")
	delete(record.(map[string]any), "sha")
	delete(record.(map[string]any), "type")

	out := AsMarkdown(record)
	if !strings.Contains(out, "**File**: `README.md`") {
		t.Errorf("file markdown = %q", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("file markdown missing content: %q", out)
	}
}

func TestMarkdownEmptyList(t *testing.T) {
	if out := AsMarkdown([]any{}); out != "_No results_" {
		t.Errorf("empty list = %q", out)
	}
}

func TestMarkdownNeverPanicsOnSparseRecords(t *testing.T) {
	fixtures := []string{
		`{}`,
		`{"html_url": "https://example.com"}`,
		`{"number": 1}`,
		`{"sha": "ab"}`,
		`{"unknown_key": {"nested": true}, "other": [1, 2, 3], "plain": "x"}`,
		`[{}, {"number": 2}]`,
		`"just a string"`,
		`42`,
		`null`,
	}
	for _, raw := range fixtures {
		record := decode(t, raw)
		if out := AsMarkdown(record); out == "" {
			t.Errorf("AsMarkdown(%s) returned empty output", raw)
		}
	}
}

func TestMarkdownGenericSkipsInternalURLs(t *testing.T) {
	record := decode(t, `{"url": "https://api.github.com/x", "node_id": "abc", "status": "completed"}`)
	out := AsMarkdown(record)
	if strings.Contains(out, "node_id") || strings.Contains(out, "api.github.com") {
		t.Errorf("internal fields leaked: %q", out)
	}
	if !strings.Contains(out, "**status**: completed") {
		t.Errorf("generic markdown = %q", out)
	}
}
