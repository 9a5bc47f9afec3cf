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

// Package format renders decoded API records in the three supported
// output encodings. Rendering is a pure function of the record: json
// and minimal re-encode the record losslessly, while markdown produces
// a human-readable summary keyed off the fields the record happens to
// have. Markdown never fails on a missing field; it degrades to a
// generic key listing.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	JSON     Format = "json"
	Markdown Format = "markdown"
	Minimal  Format = "minimal"
)

// Parse validates a format name from a flag or config value.
func Parse(name string) (Format, error) {
	switch Format(name) {
	case JSON, Markdown, Minimal:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected json, markdown, or minimal)", name)
	}
}

// Render writes data to w in the given format, followed by a newline.
func Render(w io.Writer, data any, format Format) error {
	switch format {
	case Minimal:
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(encoded))
		return err
	case Markdown:
		_, err := fmt.Fprintln(w, AsMarkdown(data))
		return err
	default:
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(encoded))
		return err
	}
}

// AsMarkdown renders a record or list of records as markdown. Lists
// are joined with horizontal rules; an empty list renders as a
// placeholder instead of nothing.
func AsMarkdown(data any) string {
	if list, ok := data.([]any); ok {
		if len(list) == 0 {
			return "_No results_"
		}
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, formatItem(item))
		}
		return strings.Join(parts, "\n\n---\n\n")
	}
	return formatItem(data)
}

// formatItem renders one record. The shape checks run in priority
// order: an issue record has both html_url and number, and the issue
// branch must win over the generic one.
func formatItem(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return stringify(item)
	}

	var lines []string

	if htmlURL := str(obj["html_url"]); htmlURL != "" {
		title := firstStr(obj, "title", "name", "login", "full_name")
		if title != "" {
			lines = append(lines, fmt.Sprintf("### [%s](%s)", title, htmlURL))
		} else {
			lines = append(lines, "**URL**: "+htmlURL)
		}
	}

	switch {
	case has(obj, "number"):
		lines = append(lines, formatIssueLike(obj)...)
	case has(obj, "sha"):
		lines = append(lines, formatCommit(obj))
	case has(obj, "path") && has(obj, "type"):
		lines = append(lines, formatEntry(obj))
	case has(obj, "login"):
		lines = append(lines, "**@"+str(obj["login"])+"**")
		if name := str(obj["name"]); name != "" {
			lines = append(lines, "Name: "+name)
		}
	case has(obj, "full_name"):
		lines = append(lines, formatRepo(obj)...)
	case has(obj, "decoded_content"):
		lines = append(lines, formatFileContent(obj)...)
	default:
		if len(lines) == 0 {
			lines = formatGeneric(obj)
		}
	}

	if len(lines) == 0 {
		return stringify(item)
	}
	return strings.Join(lines, "\n")
}

func formatIssueLike(obj map[string]any) []string {
	state := str(obj["state"])
	if state == "" {
		state = "unknown"
	}
	lines := []string{fmt.Sprintf("**#%s** - %s", stringify(obj["number"]), state)}

	if body := str(obj["body"]); body != "" {
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		lines = append(lines, "\n"+body)
	}
	if labels := nameList(obj["labels"], "name"); labels != "" {
		lines = append(lines, "**Labels**: "+labels)
	}
	if assignees := nameList(obj["assignees"], "login"); assignees != "" {
		lines = append(lines, "**Assignees**: "+assignees)
	}
	return lines
}

func formatCommit(obj map[string]any) string {
	sha := str(obj["sha"])
	if len(sha) > 7 {
		sha = sha[:7]
	}
	msg := str(obj["message"])
	if commit, ok := obj["commit"].(map[string]any); ok {
		if m := str(commit["message"]); m != "" {
			msg = m
		}
	}
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		msg = msg[:idx]
	}
	return fmt.Sprintf("**%s**: %s", sha, msg)
}

func formatEntry(obj map[string]any) string {
	icon := "📄"
	if str(obj["type"]) == "dir" {
		icon = "📁"
	}
	return fmt.Sprintf("%s `%s`", icon, str(obj["path"]))
}

func formatRepo(obj map[string]any) []string {
	lines := []string{"**" + str(obj["full_name"]) + "**"}
	if desc := str(obj["description"]); desc != "" {
		lines = append(lines, desc)
	}
	lines = append(lines, fmt.Sprintf("⭐ %s | 🍴 %s",
		countOrZero(obj["stargazers_count"]), countOrZero(obj["forks_count"])))
	return lines
}

func formatFileContent(obj map[string]any) []string {
	path := str(obj["path"])
	if path == "" {
		path = "unknown"
	}
	content := str(obj["decoded_content"])

	lines := []string{
		fmt.Sprintf("**File**: `%s`", path),
		fmt.Sprintf("**Size**: %s bytes", countOrZero(obj["size"])),
	}
	if len(content) > 1000 {
		lines = append(lines, "\n```\n"+content[:1000], "... (truncated)")
	} else {
		lines = append(lines, "\n```\n"+content)
	}
	lines = append(lines, "```")
	return lines
}

// formatGeneric lists whatever fields a record has, skipping internal
// API link fields. Nested values are truncated JSON.
func formatGeneric(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, key := range keys {
		switch key {
		case "url", "node_id", "events_url", "hooks_url":
			continue
		}
		value := obj[key]
		switch v := value.(type) {
		case nil:
			continue
		case map[string]any:
			if len(v) > 0 {
				lines = append(lines, fmt.Sprintf("**%s**: %s...", key, truncatedJSON(v)))
			}
		case []any:
			if len(v) > 0 {
				lines = append(lines, fmt.Sprintf("**%s**: %s...", key, truncatedJSON(v)))
			}
		default:
			lines = append(lines, fmt.Sprintf("**%s**: %s", key, stringify(value)))
		}
	}
	return lines
}

func truncatedJSON(v any) string {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	s := string(encoded)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// nameList joins a list of objects by the given key, falling back to
// the raw value for non-object entries.
func nameList(value any, key string) string {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	names := make([]string, 0, len(list))
	for _, entry := range list {
		if obj, ok := entry.(map[string]any); ok {
			if name := str(obj[key]); name != "" {
				names = append(names, name)
				continue
			}
		}
		names = append(names, stringify(entry))
	}
	return strings.Join(names, ", ")
}

func has(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func firstStr(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := str(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

func countOrZero(v any) string {
	if v == nil {
		return "0"
	}
	return stringify(v)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case nil:
		return "<nil>"
	default:
		return fmt.Sprint(t)
	}
}
