package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterStreamsNDJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	records := []map[string]any{
		{"number": 1, "title": "first"},
		{"number": 2, "title": "second"},
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if w.Count() != 2 {
		t.Errorf("Count() = %d, want 2", w.Count())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		var back map[string]any
		if err := json.Unmarshal([]byte(line), &back); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.ndjson")

	w, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	if err := w.Write(map[string]any{"ok": true}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if strings.TrimSpace(string(data)) != `{"ok":true}` {
		t.Errorf("file contents = %q", data)
	}
}
