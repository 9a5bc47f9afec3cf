package main

import (
	"errors"
	"fmt"
	"testing"

	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			input:     "golang/go",
			wantOwner: "golang",
			wantRepo:  "go",
			wantErr:   false,
		},
		{
			input:     "kubernetes/kubernetes",
			wantOwner: "kubernetes",
			wantRepo:  "kubernetes",
			wantErr:   false,
		},
		{
			input:   "invalid",
			wantErr: true,
		},
		{
			input:   "too/many/slashes",
			wantErr: true,
		},
		{
			input:   "/repo",
			wantErr: true,
		},
		{
			input:   "owner/",
			wantErr: true,
		},
		{
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		owner, repo, err := parseRepository(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRepository(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, huberrors.ErrInvalidInput) {
				t.Errorf("parseRepository(%q) error = %v, want ErrInvalidInput", tt.input, err)
			}
			continue
		}
		if owner != tt.wantOwner {
			t.Errorf("parseRepository(%q) owner = %q, want %q", tt.input, owner, tt.wantOwner)
		}
		if repo != tt.wantRepo {
			t.Errorf("parseRepository(%q) repo = %q, want %q", tt.input, repo, tt.wantRepo)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "1", want: 1},
		{input: "1234", want: 1234},
		{input: "0", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseNumber(tt.input, "issue number")
		if (err != nil) != tt.wantErr {
			t.Errorf("parseNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, huberrors.ErrInvalidInput) {
				t.Errorf("parseNumber(%q) error = %v, want ErrInvalidInput", tt.input, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("parseNumber(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "42", want: 42},
		{input: "9007199254740993", want: 9007199254740993},
		{input: "0", wantErr: true},
		{input: "not-a-number", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseID(tt.input, "run id")
		if (err != nil) != tt.wantErr {
			t.Errorf("parseID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: 0,
		},
		{
			name: "invalid token",
			err:  fmt.Errorf("bad credentials: %w", huberrors.ErrInvalidToken),
			want: 2,
		},
		{
			name: "forbidden",
			err:  fmt.Errorf("no access: %w", huberrors.ErrForbidden),
			want: 2,
		},
		{
			name: "not found",
			err:  fmt.Errorf("missing: %w", huberrors.ErrNotFound),
			want: 2,
		},
		{
			name: "rate limited",
			err:  fmt.Errorf("slow down: %w", huberrors.ErrRateLimit),
			want: 2,
		},
		{
			name: "network failure",
			err:  fmt.Errorf("connection refused: %w", huberrors.ErrNetworkFailure),
			want: 3,
		},
		{
			name: "validation",
			err:  fmt.Errorf("bad field: %w", huberrors.ErrValidation),
			want: 1,
		},
		{
			name: "invalid input",
			err:  fmt.Errorf("bad arg: %w", huberrors.ErrInvalidInput),
			want: 1,
		},
		{
			name: "generic",
			err:  errors.New("something broke"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRootCommandRegistersResourceGroups(t *testing.T) {
	root := newRootCommand()

	want := []string{
		"issue", "pr", "repo", "actions", "security", "search",
		"check-auth", "rate-limit",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("root command has no %q subcommand", name)
		}
	}
}

func TestPRCommandAlias(t *testing.T) {
	root := newRootCommand()

	cmd, _, err := root.Find([]string{"pull-request", "list"})
	if err != nil {
		t.Fatalf("Find(pull-request list) error = %v", err)
	}
	if cmd.Name() != "list" {
		t.Errorf("Find(pull-request list) = %q, want list", cmd.Name())
	}
}
