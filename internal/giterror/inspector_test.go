package giterror

import (
	"errors"
	"fmt"
	"testing"

	huberrors "github.com/sirseerhq/sirseer-hub/internal/errors"
)

func TestInspectorClassifiesSentinels(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"wrapped invalid token", fmt.Errorf("call failed: %w", huberrors.ErrInvalidToken), inspector.IsAuthError},
		{"wrapped forbidden", fmt.Errorf("call failed: %w", huberrors.ErrForbidden), inspector.IsAuthError},
		{"wrapped not found", fmt.Errorf("call failed: %w", huberrors.ErrNotFound), inspector.IsNotFoundError},
		{"wrapped rate limit", fmt.Errorf("call failed: %w", huberrors.ErrRateLimit), inspector.IsRateLimitError},
		{"wrapped complexity", fmt.Errorf("call failed: %w", huberrors.ErrQueryComplexity), inspector.IsComplexityError},
		{"wrapped network", fmt.Errorf("call failed: %w", huberrors.ErrNetworkFailure), inspector.IsNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("classification failed for %v", tt.err)
			}
		})
	}
}

func TestInspectorClassifiesMessages(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"bad credentials string", errors.New("Bad credentials"), inspector.IsAuthError, true},
		{"graphql repo resolution", errors.New("Could not resolve to a Repository"), inspector.IsNotFoundError, true},
		{"rate limit string", errors.New("API rate limit exceeded for user"), inspector.IsRateLimitError, true},
		{"complexity string", errors.New("query has complexity of 12000, which exceeds maximum"), inspector.IsComplexityError, true},
		{"dial tcp", errors.New("dial tcp 10.0.0.1:443: i/o timeout"), inspector.IsNetworkError, true},
		{"unrelated", errors.New("something else entirely"), inspector.IsAuthError, false},
		{"nil auth", nil, inspector.IsAuthError, false},
		{"nil network", nil, inspector.IsNetworkError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("classification = %v, want %v for %v", got, tt.want, tt.err)
			}
		})
	}
}

func TestRateLimitNotConfusedWithForbidden(t *testing.T) {
	inspector := NewInspector()
	err := fmt.Errorf("call failed: %w", huberrors.ErrForbidden)
	if inspector.IsRateLimitError(err) {
		t.Error("a plain forbidden error must not classify as rate limited")
	}
}
