package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("  react  hooks ", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "react  hooks" {
		t.Errorf("Query() = %q", r.Query())
	}
	if got := r.Terms(); len(got) != 2 || got[0] != "react" || got[1] != "hooks" {
		t.Errorf("Terms() = %v", got)
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultLimit)
	}
}

func TestNew_Limits(t *testing.T) {
	tests := []struct {
		name         string
		limit        int
		defaultLimit int
		want         int
	}{
		{"explicit", 5, 20, 5},
		{"configured default", 0, 20, 20},
		{"negative uses default", -3, 15, 15},
		{"clamped", 500, 20, MaxLimit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New("go", tc.limit, tc.defaultLimit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Limit() != tc.want {
				t.Errorf("Limit() = %d, want %d", r.Limit(), tc.want)
			}
		})
	}
}

func TestNew_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		r, err := New(q, 10, 10)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", q, err)
		}
		if !r.IsEmpty() {
			t.Errorf("expected IsEmpty for %q", q)
		}
	}
}

func TestNew_TooLong(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxQueryLength+1), 10, 10)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}
