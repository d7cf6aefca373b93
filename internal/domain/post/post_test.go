package post

import (
	"errors"
	"testing"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain"
)

func TestNew_DefaultsTags(t *testing.T) {
	p := New(Fields{Title: "Hello", Link: "/hello"})
	if p.Tags() == nil {
		t.Fatal("expected non-nil tags")
	}
	if len(p.Tags()) != 0 {
		t.Fatalf("expected no tags, got %d", len(p.Tags()))
	}
	if _, ok := p.CollectionOrder(); ok {
		t.Fatal("expected no collection order")
	}
}

func TestNew_CopiesTags(t *testing.T) {
	tags := []Tag{NewTag("go", "/tags/go", 1)}
	p := New(Fields{Link: "/a", Tags: tags})

	tags[0] = NewTag("rust", "/tags/rust", 1)
	if p.Tags()[0].Label() != "go" {
		t.Fatalf("post tags changed through caller slice: %q", p.Tags()[0].Label())
	}

	got := p.Tags()
	got[0] = NewTag("zig", "/tags/zig", 1)
	if p.Tags()[0].Label() != "go" {
		t.Fatal("post tags changed through accessor result")
	}
}

func TestFields_RoundTripsCollectionOrder(t *testing.T) {
	order := 3
	p := New(Fields{Link: "/a", CollectionOrder: &order})
	order = 7

	got, ok := p.CollectionOrder()
	if !ok || got != 3 {
		t.Fatalf("expected order 3, got %d (ok=%v)", got, ok)
	}

	f := p.Fields()
	if f.CollectionOrder == nil || *f.CollectionOrder != 3 {
		t.Fatalf("expected Fields().CollectionOrder=3, got %v", f.CollectionOrder)
	}
}

func TestHasTag(t *testing.T) {
	p := New(Fields{Link: "/a", Tags: []Tag{NewTag("Go", "/tags/go", 1)}})
	if !p.HasTag("Go") {
		t.Error("expected HasTag(Go)")
	}
	if p.HasTag("go") {
		t.Error("labels are case-sensitive")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-10", "2024-01-10"},
		{"2024-01-10T08:30:00Z", "2024-01-10"},
		{"2024-01-10 08:30:00", "2024-01-10"},
		{"2024/01/10", "2024-01-10"},
		{"Wed, 10 Jan 2024 08:30:00 +0000", "2024-01-10"},
		{"January 10, 2024", "2024-01-10"},
		{"  2024-01-10  ", "2024-01-10"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FormatDate(got) != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, FormatDate(got), tc.want)
			}
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-45"} {
		_, err := ParseDate(in)
		if !errors.Is(err, domain.ErrInvalidDate) {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", in, err)
		}
	}
}

func TestTime_Sentinel(t *testing.T) {
	p := New(Fields{Link: "/a", Date: NoDate})
	if _, ok := p.Time(); ok {
		t.Fatal("expected ok=false for NoDate")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 5 {
		t.Errorf("DaysBetween = %d, want 5", got)
	}
	if got := DaysBetween(b, a); got != 5 {
		t.Errorf("DaysBetween reversed = %d, want 5", got)
	}
}

func TestTag_WithCount(t *testing.T) {
	tag := NewTag("go", "/tags/go", 1)
	bumped := tag.WithCount(4)
	if tag.Count() != 1 {
		t.Errorf("original tag mutated: %d", tag.Count())
	}
	if bumped.Count() != 4 {
		t.Errorf("expected count 4, got %d", bumped.Count())
	}
}
