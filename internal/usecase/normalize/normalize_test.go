package normalize

import (
	"testing"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

func TestNormalize_FrontMatterWins(t *testing.T) {
	entries := []post.RawEntry{{
		"title":       "Metadata Title",
		"permalink":   "/posts/hooks",
		"description": "meta description",
		post.FrontMatterKey: map[string]any{
			"title": "Front Matter Title",
			"date":  "2024-01-10T09:00:00Z",
		},
	}}

	posts := Normalize(entries)
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	p := posts[0]
	if p.Title() != "Front Matter Title" {
		t.Errorf("Title() = %q, want front matter value", p.Title())
	}
	if p.Description() != "meta description" {
		t.Errorf("Description() = %q, want metadata fallback", p.Description())
	}
	if p.Link() != "/posts/hooks" {
		t.Errorf("Link() = %q", p.Link())
	}
	if p.Date() != "2024-01-10" {
		t.Errorf("Date() = %q, want 2024-01-10", p.Date())
	}
}

func TestNormalize_Totality(t *testing.T) {
	entries := []post.RawEntry{
		{},
		nil,
		{"title": nil, "tags": 42, "date": []int{1}, "featured": "maybe", "sticky": "x"},
		{post.FrontMatterKey: "not a map"},
		{"collectionOrder": "not a number"},
	}

	posts := Normalize(entries)
	if len(posts) != len(entries) {
		t.Fatalf("expected %d posts, got %d", len(entries), len(posts))
	}
	for i, p := range posts {
		if p.Title() != "" || p.Description() != "" || p.Link() != "" {
			t.Errorf("post %d: expected empty strings, got %q/%q/%q", i, p.Title(), p.Description(), p.Link())
		}
		if p.Tags() == nil || len(p.Tags()) != 0 {
			t.Errorf("post %d: expected empty non-nil tags, got %v", i, p.Tags())
		}
		if p.Date() != post.NoDate {
			t.Errorf("post %d: expected NoDate, got %q", i, p.Date())
		}
		if p.Featured() || p.Pinned() || p.Sticky() != 0 {
			t.Errorf("post %d: expected zero editorial hints", i)
		}
		if _, ok := p.CollectionOrder(); ok {
			t.Errorf("post %d: expected no collection order", i)
		}
	}
}

func TestNormalize_TagShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"strings", []any{"React", "Front End"}, []string{"React", "Front End"}},
		{"label objects", []any{map[string]any{"label": "React"}, map[string]any{"label": "Vue"}}, []string{"React", "Vue"}},
		{"mixed", []any{"React", map[string]any{"label": "Vue"}}, []string{"React", "Vue"}},
		{"string slice", []string{"go", "rust"}, []string{"go", "rust"}},
		{"comma separated", "go, rust ,", []string{"go", "rust"}},
		{"blank and duplicate dropped", []any{"go", " ", "go", map[string]any{"other": "x"}}, []string{"go"}},
		{"unsupported", 7, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tags := Tags(tc.raw)
			if len(tags) != len(tc.want) {
				t.Fatalf("expected %d tags, got %d (%v)", len(tc.want), len(tags), tags)
			}
			for i, tag := range tags {
				if tag.Label() != tc.want[i] {
					t.Errorf("tag %d label = %q, want %q", i, tag.Label(), tc.want[i])
				}
				if tag.Count() != 1 {
					t.Errorf("tag %d count = %d, want 1", i, tag.Count())
				}
			}
		})
	}
}

func TestNewTag_Permalink(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"React", "/tags/react"},
		{"Front End", "/tags/front-end"},
		{"C++ & Go!", "/tags/c-go"},
		{"Café Crème", "/tags/cafe-creme"},
	}
	for _, tc := range tests {
		if got := NewTag(tc.label).Permalink(); got != tc.want {
			t.Errorf("NewTag(%q).Permalink() = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestNormalize_Dates(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"iso date", "2024-03-05", "2024-03-05"},
		{"rfc3339", "2024-03-05T23:10:00Z", "2024-03-05"},
		{"time value", time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC), "2024-03-05"},
		{"unix seconds", int64(1709640000), "2024-03-05"},
		{"garbage", "not a date", post.NoDate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Entry(post.RawEntry{"date": tc.raw})
			if p.Date() != tc.want {
				t.Errorf("Date() = %q, want %q", p.Date(), tc.want)
			}
		})
	}
}

func TestNormalize_CollectionFields(t *testing.T) {
	p := Entry(post.RawEntry{
		"link": "/a",
		post.FrontMatterKey: map[string]any{
			"collection":            "Go Basics",
			"collection_order":      2,
			"collectionDescription": "Learn Go step by step",
			"featured":              true,
			"pinned":                "yes",
			"sticky":                3.0,
			"image":                 "/img/a.png",
		},
	})

	if p.Collection() != "Go Basics" {
		t.Errorf("Collection() = %q", p.Collection())
	}
	if order, ok := p.CollectionOrder(); !ok || order != 2 {
		t.Errorf("CollectionOrder() = %d, %v", order, ok)
	}
	if p.CollectionDescription() != "Learn Go step by step" {
		t.Errorf("CollectionDescription() = %q", p.CollectionDescription())
	}
	if !p.Featured() || !p.Pinned() || p.Sticky() != 3 {
		t.Errorf("editorial hints = %v/%v/%d", p.Featured(), p.Pinned(), p.Sticky())
	}
	if p.Image() != "/img/a.png" {
		t.Errorf("Image() = %q", p.Image())
	}
}

func TestNormalize_LinkFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		entry post.RawEntry
		want  string
	}{
		{"permalink", post.RawEntry{"permalink": "/p", "link": "/l"}, "/p"},
		{"link", post.RawEntry{"link": "/l"}, "/l"},
		{"slug", post.RawEntry{"slug": "hello-world"}, "/hello-world"},
		{"none", post.RawEntry{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Entry(tc.entry).Link(); got != tc.want {
				t.Errorf("Link() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Hello World":      "hello-world",
		"  --Trim--  ":     "trim",
		"Ünïcödé":          "unicode",
		"2024 in Review!!": "2024-in-review",
		"":                 "",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
