package collection

import (
	"testing"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

func TestNew_Valid(t *testing.T) {
	posts := []post.Post{
		post.New(post.Fields{Title: "Part 1", Link: "/p1"}),
		post.New(post.Fields{Title: "Part 2", Link: "/p2"}),
	}

	col, err := New("go-basics", "Learn Go", posts, "/img/go.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.ID() != "go-basics" || col.Name() != "go-basics" {
		t.Errorf("ID/Name = %q/%q, want go-basics", col.ID(), col.Name())
	}
	if col.Description() != "Learn Go" {
		t.Errorf("Description() = %q", col.Description())
	}
	if col.Image() != "/img/go.png" {
		t.Errorf("Image() = %q", col.Image())
	}
	if col.Len() != 2 {
		t.Errorf("Len() = %d, want 2", col.Len())
	}

	// caller slice must not alias collection state
	posts[0] = post.New(post.Fields{Title: "Changed", Link: "/x"})
	if col.Posts()[0].Link() != "/p1" {
		t.Error("collection posts changed through caller slice")
	}
}

func TestNew_Invalid(t *testing.T) {
	p := []post.Post{post.New(post.Fields{Link: "/p1"})}

	tests := []struct {
		name  string
		cname string
		posts []post.Post
	}{
		{"empty name", "", p},
		{"no posts", "series", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cname, "", tc.posts, ""); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
