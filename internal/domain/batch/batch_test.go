package batch

import (
	"testing"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

func TestNew_Lookup(t *testing.T) {
	posts := []post.Post{
		post.New(post.Fields{Title: "A", Link: "/a"}),
		post.New(post.Fields{Title: "B", Link: "/b"}),
	}
	b := New(posts, nil, nil, time.Unix(0, 0))

	if b.Len() != 2 {
		t.Fatalf("Len() = %d", b.Len())
	}
	p, ok := b.Post("/b")
	if !ok || p.Title() != "B" {
		t.Errorf("Post(/b) = %v, %v", p.Title(), ok)
	}
	if _, ok := b.Post("/missing"); ok {
		t.Error("expected missing post")
	}
	if _, ok := b.Collection("none"); ok {
		t.Error("expected missing collection")
	}
}

func TestFingerprint(t *testing.T) {
	a := []post.Post{post.New(post.Fields{Title: "Hello", Link: "/a"})}
	same := []post.Post{post.New(post.Fields{Title: "Hello", Link: "/a", Featured: true})}
	changed := []post.Post{post.New(post.Fields{Title: "Hello!", Link: "/a"})}
	shifted := []post.Post{post.New(post.Fields{Title: "ello", Link: "/aH"})}

	if Fingerprint(a) != Fingerprint(same) {
		t.Error("non-indexed field changed the fingerprint")
	}
	if Fingerprint(a) == Fingerprint(changed) {
		t.Error("title change did not change the fingerprint")
	}
	if Fingerprint(a) == Fingerprint(shifted) {
		t.Error("field boundaries are ambiguous")
	}
	if Fingerprint(nil) == Fingerprint(a) {
		t.Error("empty batch collides")
	}
}
