package series

import (
	"testing"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/batch"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/collection"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// --- Mocks ---

type mockCatalog struct {
	b batch.Batch
}

func (m *mockCatalog) Current() batch.Batch { return m.b }

// --- Tests ---

func TestService_Navigate(t *testing.T) {
	order := func(n int) *int { return &n }
	posts := []post.Post{
		post.New(post.Fields{Link: "/a", Title: "A", Collection: "Intro", CollectionOrder: order(1)}),
		post.New(post.Fields{Link: "/b", Title: "B", Collection: "Intro", CollectionOrder: order(2)}),
		post.New(post.Fields{Link: "/c", Title: "C", Collection: "Intro", CollectionOrder: order(3)}),
	}
	col, err := collection.New("Intro", "", Order(posts), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := New(&mockCatalog{b: batch.New(posts, nil, []collection.Collection{col}, time.Time{})})

	nav, ok := svc.Navigate("Intro", "/b")
	if !ok {
		t.Fatal("expected navigation for /b")
	}
	if nav.Prev == nil || nav.Prev.Link() != "/a" || nav.Next == nil || nav.Next.Link() != "/c" {
		t.Errorf("unexpected neighbours: %+v", nav)
	}
	if nav.Index != 1 || nav.Total != 3 || nav.Progress != 67 {
		t.Errorf("got index=%d total=%d progress=%d, want 1/3/67", nav.Index, nav.Total, nav.Progress)
	}

	if _, ok := svc.Navigate("Unknown", "/b"); ok {
		t.Error("unknown collection should behave as empty")
	}
	if _, ok := svc.Navigate("Intro", "/missing"); ok {
		t.Error("absent link should not navigate")
	}
}
