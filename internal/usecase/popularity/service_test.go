package popularity

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/db/memory"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/repository/views"
)

// --- Mocks ---

type mockViewCounter struct {
	counts map[string]int64
	err    error
	calls  int
}

func (m *mockViewCounter) Counts(_ context.Context, _ []string) (map[string]int64, error) {
	m.calls++
	return m.counts, m.err
}

// --- Tests ---

func testPosts() []post.Post {
	return []post.Post{
		post.New(post.Fields{Link: "/quiet", Date: daysAgo(100)}),
		post.New(post.Fields{Link: "/viewed", Date: daysAgo(100)}),
		post.New(post.Fields{Link: "/featured", Featured: true, Date: daysAgo(100)}),
		post.New(post.Fields{Link: "/fresh", Date: daysAgo(1)}),
	}
}

func TestTop_RanksByScore(t *testing.T) {
	views := &mockViewCounter{counts: map[string]int64{"/viewed": 8, "/fresh": 2}}
	svc := New(NewScorer(DefaultWeights(), clock), views, zap.NewNop())

	got := svc.Top(context.Background(), testPosts(), 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	// fresh: 1 + 3 = 4, viewed: 4, featured: 3, quiet: 0
	want := []string{"/viewed", "/fresh", "/featured"}
	for i, w := range want {
		if got[i].Post.Link() != w {
			t.Errorf("rank %d = %s, want %s", i, got[i].Post.Link(), w)
		}
	}
	if got[0].Views != 8 {
		t.Errorf("Views = %d, want 8", got[0].Views)
	}
}

func TestTop_StoreFailureDegrades(t *testing.T) {
	views := &mockViewCounter{err: errors.New("connection refused")}
	svc := New(NewScorer(DefaultWeights(), clock), views, zap.NewNop())

	got := svc.Top(context.Background(), testPosts(), 0)
	if len(got) != 4 {
		t.Fatalf("expected 4 results, got %d", len(got))
	}
	// featured and fresh tie at 3; batch order decides
	if got[0].Post.Link() != "/featured" || got[1].Post.Link() != "/fresh" {
		t.Errorf("top two = %s, %s, want /featured, /fresh", got[0].Post.Link(), got[1].Post.Link())
	}
	for _, r := range got {
		if r.Views != 0 {
			t.Errorf("%s: expected 0 views, got %d", r.Post.Link(), r.Views)
		}
	}
}

func TestTop_NilCounter(t *testing.T) {
	svc := New(NewScorer(DefaultWeights(), clock), nil, zap.NewNop())
	if got := svc.Top(context.Background(), nil, 5); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestTop_CorruptCounterKeepsOtherViews(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	counter := views.New(kv, views.DefaultKeyPrefix)
	for range 10 {
		if _, err := counter.Increment(ctx, "/hot"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := kv.Set(ctx, views.DefaultKeyPrefix+"views:/other", []byte("garbage")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	posts := []post.Post{
		post.New(post.Fields{Link: "/other", Date: daysAgo(100)}),
		post.New(post.Fields{Link: "/hot", Date: daysAgo(100)}),
	}
	svc := New(NewScorer(DefaultWeights(), clock), counter, zap.NewNop())

	got := svc.Top(ctx, posts, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Post.Link() != "/hot" || got[0].Views != 10 {
		t.Errorf("top = %s with %d views, want /hot with 10", got[0].Post.Link(), got[0].Views)
	}
	// 10 views / 2 per point, capped at 5
	if got[0].Score.Detail.Views != 5 {
		t.Errorf("view score = %v, want 5", got[0].Score.Detail.Views)
	}
	if got[1].Post.Link() != "/other" || got[1].Views != 0 {
		t.Errorf("second = %s with %d views, want /other with 0", got[1].Post.Link(), got[1].Views)
	}
}
