package fulltext

import (
	"context"
	"testing"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/result"
)

func tagged(labels ...string) []post.Tag {
	tags := make([]post.Tag, len(labels))
	for i, l := range labels {
		tags[i] = post.NewTag(l, "/tags/"+l, 1)
	}
	return tags
}

func testPosts() []post.Post {
	return []post.Post{
		post.New(post.Fields{
			Link: "/react-hooks", Title: "React Hooks Guide",
			Description: "Learn useState and useEffect", Tags: tagged("react", "frontend"),
		}),
		post.New(post.Fields{
			Link: "/vue", Title: "Vue Composition API",
			Description: "Reactive state in Vue 3", Tags: tagged("vue", "frontend"),
		}),
		post.New(post.Fields{
			Link: "/go", Title: "Concurrency in Go",
			Description: "Goroutines and channels", Tags: tagged("golang"),
			Source: "A long body that mentions hooks only in passing.",
		}),
	}
}

func buildTest(t *testing.T) *Index {
	t.Helper()
	idx, err := Build(testPosts(), DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func links(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Post.Link()
	}
	return out
}

func TestSearch_ExactTitle(t *testing.T) {
	idx := buildTest(t)
	hits, err := idx.Search(context.Background(), []string{"hooks"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %v", links(hits))
	}
	if hits[0].Post.Link() != "/react-hooks" {
		t.Errorf("title match should rank first, got %v", links(hits))
	}
	m, ok := hits[0].Matches[result.FieldTitle]
	if !ok {
		t.Fatalf("expected title match, got %+v", hits[0].Matches)
	}
	if got := hits[0].Post.Title()[m.Start:m.End]; got != "Hooks" {
		t.Errorf("title match span = %q, want Hooks", got)
	}
	if hits[0].Score != hits[0].MaxScore {
		t.Errorf("top hit score %v != max score %v", hits[0].Score, hits[0].MaxScore)
	}
}

func TestSearch_Fuzzy(t *testing.T) {
	idx := buildTest(t)
	hits, err := idx.Search(context.Background(), []string{"concurency"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].Post.Link() != "/go" {
		t.Fatalf("expected typo to match /go, got %v", links(hits))
	}
}

func TestSearch_TransposedLetters(t *testing.T) {
	idx := buildTest(t)
	for _, q := range []string{"raect", "hokos"} {
		hits, err := idx.Search(context.Background(), []string{q})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hits) == 0 || hits[0].Post.Link() != "/react-hooks" {
			t.Errorf("%q: expected /react-hooks first, got %v", q, links(hits))
		}
	}
}

func TestSearch_Prefix(t *testing.T) {
	idx := buildTest(t)
	hits, err := idx.Search(context.Background(), []string{"gorout"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].Post.Link() != "/go" {
		t.Fatalf("expected prefix to match /go, got %v", links(hits))
	}
}

func TestSearch_TermsAreANDed(t *testing.T) {
	idx := buildTest(t)
	ctx := context.Background()

	single, err := idx.Search(ctx, []string{"frontend"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	both, err := idx.Search(ctx, []string{"frontend", "vue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(single) != 2 {
		t.Fatalf("expected 2 frontend hits, got %v", links(single))
	}
	if len(both) != 1 || both[0].Post.Link() != "/vue" {
		t.Fatalf("expected only /vue, got %v", links(both))
	}
}

func TestSearch_TagElement(t *testing.T) {
	idx := buildTest(t)
	hits, err := idx.Search(context.Background(), []string{"golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %v", links(hits))
	}
	m, ok := hits[0].Matches[result.FieldTags]
	if !ok || m.Element != 0 {
		t.Errorf("expected tag match at element 0, got %+v (ok=%v)", m, ok)
	}
}

func TestSearch_NoUsableTerms(t *testing.T) {
	idx := buildTest(t)
	for _, terms := range [][]string{nil, {}, {"!!!", "--"}} {
		hits, err := idx.Search(context.Background(), terms)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("terms %v: expected no hits, got %v", terms, links(hits))
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	idx, err := Build(nil, Weights{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer idx.Close()
	if idx.Len() != 0 {
		t.Errorf("Len() = %d", idx.Len())
	}
	hits, err := idx.Search(context.Background(), []string{"anything"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestFuzziness(t *testing.T) {
	tests := []struct {
		term string
		want int
	}{
		{"go", 0},
		{"api", 0},
		{"vue3", 1},
		{"hook", 1},
		{"hooks", 2},
		{"golang", 2},
		{"reactive", 2},
		{"día", 0},
	}
	for _, tc := range tests {
		if got := Fuzziness(tc.term); got != tc.want {
			t.Errorf("Fuzziness(%q) = %d, want %d", tc.term, got, tc.want)
		}
	}
}
