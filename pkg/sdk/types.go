package blogdex

import (
	"context"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/collection"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/highlight"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/result"
	popularityuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/popularity"
	relateduc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/related"
	seriesuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/series"
)

// Entry is a loosely-typed content entry. Front matter, if any, is nested
// under FrontMatterKey.
type Entry = post.RawEntry

// FrontMatterKey is the Entry key holding the front-matter map.
const FrontMatterKey = post.FrontMatterKey

// Segment is a piece of highlighted text.
type Segment = highlight.Segment

// ViewCounter returns view counts for links. Missing links count as zero.
type ViewCounter interface {
	Counts(ctx context.Context, links []string) (map[string]int64, error)
}

// Tag is a label with the number of posts carrying it.
type Tag struct {
	Label     string
	Permalink string
	Count     int
}

// Post is a normalized content record.
type Post struct {
	Title                 string
	Link                  string
	Date                  string // YYYY-MM-DD or "" when unknown
	Description           string
	Tags                  []Tag
	Image                 string
	Sticky                int
	Featured              bool
	Pinned                bool
	Collection            string
	CollectionOrder       *int
	CollectionDescription string
}

// Collection is a named series of posts in reading order.
type Collection struct {
	ID          string
	Name        string
	Description string
	Image       string
	Posts       []Post
}

// Snippet is an excerpt of the field that matched.
type Snippet struct {
	Field string
	Text  string
}

// SearchResult is a ranked search hit. Distance is 0 for the best match.
type SearchResult struct {
	Post          Post
	Distance      float64
	MatchedFields []string
	Snippets      []Snippet
}

// RelatedScore is a related-content score with its breakdown.
type RelatedScore = relateduc.Score

// PopularityScore is a popularity score with its breakdown.
type PopularityScore = popularityuc.Score

// Related is a post related to a reference post.
type Related struct {
	Post  Post
	Score RelatedScore
}

// Popular is a post with its popularity score.
type Popular struct {
	Post  Post
	Views int64
	Score PopularityScore
}

// Navigation locates a post inside its series.
type Navigation struct {
	Prev     *Post
	Next     *Post
	Index    int
	Total    int
	Progress int // percent, rounded
}

func tagFromDomain(t post.Tag) Tag {
	return Tag{Label: t.Label(), Permalink: t.Permalink(), Count: t.Count()}
}

func tagsFromDomain(tags []post.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = tagFromDomain(t)
	}
	return out
}

func postFromDomain(p post.Post) Post {
	out := Post{
		Title:                 p.Title(),
		Link:                  p.Link(),
		Date:                  p.Date(),
		Description:           p.Description(),
		Tags:                  tagsFromDomain(p.Tags()),
		Image:                 p.Image(),
		Sticky:                p.Sticky(),
		Featured:              p.Featured(),
		Pinned:                p.Pinned(),
		Collection:            p.Collection(),
		CollectionDescription: p.CollectionDescription(),
	}
	if order, ok := p.CollectionOrder(); ok {
		out.CollectionOrder = &order
	}
	return out
}

func postsFromDomain(posts []post.Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = postFromDomain(p)
	}
	return out
}

func postPtrFromDomain(p *post.Post) *Post {
	if p == nil {
		return nil
	}
	out := postFromDomain(*p)
	return &out
}

func collectionFromDomain(c collection.Collection) Collection {
	return Collection{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Image:       c.Image(),
		Posts:       postsFromDomain(c.Posts()),
	}
}

func searchResultFromDomain(r result.Result) SearchResult {
	snippets := r.Snippets()
	out := SearchResult{
		Post:          postFromDomain(r.Item()),
		Distance:      r.Score(),
		MatchedFields: r.MatchedFields(),
		Snippets:      make([]Snippet, len(snippets)),
	}
	for i, s := range snippets {
		out.Snippets[i] = Snippet{Field: s.Field, Text: s.Text}
	}
	return out
}

func navigationFromDomain(n seriesuc.Navigation) Navigation {
	return Navigation{
		Prev:     postPtrFromDomain(n.Prev),
		Next:     postPtrFromDomain(n.Next),
		Index:    n.Index,
		Total:    n.Total,
		Progress: n.Progress,
	}
}
