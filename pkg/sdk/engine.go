package blogdex

import (
	"context"
	"fmt"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/content/markdown"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/highlight"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/request"
	cataloguc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/catalog"
	popularityuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/popularity"
	relateduc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/related"
	searchuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/search"
	seriesuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/series"
)

// Engine answers search and ranking queries over one batch of posts.
// It is safe for concurrent use; Replace swaps the batch atomically.
type Engine struct {
	catalog    *cataloguc.Service
	search     *searchuc.Service
	related    *relateduc.Service
	popularity *popularityuc.Service
	series     *seriesuc.Service
	obs        *observer
}

// New builds an Engine from entries.
func New(entries []Entry, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	catalog := cataloguc.New(cfg.logger).WithClock(cfg.now)
	catalog.Replace(entries)

	var views popularityuc.ViewCounter
	if cfg.views != nil {
		views = cfg.views
	}

	return &Engine{
		catalog: catalog,
		search: searchuc.New(catalog, cfg.logger).
			WithWeights(cfg.search).
			WithSnippetWindow(cfg.window),
		related:    relateduc.New(catalog, relateduc.NewScorer(cfg.related)),
		popularity: popularityuc.New(popularityuc.NewScorer(cfg.popular, cfg.now), views, cfg.logger),
		series:     seriesuc.New(catalog),
		obs:        obs,
	}, nil
}

// NewFromDirs loads markdown files under dirs and builds an Engine from them.
func NewFromDirs(ctx context.Context, dirs []string, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	entries, err := markdown.New(dirs, cfg.logger).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("blogdex: load markdown: %w", err)
	}
	return New(entries, opts...)
}

// Close releases the search index.
func (e *Engine) Close() error {
	if err := e.search.Close(); err != nil {
		return fmt.Errorf("blogdex: close: %w", err)
	}
	return nil
}

// Replace swaps the content batch. The search index is rebuilt on the next query.
func (e *Engine) Replace(entries []Entry) {
	e.catalog.Replace(entries)
}

// Posts returns every post in batch order.
func (e *Engine) Posts() []Post {
	return postsFromDomain(e.catalog.Current().Posts())
}

// Post returns the post with the given link.
func (e *Engine) Post(link string) (Post, error) {
	p, err := e.catalog.Post(link)
	if err != nil {
		return Post{}, fmt.Errorf("blogdex: %w", err)
	}
	return postFromDomain(p), nil
}

// Tags returns tags in first-seen order with their post counts.
func (e *Engine) Tags() []Tag {
	return tagsFromDomain(e.catalog.Current().Tags())
}

// Collections returns series in first-seen order, members in reading order.
func (e *Engine) Collections() []Collection {
	cols := e.catalog.Current().Collections()
	out := make([]Collection, len(cols))
	for i, c := range cols {
		out[i] = collectionFromDomain(c)
	}
	return out
}

// MaxQueryLength is the longest query, in bytes, that Search accepts.
const MaxQueryLength = request.MaxQueryLength

// Search runs a fuzzy full-text query. limit <= 0 uses the default and larger
// limits are clamped to 100. An empty query returns no results and no error.
//
// A query longer than MaxQueryLength bytes is rejected with an error wrapping
// ErrInvalidQuery instead of being truncated; callers taking raw user input
// should check the length or treat that error as "no results".
func (e *Engine) Search(ctx context.Context, query string, limit int) (_ []SearchResult, err error) {
	start := time.Now()
	defer func() { e.obs.observe("search", start, err) }()

	results, err := e.search.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("blogdex: search: %w", err)
	}
	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = searchResultFromDomain(r)
	}
	return out, nil
}

// Related returns up to n posts related to the post at link, best first.
func (e *Engine) Related(link string, n int) (_ []Related, err error) {
	start := time.Now()
	defer func() { e.obs.observe("related", start, err) }()

	ranked, err := e.related.Related(link, n)
	if err != nil {
		return nil, fmt.Errorf("blogdex: related: %w", err)
	}
	out := make([]Related, len(ranked))
	for i, r := range ranked {
		out[i] = Related{Post: postFromDomain(r.Post), Score: r.Score}
	}
	return out, nil
}

// Popular returns up to n posts ranked by popularity. A failing view source
// degrades to zero views.
func (e *Engine) Popular(ctx context.Context, n int) []Popular {
	start := time.Now()
	defer e.obs.observe("popular", start, nil)

	ranked := e.popularity.Top(ctx, e.catalog.Current().Posts(), n)
	out := make([]Popular, len(ranked))
	for i, r := range ranked {
		out[i] = Popular{Post: postFromDomain(r.Post), Views: r.Views, Score: r.Score}
	}
	return out
}

// Navigate locates link inside the named series. ok is false when the series
// is unknown, has a single post, or does not contain link.
func (e *Engine) Navigate(collection, link string) (Navigation, bool) {
	nav, ok := e.series.Navigate(collection, link)
	if !ok {
		return Navigation{}, false
	}
	return navigationFromDomain(nav), true
}

// Highlight splits text into plain and matched segments for query.
// Joining the segment texts reproduces text.
func (e *Engine) Highlight(text, query string) []Segment {
	return highlight.Split(text, query)
}
