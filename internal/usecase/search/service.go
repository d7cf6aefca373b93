package search

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/db/fulltext"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/batch"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/request"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/result"
	"github.com/wwwqqqzzz/blog-sub000/internal/metrics"
)

// Service answers full-text queries over the current catalog batch.
// The index is memoized per batch fingerprint and rebuilt only when content changes.
type Service struct {
	catalog      Catalog
	weights      fulltext.Weights
	window       SnippetWindow
	defaultLimit int
	logger       *zap.Logger

	mu          sync.RWMutex
	index       *fulltext.Index
	fingerprint string
	builds      int
}

// New creates a search service.
func New(catalog Catalog, logger *zap.Logger) *Service {
	return &Service{
		catalog:      catalog,
		weights:      fulltext.DefaultWeights(),
		window:       DefaultSnippetWindow(),
		defaultLimit: request.DefaultLimit,
		logger:       logger,
	}
}

// WithWeights overrides the per-field boosts.
func (s *Service) WithWeights(w fulltext.Weights) *Service {
	if w != (fulltext.Weights{}) {
		s.weights = w
	}
	return s
}

// WithSnippetWindow overrides the snippet window.
func (s *Service) WithSnippetWindow(w SnippetWindow) *Service {
	if w.Before > 0 || w.After > 0 {
		s.window = w
	}
	return s
}

// WithDefaultLimit sets the limit used when a query asks for none.
func (s *Service) WithDefaultLimit(n int) *Service {
	if n > 0 {
		s.defaultLimit = n
	}
	return s
}

// Query runs text against the index. Results are ordered by distance ascending
// (0 = best match) and truncated to limit. An empty query returns no results.
func (s *Service) Query(ctx context.Context, text string, limit int) ([]result.Result, error) {
	req, err := request.New(text, limit, s.defaultLimit)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	if req.IsEmpty() {
		return []result.Result{}, nil
	}

	start := time.Now()
	hits, err := s.search(ctx, s.catalog.Current(), req.Terms())
	if err != nil {
		return nil, err
	}

	results := s.rank(hits, req.Limit())
	metrics.SearchQueryDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResults.Observe(float64(len(results)))
	return results, nil
}

// Warm builds the index for the current batch ahead of the first query.
func (s *Service) Warm(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildLocked(s.catalog.Current())
}

// Close releases the current index.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	s.fingerprint = ""
	return err
}

// search queries the index built for b. A caller whose snapshot is not the
// indexed one rebuilds and queries under the write lock, so it never waits on
// a later rebuild for a different snapshot.
func (s *Service) search(ctx context.Context, b batch.Batch, terms []string) ([]fulltext.Hit, error) {
	s.mu.RLock()
	if s.index != nil && s.fingerprint == b.Fingerprint() {
		hits, err := s.index.Search(ctx, terms)
		s.mu.RUnlock()
		return wrapQueryErr(hits, err)
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rebuildLocked(b); err != nil {
		return nil, err
	}
	return wrapQueryErr(s.index.Search(ctx, terms))
}

func wrapQueryErr(hits []fulltext.Hit, err error) ([]fulltext.Hit, error) {
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return hits, nil
}

// rebuildLocked replaces the index unless it already serves b. s.mu must be held for writing.
func (s *Service) rebuildLocked(b batch.Batch) error {
	if s.index != nil && s.fingerprint == b.Fingerprint() {
		return nil
	}

	start := time.Now()
	idx, err := fulltext.Build(b.Posts(), s.weights)
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("build index: %w", err)
	}
	metrics.IndexBuildsTotal.WithLabelValues("ok").Inc()
	metrics.IndexBuildDuration.Observe(time.Since(start).Seconds())
	metrics.IndexedPosts.Set(float64(idx.Len()))

	if s.index != nil {
		if err := s.index.Close(); err != nil {
			s.logger.Warn("Failed to close previous index", zap.Error(err))
		}
	}
	s.index = idx
	s.fingerprint = b.Fingerprint()
	s.builds++
	s.logger.Debug("Search index built",
		zap.Int("posts", idx.Len()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

type scored struct {
	res      result.Result
	position int
}

func (s *Service) rank(hits []fulltext.Hit, limit int) []result.Result {
	ranked := make([]scored, 0, len(hits))
	for _, h := range hits {
		ranked = append(ranked, scored{res: s.toResult(h), position: h.Position})
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.res.Score() < b.res.Score():
			return -1
		case a.res.Score() > b.res.Score():
			return 1
		default:
			return a.position - b.position
		}
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]result.Result, len(ranked))
	for i, r := range ranked {
		out[i] = r.res
	}
	return out
}

// toResult converts a bleve hit into the distance convention: 1 - score/max.
func (s *Service) toResult(h fulltext.Hit) result.Result {
	distance := 0.0
	if h.MaxScore > 0 {
		distance = 1 - h.Score/h.MaxScore
	}
	if distance < 0 {
		distance = 0
	}

	var fields []string
	var snippets []result.Snippet
	for _, field := range result.Fields {
		m, ok := h.Matches[field]
		if !ok {
			continue
		}
		fields = append(fields, field)
		if text, ok := s.snippetFor(h, field, m); ok {
			snippets = append(snippets, result.Snippet{Field: field, Text: text})
		}
	}
	return result.New(h.Post, distance, fields, snippets)
}

func (s *Service) snippetFor(h fulltext.Hit, field string, m fulltext.Match) (string, bool) {
	p := h.Post
	switch field {
	case result.FieldTags:
		labels := p.TagLabels()
		if m.Element < 0 || m.Element >= len(labels) {
			return "", false
		}
		return labels[m.Element], true
	case result.FieldTitle:
		return snippet(p.Title(), m.Start, m.End, s.window), true
	case result.FieldDescription:
		return snippet(p.Description(), m.Start, m.End, s.window), true
	case result.FieldSource:
		return snippet(p.Source(), m.Start, m.End, s.window), true
	default:
		return "", false
	}
}
