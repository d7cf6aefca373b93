// Package catalog owns the current content batch and replaces it on reload.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/batch"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/collection"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/metrics"
	"github.com/wwwqqqzzz/blog-sub000/internal/usecase/extract"
	"github.com/wwwqqqzzz/blog-sub000/internal/usecase/normalize"
)

// Reload triggers, used as metric labels.
const (
	TriggerStartup  = "startup"
	TriggerWatch    = "watch"
	TriggerAPI      = "api"
	TriggerInterval = "interval"
)

// Service holds the current batch. Readers always see a complete batch.
type Service struct {
	sources []Source
	now     func() time.Time
	logger  *zap.Logger

	mu      sync.RWMutex
	current batch.Batch
}

// New creates an empty catalog fed by sources.
func New(logger *zap.Logger, sources ...Source) *Service {
	s := &Service{sources: sources, now: time.Now, logger: logger}
	s.current = batch.New(nil, nil, nil, s.now())
	return s
}

// WithClock overrides the clock used for LoadedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Current returns the current batch.
func (s *Service) Current() batch.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace normalizes entries into a new batch and swaps it in.
func (s *Service) Replace(entries []post.RawEntry) batch.Batch {
	return s.ReplacePosts(normalize.Normalize(entries))
}

// ReplacePosts swaps in a batch built from already-normalized posts.
func (s *Service) ReplacePosts(posts []post.Post) batch.Batch {
	b := batch.New(posts, extract.Tags(posts), extract.Collections(posts), s.now())

	s.mu.Lock()
	s.current = b
	s.mu.Unlock()
	return b
}

// Reload pulls every source and replaces the batch. A failing source is
// logged and skipped; if every source fails the current batch is kept.
func (s *Service) Reload(ctx context.Context, trigger string) (batch.Batch, error) {
	var entries []post.RawEntry
	var errs []error
	for _, src := range s.sources {
		loaded, err := src.Load(ctx)
		if err != nil {
			s.logger.Warn("Content source failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		entries = append(entries, loaded...)
	}

	if len(s.sources) > 0 && len(errs) == len(s.sources) {
		metrics.ContentReloadsTotal.WithLabelValues(trigger, "error").Inc()
		return s.Current(), fmt.Errorf("reload content: %w", errors.Join(errs...))
	}

	b := s.Replace(entries)
	metrics.ContentReloadsTotal.WithLabelValues(trigger, "ok").Inc()
	s.logger.Info("Content reloaded",
		zap.String("trigger", trigger),
		zap.Int("posts", b.Len()),
		zap.Int("tags", len(b.Tags())),
		zap.Int("collections", len(b.Collections())),
	)
	return b, nil
}

// Post looks a post up by link in the current batch.
func (s *Service) Post(link string) (post.Post, error) {
	p, ok := s.Current().Post(link)
	if !ok {
		return post.Post{}, fmt.Errorf("post %q: %w", link, domain.ErrPostNotFound)
	}
	return p, nil
}

// Collection looks a collection up by name in the current batch.
func (s *Service) Collection(name string) (collection.Collection, error) {
	c, ok := s.Current().Collection(name)
	if !ok {
		return collection.Collection{}, fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
	}
	return c, nil
}
