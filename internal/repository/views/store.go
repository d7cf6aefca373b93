// Package views persists per-post view counters in the KV store.
package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/db"
	"github.com/wwwqqqzzz/blog-sub000/internal/metrics"
)

// DefaultKeyPrefix namespaces counters when no prefix is configured.
const DefaultKeyPrefix = "blogdex:"

// store is the consumer interface for view counters (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
}

// Store implements view counting on top of DB (INCRBY + GET/MGET).
type Store struct {
	store  store
	prefix string
	logger *zap.Logger
}

// New creates a view store. Keys are "<prefix>views:<link>".
func New(s store, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{store: s, prefix: prefix + "views:", logger: zap.NewNop()}
}

// WithLogger sets the logger used to report unreadable counters.
func (s *Store) WithLogger(l *zap.Logger) *Store {
	s.logger = l
	return s
}

// Increment records one view and returns the new total.
func (s *Store) Increment(ctx context.Context, link string) (int64, error) {
	n, err := s.store.IncrBy(ctx, s.key(link), 1)
	if err != nil {
		return 0, fmt.Errorf("views INCRBY %s: %w", link, err)
	}
	metrics.ViewsRecordedTotal.Inc()
	return n, nil
}

// Get returns the view count of link. Returns 0 if the key does not exist.
func (s *Store) Get(ctx context.Context, link string) (int64, error) {
	data, err := s.store.Get(ctx, s.key(link))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("views GET %s: %w", link, err)
	}
	return parseCount(link, data)
}

// Counts returns the view count of every link. Links without views map to 0,
// and so do links whose stored counter cannot be parsed (logged at Warn).
func (s *Store) Counts(ctx context.Context, links []string) (map[string]int64, error) {
	out := make(map[string]int64, len(links))
	if len(links) == 0 {
		return out, nil
	}

	keys := make([]string, len(links))
	for i, l := range links {
		keys[i] = s.key(l)
	}
	values, err := s.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("views MGET: %w", err)
	}

	for i, link := range links {
		if i >= len(values) || values[i] == nil {
			out[link] = 0
			continue
		}
		n, err := parseCount(link, values[i])
		if err != nil {
			s.logger.Warn("Unreadable view counter, counting as 0",
				zap.String("link", link), zap.Error(err))
			n = 0
		}
		out[link] = n
	}
	return out, nil
}

func (s *Store) key(link string) string { return s.prefix + link }

func parseCount(link string, data []byte) (int64, error) {
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("views %s parse: %w", link, err)
	}
	return n, nil
}
