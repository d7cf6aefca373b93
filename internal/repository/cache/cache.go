// Package cache is a timestamped response cache over the KV store.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/db"
	"github.com/wwwqqqzzz/blog-sub000/internal/metrics"
)

// Defaults.
const (
	DefaultTTL       = 10 * time.Minute
	DefaultRetention = 7 * 24 * time.Hour
	DefaultKeyPrefix = "blogdex:"
)

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Entry is a cached payload and the time it was stored.
type Entry struct {
	Data      []byte
	Timestamp time.Time
}

type record struct {
	Data      []byte `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Cache stores payloads for TTL. Entries stay readable as stale for the
// retention period so callers can fall back when the origin is down.
type Cache struct {
	store     store
	prefix    string
	ttl       time.Duration
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// New creates a cache. A non-positive ttl uses DefaultTTL.
func New(s store, prefix string, ttl time.Duration, logger *zap.Logger) *Cache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:     s,
		prefix:    prefix + "cache:",
		ttl:       ttl,
		retention: max(DefaultRetention, ttl),
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock overrides the clock used for validity checks.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	if now != nil {
		c.now = now
	}
	return c
}

// WithRetention sets how long stale entries are kept.
func (c *Cache) WithRetention(d time.Duration) *Cache {
	if d >= c.ttl {
		c.retention = d
	}
	return c
}

// TTL returns the validity window.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns a fresh entry: valid iff now - Timestamp < TTL.
func (c *Cache) Get(ctx context.Context, key string) (Entry, bool) {
	e, ok := c.read(ctx, key)
	if !ok {
		metrics.CacheTotal.WithLabelValues("miss").Inc()
		return Entry{}, false
	}
	if c.now().Sub(e.Timestamp) >= c.ttl {
		metrics.CacheTotal.WithLabelValues("expired").Inc()
		return Entry{}, false
	}
	metrics.CacheTotal.WithLabelValues("hit").Inc()
	return e, true
}

// Stale returns an entry regardless of age.
func (c *Cache) Stale(ctx context.Context, key string) (Entry, bool) {
	e, ok := c.read(ctx, key)
	if ok {
		metrics.CacheTotal.WithLabelValues("stale").Inc()
	}
	return e, ok
}

// Set stores data stamped with the current time. Failures are logged.
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	raw, err := json.Marshal(record{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, c.storeKey(key), raw, c.retention); err != nil {
		c.logger.Warn("Failed to write cache entry", zap.String("key", key), zap.Error(err))
	}
}

// Clear removes an entry. Failures are logged.
func (c *Cache) Clear(ctx context.Context, key string) {
	if err := c.store.Del(ctx, c.storeKey(key)); err != nil {
		c.logger.Warn("Failed to clear cache entry", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) read(ctx context.Context, key string) (Entry, bool) {
	raw, err := c.store.Get(ctx, c.storeKey(key))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read cache entry", zap.String("key", key), zap.Error(err))
		}
		return Entry{}, false
	}

	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		c.logger.Warn("Corrupt cache entry", zap.String("key", key), zap.Error(err))
		return Entry{}, false
	}
	if r.Timestamp <= 0 {
		c.logger.Warn("Corrupt cache entry", zap.String("key", key), zap.Error(fmt.Errorf("missing timestamp")))
		return Entry{}, false
	}
	return Entry{Data: r.Data, Timestamp: time.UnixMilli(r.Timestamp)}, true
}

func (c *Cache) storeKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return c.prefix + hex.EncodeToString(h[:])
}
