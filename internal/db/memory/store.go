// Package memory is a process-local key-value store for tests and single-run tools.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type item struct {
	value     []byte
	expiresAt time.Time
}

func (i item) live(now time.Time) bool {
	return i.expiresAt.IsZero() || now.Before(i.expiresAt)
}

// Store is a mutex-guarded map with lazy expiry.
type Store struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{items: make(map[string]item), now: time.Now}
}

// WithClock overrides the clock used for expiry.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close drops every key.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]item)
}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Get retrieves a live value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.lookup(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

// MGet retrieves several keys. Missing keys yield nil.
func (s *Store) MGet(_ context.Context, keys []string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, key := range keys {
		if v, ok := s.lookup(key); ok {
			out[i] = v
		}
	}
	return out, nil
}

// Set stores a value without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = item{value: clone(value)}
	return nil
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = item{value: clone(value), expiresAt: s.now().Add(ttl)}
	return nil
}

// IncrBy increments the integer stored at key, keeping its expiry.
func (s *Store) IncrBy(_ context.Context, key string, val int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok || !it.live(s.now()) {
		it = item{}
	}
	var current int64
	if len(it.value) > 0 {
		n, err := strconv.ParseInt(string(it.value), 10, 64)
		if err != nil {
			return 0, &db.Error{Op: db.OpIncrBy, Err: fmt.Errorf("value is not an integer: %w", err)}
		}
		current = n
	}
	next := current + val
	it.value = []byte(strconv.FormatInt(next, 10))
	s.items[key] = it
	return next, nil
}

// Del deletes a key.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *Store) lookup(key string) ([]byte, bool) {
	it, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if !it.live(s.now()) {
		delete(s.items, key)
		return nil, false
	}
	return clone(it.value), true
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
