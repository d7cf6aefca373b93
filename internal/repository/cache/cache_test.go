package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wwwqqqzzz/blog-sub000/internal/db/memory"
)

// --- Mocks ---

type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, key string) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	return m.getFn(ctx, key)
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.setFn(ctx, key, value, ttl)
}

func (m *mockKVStore) Del(ctx context.Context, key string) error {
	return m.delFn(ctx, key)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *clock, *memory.Store) {
	t.Helper()
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	kv := memory.New().WithClock(clk.now)
	return New(kv, "test:", ttl, zap.NewNop()).WithClock(clk.now), clk, kv
}

// --- Tests ---

func TestGet_Validity(t *testing.T) {
	c, clk, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "https://example.com/feed.xml", []byte("payload"))

	e, ok := c.Get(ctx, "https://example.com/feed.xml")
	if !ok {
		t.Fatal("expected fresh entry")
	}
	if string(e.Data) != "payload" || !e.Timestamp.Equal(clk.t) {
		t.Errorf("unexpected entry: %q @ %v", e.Data, e.Timestamp)
	}

	clk.t = clk.t.Add(59 * time.Second)
	if _, ok := c.Get(ctx, "https://example.com/feed.xml"); !ok {
		t.Error("expected entry valid before TTL")
	}

	clk.t = clk.t.Add(time.Second)
	if _, ok := c.Get(ctx, "https://example.com/feed.xml"); ok {
		t.Error("entry must be invalid at now - timestamp == ttl")
	}

	stale, ok := c.Stale(ctx, "https://example.com/feed.xml")
	if !ok || string(stale.Data) != "payload" {
		t.Errorf("expected stale fallback, got %q (ok=%v)", stale.Data, ok)
	}
}

func TestGet_Missing(t *testing.T) {
	c, _, _ := newTestCache(t, time.Minute)
	if _, ok := c.Get(context.Background(), "nope"); ok {
		t.Fatal("expected miss")
	}
	if _, ok := c.Stale(context.Background(), "nope"); ok {
		t.Fatal("expected no stale entry")
	}
}

func TestClear(t *testing.T) {
	c, _, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	c.Set(ctx, "k", []byte("v"))
	c.Clear(ctx, "k")
	if _, ok := c.Stale(ctx, "k"); ok {
		t.Fatal("expected entry to be cleared")
	}
}

func TestGet_CorruptEntryIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	kv := &mockKVStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) { return []byte("{not json"), nil },
	}
	c := New(kv, "", time.Minute, zap.New(core))

	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatal("corrupt entry must read as no value")
	}
	if logs.FilterMessage("Corrupt cache entry").Len() != 1 {
		t.Errorf("expected one corrupt-entry warning, got %d", logs.Len())
	}
}

func TestStoreFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	down := errors.New("connection refused")
	kv := &mockKVStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) { return nil, down },
		setFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) error { return down },
		delFn: func(_ context.Context, _ string) error { return down },
	}
	c := New(kv, "", time.Minute, zap.New(core))
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss on store failure")
	}
	c.Clear(ctx, "k")

	if logs.Len() != 3 {
		t.Errorf("expected 3 warnings, got %d", logs.Len())
	}
}

func TestSet_UsesRetention(t *testing.T) {
	var gotTTL time.Duration
	var gotKey string
	kv := &mockKVStore{
		setFn: func(_ context.Context, key string, _ []byte, ttl time.Duration) error {
			gotKey, gotTTL = key, ttl
			return nil
		},
	}
	c := New(kv, "app:", time.Minute, zap.NewNop()).WithRetention(2 * time.Hour)
	c.Set(context.Background(), "k", []byte("v"))

	if gotTTL != 2*time.Hour {
		t.Errorf("expected retention TTL 2h, got %v", gotTTL)
	}
	if len(gotKey) <= len("app:cache:") || gotKey[:len("app:cache:")] != "app:cache:" {
		t.Errorf("unexpected store key %q", gotKey)
	}
}
