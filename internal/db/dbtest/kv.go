// Package dbtest holds behaviour checks shared by the embedded KV stores.
package dbtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/db"
)

// Clock is a manually advanced clock.
type Clock struct {
	T time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time { return c.T }

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// RunKV exercises the db.KVStore contract. newStore must return an empty
// store that reads time from clock.
func RunKV(t *testing.T, newStore func(t *testing.T, clock *Clock) db.KVStore) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t, &Clock{T: time.Unix(1_700_000_000, 0)})
		if _, err := s.Get(ctx, "nope"); !errors.Is(err, db.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("set get del", func(t *testing.T) {
		s := newStore(t, &Clock{T: time.Unix(1_700_000_000, 0)})
		if err := s.Set(ctx, "k", []byte("v1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Set(ctx, "k", []byte("v2")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "v2" {
			t.Errorf("expected v2, got %q", got)
		}
		if err := s.Del(ctx, "k"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after Del, got %v", err)
		}
	})

	t.Run("ttl expiry", func(t *testing.T) {
		clock := &Clock{T: time.Unix(1_700_000_000, 0)}
		s := newStore(t, clock)
		if err := s.SetWithTTL(ctx, "k", []byte("v"), time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		clock.Advance(59 * time.Second)
		if _, err := s.Get(ctx, "k"); err != nil {
			t.Fatalf("expected live key, got %v", err)
		}
		clock.Advance(time.Second)
		if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
			t.Fatalf("expected expired key, got %v", err)
		}
	})

	t.Run("mget", func(t *testing.T) {
		s := newStore(t, &Clock{T: time.Unix(1_700_000_000, 0)})
		if err := s.Set(ctx, "a", []byte("1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Set(ctx, "c", []byte("3")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := s.MGet(ctx, []string{"a", "b", "c"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 || string(got[0]) != "1" || got[1] != nil || string(got[2]) != "3" {
			t.Errorf("unexpected values: %q", got)
		}
	})

	t.Run("incrby", func(t *testing.T) {
		s := newStore(t, &Clock{T: time.Unix(1_700_000_000, 0)})
		for i, want := range []int64{1, 2, 7} {
			by := int64(1)
			if i == 2 {
				by = 5
			}
			n, err := s.IncrBy(ctx, "views", by)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != want {
				t.Errorf("step %d: expected %d, got %d", i, want, n)
			}
		}
		got, err := s.Get(ctx, "views")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "7" {
			t.Errorf("expected stored 7, got %q", got)
		}
	})

	t.Run("incrby non-integer", func(t *testing.T) {
		s := newStore(t, &Clock{T: time.Unix(1_700_000_000, 0)})
		if err := s.Set(ctx, "k", []byte("abc")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := s.IncrBy(ctx, "k", 1)
		var dbErr *db.Error
		if !errors.As(err, &dbErr) {
			t.Fatalf("expected db.Error, got %v", err)
		}
	})

	t.Run("incrby expired resets", func(t *testing.T) {
		clock := &Clock{T: time.Unix(1_700_000_000, 0)}
		s := newStore(t, clock)
		if err := s.SetWithTTL(ctx, "k", []byte("10"), time.Second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		clock.Advance(2 * time.Second)
		n, err := s.IncrBy(ctx, "k", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 1 {
			t.Errorf("expected expired counter to restart at 1, got %d", n)
		}
	})
}
