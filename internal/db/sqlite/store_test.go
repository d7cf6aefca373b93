package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/db"
	"github.com/wwwqqqzzz/blog-sub000/internal/db/dbtest"
)

func openTest(t *testing.T, clock *dbtest.Clock) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(s.Close)
	return s.WithClock(clock.Now)
}

func TestStore_KV(t *testing.T) {
	dbtest.RunKV(t, func(t *testing.T, clock *dbtest.Clock) db.KVStore {
		return openTest(t, clock)
	})
}

func TestStore_Ping(t *testing.T) {
	s := openTest(t, &dbtest.Clock{T: time.Now()})
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.WaitForReady(context.Background(), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_Purge(t *testing.T) {
	clock := &dbtest.Clock{T: time.Unix(1_700_000_000, 0)}
	s := openTest(t, clock)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "short", []byte("x"), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set(ctx, "forever", []byte("y")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.Advance(time.Minute)

	n, err := s.Purge(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged row, got %d", n)
	}
	if _, err := s.Get(ctx, "forever"); err != nil {
		t.Errorf("expected key without expiry to survive, got %v", err)
	}
}

func TestOpen_File(t *testing.T) {
	path := t.TempDir() + "/views.db"
	s, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	if _, err := s.IncrBy(ctx, "/a", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(ctx, "/a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "3" {
		t.Errorf("expected persisted 3, got %q", got)
	}
}
