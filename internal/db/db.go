package db

import (
	"context"
	"time"
)

// Store is the storage facade behind view counts and the response cache.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	// Get returns ErrKeyNotFound for a missing or expired key.
	Get(ctx context.Context, key string) ([]byte, error)
	// MGet returns one value per key, nil where the key is missing.
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// IncrBy treats a missing key as 0 and returns the new value.
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Del(ctx context.Context, key string) error
}
