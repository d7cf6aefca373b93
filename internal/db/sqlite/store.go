// Package sqlite is an embedded single-node key-value store on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wwwqqqzzz/blog-sub000/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
}

// Store keeps keys in a single table. Expired rows are hidden on read and
// overwritten on write; expires_at = 0 means no expiry.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// :memory: databases are per-connection.
	conn.SetMaxOpenConns(1)

	if path != MemoryPath {
		for _, p := range pragmas {
			if _, err := conn.Exec(p); err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("set pragma %q: %w", p, err)
			}
		}
	}

	s := &Store{db: conn, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// WithClock overrides the clock used for expiry.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expires_at INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// Get retrieves a live value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ? AND (expires_at = 0 OR expires_at > ?)`,
		key, s.now().UnixNano(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrKeyNotFound
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return value, nil
}

// MGet retrieves several keys. Missing keys yield nil.
func (s *Store) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i, key := range keys {
		v, err := s.Get(ctx, key)
		if errors.Is(err, db.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, &db.Error{Op: db.OpMGet, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.put(ctx, s.db, key, value, 0)
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.put(ctx, s.db, key, value, s.now().Add(ttl).UnixNano())
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) put(ctx context.Context, ex execer, key string, value []byte, expiresAt int64) error {
	if value == nil {
		value = []byte{}
	}
	_, err := ex.ExecContext(ctx, `INSERT INTO kv(key, value, expires_at) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt)
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// IncrBy increments the integer stored at key, keeping its expiry.
// A missing or expired key counts as 0.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var raw []byte
	var expiresAt int64
	now := s.now().UnixNano()
	err = tx.QueryRowContext(ctx, `SELECT value, expires_at FROM kv WHERE key = ?`, key).Scan(&raw, &expiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		raw, expiresAt = nil, 0
	case err != nil:
		return 0, &db.Error{Op: db.OpIncrBy, Err: err}
	case expiresAt != 0 && expiresAt <= now:
		raw, expiresAt = nil, 0
	}

	var current int64
	if len(raw) > 0 {
		current, err = strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, &db.Error{Op: db.OpIncrBy, Err: fmt.Errorf("value is not an integer: %w", err)}
		}
	}
	next := current + val

	if err := s.put(ctx, tx, key, []byte(strconv.FormatInt(next, 10)), expiresAt); err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Err: err}
	}
	return next, nil
}

// Del deletes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Purge removes expired rows.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE expires_at != 0 AND expires_at <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, &db.Error{Op: db.OpDel, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &db.Error{Op: db.OpDel, Err: err}
	}
	return n, nil
}
