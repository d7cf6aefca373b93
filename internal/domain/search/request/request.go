package request

import (
	"fmt"
	"strings"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 1024
	DefaultLimit   = 10
	MaxLimit       = 100
)

// Request is a validated full-text query.
type Request struct {
	query string
	terms []string
	limit int
}

// New validates and normalizes search parameters.
// An empty or whitespace-only query is valid and yields no terms.
// limit <= 0 falls back to defaultLimit; both are clamped to MaxLimit.
func New(query string, limit, defaultLimit int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d bytes): %w", MaxQueryLength, domain.ErrInvalidQuery)
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{
		query: strings.TrimSpace(query),
		terms: strings.Fields(query),
		limit: limit,
	}, nil
}

// Query returns the trimmed query text.
func (r Request) Query() string { return r.query }

// Terms returns whitespace-delimited query terms.
func (r Request) Terms() []string {
	out := make([]string, len(r.terms))
	copy(out, r.terms)
	return out
}

// IsEmpty reports whether the query has no terms.
func (r Request) IsEmpty() bool { return len(r.terms) == 0 }

// Limit returns the maximum number of results.
func (r Request) Limit() int { return r.limit }
