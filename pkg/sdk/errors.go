package blogdex

import "github.com/wwwqqqzzz/blog-sub000/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound     = domain.ErrNotFound
	ErrPostNotFound = domain.ErrPostNotFound
	ErrInvalidQuery = domain.ErrInvalidQuery
)
