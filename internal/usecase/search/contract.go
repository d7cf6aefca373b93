package search

import "github.com/wwwqqqzzz/blog-sub000/internal/domain/batch"

// Catalog provides the current content batch.
type Catalog interface {
	Current() batch.Batch
}
