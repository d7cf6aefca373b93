package related

import "github.com/wwwqqqzzz/blog-sub000/internal/domain/batch"

// Catalog is the consumer interface for the current batch (ISP).
type Catalog interface {
	Current() batch.Batch
}
