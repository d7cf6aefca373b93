package health

import (
	"context"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/batch"
)

// DBPinger checks view/cache store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogReader exposes the current content batch.
type CatalogReader interface {
	Current() batch.Batch
}
