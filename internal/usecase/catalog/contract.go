package catalog

import (
	"context"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// Source is the consumer interface for content loaders (ISP).
type Source interface {
	Name() string
	Load(ctx context.Context) ([]post.RawEntry, error)
}
