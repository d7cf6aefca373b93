package popularity

import "context"

// ViewCounter reads view counts from the persistent store.
type ViewCounter interface {
	Counts(ctx context.Context, links []string) (map[string]int64, error)
}
