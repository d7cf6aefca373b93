package related

import (
	"fmt"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain"
)

// Service answers "related content" lookups against the catalog.
type Service struct {
	catalog Catalog
	scorer  *Scorer
}

// New creates a related Service.
func New(catalog Catalog, scorer *Scorer) *Service {
	return &Service{catalog: catalog, scorer: scorer}
}

// Related ranks the catalog against the post at link.
func (s *Service) Related(link string, n int) ([]Ranked, error) {
	b := s.catalog.Current()
	ref, ok := b.Post(link)
	if !ok {
		return nil, fmt.Errorf("post %q: %w", link, domain.ErrPostNotFound)
	}
	return s.scorer.Top(ref, b.Posts(), n), nil
}
