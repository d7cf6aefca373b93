package series

// Service resolves navigation inside catalog collections.
type Service struct {
	catalog Catalog
}

// New creates a series Service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Navigate locates link inside the named collection.
// An unknown collection behaves like an empty one.
func (s *Service) Navigate(name, link string) (Navigation, bool) {
	col, ok := s.catalog.Current().Collection(name)
	if !ok {
		return Navigation{}, false
	}
	return Navigate(col.Posts(), link)
}
