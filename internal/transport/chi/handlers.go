package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// ListPosts handles GET /posts. ?tag= keeps posts carrying that label.
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	tag, err := queryString(r, "tag", false)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	posts := s.catalog.Current().Posts()
	if tag != "" {
		filtered := make([]post.Post, 0, len(posts))
		for _, p := range posts {
			if p.HasTag(tag) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	items := postsToAPI(posts)
	writeJSON(w, http.StatusOK, ListResponse[PostResponse]{Items: items, Total: len(items)})
}

// GetPost handles GET /post?link=.
func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	link, err := queryString(r, "link", true)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	p, err := s.catalog.Post(link)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, postToAPI(p))
}

// ListTags handles GET /tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	items := tagsToAPI(s.catalog.Current().Tags())
	writeJSON(w, http.StatusOK, ListResponse[TagResponse]{Items: items, Total: len(items)})
}

// ListCollections handles GET /collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	cols := s.catalog.Current().Collections()
	items := make([]CollectionResponse, len(cols))
	for i, c := range cols {
		items[i] = collectionToAPI(c, false)
	}
	writeJSON(w, http.StatusOK, ListResponse[CollectionResponse]{Items: items, Total: len(items)})
}

// GetCollection handles GET /collections/{name}. Posts are in reading order.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	c, err := s.catalog.Collection(chi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionToAPI(c, true))
}

// GetNavigation handles GET /collections/{name}/navigation?link=.
func (s *Server) GetNavigation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	link, err := queryString(r, "link", true)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	if _, err := s.catalog.Collection(name); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	nav, ok := s.series.Navigate(name, link)
	if !ok {
		s.handleDomainError(w, r, fmt.Errorf("post %q in collection %q: %w", link, name, domain.ErrPostNotFound))
		return
	}
	writeJSON(w, http.StatusOK, navigationToAPI(name, link, nav))
}

// Search handles GET /search?q=&limit=&highlight=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q, err := queryString(r, "q", false)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	// 0 lets the search service apply its own default
	limit, err := queryLimit(r, 0, s.maxLimit)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	withHighlight, err := queryBool(r, "highlight")
	if err != nil {
		s.badRequest(w, err)
		return
	}

	results, err := s.search.Query(r.Context(), q, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	highlightQuery := ""
	if withHighlight {
		highlightQuery = q
	}
	items := make([]SearchResultItem, len(results))
	for i, res := range results {
		items[i] = searchResultToAPI(res, highlightQuery)
	}
	writeJSON(w, http.StatusOK, SearchResponse{Query: q, Items: items, Total: len(items)})
}

// Related handles GET /related?link=&limit=.
func (s *Server) Related(w http.ResponseWriter, r *http.Request) {
	link, err := queryString(r, "link", true)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	limit, err := queryLimit(r, s.defaultLimit, s.maxLimit)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	ranked, err := s.related.Related(link, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]RelatedItem, len(ranked))
	for i, rk := range ranked {
		items[i] = RelatedItem{Post: postToAPI(rk.Post), Score: rk.Score}
	}
	writeJSON(w, http.StatusOK, ListResponse[RelatedItem]{Items: items, Total: len(items)})
}

// Popular handles GET /popular?limit=.
func (s *Server) Popular(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, s.defaultLimit, s.maxLimit)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	ranked := s.popularity.Top(r.Context(), s.catalog.Current().Posts(), limit)

	items := make([]PopularItem, len(ranked))
	for i, rk := range ranked {
		items[i] = PopularItem{Post: postToAPI(rk.Post), Views: rk.Views, Score: rk.Score}
	}
	writeJSON(w, http.StatusOK, ListResponse[PopularItem]{Items: items, Total: len(items)})
}

// GetViews handles GET /views?link=.
func (s *Server) GetViews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.viewTarget(w, r)
	if !ok {
		return
	}

	n, err := s.views.Get(r.Context(), p.Link())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewsResponse{Link: p.Link(), Views: n})
}

// RecordView handles POST /views?link=. Only links in the current batch are counted.
func (s *Server) RecordView(w http.ResponseWriter, r *http.Request) {
	p, ok := s.viewTarget(w, r)
	if !ok {
		return
	}

	n, err := s.views.Increment(r.Context(), p.Link())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewsResponse{Link: p.Link(), Views: n})
}

func (s *Server) viewTarget(w http.ResponseWriter, r *http.Request) (post.Post, bool) {
	link, err := queryString(r, "link", true)
	if err != nil {
		s.badRequest(w, err)
		return post.Post{}, false
	}
	p, err := s.catalog.Post(link)
	if err != nil {
		s.handleDomainError(w, r, err)
		return post.Post{}, false
	}
	return p, true
}
