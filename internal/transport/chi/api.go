package chi

import (
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/collection"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/highlight"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/result"
	popularityuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/popularity"
	relateduc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/related"
	seriesuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/series"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeInvalidQuery       ErrorCode = "invalid_query"
	CodePostNotFound       ErrorCode = "post_not_found"
	CodeCollectionNotFound ErrorCode = "collection_not_found"
	CodeCatalogEmpty       ErrorCode = "catalog_empty"
	CodeReloadFailed       ErrorCode = "reload_failed"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ListResponse wraps a list of items.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// TagResponse is a tag with its batch-wide count.
type TagResponse struct {
	Label     string `json:"label"`
	Permalink string `json:"permalink"`
	Count     int    `json:"count"`
}

// PostResponse is the public view of a post. Body text is not exposed.
type PostResponse struct {
	Title           string        `json:"title"`
	Link            string        `json:"link"`
	Date            string        `json:"date,omitempty"`
	Description     string        `json:"description,omitempty"`
	Tags            []TagResponse `json:"tags"`
	Image           string        `json:"image,omitempty"`
	Sticky          int           `json:"sticky,omitempty"`
	Featured        bool          `json:"featured,omitempty"`
	Pinned          bool          `json:"pinned,omitempty"`
	Collection      string        `json:"collection,omitempty"`
	CollectionOrder *int          `json:"collection_order,omitempty"`
}

// CollectionResponse describes a series. Posts is only set on the detail route.
type CollectionResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image,omitempty"`
	Count       int            `json:"count"`
	Posts       []PostResponse `json:"posts,omitempty"`
}

// NavigationResponse is the position of a post inside a series.
type NavigationResponse struct {
	Collection string        `json:"collection"`
	Link       string        `json:"link"`
	Prev       *PostResponse `json:"prev"`
	Next       *PostResponse `json:"next"`
	Index      int           `json:"index"`
	Total      int           `json:"total"`
	Progress   int           `json:"progress"`
}

// SnippetResponse is a matched excerpt of one field.
type SnippetResponse struct {
	Field    string              `json:"field"`
	Text     string              `json:"text"`
	Segments []highlight.Segment `json:"segments,omitempty"`
}

// SearchResultItem is one ranked search hit.
type SearchResultItem struct {
	Post          PostResponse        `json:"post"`
	Distance      float64             `json:"distance"`
	MatchedFields []string            `json:"matched_fields"`
	Snippets      []SnippetResponse   `json:"snippets"`
	TitleSegments []highlight.Segment `json:"title_segments,omitempty"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Query string             `json:"query"`
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}

// RelatedItem is a related post with its score breakdown.
type RelatedItem struct {
	Post  PostResponse    `json:"post"`
	Score relateduc.Score `json:"score"`
}

// PopularItem is a post with its popularity score and view count.
type PopularItem struct {
	Post  PostResponse       `json:"post"`
	Views int64              `json:"views"`
	Score popularityuc.Score `json:"score"`
}

// ViewsResponse reports the view count of one post.
type ViewsResponse struct {
	Link  string `json:"link"`
	Views int64  `json:"views"`
}

// ReloadResponse summarizes the batch after a reload.
type ReloadResponse struct {
	Posts       int    `json:"posts"`
	Tags        int    `json:"tags"`
	Collections int    `json:"collections"`
	Fingerprint string `json:"fingerprint"`
	LoadedAt    string `json:"loaded_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func tagToAPI(t post.Tag) TagResponse {
	return TagResponse{Label: t.Label(), Permalink: t.Permalink(), Count: t.Count()}
}

func tagsToAPI(tags []post.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = tagToAPI(t)
	}
	return out
}

func postToAPI(p post.Post) PostResponse {
	resp := PostResponse{
		Title:       p.Title(),
		Link:        p.Link(),
		Date:        p.Date(),
		Description: p.Description(),
		Tags:        tagsToAPI(p.Tags()),
		Image:       p.Image(),
		Sticky:      p.Sticky(),
		Featured:    p.Featured(),
		Pinned:      p.Pinned(),
		Collection:  p.Collection(),
	}
	if order, ok := p.CollectionOrder(); ok {
		resp.CollectionOrder = &order
	}
	return resp
}

func postsToAPI(posts []post.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i, p := range posts {
		out[i] = postToAPI(p)
	}
	return out
}

func postPtrToAPI(p *post.Post) *PostResponse {
	if p == nil {
		return nil
	}
	resp := postToAPI(*p)
	return &resp
}

func collectionToAPI(c collection.Collection, withPosts bool) CollectionResponse {
	resp := CollectionResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Image:       c.Image(),
		Count:       c.Len(),
	}
	if withPosts {
		resp.Posts = postsToAPI(c.Posts())
	}
	return resp
}

func navigationToAPI(name, link string, n seriesuc.Navigation) NavigationResponse {
	return NavigationResponse{
		Collection: name,
		Link:       link,
		Prev:       postPtrToAPI(n.Prev),
		Next:       postPtrToAPI(n.Next),
		Index:      n.Index,
		Total:      n.Total,
		Progress:   n.Progress,
	}
}

// searchResultToAPI converts a hit. With a non-empty query, title and snippets
// carry highlight segments.
func searchResultToAPI(r result.Result, query string) SearchResultItem {
	item := SearchResultItem{
		Post:          postToAPI(r.Item()),
		Distance:      r.Score(),
		MatchedFields: r.MatchedFields(),
	}
	snippets := r.Snippets()
	item.Snippets = make([]SnippetResponse, len(snippets))
	for i, s := range snippets {
		item.Snippets[i] = SnippetResponse{Field: s.Field, Text: s.Text}
		if query != "" {
			item.Snippets[i].Segments = highlight.Split(s.Text, query)
		}
	}
	if query != "" {
		item.TitleSegments = highlight.Split(r.Item().Title(), query)
	}
	return item
}
