package result

import (
	"slices"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// Searchable field names, in reporting order.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldSource      = "source"
)

// Fields lists the searchable fields in the order matched fields are reported.
var Fields = []string{FieldTitle, FieldDescription, FieldTags, FieldSource}

// Snippet is a bounded excerpt of a matched field.
type Snippet struct {
	Field string
	Text  string
}

// Result is a single search hit.
// Score follows the distance convention: 0 is a perfect match, lower is better.
type Result struct {
	item          post.Post
	score         float64
	matchedFields []string
	snippets      []Snippet
}

// New creates a search result.
func New(item post.Post, score float64, matchedFields []string, snippets []Snippet) Result {
	return Result{
		item:          item,
		score:         score,
		matchedFields: slices.Clone(matchedFields),
		snippets:      slices.Clone(snippets),
	}
}

// Item returns the matched post.
func (r Result) Item() post.Post { return r.item }

// Score returns the distance score (lower is better).
func (r Result) Score() float64 { return r.score }

// MatchedFields returns the names of fields that matched the query.
func (r Result) MatchedFields() []string { return slices.Clone(r.matchedFields) }

// Snippets returns one excerpt per matched field.
func (r Result) Snippets() []Snippet { return slices.Clone(r.snippets) }
