// Package fulltext is an in-memory fuzzy full-text index over posts, built on bleve.
package fulltext

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	unicodetok "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/result"
)

const analyzerName = "post_text"

// prefixBoostFactor scales field weights for prefix matches so whole-word hits rank higher.
const prefixBoostFactor = 0.5

// Weights are per-field boosts.
type Weights struct {
	Title       float64
	Description float64
	Tags        float64
	Source      float64
}

// DefaultWeights returns the editorial field priorities.
func DefaultWeights() Weights {
	return Weights{Title: 2, Description: 1, Tags: 0.8, Source: 0.5}
}

func (w Weights) forField(field string) float64 {
	switch field {
	case result.FieldTitle:
		return w.Title
	case result.FieldDescription:
		return w.Description
	case result.FieldTags:
		return w.Tags
	case result.FieldSource:
		return w.Source
	default:
		return 0
	}
}

// Index is an immutable in-memory index over one batch of posts.
type Index struct {
	idx     bleve.Index
	posts   []post.Post
	weights Weights
}

// Build indexes posts. Documents are keyed by batch position, so duplicate links are tolerated.
func Build(posts []post.Post, w Weights) (*Index, error) {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	m, err := newMapping()
	if err != nil {
		return nil, fmt.Errorf("build mapping: %w", err)
	}
	idx, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	b := idx.NewBatch()
	for i, p := range posts {
		doc := map[string]interface{}{
			result.FieldTitle:       p.Title(),
			result.FieldDescription: p.Description(),
			result.FieldTags:        p.TagLabels(),
			result.FieldSource:      p.Source(),
		}
		if err := b.Index(strconv.Itoa(i), doc); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index post %q: %w", p.Link(), err)
		}
	}
	if err := idx.Batch(b); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return &Index{idx: idx, posts: append([]post.Post(nil), posts...), weights: w}, nil
}

func newMapping() (mapping.IndexMapping, error) {
	im := bleve.NewIndexMapping()
	err := im.AddCustomAnalyzer(analyzerName, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicodetok.Name,
		"token_filters": []interface{}{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("add analyzer: %w", err)
	}
	im.DefaultAnalyzer = analyzerName

	doc := bleve.NewDocumentMapping()
	for _, field := range result.Fields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = analyzerName
		fm.Store = false
		fm.IncludeInAll = false
		fm.IncludeTermVectors = true
		doc.AddFieldMappingsAt(field, fm)
	}
	im.DefaultMapping = doc
	return im, nil
}

// Len returns the number of indexed posts.
func (i *Index) Len() int { return len(i.posts) }

// Close releases the index.
func (i *Index) Close() error {
	if err := i.idx.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	return nil
}

// Match is the first match location inside one field.
// Start and End are byte offsets into the field text, or into tag Element for tags.
type Match struct {
	Start   int
	End     int
	Element int
}

// Hit is a raw index hit. Score is greater-is-better and relative to MaxScore.
type Hit struct {
	Post     post.Post
	Position int
	Score    float64
	MaxScore float64
	Matches  map[string]Match
}

// Search runs a fuzzy AND query over terms and returns every hit ordered by score descending.
// Terms without letters or digits are ignored; no usable terms yields no hits.
func (i *Index) Search(ctx context.Context, terms []string) ([]Hit, error) {
	q := i.query(terms)
	if q == nil || len(i.posts) == 0 {
		return []Hit{}, nil
	}

	req := bleve.NewSearchRequestOptions(q, len(i.posts), 0, false)
	req.IncludeLocations = true
	res, err := i.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		pos, err := strconv.Atoi(h.ID)
		if err != nil || pos < 0 || pos >= len(i.posts) {
			continue
		}
		hits = append(hits, Hit{
			Post:     i.posts[pos],
			Position: pos,
			Score:    h.Score,
			MaxScore: res.MaxScore,
			Matches:  firstMatches(h.Locations),
		})
	}
	return hits, nil
}

func (i *Index) query(terms []string) query.Query {
	var conjuncts []query.Query
	for _, term := range usableTerms(terms) {
		var disjuncts []query.Query
		for _, field := range result.Fields {
			boost := i.weights.forField(field)
			if boost <= 0 {
				continue
			}
			mq := bleve.NewMatchQuery(term)
			mq.SetField(field)
			mq.SetFuzziness(Fuzziness(term))
			mq.SetBoost(boost)
			disjuncts = append(disjuncts, mq)

			if utf8.RuneCountInString(term) >= 2 {
				pq := bleve.NewPrefixQuery(strings.ToLower(term))
				pq.SetField(field)
				pq.SetBoost(boost * prefixBoostFactor)
				disjuncts = append(disjuncts, pq)
			}
		}
		if len(disjuncts) == 0 {
			return nil
		}
		conjuncts = append(conjuncts, bleve.NewDisjunctionQuery(disjuncts...))
	}
	if len(conjuncts) == 0 {
		return nil
	}
	return bleve.NewConjunctionQuery(conjuncts...)
}

// Fuzziness returns the allowed edit distance for a term: exact up to 3
// runes, 1 edit at 4, 2 from 5 on. Edits are plain Levenshtein, so swapping
// two adjacent letters ("raect") costs 2.
func Fuzziness(term string) int {
	switch n := utf8.RuneCountInString(term); {
	case n <= 3:
		return 0
	case n == 4:
		return 1
	default:
		return 2
	}
}

func usableTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if strings.IndexFunc(t, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			out = append(out, t)
		}
	}
	return out
}
