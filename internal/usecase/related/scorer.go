// Package related scores topical closeness between posts ("related content").
// Scores are greater-is-better.
package related

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// Weights holds the product-tuning constants of the relevance score.
// Tags earn PerSharedTag per shared label up to TagCap; each candidate title
// word found in the reference title earns one point up to TitleCap; keywords
// earn PerKeyword each up to KeywordCap. Dates within NearDays earn NearBonus,
// within FarDays FarBonus.
type Weights struct {
	PerSharedTag float64
	TagCap       float64
	TitleCap     float64
	PerKeyword   float64
	KeywordCap   float64
	NearDays     int
	NearBonus    float64
	FarDays      int
	FarBonus     float64
}

// DefaultWeights returns the documented scoring contract.
func DefaultWeights() Weights {
	return Weights{
		PerSharedTag: 2,
		TagCap:       5,
		TitleCap:     3,
		PerKeyword:   0.5,
		KeywordCap:   3,
		NearDays:     90,
		NearBonus:    2,
		FarDays:      180,
		FarBonus:     1,
	}
}

// Detail holds the named sub-scores.
type Detail struct {
	Tags     float64 `json:"tags"`
	Title    float64 `json:"title"`
	Keywords float64 `json:"keywords"`
	Recency  float64 `json:"recency"`
}

// Score is a relevance score; Total is the sum of Detail.
type Score struct {
	Total  float64 `json:"total"`
	Detail Detail  `json:"detail"`
}

// Ranked pairs a candidate post with its score.
type Ranked struct {
	Post  post.Post
	Score Score
}

// Scorer computes relevance scores.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer. Zero-value weights fall back to DefaultWeights.
func NewScorer(w Weights) *Scorer {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Scorer{weights: w}
}

// Score computes the relevance of candidate to reference.
// The tag term depends only on |tags(a) ∩ tags(b)| and is symmetric; title overlap is directional.
func (s *Scorer) Score(reference, candidate post.Post) Score {
	d := Detail{
		Tags:     s.tagScore(reference, candidate),
		Title:    s.titleScore(reference, candidate),
		Keywords: s.keywordScore(reference, candidate),
		Recency:  s.recencyScore(reference, candidate),
	}
	return Score{Total: d.Tags + d.Title + d.Keywords + d.Recency, Detail: d}
}

// Top returns up to n candidates ranked by total score descending. The reference
// (by link) and candidates with a blank title are excluded; ties keep batch order.
// n <= 0 returns every candidate.
func (s *Scorer) Top(reference post.Post, posts []post.Post, n int) []Ranked {
	ranked := make([]Ranked, 0, len(posts))
	for _, p := range posts {
		if p.Link() == reference.Link() || strings.TrimSpace(p.Title()) == "" {
			continue
		}
		ranked = append(ranked, Ranked{Post: p, Score: s.Score(reference, p)})
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		switch {
		case a.Score.Total > b.Score.Total:
			return -1
		case a.Score.Total < b.Score.Total:
			return 1
		default:
			return 0
		}
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func (s *Scorer) tagScore(a, b post.Post) float64 {
	shared := 0
	seen := make(map[string]struct{})
	for _, t := range a.Tags() {
		if _, dup := seen[t.Label()]; dup {
			continue
		}
		seen[t.Label()] = struct{}{}
		if b.HasTag(t.Label()) {
			shared++
		}
	}
	return math.Min(s.weights.TagCap, s.weights.PerSharedTag*float64(shared))
}

func (s *Scorer) titleScore(reference, candidate post.Post) float64 {
	refTitle := strings.ToLower(reference.Title())
	matches := 0
	for _, w := range significantWords(candidate.Title()) {
		if strings.Contains(refTitle, w) {
			matches++
		}
	}
	return math.Min(s.weights.TitleCap, float64(matches))
}

func (s *Scorer) keywordScore(reference, candidate post.Post) float64 {
	keywords := keywordSet(reference.Title(), reference.Description())
	matches := 0
	for _, w := range significantWords(candidate.Title() + " " + candidate.Description()) {
		if _, ok := keywords[w]; ok {
			matches++
		}
	}
	return math.Min(s.weights.KeywordCap, s.weights.PerKeyword*float64(matches))
}

// recencyScore treats an unparseable date on either side as maximum distance.
func (s *Scorer) recencyScore(a, b post.Post) float64 {
	ta, okA := a.Time()
	tb, okB := b.Time()
	if !okA || !okB {
		return 0
	}
	return s.proximity(ta, tb)
}

func (s *Scorer) proximity(a, b time.Time) float64 {
	days := post.DaysBetween(a, b)
	switch {
	case days <= s.weights.NearDays:
		return s.weights.NearBonus
	case days <= s.weights.FarDays:
		return s.weights.FarBonus
	default:
		return 0
	}
}
