// Package popularity estimates reader interest from views, editorial flags and recency.
// Scores are greater-is-better.
package popularity

import (
	"math"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// Weights holds the product-tuning constants of the popularity score.
// Views earn one point per ViewsPerPoint views up to ViewCap; Featured adds
// FeaturedBoost; Recency maps an age threshold (days) to a bonus, checked in order.
type Weights struct {
	ViewsPerPoint int
	ViewCap       int
	FeaturedBoost float64
	Recency       []RecencyStep
}

// RecencyStep awards Bonus to posts at most MaxDays old.
type RecencyStep struct {
	MaxDays int
	Bonus   float64
}

// DefaultWeights returns the documented scoring contract.
func DefaultWeights() Weights {
	return Weights{
		ViewsPerPoint: 2,
		ViewCap:       5,
		FeaturedBoost: 3,
		Recency: []RecencyStep{
			{MaxDays: 7, Bonus: 3},
			{MaxDays: 14, Bonus: 2},
			{MaxDays: 30, Bonus: 1},
		},
	}
}

// Detail holds the named sub-scores.
type Detail struct {
	Views    float64 `json:"views"`
	Featured float64 `json:"featured"`
	Recency  float64 `json:"recency"`
}

// Score is a popularity score; Total is the sum of Detail.
type Score struct {
	Total  float64 `json:"total"`
	Detail Detail  `json:"detail"`
}

// Scorer computes popularity scores. It performs no I/O.
type Scorer struct {
	weights Weights
	now     func() time.Time
}

// NewScorer creates a Scorer. A nil clock uses time.Now; zero weights use DefaultWeights.
func NewScorer(w Weights, now func() time.Time) *Scorer {
	if w.ViewsPerPoint <= 0 && w.ViewCap == 0 && w.FeaturedBoost == 0 && len(w.Recency) == 0 {
		w = DefaultWeights()
	}
	if w.ViewsPerPoint <= 0 {
		w.ViewsPerPoint = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Scorer{weights: w, now: now}
}

// Score computes the popularity of p given its view count.
func (s *Scorer) Score(p post.Post, views int64) Score {
	d := Detail{
		Views:   s.viewScore(views),
		Recency: s.recencyScore(p),
	}
	if p.Featured() {
		d.Featured = s.weights.FeaturedBoost
	}
	return Score{Total: d.Views + d.Featured + d.Recency, Detail: d}
}

func (s *Scorer) viewScore(views int64) float64 {
	if views <= 0 {
		return 0
	}
	points := views / int64(s.weights.ViewsPerPoint)
	return math.Min(float64(s.weights.ViewCap), float64(points))
}

// recencyScore counts future dates as zero days old; unparseable dates earn nothing.
func (s *Scorer) recencyScore(p post.Post) float64 {
	published, ok := p.Time()
	if !ok {
		return 0
	}
	age := s.now().Sub(published)
	if age < 0 {
		age = 0
	}
	days := int(age.Hours() / 24)
	for _, step := range s.weights.Recency {
		if days <= step.MaxDays {
			return step.Bonus
		}
	}
	return 0
}
