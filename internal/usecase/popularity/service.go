package popularity

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// Ranked pairs a post with its popularity score and view count.
type Ranked struct {
	Post  post.Post
	Views int64
	Score Score
}

// Service ranks posts by popularity using stored view counts.
type Service struct {
	scorer *Scorer
	views  ViewCounter
	logger *zap.Logger
}

// New creates a popularity Service. views may be nil (every post has 0 views).
func New(scorer *Scorer, views ViewCounter, logger *zap.Logger) *Service {
	return &Service{scorer: scorer, views: views, logger: logger}
}

// Top returns up to n posts ranked by popularity descending; ties keep batch order.
// A failing view store degrades to zero views for every post.
func (s *Service) Top(ctx context.Context, posts []post.Post, n int) []Ranked {
	counts := s.counts(ctx, posts)

	ranked := make([]Ranked, len(posts))
	for i, p := range posts {
		v := counts[p.Link()]
		ranked[i] = Ranked{Post: p, Views: v, Score: s.scorer.Score(p, v)}
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

func (s *Service) counts(ctx context.Context, posts []post.Post) map[string]int64 {
	if s.views == nil || len(posts) == 0 {
		return map[string]int64{}
	}
	links := make([]string, len(posts))
	for i, p := range posts {
		links[i] = p.Link()
	}
	counts, err := s.views.Counts(ctx, links)
	if err != nil {
		s.logger.Warn("Failed to read view counts, ranking without views", zap.Error(err))
		return map[string]int64{}
	}
	return counts
}
