package blogdex

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/db/fulltext"
	popularityuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/popularity"
	relateduc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/related"
	searchuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/search"
)

// SearchWeights are per-field boosts for full-text search.
type SearchWeights = fulltext.Weights

// RelatedWeights are the related-content scoring constants.
type RelatedWeights = relateduc.Weights

// PopularityWeights are the popularity scoring constants.
type PopularityWeights = popularityuc.Weights

// RecencyStep awards a popularity bonus to posts at most MaxDays old.
type RecencyStep = popularityuc.RecencyStep

// DefaultSearchWeights returns the default field boosts.
func DefaultSearchWeights() SearchWeights { return fulltext.DefaultWeights() }

// DefaultRelatedWeights returns the default related-content constants.
func DefaultRelatedWeights() RelatedWeights { return relateduc.DefaultWeights() }

// DefaultPopularityWeights returns the default popularity constants.
func DefaultPopularityWeights() PopularityWeights { return popularityuc.DefaultWeights() }

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	now     func() time.Time
	views   ViewCounter
	logger  *zap.Logger
	window  searchuc.SnippetWindow
	search  SearchWeights
	related RelatedWeights
	popular PopularityWeights

	metricsReg prometheus.Registerer
}

func defaultConfig() *engineConfig {
	return &engineConfig{
		now:     time.Now,
		logger:  zap.NewNop(),
		window:  searchuc.DefaultSnippetWindow(),
		search:  DefaultSearchWeights(),
		related: DefaultRelatedWeights(),
		popular: DefaultPopularityWeights(),
	}
}

// WithClock sets the time source used for batch timestamps and popularity recency.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *engineConfig) {
		if now != nil {
			c.now = now
		}
	})
}

// WithViews sets the view-count source used by Popular.
// Without it every post has zero views.
func WithViews(v ViewCounter) Option {
	return optionFunc(func(c *engineConfig) {
		c.views = v
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	})
}

// WithSearchWeights overrides the per-field search boosts.
func WithSearchWeights(w SearchWeights) Option {
	return optionFunc(func(c *engineConfig) {
		c.search = w
	})
}

// WithSnippetWindow sets how many runes of context surround a snippet match.
func WithSnippetWindow(before, after int) Option {
	return optionFunc(func(c *engineConfig) {
		c.window = searchuc.SnippetWindow{Before: before, After: after}
	})
}

// WithRelatedWeights overrides the related-content constants.
func WithRelatedWeights(w RelatedWeights) Option {
	return optionFunc(func(c *engineConfig) {
		c.related = w
	})
}

// WithPopularityWeights overrides the popularity constants.
func WithPopularityWeights(w PopularityWeights) Option {
	return optionFunc(func(c *engineConfig) {
		c.popular = w
	})
}

// WithPrometheus registers engine metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *engineConfig) {
		c.metricsReg = reg
	})
}
