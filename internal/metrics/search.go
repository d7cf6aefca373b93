package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search, content and cache Prometheus metrics.
var (
	IndexBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogdex",
			Name:      "index_builds_total",
			Help:      "Total number of full-text index builds",
		},
		[]string{"status"},
	)

	IndexBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blogdex",
			Name:      "index_build_duration_seconds",
			Help:      "Full-text index build duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	IndexedPosts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "blogdex",
			Name:      "indexed_posts",
			Help:      "Number of posts in the current full-text index",
		},
	)

	SearchQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blogdex",
			Name:      "search_query_duration_seconds",
			Help:      "Search query duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "blogdex",
			Name:      "search_results",
			Help:      "Number of results returned per search query",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogdex",
			Name:      "cache_total",
			Help:      "Response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "stale"
	)

	ContentReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogdex",
			Name:      "content_reloads_total",
			Help:      "Total number of content batch reloads",
		},
		[]string{"trigger", "status"},
	)

	ViewsRecordedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blogdex",
			Name:      "views_recorded_total",
			Help:      "Total number of recorded post views",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search, content and cache metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexBuildsTotal)
	prometheus.MustRegister(IndexBuildDuration)
	prometheus.MustRegister(IndexedPosts)
	prometheus.MustRegister(SearchQueryDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(CacheTotal)
	prometheus.MustRegister(ContentReloadsTotal)
	prometheus.MustRegister(ViewsRecordedTotal)
	searchMetricsRegistered = true
}
