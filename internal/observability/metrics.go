package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yatube_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedCacheHits counts whole-page cache hits on the index feed.
	FeedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_feed_cache_hits_total",
		Help: "Total number of index feed responses served from cache",
	})

	// FeedCacheMisses counts whole-page cache misses on the index feed.
	FeedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_feed_cache_misses_total",
		Help: "Total number of index feed responses built from the database",
	})

	// PostsCreated counts published posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts published comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_comments_created_total",
		Help: "Total number of comments created",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
