package cache

import (
	"context"
	"errors"

	"yatube/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetPage returns a cached response body, or nil when the key is absent or
// the cache is unavailable. Misses and hits are counted for the index feed
// dashboard.
func GetPage(ctx context.Context, key string) []byte {
	if client == nil {
		return nil
	}
	ctx, span := observability.TraceRedisOperation(ctx, "get_page")
	defer span.End()
	body, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return nil
		}
		observability.FeedCacheMisses.Inc()
		return nil
	}
	observability.FeedCacheHits.Inc()
	return body
}

// SetPage stores a rendered response body under key. Failures are swallowed;
// serving uncached is always acceptable.
func SetPage(ctx context.Context, key string, body []byte) {
	if client == nil {
		return
	}
	ctx, span := observability.TraceRedisOperation(ctx, "set_page")
	defer span.End()
	client.Set(ctx, key, body, FeedTTL)
}
