package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Aside implements the cache-aside pattern. On a hit the cached JSON is
// decoded into dest and fill is skipped. On a miss fill must populate dest;
// the result is then stored under key for ttl. A missing or broken cache
// never fails the read, it only costs the database round trip.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fill func() error) error {
	if client != nil {
		if data, err := client.Get(ctx, key).Bytes(); err == nil {
			if json.Unmarshal(data, dest) == nil {
				return nil
			}
			// Corrupt entry, drop it and fall through to the database
			client.Del(ctx, key)
		}
	}

	if err := fill(); err != nil {
		return err
	}

	if client != nil {
		if data, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, data, ttl)
		}
	}
	return nil
}
