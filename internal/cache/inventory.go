package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// FeedKey is the single key for the cached index feed response. Every
	// page of the feed shares it, so while the entry is live all page
	// requests see the same snapshot.
	FeedKey = "feed:index"

	UserKeyPrefix  = "user:%d"
	PostKeyPrefix  = "post:%d"
	GroupKeyPrefix = "group:%s"
)

const (
	// FeedTTL is how long a cached index feed snapshot is served before it
	// is rebuilt from the database.
	FeedTTL = 20 * time.Second

	UserTTL  = 5 * time.Minute
	PostTTL  = 30 * time.Minute
	GroupTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}
