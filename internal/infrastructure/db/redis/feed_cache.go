package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/feedwire/feed-service/internal/core/ports"
)

const cacheTTL = 30 * time.Second

// FeedCache caches rendered feed pages in Redis under feed:page:<n>.
// All operations are best-effort: any Redis failure is logged and degrades to
// a repository read, never to a request failure.
type FeedCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewFeedCache(client *redis.Client, log zerolog.Logger) *FeedCache {
	return &FeedCache{client: client, log: log}
}

func (c *FeedCache) GetPage(ctx context.Context, page int) (*ports.ListPostsResult, bool) {
	raw, err := c.client.Get(ctx, c.key(page)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Int("page", page).Msg("feed cache read failed")
		}
		return nil, false
	}

	var result ports.ListPostsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.Warn().Err(err).Int("page", page).Msg("feed cache entry corrupt")
		return nil, false
	}
	return &result, true
}

func (c *FeedCache) SetPage(ctx context.Context, page int, result *ports.ListPostsResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(page), raw, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Int("page", page).Msg("feed cache write failed")
	}
}

// Invalidate drops every cached page after a post mutation.
func (c *FeedCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "feed:page:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", iter.Val()).Msg("feed cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("feed cache scan failed")
	}
}

func (c *FeedCache) key(page int) string {
	return fmt.Sprintf("feed:page:%d", page)
}
