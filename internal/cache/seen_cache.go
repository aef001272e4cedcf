package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// FeedSeenCache tracks, per viewer, which meme IDs the feed recently
// served so follow-up pages can bias against repeats. The set expires
// after ttl of inactivity and is trimmed to maxIDs members so long
// sessions cannot exclude the whole corpus.
type FeedSeenCache struct {
	client *redisv9.Client
	ttl    time.Duration
	maxIDs int
}

func NewFeedSeenCache(client *redisv9.Client, ttl time.Duration, maxIDs int) *FeedSeenCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if maxIDs <= 0 {
		maxIDs = 500
	}
	return &FeedSeenCache{client: client, ttl: ttl, maxIDs: maxIDs}
}

func (c *FeedSeenCache) SeenIDs(ctx context.Context, viewer string) ([]uint, error) {
	members, err := c.client.SMembers(ctx, c.key(viewer)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read seen set failed: %w", err)
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func (c *FeedSeenCache) MarkSeen(ctx context.Context, viewer string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	key := c.key(viewer)
	members := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		members = append(members, strconv.FormatUint(uint64(id), 10))
	}

	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis write seen set failed: %w", err)
	}

	// Trim oldest-known members once the set outgrows the cap. SPop is
	// random, which is fine: the set is itself an approximation.
	size, err := c.client.SCard(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis size seen set failed: %w", err)
	}
	if size > int64(c.maxIDs) {
		if err := c.client.SPopN(ctx, key, size-int64(c.maxIDs)).Err(); err != nil {
			return fmt.Errorf("redis trim seen set failed: %w", err)
		}
	}
	return nil
}

func (c *FeedSeenCache) key(viewer string) string {
	return fmt.Sprintf("feed:seen:%s", viewer)
}
