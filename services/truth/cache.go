package truth

import (
	"context"
	"encoding/json"
	"time"

	"travony/models"

	"github.com/go-redis/redis/v8"
)

const rankingsCachePrefix = "truth:rankings:"

// RankingsCache is a Redis read cache for contextual rankings. Mongo
// remains the source of truth; entries are short-lived and invalidated
// whenever their context is recomputed.
type RankingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRankingsCache(client *redis.Client, ttl time.Duration) *RankingsCache {
	return &RankingsCache{client: client, ttl: ttl}
}

func rankingsKey(city, timeBlock, routeType string) string {
	return rankingsCachePrefix + city + ":" + timeBlock + ":" + routeType
}

func (c *RankingsCache) Get(ctx context.Context, city, timeBlock, routeType string) (*models.RankingsResult, error) {
	data, err := c.client.Get(ctx, rankingsKey(city, timeBlock, routeType)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result models.RankingsResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RankingsCache) Set(ctx context.Context, result *models.RankingsResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	key := rankingsKey(result.City, result.TimeBlock, result.RouteType)
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

func (c *RankingsCache) Invalidate(ctx context.Context, city, timeBlock, routeType string) error {
	return c.client.Del(ctx, rankingsKey(city, timeBlock, routeType)).Err()
}
