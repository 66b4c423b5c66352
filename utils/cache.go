// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"travony/config"

	"github.com/go-redis/redis/v8"
)

// RankingsCacheClient is the dedicated client for rankings caching.
var RankingsCacheClient *redis.Client

// InitRedis initializes the Redis client used for the rankings read cache.
func InitRedis() {
	RankingsCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRankingsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RankingsCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Rankings Cache): %v", err)
	}
}

// GetRankingsCacheClient returns the Redis client for rankings caching.
func GetRankingsCacheClient() *redis.Client {
	if RankingsCacheClient == nil {
		InitRedis()
	}
	return RankingsCacheClient
}
