package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"ratehub/internal/platform/config"
)

// Connect opens the Redis client used as a read-through cache for the public
// stats snapshot. The platform has no other hot unauthenticated read path.
func Connect(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}

	return rdb
}
