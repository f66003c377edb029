package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"showlog/internal/config"
)

// New creates a redis client from the environment configuration and
// verifies connectivity before returning it.
func New(ctx context.Context) (*redis.Client, error) {
	host, port, password := config.RedisConfig()

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
