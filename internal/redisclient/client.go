package redisclient

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	URL string
}

// New parses a redis:// URL and checks the server answers.
func New(ctx context.Context, config Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", opts.Addr, err)
	}
	return client, nil
}
