package infrastructure

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects and pings. The client is closed when the ping
// fails.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
