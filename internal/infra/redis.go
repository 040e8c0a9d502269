// README: Redis client initialization for the distance cache.
package infra

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds a client from a redis:// URL.
func NewRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
