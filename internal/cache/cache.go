// README: Cache port; implemented by the Redis adapter.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is not present.
var ErrMiss = errors.New("cache miss")

// Cache is the minimal key/value contract the services need.
type Cache interface {
	// Get returns the value for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
