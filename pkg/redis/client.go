package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client   *redis.Client
	initOnce sync.Once
)

// Init initializes the process-wide Redis client. Concurrent callers
// share the single guarded initialization; once connected, later calls
// reuse the existing client.
func Init(url, password string) error {
	var initErr error
	initOnce.Do(func() {
		opts, err := redis.ParseURL(url)
		if err != nil {
			initErr = err
			return
		}

		if password != "" {
			opts.Password = password
		}

		c := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.Ping(ctx).Err(); err != nil {
			initErr = err
			return
		}

		client = c
	})
	return initErr
}

// SetClient sets the Redis client (used for testing)
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Set stores a key-value pair with expiration
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes a key
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}
