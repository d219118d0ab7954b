package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces waypath keys in a shared Redis database.
const DefaultRedisPrefix = "waypath:"

// RedisOptions configures [NewRedisCache].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key. Empty means [DefaultRedisPrefix].
	Prefix string

	// MaxAttempts and RetryDelay bound retries of transient failures.
	// Zero values mean [DefaultMaxAttempts] and [DefaultRetryDelay].
	MaxAttempts int
	RetryDelay  time.Duration
}

// RedisCache stores entries in Redis. Transport failures are retried with
// exponential backoff; a missing key is a miss, not an error.
type RedisCache struct {
	client *redis.Client
	prefix string
	retry  backoff
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	c := NewRedisCacheFromClient(client, opts.Prefix)
	c.retry = newBackoff(opts.MaxAttempts, opts.RetryDelay)
	if err := c.retry.do(ctx, func() error {
		return classifyRedis(client.Ping(ctx).Err())
	}); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership and closes the client on [RedisCache.Close].
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix, retry: newBackoff(0, 0)}
}

// Get retrieves a value.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var hit bool
	err := c.retry.do(ctx, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return classifyRedis(err)
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set stores a value. Redis expires the key itself when ttl is positive.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.retry.do(ctx, func() error {
		return classifyRedis(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.retry.do(ctx, func() error {
		return classifyRedis(c.client.Del(ctx, c.prefix+key).Err())
	})
}

// Clear removes every key under the cache prefix. Keys belonging to other
// applications in the same database are left alone.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, classifyRedis(err)
	}

	removed := 0
	for start := 0; start < len(keys); start += 256 {
		end := min(start+256, len(keys))
		n, err := c.client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return removed, classifyRedis(err)
		}
		removed += int(n)
	}
	return removed, nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classifyRedis marks transport failures as transient. Context errors are
// returned as is so cancellation stops the retry loop.
func classifyRedis(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return Transient(fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
}

var _ Cache = (*RedisCache)(nil)
