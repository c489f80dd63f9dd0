package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "contact:ratelimit:"

// RedisStore backs window counters with Redis so the limit holds across
// replicas. Window expiry rides on key TTLs; Redis reclaims stale entries
// itself, so Sweep is a no-op.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr implements Store using INCR + PEXPIRE. INCR is atomic server-side,
// so concurrent requests never undercount.
func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int, time.Time, error) {
	rkey := redisKeyPrefix + key

	count, err := s.client.Incr(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, err
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, rkey, ttl).Err(); err != nil {
			return 0, time.Time{}, err
		}
		return int(count), time.Now().Add(ttl), nil
	}

	remaining, err := s.client.PTTL(ctx, rkey).Result()
	if err != nil || remaining < 0 {
		// Key lost its TTL (e.g. PEXPIRE raced a restart); reinstate it so
		// the counter cannot live forever.
		_ = s.client.PExpire(ctx, rkey, ttl).Err()
		remaining = ttl
	}
	return int(count), time.Now().Add(remaining), nil
}

// Sweep is a no-op: Redis expires keys via TTL.
func (s *RedisStore) Sweep(context.Context, time.Time) error {
	return nil
}

// Ping verifies connectivity, for startup checks and health reporting.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
