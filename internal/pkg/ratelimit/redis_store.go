package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "easynews:rate_limit:"

// RedisStore shares window state across instances. Counts live in redis keys
// bucketed by window start, expired by redis itself.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Store backed by the given redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Hit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	bucket := time.Now().UnixNano() / int64(window)
	redisKey := fmt.Sprintf("%s%s:%d", redisKeyPrefix, key, bucket)

	count, err := s.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// Keep the key a little past the window edge so in-flight requests
		// at the boundary still see it.
		s.rdb.PExpire(ctx, redisKey, window+time.Second)
	}
	return count <= int64(limit), nil
}
