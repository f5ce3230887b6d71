package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Backend shared by every process pointing at the same Redis.
// Keys live under "<namespace>:" and expire through Redis TTLs.
type Redis struct {
	rdb       *redis.Client
	namespace string
}

// NewRedis creates a Redis backend. If namespace is empty, it uses "dashboard".
func NewRedis(rdb *redis.Client, namespace string) *Redis {
	if namespace == "" {
		namespace = "dashboard"
	}
	return &Redis{rdb: rdb, namespace: namespace}
}

// Name implements Backend.
func (r *Redis) Name() string {
	return "redis"
}

// Get implements Backend. A missing key is a miss, not an error.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(b) == 0 {
		return nil, false, nil
	}
	return b, true, nil
}

// Set implements Backend.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, r.key(key), value, ttl).Err()
}

// Delete implements Backend.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.key(key)).Err()
}

// Clear deletes every key in the namespace using SCAN.
func (r *Redis) Clear(ctx context.Context) error {
	return r.deleteByPattern(ctx, r.namespace+":*")
}

func (r *Redis) key(key string) string {
	return fmt.Sprintf("%s:%s", r.namespace, safe(key))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (r *Redis) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := r.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
