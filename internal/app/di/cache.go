package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/config"
	infraredis "stock_dashboard/internal/platform/redis"
)

// CacheBackends are the storage backends of the snapshot and chart caches.
type CacheBackends struct {
	Snapshot cache.Backend
	Chart    cache.Backend
	rdb      *redis.Client
}

// Name reports the backend kind for health checks.
func (b *CacheBackends) Name() string {
	return b.Snapshot.Name()
}

// Close releases the Redis connection, if any.
func (b *CacheBackends) Close() {
	if b.rdb == nil {
		return
	}
	if err := b.rdb.Close(); err != nil {
		slog.Error("failed to close Redis client", "error", err)
	}
}

// NewCacheBackends creates Redis-backed caches when Redis is configured and
// reachable. Otherwise, it falls back to in-process memory.
func NewCacheBackends(ctx context.Context, cfg config.RedisConfig) *CacheBackends {
	if cfg.Enabled() {
		rdb, err := infraredis.NewRedisClient(ctx, infraredis.Options{Addr: cfg.Addr(), Password: cfg.Password, DB: cfg.DB})
		if err == nil {
			return &CacheBackends{
				Snapshot: cache.NewRedis(rdb, "dashboard:snapshot"),
				Chart:    cache.NewRedis(rdb, "dashboard:chart"),
				rdb:      rdb,
			}
		}
		slog.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
	}
	return &CacheBackends{Snapshot: cache.NewMemory(nil), Chart: cache.NewMemory(nil)}
}
