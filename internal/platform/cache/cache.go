// Package cache provides TTL caches with pluggable storage backends.
//
// A Cache is an explicit instance, constructed at startup and injected where
// needed; the two caches of the dashboard (spreadsheet snapshot and per-symbol
// charts) are independent instances with their own TTL and backend.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// SnapshotTTL is how long a spreadsheet snapshot is served before refetching.
	SnapshotTTL = 60 * time.Second
	// ChartTTL is how long a symbol's price history is served before refetching.
	ChartTTL = time.Hour
)

// Backend stores encoded cache values. Implementations decide freshness:
// Get must report a miss for an entry older than the ttl it was Set with.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Name() string
}

// Cache is a typed read-through cache over a Backend.
//
// Every Clear starts a new generation. A compute that began in an older
// generation still answers its own callers but never writes to the backend,
// and callers arriving after Clear never join it.
type Cache[V any] struct {
	name    string
	backend Backend
	ttl     time.Duration
	group   singleflight.Group

	mu  sync.RWMutex // guards gen; held for writing across a Clear
	gen uint64
}

// New creates a cache. If ttl is not positive it defaults to SnapshotTTL.
func New[V any](name string, backend Backend, ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = SnapshotTTL
	}
	return &Cache[V]{name: name, backend: backend, ttl: ttl}
}

// Name returns the cache name used in logs.
func (c *Cache[V]) Name() string {
	return c.name
}

// GetOrCompute returns the cached value for key when it is younger than the TTL.
// Otherwise compute runs and its result is stored with a fresh timestamp, even
// when that result is an empty value. Errors from compute are returned and
// nothing is stored. Concurrent callers for the same key share one compute.
// Backend failures are logged and treated as a miss.
func (c *Cache[V]) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, error) {
	if v, ok := c.lookup(ctx, key); ok {
		return v, nil
	}

	gen := c.generation()
	res, err, _ := c.group.Do(strconv.FormatUint(gen, 10)+"/"+key, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := c.lookup(ctx, key); ok {
			return v, nil
		}
		v, err := compute(ctx)
		if err != nil {
			return v, err
		}
		c.store(ctx, gen, key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Clear drops every entry so the next access recomputes regardless of age.
func (c *Cache[V]) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	err := c.backend.Clear(ctx)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	slog.Info("cache cleared", "cache", c.name, "backend", c.backend.Name())
	return nil
}

func (c *Cache[V]) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *Cache[V]) lookup(ctx context.Context, key string) (V, bool) {
	var zero V
	b, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		slog.Warn("cache read failed", "cache", c.name, "key", key, "error", err)
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var v V
	if err := json.Unmarshal(b, &v); err != nil {
		// Delete corrupted entry
		slog.Warn("cache entry corrupted", "cache", c.name, "key", key, "error", err)
		_ = c.backend.Delete(ctx, key)
		return zero, false
	}
	return v, true
}

func (c *Cache[V]) store(ctx context.Context, gen uint64, key string, v V) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache encode failed", "cache", c.name, "key", key, "error", err)
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.gen != gen {
		slog.Debug("cache cleared during compute, result not stored", "cache", c.name, "key", key)
		return
	}
	// Best effort: a failed write only costs a recompute later.
	if err := c.backend.Set(ctx, key, b, c.ttl); err != nil {
		slog.Warn("cache write failed", "cache", c.name, "key", key, "error", err)
	}
}
