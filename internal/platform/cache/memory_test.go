package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := NewMemory(clock.Now)
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), 10*time.Second))

	clock.Advance(10*time.Second - time.Nanosecond)
	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "entry younger than ttl should hit")

	clock.Advance(time.Nanosecond)
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry at ttl should miss")
	assert.Empty(t, m.entries, "expired entry should be evicted")
}

func TestMemory_SetRefreshesTimestamp(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := NewMemory(clock.Now)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v1"), time.Minute))
	clock.Advance(50 * time.Second)
	require.NoError(t, m.Set(ctx, "k", []byte("v2"), time.Minute))
	clock.Advance(50 * time.Second)

	b, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", string(b))
}

func TestMemory_DeleteAndClear(t *testing.T) {
	t.Parallel()

	m := NewMemory(nil)
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, m.Delete(ctx, "a"))
	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, m.Clear(ctx))
	assert.Empty(t, m.entries)
	assert.Equal(t, "memory", m.Name())
}
