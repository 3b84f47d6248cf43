package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	_, err := c.Get(ctx, "missing")
	assert.Equal(t, ErrCacheMiss, err)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	value, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	require.NoError(t, c.Delete(ctx, "key"))
	_, err = c.Get(ctx, "key")
	assert.Equal(t, ErrCacheMiss, err)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "key")
	assert.Equal(t, ErrCacheMiss, err)
}

func TestGetOrSetComputesOnceThenServesCached(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	value, err := c.GetOrSet(ctx, "key", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)

	value, err = c.GetOrSet(ctx, "key", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)
	assert.Equal(t, 1, calls)
}

func TestGetOrSetPropagatesComputeError(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	wantErr := errors.New("upstream failed")
	_, err := c.GetOrSet(ctx, "key", time.Minute, func() ([]byte, error) {
		return nil, wantErr
	})
	assert.Equal(t, wantErr, err)

	// A failed compute must not poison the cache.
	_, err = c.Get(ctx, "key")
	assert.Equal(t, ErrCacheMiss, err)
}
