package fabric_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestMemoryCache(t *testing.T) {
	t.Parallel()
	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := fabric.NewMemoryCache(10)
		entry := &fabric.CacheEntry{
			Data:      []byte(`{"id":"ws-1"}`),
			ExpiresAt: time.Now().Add(time.Minute),
			ETag:      "v1",
		}

		err := cache.Set(context.Background(), "workspaces/ws-1", entry)
		require.NoError(t, err)

		got, err := cache.Get(context.Background(), "workspaces/ws-1")
		require.NoError(t, err)
		assert.Equal(t, entry.Data, got.Data)
		assert.Equal(t, "v1", got.ETag)
		assert.True(t, cache.Has(context.Background(), "workspaces/ws-1"))
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		cache := fabric.NewMemoryCache(10)

		_, err := cache.Get(context.Background(), "missing")
		require.ErrorIs(t, err, fabric.ErrCacheKeyNotFound)
		assert.False(t, cache.Has(context.Background(), "missing"))
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()

		cache := fabric.NewMemoryCache(10)
		entry := &fabric.CacheEntry{
			Data:      []byte("stale"),
			ExpiresAt: time.Now().Add(-time.Second),
		}

		err := cache.Set(context.Background(), "key", entry)
		require.NoError(t, err)

		_, err = cache.Get(context.Background(), "key")
		require.ErrorIs(t, err, fabric.ErrCacheEntryExpired)
	})

	t.Run("entry without expiry never expires", func(t *testing.T) {
		t.Parallel()

		entry := &fabric.CacheEntry{Data: []byte("pinned")}
		assert.False(t, entry.Expired())
	})

	t.Run("eviction at capacity", func(t *testing.T) {
		t.Parallel()

		cache := fabric.NewMemoryCache(2)
		future := time.Now().Add(time.Minute)

		require.NoError(t, cache.Set(context.Background(), "a", &fabric.CacheEntry{Data: []byte("1"), ExpiresAt: future}))
		require.NoError(t, cache.Set(context.Background(), "b", &fabric.CacheEntry{Data: []byte("2"), ExpiresAt: future}))
		require.NoError(t, cache.Set(context.Background(), "c", &fabric.CacheEntry{Data: []byte("3"), ExpiresAt: future}))

		// One of the earlier entries was evicted to make room.
		survivors := 0

		for _, key := range []string{"a", "b", "c"} {
			if cache.Has(context.Background(), key) {
				survivors++
			}
		}

		assert.Equal(t, 2, survivors)
		assert.True(t, cache.Has(context.Background(), "c"))
	})

	t.Run("delete and clear", func(t *testing.T) {
		t.Parallel()

		cache := fabric.NewMemoryCache(10)
		require.NoError(t, cache.Set(context.Background(), "a", &fabric.CacheEntry{Data: []byte("1")}))
		require.NoError(t, cache.Set(context.Background(), "b", &fabric.CacheEntry{Data: []byte("2")}))

		require.NoError(t, cache.Delete(context.Background(), "a"))
		assert.False(t, cache.Has(context.Background(), "a"))
		assert.True(t, cache.Has(context.Background(), "b"))

		require.NoError(t, cache.Clear(context.Background()))
		assert.False(t, cache.Has(context.Background(), "b"))
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := fabric.NewNoOpCache()

	err := cache.Set(context.Background(), "key", &fabric.CacheEntry{Data: []byte("ignored")})
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), "key")
	require.ErrorIs(t, err, fabric.ErrCacheDisabled)
	assert.False(t, cache.Has(context.Background(), "key"))
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *fabric.CacheConfig
		wantType interface{}
		wantErr  error
	}{
		{
			name:     "nil config disables caching",
			config:   nil,
			wantType: &fabric.NoOpCache{},
		},
		{
			name:     "memory",
			config:   &fabric.CacheConfig{Type: fabric.CacheTypeMemory},
			wantType: &fabric.MemoryCache{},
		},
		{
			name:     "none",
			config:   &fabric.CacheConfig{Type: fabric.CacheTypeNone},
			wantType: &fabric.NoOpCache{},
		},
		{
			name:    "nats without config",
			config:  &fabric.CacheConfig{Type: fabric.CacheTypeNATS},
			wantErr: fabric.ErrNATSConfigRequired,
		},
		{
			name:    "unknown type",
			config:  &fabric.CacheConfig{Type: "redis"},
			wantErr: fabric.ErrUnsupportedCacheType,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cache, err := fabric.NewCacheFromConfig(tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.wantType, cache)
		})
	}
}
