package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *GenericCacheService {
	t.Helper()
	cfg := DefaultCacheConfig()
	cfg.Prefix = "test:"
	mem := NewMemoryCache(cfg)
	t.Cleanup(func() { mem.Close() })
	return NewGenericCacheService(mem, cfg)
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k1", []byte("v1"), time.Minute))

	got, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, c.Delete(ctx, "k1"))
	_, err = c.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	exists, err := c.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "chat:recent:1", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "chat:recent:2", []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, "leaderboard", []byte("c"), time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "chat:recent:*"))

	_, err := c.Get(ctx, "chat:recent:1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = c.Get(ctx, "leaderboard")
	assert.NoError(t, err)
}

func TestMemoryCache_Increment(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)
	defer c.Close()

	n, err := c.Increment(ctx, "counter", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = c.Increment(ctx, "counter", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestMemoryCache_Sets(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)
	defer c.Close()

	require.NoError(t, c.SetAdd(ctx, "sessions", "jti-1"))
	require.NoError(t, c.SetAdd(ctx, "sessions", "jti-2"))

	ok, err := c.SetIsMember(ctx, "sessions", "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetIsMember(ctx, "sessions", "jti-3")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetRemove(ctx, "sessions", "jti-1"))
	ok, err = c.SetIsMember(ctx, "sessions", "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenericCacheService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	type payload struct {
		Name  string `json:"name"`
		Votes int64  `json:"votes"`
	}

	require.NoError(t, svc.CacheData(ctx, "profiles:top", payload{Name: "dev", Votes: 42}))

	var got payload
	require.NoError(t, svc.GetCached(ctx, "profiles:top", &got))
	assert.Equal(t, "dev", got.Name)
	assert.Equal(t, int64(42), got.Votes)

	require.NoError(t, svc.InvalidateKey(ctx, "profiles:top"))
	err := svc.GetCached(ctx, "profiles:top", &got)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGenericCacheService_Disabled(t *testing.T) {
	cfg := DefaultCacheConfig()
	cfg.Enabled = false
	svc := NewGenericCacheService(nil, cfg)

	err := svc.CacheData(context.Background(), "k", "v")
	assert.ErrorIs(t, err, ErrCacheDisabled)

	var out string
	err = svc.GetCached(context.Background(), "k", &out)
	assert.ErrorIs(t, err, ErrCacheDisabled)
}

func TestGenerateHashKey_Deterministic(t *testing.T) {
	svc := newTestService(t)

	k1 := svc.GenerateHashKey("sessions", map[string]interface{}{"uid": "a", "x": 1})
	k2 := svc.GenerateHashKey("sessions", map[string]interface{}{"x": 1, "uid": "a"})
	k3 := svc.GenerateHashKey("sessions", map[string]interface{}{"uid": "b"})

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}
