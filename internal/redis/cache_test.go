package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleView struct {
	ID string `json:"id"`
}

func TestNilViewCacheNeverHits(t *testing.T) {
	cache := NewViewCache[sampleView](nil, 0)
	assert.Nil(t, cache)

	ctx := context.Background()
	cache.Set(ctx, "k", &sampleView{ID: "1"})

	v, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestViewCacheRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewViewCache[sampleView](rdb, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "view:1")
	assert.False(t, ok)

	cache.Set(ctx, "view:1", &sampleView{ID: "1"})

	v, ok := cache.Get(ctx, "view:1")
	require.True(t, ok)
	assert.Equal(t, "1", v.ID)
	assert.Equal(t, time.Minute, mr.TTL("view:1"))

	mr.FastForward(2 * time.Minute)
	_, ok = cache.Get(ctx, "view:1")
	assert.False(t, ok)
}

func TestViewCacheIgnoresCorruptEntries(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewViewCache[sampleView](rdb, 0)

	require.NoError(t, mr.Set("view:bad", "{not json"))
	v, ok := cache.Get(context.Background(), "view:bad")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	_, err = NewClient(context.Background(), Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
