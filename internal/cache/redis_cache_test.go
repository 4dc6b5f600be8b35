package cache

import (
	"context"
	"testing"
	"time"

	"go-file-share/internal/visibility"
	"go-file-share/pkg/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCacheWithClient(client, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func sampleRanking() []visibility.Ranked {
	return []visibility.Ranked{
		{FileID: 1, Name: "F", Risk: 10, Count: 2, Viewers: []string{"A", "B"}},
		{FileID: 2, Name: "G", Risk: 0, Count: 0, Viewers: []string{}},
	}
}

func TestRedisCache_SetGet(t *testing.T) {
	_, c := setupRedis(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	_, ok, err := c.Get(ctx, gen, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, gen, 2, sampleRanking()))

	got, ok, err := c.Get(ctx, gen, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleRanking(), got)

	_, ok, err = c.Get(ctx, gen, 3)
	require.NoError(t, err)
	assert.False(t, ok, "entries are per k")
}

func TestRedisCache_Invalidate(t *testing.T) {
	_, c := setupRedis(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, gen, 1, sampleRanking()[:1]))

	require.NoError(t, c.Invalidate(ctx))
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)

	_, ok, err := c.Get(ctx, next, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

// 失效之后才写入的旧排名不可见
func TestRedisCache_SetAfterInvalidateIsInvisible(t *testing.T) {
	_, c := setupRedis(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, gen, 2, sampleRanking()))

	current, err := c.Generation(ctx)
	require.NoError(t, err)
	_, ok, err := c.Get(ctx, current, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_TTLIsPerEntry(t *testing.T) {
	mr, c := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, 1, sampleRanking()))
	assert.Equal(t, time.Minute, mr.TTL(entryKey(0, 1)))

	// 写入另一个 k 不会延长已有条目的 TTL
	mr.FastForward(40 * time.Second)
	require.NoError(t, c.Set(ctx, 0, 2, sampleRanking()))
	mr.FastForward(30 * time.Second)

	_, ok, err := c.Get(ctx, 0, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.Get(ctx, 0, 2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	mr, c := setupRedis(t)
	require.NoError(t, mr.Set(entryKey(0, 1), "not json"))

	_, ok, err := c.Get(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	nop, err := New(ctx, config.CacheConfig{Provider: "none"})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, nop)

	mr := miniredis.RunT(t)
	rc, err := New(ctx, config.CacheConfig{Provider: "redis", TTL: time.Second, Redis: config.RedisConfig{Addr: mr.Addr()}})
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, rc)
	require.NoError(t, rc.Close())

	_, err = New(ctx, config.CacheConfig{Provider: "memcached"})
	assert.Error(t, err)
}
