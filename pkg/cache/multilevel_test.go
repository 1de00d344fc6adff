package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiLevelCache(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemoryCache(time.Minute, time.Minute)
	l2 := NewMemoryCache(time.Minute, time.Minute)
	m := NewMultiLevelCache(l1, l2)

	require.NoError(t, m.Set(ctx, "addr", "rwDLcZL1", time.Minute))
	assert.Equal(t, 1, l1.ItemCount())
	assert.Equal(t, 1, l2.ItemCount())

	// L1 丢失后从 L2 回填
	require.NoError(t, l1.Delete(ctx, "addr"))
	var got string
	require.NoError(t, m.Get(ctx, "addr", &got))
	assert.Equal(t, "rwDLcZL1", got)
	assert.Equal(t, 1, l1.ItemCount())

	ttl, err := l1.TTL(ctx, "addr")
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 30*time.Second)

	require.NoError(t, m.Delete(ctx, "addr"))
	assert.ErrorIs(t, m.Get(ctx, "addr", &got), ErrMiss)
}

func TestMultiLevelCacheRefillFollowsRemoteTTL(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemoryCache(time.Hour, time.Minute)
	l2 := NewMemoryCache(time.Hour, time.Minute)
	m := NewMultiLevelCache(l1, l2)

	// 只写 L2，剩余时间很短
	require.NoError(t, l2.Set(ctx, "addr", "rwDLcZL1", 2*time.Second))

	var got string
	require.NoError(t, m.Get(ctx, "addr", &got))
	assert.Equal(t, "rwDLcZL1", got)

	ttl, err := l1.TTL(ctx, "addr")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Second)

	// 回写的是快照，调用方修改不影响 L1
	got = "changed"
	var again string
	require.NoError(t, l1.Get(ctx, "addr", &again))
	assert.Equal(t, "rwDLcZL1", again)
}

func TestMultiLevelCacheRemoteDown(t *testing.T) {
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	m := NewMultiLevelCache(NewMemoryCache(time.Minute, time.Minute), NewRedisCache(rdb, "test:"))

	var got string
	// 远端不可用时按未命中处理
	assert.ErrorIs(t, m.Get(ctx, "k", &got), ErrMiss)
	assert.Error(t, m.Set(ctx, "k", "v", time.Minute))
}

func TestConnectRedisFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := ConnectRedis(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
