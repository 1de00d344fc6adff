package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss 缓存中没有该 key
var ErrMiss = errors.New("cache miss")

// Cache 定义通用缓存接口
type Cache interface {
	// Set 设置缓存，ttl 为 0 时使用默认过期时间
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get 获取缓存，并将结果 Unmarshal 到 target 中；未命中返回 ErrMiss
	Get(ctx context.Context, key string, target interface{}) error
	// Delete 删除缓存
	Delete(ctx context.Context, key string) error
}

// TTLReporter 能查询 key 剩余存活时间的缓存
type TTLReporter interface {
	// TTL key 不存在返回 ErrMiss，永不过期返回 0
	TTL(ctx context.Context, key string) (time.Duration, error)
}
