package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"hdwallet-core/pkg/logger"
)

// MultiLevelCache 实现多级缓存 (L1: Memory, L2: Redis)
type MultiLevelCache struct {
	local  Cache
	remote Cache
}

var _ Cache = (*MultiLevelCache)(nil)

func NewMultiLevelCache(local, remote Cache) *MultiLevelCache {
	return &MultiLevelCache{
		local:  local,
		remote: remote,
	}
}

// Set 同时写入 L1 和 L2，L1 的 TTL 取一半
func (m *MultiLevelCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if err := m.local.Set(ctx, key, value, ttl/2); err != nil {
		logger.Warn("local cache set failed", zap.String("key", key), zap.Error(err))
	}
	return m.remote.Set(ctx, key, value, ttl)
}

func (m *MultiLevelCache) Get(ctx context.Context, key string, target interface{}) error {
	// 1. 查 L1
	if err := m.local.Get(ctx, key, target); err == nil {
		return nil
	}

	// 2. 查 L2，命中后回写 L1
	err := m.remote.Get(ctx, key, target)
	if err == nil {
		m.refillLocal(ctx, key, target)
		return nil
	}
	if !errors.Is(err, ErrMiss) {
		logger.Warn("remote cache get failed", zap.String("key", key), zap.Error(err))
	}
	return ErrMiss
}

// refillLocal L1 的 TTL 取 L2 剩余时间的一半，L2 不支持查询 TTL 时不回写
func (m *MultiLevelCache) refillLocal(ctx context.Context, key string, value interface{}) {
	reporter, ok := m.remote.(TTLReporter)
	if !ok {
		return
	}
	remaining, err := reporter.TTL(ctx, key)
	if err != nil {
		return
	}
	ttl := remaining / 2
	if remaining > 0 && ttl <= 0 {
		return
	}
	// value 是调用方的指针，存一份快照
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = m.local.Set(ctx, key, json.RawMessage(raw), ttl)
}

func (m *MultiLevelCache) Delete(ctx context.Context, key string) error {
	_ = m.local.Delete(ctx, key)
	return m.remote.Delete(ctx, key)
}
