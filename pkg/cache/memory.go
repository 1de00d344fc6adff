package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache 基于 go-cache 的进程内缓存
type MemoryCache struct {
	c *gocache.Cache
}

var (
	_ Cache       = (*MemoryCache)(nil)
	_ TTLReporter = (*MemoryCache)(nil)
)

func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		c: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

// Get 通过 JSON 往返拷贝到 target，调用方拿到的是副本
func (m *MemoryCache) Get(ctx context.Context, key string, target interface{}) error {
	val, found := m.c.Get(key)
	if !found {
		return ErrMiss
	}

	bytes, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, target)
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *MemoryCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	_, expiration, found := m.c.GetWithExpiration(key)
	if !found {
		return 0, ErrMiss
	}
	if expiration.IsZero() {
		return 0, nil
	}
	remaining := time.Until(expiration)
	if remaining <= 0 {
		return 0, ErrMiss
	}
	return remaining, nil
}

// ItemCount 当前条目数 (包含尚未清理的过期条目)
func (m *MemoryCache) ItemCount() int {
	return m.c.ItemCount()
}
