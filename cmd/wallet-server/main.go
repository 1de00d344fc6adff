package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hdwallet-core/internal/server"
	"hdwallet-core/internal/service"
	"hdwallet-core/pkg/cache"
	"hdwallet-core/pkg/coin"
	"hdwallet-core/pkg/config"
	"hdwallet-core/pkg/logger"
)

func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	if err := logger.Init(config.Global.App.Env, config.Global.App.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 2. 构造币种表 (只读，之后可并发使用)
	registry := coin.Default()
	logger.Info("Coin registry loaded", zap.Int("coins", len(registry.Coins())))

	// 3. 初始化地址服务，watch-only 派生结果放进缓存
	c, closeCache := newCache(config.Global)
	defer closeCache()
	addressService := service.NewAddressService(registry, c, config.Global.Cache.TTL)

	// 4. HTTP Router
	r := server.NewHTTPRouter(addressService)

	// 5. 启动应用 (阻塞)
	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r)
	app.Run()

	logger.Info("系统已退出")
}

// newCache 按 cache.driver 构造缓存，Redis 连不上时退回内存缓存
func newCache(cfg config.Config) (cache.Cache, func()) {
	mem := cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	if cfg.Cache.Driver == "" || cfg.Cache.Driver == "memory" {
		logger.Info("Using memory cache")
		return mem, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rdb, err := cache.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("Redis 不可用，使用内存缓存", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return mem, func() {}
	}
	closeFn := func() { _ = rdb.Close() }

	remote := cache.NewRedisCache(rdb, cfg.Redis.Prefix)
	if cfg.Cache.Driver == "multilevel" {
		logger.Info("Using multilevel cache", zap.String("redis", cfg.Redis.Addr))
		return cache.NewMultiLevelCache(mem, remote), closeFn
	}
	logger.Info("Using redis cache", zap.String("redis", cfg.Redis.Addr))
	return remote, closeFn
}
