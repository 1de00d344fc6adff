package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"hdwallet-core/pkg/bip32"
	"hdwallet-core/pkg/bip39"
	"hdwallet-core/pkg/cache"
	"hdwallet-core/pkg/coin"
	"hdwallet-core/pkg/errno"
	"hdwallet-core/pkg/logger"
	"hdwallet-core/pkg/monitor"
)

// AddressService 地址相关的业务入口，CLI 和 HTTP 共用
type AddressService interface {
	// Coins 列出所有支持的币种
	Coins(ctx context.Context) []CoinInfo
	// ValidateAddress 校验地址格式，未知币种返回错误
	ValidateAddress(ctx context.Context, symbol, address string) (bool, error)
	// DeriveFromExtended 只用扩展公钥派生 change/index 的地址 (watch-only)
	DeriveFromExtended(ctx context.Context, symbol, extended string, change, index uint32) (string, error)
	// Generate 从助记词派生地址，需要私密输入，只给 CLI 使用
	Generate(ctx context.Context, req GenerateRequest) ([]coin.AddressResult, error)
	// RemapExtended 在 xpub/ypub/zpub/... 之间转换扩展密钥的版本号
	RemapExtended(ctx context.Context, extended, target string) (string, error)
}

// CoinInfo 币种的公开信息
type CoinInfo struct {
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	CoinType    uint32   `json:"coinType"`
	Curve       string   `json:"curve"`
	ChainID     uint64   `json:"chainId,omitempty"`
	Derivations []string `json:"derivations"`
	Templates   []string `json:"templates"`
}

// GenerateRequest 助记词派生参数。
// Derivation 和 Path 都为空时，对币种的每种派生方案各生成一个地址。
type GenerateRequest struct {
	Mnemonic   string
	Passphrase string
	Coin       string
	Account    uint32
	Derivation string
	Path       string
}

// RegistryAddressService 是 AddressService 的实现
type RegistryAddressService struct {
	registry  *coin.Registry
	mnemonics *bip39.MnemonicService
	cache     cache.Cache
	cacheTTL  time.Duration
	metrics   *monitor.WalletMetrics
	log       *zap.Logger
}

var _ AddressService = (*RegistryAddressService)(nil)

// NewAddressService 构造函数。c 为 nil 时不缓存 watch-only 派生结果
func NewAddressService(registry *coin.Registry, c cache.Cache, cacheTTL time.Duration) *RegistryAddressService {
	return &RegistryAddressService{
		registry:  registry,
		mnemonics: bip39.NewMnemonicService(),
		cache:     c,
		cacheTTL:  cacheTTL,
		metrics:   monitor.Wallet,
		log:       logger.Named("address_service"),
	}
}

func (s *RegistryAddressService) Coins(ctx context.Context) []CoinInfo {
	coins := s.registry.Coins()
	out := make([]CoinInfo, 0, len(coins))
	for _, c := range coins {
		p := c.Params()
		info := CoinInfo{
			Symbol:   p.Symbol,
			Name:     p.Name,
			CoinType: p.CoinType,
			Curve:    p.Curve.String(),
			ChainID:  p.ChainID,
		}
		for _, d := range c.Derivations() {
			info.Derivations = append(info.Derivations, string(d.Name))
			info.Templates = append(info.Templates, d.Template)
		}
		out = append(out, info)
	}
	return out
}

func (s *RegistryAddressService) ValidateAddress(ctx context.Context, symbol, address string) (bool, error) {
	c, err := s.registry.Lookup(symbol)
	if err != nil {
		return false, err
	}
	valid := c.IsValidAddress(strings.TrimSpace(address))
	s.metrics.ObserveValidation(c.Params().Symbol, valid)
	return valid, nil
}

func (s *RegistryAddressService) DeriveFromExtended(ctx context.Context, symbol, extended string, change, index uint32) (string, error) {
	start := time.Now()
	c, err := s.registry.Lookup(symbol)
	if err != nil {
		return "", err
	}
	symbol = c.Params().Symbol
	extended = strings.TrimSpace(extended)

	// 1. 查缓存
	// Key: addr:{coin}:{extended}:{change}:{index}
	cacheKey := fmt.Sprintf("addr:%s:%s:%d:%d", symbol, extended, change, index)
	if s.cache != nil {
		var cached string
		err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			s.metrics.ObserveCache(true)
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("cache get failed", zap.String("key", cacheKey), zap.Error(err))
		}
		s.metrics.ObserveCache(false)
	}

	// 2. 派生
	addr, err := s.registry.PublicAddressFromExtended(symbol, extended, change, index)
	s.metrics.ObserveDerivation(symbol, monitor.KindExtended, start, err)
	if err != nil {
		return "", err
	}

	// 3. 回写缓存，失败不影响结果
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, addr, s.cacheTTL); err != nil {
			s.log.Warn("cache set failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return addr, nil
}

func (s *RegistryAddressService) Generate(ctx context.Context, req GenerateRequest) ([]coin.AddressResult, error) {
	start := time.Now()
	c, err := s.registry.Lookup(req.Coin)
	if err != nil {
		return nil, err
	}
	symbol := c.Params().Symbol

	seed, err := s.mnemonics.SeedFromMnemonic(req.Mnemonic, req.Passphrase)
	if err != nil {
		return nil, err
	}

	var results []coin.AddressResult
	if req.Derivation == "" && req.Path == "" {
		results, err = s.registry.GenerateAddresses(symbol, seed, req.Account)
	} else {
		var res *coin.AddressResult
		res, err = s.registry.GenerateAddress(coin.Request{
			Coin:       symbol,
			Seed:       seed,
			Account:    req.Account,
			Derivation: coin.DerivationName(req.Derivation),
			Path:       req.Path,
		})
		if res != nil {
			results = []coin.AddressResult{*res}
		}
	}
	s.metrics.ObserveDerivation(symbol, monitor.KindSeed, start, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("addresses generated",
		zap.String("coin", symbol),
		zap.Uint32("account", req.Account),
		zap.Int("count", len(results)),
	)
	return results, nil
}

func (s *RegistryAddressService) RemapExtended(ctx context.Context, extended, target string) (string, error) {
	pair, ok := bip32.VersionPairByName(target)
	if !ok {
		return "", fmt.Errorf("%w: 未知版本 %q", errno.ErrFormat, target)
	}
	return bip32.RemapString(strings.TrimSpace(extended), pair)
}
