package coin

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"hdwallet-core/pkg/bip32"
	"hdwallet-core/pkg/errno"
	"hdwallet-core/pkg/hdpath"
	"hdwallet-core/pkg/logger"
)

// Request 一次地址生成请求
type Request struct {
	Coin string
	Seed []byte
	// Account 替换路径模板中的 ACCOUNT，必须小于 2^31
	Account uint32
	// Derivation 为空时使用币种的默认方案
	Derivation DerivationName
	// Path 显式路径 (可含 ACCOUNT)，非空时覆盖模板，但仍要通过 coin type 校验
	Path string
}

// Registry 币种表，构造后只读，可以并发使用
type Registry struct {
	coins map[string]Coin
	order []string
}

// NewRegistry 注册全部内置币种
func NewRegistry() *Registry {
	return newRegistry(builtinCoins())
}

func newRegistry(coins []Coin) *Registry {
	r := &Registry{coins: make(map[string]Coin, len(coins))}
	for _, c := range coins {
		symbol := c.Params().Symbol
		if _, dup := r.coins[symbol]; dup {
			panic("coin: duplicate symbol " + symbol)
		}
		r.coins[symbol] = c
		r.order = append(r.order, symbol)
	}
	return r
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default 进程级共享的 Registry，第一次调用时构造
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Lookup 按符号查找，大小写不敏感
func (r *Registry) Lookup(symbol string) (Coin, error) {
	c, ok := r.coins[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errno.ErrCoinNotSupported, symbol)
	}
	return c, nil
}

// Coins 按注册顺序返回所有币种
func (r *Registry) Coins() []Coin {
	out := make([]Coin, 0, len(r.order))
	for _, symbol := range r.order {
		out = append(out, r.coins[symbol])
	}
	return out
}

// GenerateAddress 解析路径、派生并编码地址
func (r *Registry) GenerateAddress(req Request) (*AddressResult, error) {
	c, err := r.Lookup(req.Coin)
	if err != nil {
		return nil, err
	}
	d, err := findDerivation(c, req.Derivation)
	if err != nil {
		return nil, err
	}
	if len(req.Seed) < bip32.MinSeedBytes || len(req.Seed) > bip32.MaxSeedBytes {
		return nil, bip32.ErrInvalidSeed
	}

	path, err := resolvePath(c.Params(), d, req)
	if err != nil {
		return nil, err
	}

	res, err := c.Derive(req.Seed, d, path)
	if err != nil {
		return nil, err
	}
	logger.Named("coin").Debug("address derived",
		zap.String("coin", res.Coin),
		zap.String("derivation", res.Derivation),
		zap.String("path", res.Path),
		zap.String("address", res.PublicAddress),
	)
	return res, nil
}

// GenerateAddresses 对币种的每一种派生方案各生成一个地址
func (r *Registry) GenerateAddresses(symbol string, seed []byte, account uint32) ([]AddressResult, error) {
	c, err := r.Lookup(symbol)
	if err != nil {
		return nil, err
	}

	results := make([]AddressResult, 0, len(c.Derivations()))
	for _, d := range c.Derivations() {
		res, err := r.GenerateAddress(Request{
			Coin:       symbol,
			Seed:       seed,
			Account:    account,
			Derivation: d.Name,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// IsValidAddress 未知币种返回错误，格式不对只返回 false
func (r *Registry) IsValidAddress(symbol, address string) (bool, error) {
	c, err := r.Lookup(symbol)
	if err != nil {
		return false, err
	}
	return c.IsValidAddress(address), nil
}

// PublicAddressFromExtended 用账户级扩展公钥 (xpub/ypub/zpub/...) 派生 change/index 地址，
// 派生方案由版本号决定
func (r *Registry) PublicAddressFromExtended(symbol, extended string, change, index uint32) (string, error) {
	c, err := r.Lookup(symbol)
	if err != nil {
		return "", err
	}
	sc, ok := c.(*secpCoin)
	if !ok {
		return "", fmt.Errorf("%w: %s 不支持扩展公钥派生", errno.ErrDerivationTypeNotSupported, c.Params().Symbol)
	}

	key, err := bip32.NewKeyFromStringWithVersions(strings.TrimSpace(extended), sc.versionTable())
	if err != nil {
		return "", err
	}
	return sc.publicAddressFromExtended(key, change, index)
}

// IsValidExtendedKey 扩展密钥是否能被该币种使用，ed25519 币种总是 false
func (r *Registry) IsValidExtendedKey(symbol, extended string) bool {
	c, err := r.Lookup(symbol)
	if err != nil {
		return false
	}
	sc, ok := c.(*secpCoin)
	if !ok {
		return false
	}
	_, err = bip32.NewKeyFromStringWithVersions(strings.TrimSpace(extended), sc.versionTable())
	return err == nil
}

func findDerivation(c Coin, name DerivationName) (Derivation, error) {
	derivations := c.Derivations()
	if name == "" {
		return derivations[0], nil
	}
	for _, d := range derivations {
		if d.Name == name {
			return d, nil
		}
	}
	return Derivation{}, fmt.Errorf("%w: %s 没有 %q 派生方案", errno.ErrDerivationTypeNotSupported, c.Params().Symbol, name)
}

// resolvePath 展开模板或解析显式路径，并确认 coin type 属于该币种
func resolvePath(params NetworkParams, d Derivation, req Request) (hdpath.Path, error) {
	template := d.Template
	if strings.TrimSpace(req.Path) != "" {
		template = req.Path
	}
	path, err := hdpath.Expand(template, req.Account)
	if err != nil {
		return nil, err
	}
	if err := hdpath.ValidateCoinType(path, params.CoinType); err != nil {
		return nil, err
	}
	return path, nil
}
