package coin

import (
	"encoding/hex"
	"fmt"

	"hdwallet-core/pkg/address"
	"hdwallet-core/pkg/bip32"
	"hdwallet-core/pkg/errno"
	"hdwallet-core/pkg/hdpath"
	"hdwallet-core/pkg/slip10"
)

// Encoder 地址编码器需要同时支持公钥地址、私钥格式和地址校验
type Encoder interface {
	address.Generator
	address.PrivateGenerator
}

// publicKeyEncoder 额外提供公钥字符串格式 (Tezos edpk、FIO 公钥)
type publicKeyEncoder interface {
	EncodedPublicKey(pub []byte) (string, error)
}

// Derivation 一种派生方案: 路径模板 + 扩展密钥版本号 + 地址编码
type Derivation struct {
	Name     DerivationName
	Template string
	// Versions 只对 secp256k1 币种有意义
	Versions bip32.VersionPair
	Encoder  Encoder
}

// Coin 一个已注册的币种
type Coin interface {
	Params() NetworkParams
	// Derivations 第一个为默认方案
	Derivations() []Derivation
	// Derive 按已校验的路径派生并编码地址
	Derive(seed []byte, d Derivation, path hdpath.Path) (*AddressResult, error)
	IsValidAddress(address string) bool
}

// AddressResult 一次派生的完整结果
type AddressResult struct {
	Coin             string `json:"coin"`
	Derivation       string `json:"derivation"`
	Path             string `json:"path"`
	PublicKey        string `json:"publicKey"`
	PrivateKey       string `json:"privateKey"`
	PublicAddress    string `json:"publicAddress"`
	PrivateAddress   string `json:"privateAddress"`
	ExtendedPublic   string `json:"extendedPublic,omitempty"`
	ExtendedPrivate  string `json:"extendedPrivate,omitempty"`
	EncodedPublicKey string `json:"encodedPublicKey,omitempty"`
}

type baseCoin struct {
	params      NetworkParams
	derivations []Derivation
}

func (c *baseCoin) Params() NetworkParams {
	return c.params
}

func (c *baseCoin) Derivations() []Derivation {
	return append([]Derivation(nil), c.derivations...)
}

// IsValidAddress 任意一种派生方案的地址格式都接受
func (c *baseCoin) IsValidAddress(address string) bool {
	for _, d := range c.derivations {
		if d.Encoder.IsValidAddress(address) {
			return true
		}
	}
	return false
}

// encode 填充地址相关字段，任何一步失败都不返回部分结果
func (c *baseCoin) encode(d Derivation, path hdpath.Path, pub, priv []byte) (*AddressResult, error) {
	publicAddress, err := d.Encoder.PublicAddress(pub)
	if err != nil {
		return nil, err
	}
	privateAddress, err := d.Encoder.PrivateAddress(priv)
	if err != nil {
		return nil, err
	}

	res := &AddressResult{
		Coin:           c.params.Symbol,
		Derivation:     string(d.Name),
		Path:           path.String(),
		PublicKey:      hex.EncodeToString(pub),
		PrivateKey:     hex.EncodeToString(priv),
		PublicAddress:  publicAddress,
		PrivateAddress: privateAddress,
	}
	if enc, ok := d.Encoder.(publicKeyEncoder); ok {
		if res.EncodedPublicKey, err = enc.EncodedPublicKey(pub); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// secpCoin BIP-32 secp256k1 币种: UTXO、EVM、XRP、BNB、FIO
type secpCoin struct {
	baseCoin
}

// accountDepth m/purpose'/coin'/account'
const accountDepth = 3

func (c *secpCoin) Derive(seed []byte, d Derivation, path hdpath.Path) (*AddressResult, error) {
	master, err := bip32.NewMaster(seed, d.Versions)
	if err != nil {
		return nil, err
	}

	split := min(accountDepth, len(path))
	account, err := master.DerivePath(path[:split])
	if err != nil {
		return nil, err
	}
	leaf, err := account.DerivePath(path[split:])
	if err != nil {
		return nil, err
	}

	priv, err := leaf.PrivateKey()
	if err != nil {
		return nil, err
	}
	res, err := c.encode(d, path, leaf.PublicKey(), priv)
	if err != nil {
		return nil, err
	}
	res.ExtendedPrivate = account.String()
	res.ExtendedPublic = account.Neuter().String()
	return res, nil
}

// versionTable 该币种各派生方案使用的版本号
func (c *secpCoin) versionTable() []bip32.VersionPair {
	table := make([]bip32.VersionPair, 0, len(c.derivations))
	for _, d := range c.derivations {
		table = append(table, d.Versions)
	}
	return table
}

// derivationFor 按扩展密钥的版本号选择派生方案，同一版本号取第一个
func (c *secpCoin) derivationFor(v bip32.VersionPair) (Derivation, bool) {
	for _, d := range c.derivations {
		if d.Versions == v {
			return d, true
		}
	}
	return Derivation{}, false
}

// publicAddressFromExtended 从账户级扩展密钥派生 change/index 的地址，不需要私钥
func (c *secpCoin) publicAddressFromExtended(key *bip32.ExtendedKey, change, index uint32) (string, error) {
	d, ok := c.derivationFor(key.Versions())
	if !ok {
		return "", fmt.Errorf("%w: %s 不使用版本号 %s", errno.ErrDerivationTypeNotSupported, c.params.Symbol, key.Version())
	}
	if change >= hdpath.HardenedOffset || index >= hdpath.HardenedOffset {
		return "", fmt.Errorf("%w: change/index 必须小于 2^31", errno.ErrDerivePath)
	}

	child, err := key.Neuter().DerivePath(hdpath.Path{{Index: change}, {Index: index}})
	if err != nil {
		return "", err
	}
	return d.Encoder.PublicAddress(child.PublicKey())
}

// edCoin SLIP-10 ed25519 币种: Stellar、Solana、Tezos、Polkadot、Kusama
type edCoin struct {
	baseCoin
}

func (c *edCoin) Derive(seed []byte, d Derivation, path hdpath.Path) (*AddressResult, error) {
	node, err := slip10.DeriveFromSeed(seed, path)
	if err != nil {
		return nil, err
	}
	return c.encode(d, path, node.PublicKey(), node.PrivateKey())
}
