package bip32

import (
	"strings"

	"hdwallet-core/pkg/hdpath"
)

// Wallet 实现 HDWallet 接口
type Wallet struct {
	masterKey *ExtendedKey
}

var _ HDWallet = (*Wallet)(nil)

// NewMasterKeyFromSeed 使用 BIP-39 种子生成主密钥
// versions: 序列化时使用的版本号，默认 xprv/xpub
func NewMasterKeyFromSeed(seed []byte, versions *VersionPair) (*Wallet, error) {
	if versions == nil {
		versions = &BitcoinLegacy
	}

	masterKey, err := NewMaster(seed, *versions)
	if err != nil {
		return nil, err
	}
	return &Wallet{masterKey: masterKey}, nil
}

func (w *Wallet) MasterKey() *ExtendedKey {
	return w.masterKey
}

// DerivePath 解析路径并派生密钥
// 支持格式: m/44'/0'/0'/0/0 或 m/44h/0h/0h/0/0，空路径返回主密钥
func (w *Wallet) DerivePath(path string) (*ExtendedKey, error) {
	if strings.TrimSpace(path) == "" {
		return w.masterKey, nil
	}

	p, err := hdpath.Parse(path)
	if err != nil {
		return nil, err
	}
	return w.masterKey.DerivePath(p)
}
