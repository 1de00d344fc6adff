package bip32

import (
	"fmt"

	"hdwallet-core/pkg/errno"
)

// HDWallet 定义了分层确定性钱包的基本行为
type HDWallet interface {
	// MasterKey 返回主扩展密钥
	MasterKey() *ExtendedKey
	// DerivePath 根据路径 (如 "m/44'/0'/0'/0/0") 派生密钥
	DerivePath(path string) (*ExtendedKey, error)
}

var (
	ErrInvalidSeed = fmt.Errorf("%w: 种子长度必须在 16 到 64 字节之间", errno.ErrInvalidSeed)
	// ErrUnusableSeed 种子生成的主私钥越界，概率约 2^-127
	ErrUnusableSeed = fmt.Errorf("%w: 种子无法生成合法的主密钥", errno.ErrGeneration)
	// ErrInvalidChild 子密钥越界或为零，BIP-32 规定跳过该索引，这里直接报错不重试
	ErrInvalidChild         = fmt.Errorf("%w: 该索引生成的子密钥无效", errno.ErrGeneration)
	ErrDeriveHardFromPublic = fmt.Errorf("%w: 无法从扩展公钥派生硬化子密钥", errno.ErrDerivationTypeNotSupported)
	ErrDeriveBeyondMaxDepth = fmt.Errorf("%w: 派生深度不能超过 255", errno.ErrGeneration)
	ErrNotPrivate           = fmt.Errorf("%w: 扩展公钥不包含私钥", errno.ErrDerivationTypeNotSupported)
)

const (
	// MinSeedBytes 最短种子长度 (128 bits)
	MinSeedBytes = 16
	// MaxSeedBytes 最长种子长度 (512 bits)
	MaxSeedBytes = 64
)
