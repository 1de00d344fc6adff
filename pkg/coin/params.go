// Package coin 维护支持的币种表，并把 路径解析 -> 派生 -> 地址编码 串成一次调用。
package coin

import (
	"github.com/btcsuite/btcd/chaincfg"

	"hdwallet-core/pkg/bip32"
)

// Curve 币种使用的派生方式
type Curve int

const (
	// Secp256k1 BIP-32，支持公钥派生
	Secp256k1 Curve = iota
	// Ed25519 SLIP-10，全部硬化
	Ed25519
	// Ed25519SS58 SLIP-10 ed25519 + SS58 地址 (Polkadot 系)
	Ed25519SS58
)

func (c Curve) String() string {
	switch c {
	case Secp256k1:
		return "secp256k1"
	case Ed25519:
		return "ed25519"
	case Ed25519SS58:
		return "ed25519-ss58"
	default:
		return "unknown"
	}
}

// DerivationName 派生方案名称
type DerivationName string

const (
	Segwit        DerivationName = "segwit"
	WrappedSegwit DerivationName = "wrapped-segwit"
	Legacy        DerivationName = "legacy"
	BNB           DerivationName = "bnb"
	Harmony       DerivationName = "harmony"
	XDC           DerivationName = "xdc"
	OKX           DerivationName = "okx"
	FIO           DerivationName = "fio"
	XRP           DerivationName = "xrp"
	Stellar       DerivationName = "stellar"
	Solana        DerivationName = "solana"
	Tezos         DerivationName = "tezos"
	DOT           DerivationName = "dot"
	KSM           DerivationName = "ksm"
)

// NetworkParams 单个币种的网络参数
type NetworkParams struct {
	Symbol   string
	Name     string
	CoinType uint32
	Curve    Curve

	// UTXO 链的地址字节
	PubKeyHash byte
	ScriptHash byte
	WIF        byte
	Bech32HRP  string

	SS58Prefix uint16
	// ChainID EVM 链 id，仅用于展示
	ChainID uint64
}

// ChainParams 转换为 btcutil 使用的 chaincfg.Params，只填地址编码需要的字段
func (p NetworkParams) ChainParams(versions bip32.VersionPair) *chaincfg.Params {
	return &chaincfg.Params{
		Name:             p.Name,
		PubKeyHashAddrID: p.PubKeyHash,
		ScriptHashAddrID: p.ScriptHash,
		PrivateKeyID:     p.WIF,
		Bech32HRPSegwit:  p.Bech32HRP,
		HDPrivateKeyID:   versions.Private,
		HDPublicKeyID:    versions.Public,
		HDCoinType:       p.CoinType,
	}
}
