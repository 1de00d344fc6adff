package address

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
	"hdwallet-core/pkg/errno"
)

// BTCAddressType UTXO 链的地址类型
type BTCAddressType int

const (
	// P2PKH 传统地址 (1...)
	P2PKH BTCAddressType = iota
	// P2WPKHInP2SH 兼容隔离见证 (3...)
	P2WPKHInP2SH
	// P2WPKH 原生隔离见证 bech32 (bc1...)
	P2WPKH
)

func (t BTCAddressType) String() string {
	switch t {
	case P2PKH:
		return "p2pkh"
	case P2WPKHInP2SH:
		return "p2wpkh-p2sh"
	case P2WPKH:
		return "p2wpkh"
	default:
		return "unknown"
	}
}

// BTCGenerator 比特币系 (BTC/LTC/DOGE/GRS) 地址生成器
type BTCGenerator struct {
	network  *chaincfg.Params
	addrType BTCAddressType
}

func NewBTCGenerator(network *chaincfg.Params, addrType BTCAddressType) *BTCGenerator {
	return &BTCGenerator{network: network, addrType: addrType}
}

// PublicAddress 将压缩公钥 (33 bytes) 转换为地址
func (g *BTCGenerator) PublicAddress(pub []byte) (string, error) {
	if err := compressedSecp256k1(pub); err != nil {
		return "", err
	}
	pubKeyHash := crypto_util.Hash160(pub)

	var (
		addr btcutil.Address
		err  error
	)
	switch g.addrType {
	case P2PKH:
		addr, err = btcutil.NewAddressPubKeyHash(pubKeyHash, g.network)
	case P2WPKHInP2SH:
		// redeem script: OP_0 <20-byte pubkey hash>
		var script []byte
		script, err = txscript.NewScriptBuilder().AddOp(txscript.OP_0).AddData(pubKeyHash).Script()
		if err != nil {
			return "", err
		}
		addr, err = btcutil.NewAddressScriptHash(script, g.network)
	case P2WPKH:
		if g.network.Bech32HRPSegwit == "" {
			return "", errno.ErrDerivationTypeNotSupported
		}
		addr, err = btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, g.network)
	default:
		return "", errno.ErrDerivationTypeNotSupported
	}
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

func (g *BTCGenerator) IsValidAddress(address string) bool {
	switch g.addrType {
	case P2PKH:
		return isBase58Hash(address, g.network.PubKeyHashAddrID)
	case P2WPKHInP2SH:
		return isBase58Hash(address, g.network.ScriptHashAddrID)
	case P2WPKH:
		return isWitnessV0KeyHash(address, g.network.Bech32HRPSegwit)
	default:
		return false
	}
}

// PrivateAddress 压缩格式 WIF
func (g *BTCGenerator) PrivateAddress(priv []byte) (string, error) {
	if !curve.Secp256k1.IsValidPrivateKey(priv) {
		return "", invalidPrivateKey("secp256k1 私钥无效")
	}
	key, _ := btcec.PrivKeyFromBytes(priv)
	wif, err := btcutil.NewWIF(key, g.network, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

// IsValidPrivateAddress 校验 WIF 是否属于该网络
func (g *BTCGenerator) IsValidPrivateAddress(s string) bool {
	wif, err := btcutil.DecodeWIF(s)
	if err != nil {
		return false
	}
	return wif.IsForNet(g.network)
}

func isBase58Hash(address string, netID byte) bool {
	decoded, version, err := base58.CheckDecode(address)
	if err != nil {
		return false
	}
	return version == netID && len(decoded) == 20
}

func isWitnessV0KeyHash(address string, hrp string) bool {
	if hrp == "" {
		return false
	}
	gotHRP, data, err := bech32.Decode(address)
	if err != nil || gotHRP != hrp || len(data) < 1 || data[0] != 0 {
		return false
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return false
	}
	return len(program) == 20
}
