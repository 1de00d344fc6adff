package address

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
)

// Bech32Generator HASH160(压缩公钥) 的 bech32 地址，BNB Beacon Chain 使用 "bnb"
type Bech32Generator struct {
	hrp string
}

func NewBech32Generator(hrp string) *Bech32Generator {
	return &Bech32Generator{hrp: hrp}
}

func (g *Bech32Generator) PublicAddress(pub []byte) (string, error) {
	if err := compressedSecp256k1(pub); err != nil {
		return "", err
	}
	return bech32Address(g.hrp, crypto_util.Hash160(pub))
}

func (g *Bech32Generator) IsValidAddress(address string) bool {
	return isBech32Hash(address, g.hrp)
}

// PrivateAddress 不带前缀的十六进制私钥
func (g *Bech32Generator) PrivateAddress(priv []byte) (string, error) {
	if !curve.Secp256k1.IsValidPrivateKey(priv) {
		return "", invalidPrivateKey("secp256k1 私钥无效")
	}
	return hex.EncodeToString(priv), nil
}

func bech32Address(hrp string, hash []byte) (string, error) {
	conv, err := bech32.ConvertBits(hash, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, conv)
}

// isBech32Hash hrp 一致且数据部分为 20 字节
func isBech32Hash(address, hrp string) bool {
	gotHRP, data, err := bech32.Decode(address)
	if err != nil || gotHRP != hrp {
		return false
	}
	hash, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return false
	}
	return len(hash) == 20
}
