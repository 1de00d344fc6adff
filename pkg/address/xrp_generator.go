package address

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
)

// rippleAlphabet XRP Ledger 使用的 base58 字母表
var rippleAlphabet = base58.NewAlphabet("rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz")

// xrpAccountPrefix 账户地址类型字节
const xrpAccountPrefix = 0x00

// XRPGenerator XRP 地址: ripple base58check(0x00 || HASH160(pub))
type XRPGenerator struct{}

func NewXRPGenerator() *XRPGenerator {
	return &XRPGenerator{}
}

func (g *XRPGenerator) PublicAddress(pub []byte) (string, error) {
	if err := compressedSecp256k1(pub); err != nil {
		return "", err
	}
	payload := append([]byte{xrpAccountPrefix}, crypto_util.Hash160(pub)...)
	return base58.EncodeAlphabet(append(payload, crypto_util.Checksum(payload)...), rippleAlphabet), nil
}

func (g *XRPGenerator) IsValidAddress(address string) bool {
	data, err := base58.DecodeAlphabet(address, rippleAlphabet)
	if err != nil || len(data) != 25 || data[0] != xrpAccountPrefix {
		return false
	}
	return bytes.Equal(crypto_util.Checksum(data[:21]), data[21:])
}

// PrivateAddress "00" + 大写十六进制私钥
func (g *XRPGenerator) PrivateAddress(priv []byte) (string, error) {
	if !curve.Secp256k1.IsValidPrivateKey(priv) {
		return "", invalidPrivateKey("secp256k1 私钥无效")
	}
	return "00" + strings.ToUpper(hex.EncodeToString(priv)), nil
}
