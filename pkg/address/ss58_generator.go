package address

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
)

var ss58Prefix = []byte("SS58PRE")

// 常用 SS58 网络前缀
const (
	SS58Polkadot uint16 = 0
	SS58Kusama   uint16 = 2
)

// SS58Generator Substrate 地址: base58(prefix || pub || blake2b-512("SS58PRE" || prefix || pub)[:2])
type SS58Generator struct {
	prefix uint16
}

func NewSS58Generator(prefix uint16) *SS58Generator {
	return &SS58Generator{prefix: prefix}
}

func (g *SS58Generator) PublicAddress(pub []byte) (string, error) {
	if err := rawEd25519(pub); err != nil {
		return "", err
	}
	ident, err := encodeSS58Prefix(g.prefix)
	if err != nil {
		return "", err
	}
	body := append(ident, pub...)
	return base58.Encode(append(body, ss58Checksum(body)...)), nil
}

func (g *SS58Generator) IsValidAddress(address string) bool {
	data, err := base58.Decode(address)
	if err != nil || len(data) < 1 {
		return false
	}
	prefix, prefixLen, ok := decodeSS58Prefix(data)
	if !ok || prefix != g.prefix {
		return false
	}
	if len(data) != prefixLen+32+2 {
		return false
	}
	body := data[:prefixLen+32]
	return bytes.Equal(ss58Checksum(body), data[prefixLen+32:])
}

// PrivateAddress 0x 前缀的十六进制种子 (polkadot.js 的 raw seed 格式)
func (g *SS58Generator) PrivateAddress(priv []byte) (string, error) {
	if !curve.Ed25519.IsValidPrivateKey(priv) {
		return "", invalidPrivateKey("需要 32 字节种子")
	}
	return "0x" + hex.EncodeToString(priv), nil
}

func ss58Checksum(body []byte) []byte {
	return crypto_util.Blake2b512(ss58Prefix, body)[:2]
}

// encodeSS58Prefix 0..63 单字节，64..16383 双字节
func encodeSS58Prefix(prefix uint16) ([]byte, error) {
	switch {
	case prefix < 64:
		return []byte{byte(prefix)}, nil
	case prefix < 16384:
		first := byte((prefix&0x00fc)>>2) | 0x40
		second := byte(prefix>>8) | byte((prefix&0x0003)<<6)
		return []byte{first, second}, nil
	default:
		return nil, invalidPublicKey("SS58 前缀 %d 超出范围", prefix)
	}
}

func decodeSS58Prefix(data []byte) (prefix uint16, n int, ok bool) {
	b0 := data[0]
	switch {
	case b0 < 64:
		return uint16(b0), 1, true
	case b0 < 128:
		if len(data) < 2 {
			return 0, 0, false
		}
		b1 := data[1]
		lower := uint16(b0<<2) | uint16(b1>>6)
		upper := uint16(b1 & 0x3f)
		return lower | upper<<8, 2, true
	default:
		return 0, 0, false
	}
}
