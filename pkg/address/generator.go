// Package address 把公钥/私钥编码为各条链的地址字符串，并提供反向校验。
package address

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
	"hdwallet-core/pkg/errno"
)

// Generator 公钥 -> 地址，以及地址校验
type Generator interface {
	// PublicAddress 公钥长度或格式错误时返回 ErrInvalidPublicKey
	PublicAddress(pub []byte) (string, error)
	// IsValidAddress 校验失败返回 false，不返回错误
	IsValidAddress(address string) bool
}

// PrivateGenerator 把私钥编码为链上惯用的私钥字符串 (WIF、StrKey seed 等)
type PrivateGenerator interface {
	PrivateAddress(priv []byte) (string, error)
}

func invalidPublicKey(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errno.ErrInvalidPublicKey, fmt.Sprintf(format, args...))
}

func invalidPrivateKey(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errno.ErrInvalidPrivateKey, fmt.Sprintf(format, args...))
}

// compressedSecp256k1 要求 33 字节压缩公钥
func compressedSecp256k1(pub []byte) error {
	if len(pub) != 33 {
		return invalidPublicKey("需要 33 字节压缩公钥, 实际 %d 字节", len(pub))
	}
	if !curve.Secp256k1.IsValidPublicKey(pub) {
		return invalidPublicKey("公钥不在 secp256k1 曲线上")
	}
	return nil
}

func rawEd25519(pub []byte) error {
	if len(pub) != 32 {
		return invalidPublicKey("需要 32 字节 ed25519 公钥, 实际 %d 字节", len(pub))
	}
	return nil
}

// encodeCheckPrefix Base58Check，前缀可以是多字节 (Tezos)
func encodeCheckPrefix(prefix, payload []byte) string {
	data := make([]byte, 0, len(prefix)+len(payload)+crypto_util.ChecksumLen)
	data = append(data, prefix...)
	data = append(data, payload...)
	data = append(data, crypto_util.Checksum(data)...)
	return base58.Encode(data)
}

// decodeCheckPrefix 校验前缀和校验和，返回去掉前缀的负载
func decodeCheckPrefix(s string, prefix []byte, payloadLen int) ([]byte, bool) {
	data := base58.Decode(s)
	if len(data) != len(prefix)+payloadLen+crypto_util.ChecksumLen {
		return nil, false
	}
	body := data[:len(data)-crypto_util.ChecksumLen]
	if !bytes.Equal(crypto_util.Checksum(body), data[len(body):]) {
		return nil, false
	}
	if !bytes.HasPrefix(body, prefix) {
		return nil, false
	}
	return body[len(prefix):], true
}
