package address

import (
	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
)

// Tezos base58check 前缀
var (
	tezosPrefixTZ1  = []byte{6, 161, 159}
	tezosPrefixTZ2  = []byte{6, 161, 161}
	tezosPrefixTZ3  = []byte{6, 161, 164}
	tezosPrefixKT1  = []byte{2, 90, 121}
	tezosPrefixEDPK = []byte{13, 15, 37, 217}
	tezosPrefixEDSK = []byte{43, 246, 78, 7}
)

// TezosGenerator tz1 地址 = base58check(tz1 || blake2b-160(pub))
type TezosGenerator struct{}

func NewTezosGenerator() *TezosGenerator {
	return &TezosGenerator{}
}

// PublicAddress 接受 32 字节 ed25519 公钥或其 20 字节 blake2b 摘要
func (g *TezosGenerator) PublicAddress(pub []byte) (string, error) {
	var hash []byte
	switch len(pub) {
	case 20:
		hash = pub
	case 32:
		hash = TezosPublicKeyHash(pub)
	default:
		return "", invalidPublicKey("需要 32 字节公钥或 20 字节公钥哈希, 实际 %d 字节", len(pub))
	}
	return encodeCheckPrefix(tezosPrefixTZ1, hash), nil
}

// IsValidAddress 接受隐式账户 (tz1/tz2/tz3) 和合约地址 (KT1)
func (g *TezosGenerator) IsValidAddress(address string) bool {
	for _, prefix := range [][]byte{tezosPrefixTZ1, tezosPrefixTZ2, tezosPrefixTZ3, tezosPrefixKT1} {
		if _, ok := decodeCheckPrefix(address, prefix, 20); ok {
			return true
		}
	}
	return false
}

// EncodedPublicKey edpk 格式的公钥
func (g *TezosGenerator) EncodedPublicKey(pub []byte) (string, error) {
	if err := rawEd25519(pub); err != nil {
		return "", err
	}
	return encodeCheckPrefix(tezosPrefixEDPK, pub), nil
}

// IsValidPublicKey 校验 edpk 字符串
func (g *TezosGenerator) IsValidPublicKey(edpk string) bool {
	pub, ok := decodeCheckPrefix(edpk, tezosPrefixEDPK, 32)
	return ok && curve.Ed25519.IsValidPublicKey(pub)
}

// PrivateAddress edsk 格式，负载为 64 字节 secret key
func (g *TezosGenerator) PrivateAddress(priv []byte) (string, error) {
	secret, err := curve.Ed25519.SecretKey(priv)
	if err != nil {
		return "", invalidPrivateKey("需要 32 字节 ed25519 种子")
	}
	return encodeCheckPrefix(tezosPrefixEDSK, secret), nil
}

// TezosPublicKeyHash blake2b-160(pub)
func TezosPublicKeyHash(pub []byte) []byte {
	return crypto_util.Blake2b160(pub)
}
