package address

import (
	"github.com/mr-tron/base58"

	"hdwallet-core/pkg/curve"
)

// SolanaGenerator Solana 地址就是 32 字节公钥的 base58，没有校验和
type SolanaGenerator struct{}

func NewSolanaGenerator() *SolanaGenerator {
	return &SolanaGenerator{}
}

func (g *SolanaGenerator) PublicAddress(pub []byte) (string, error) {
	if err := rawEd25519(pub); err != nil {
		return "", err
	}
	return base58.Encode(pub), nil
}

// IsValidAddress 解码为 32 字节且在 ed25519 曲线上
func (g *SolanaGenerator) IsValidAddress(address string) bool {
	pub, err := base58.Decode(address)
	if err != nil {
		return false
	}
	return curve.Ed25519.IsValidPublicKey(pub)
}

// PrivateAddress 64 字节 secret key (seed || pub) 的 base58，与 Phantom/solana-keygen 一致
func (g *SolanaGenerator) PrivateAddress(priv []byte) (string, error) {
	secret, err := curve.Ed25519.SecretKey(priv)
	if err != nil {
		return "", invalidPrivateKey("需要 32 字节 ed25519 种子")
	}
	return base58.Encode(secret), nil
}
