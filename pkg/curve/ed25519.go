package curve

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
)

// Ed25519Curve ed25519 实现，私钥为 32 字节种子
type Ed25519Curve struct{}

// Ed25519 默认实例
var Ed25519 Ed25519Curve

var _ Curve = Ed25519

func (Ed25519Curve) Name() string {
	return "ed25519"
}

func (Ed25519Curve) PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: 长度 %d", ErrInvalidPrivateKey, len(priv))
	}
	pub := ed25519.NewKeyFromSeed(priv).Public().(ed25519.PublicKey)
	return []byte(pub), nil
}

// IsValidPrivateKey 任意 32 字节都是合法的 ed25519 种子
func (Ed25519Curve) IsValidPrivateKey(priv []byte) bool {
	return len(priv) == ed25519.SeedSize
}

// IsValidPublicKey 检查 32 字节是否能解码为曲线上的点
func (Ed25519Curve) IsValidPublicKey(pub []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(pub)
	return err == nil
}

func (c Ed25519Curve) Sign(priv, msg []byte) ([]byte, error) {
	secret, err := c.SecretKey(priv)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(secret, msg), nil
}

func (c Ed25519Curve) Verify(pub, msg, sig []byte) bool {
	if !c.IsValidPublicKey(pub) || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}

// SecretKey 返回 64 字节的扩展私钥 (seed || pub)，Solana 和 Tezos 的私钥格式
func (Ed25519Curve) SecretKey(priv []byte) (ed25519.PrivateKey, error) {
	if len(priv) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: 长度 %d", ErrInvalidPrivateKey, len(priv))
	}
	return ed25519.NewKeyFromSeed(priv), nil
}
