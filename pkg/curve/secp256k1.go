package curve

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Secp256k1Curve 基于 btcec 的 secp256k1 实现
type Secp256k1Curve struct{}

// Secp256k1 默认实例
var Secp256k1 Secp256k1Curve

var _ Curve = Secp256k1

func (Secp256k1Curve) Name() string {
	return "secp256k1"
}

func (c Secp256k1Curve) PublicKey(priv []byte) ([]byte, error) {
	key, err := c.privKey(priv)
	if err != nil {
		return nil, err
	}
	return key.PubKey().SerializeCompressed(), nil
}

func (c Secp256k1Curve) IsValidPrivateKey(priv []byte) bool {
	_, err := c.privKey(priv)
	return err == nil
}

func (Secp256k1Curve) IsValidPublicKey(pub []byte) bool {
	_, err := btcec.ParsePubKey(pub)
	return err == nil
}

func (c Secp256k1Curve) Sign(priv, msg []byte) ([]byte, error) {
	if len(msg) != 32 {
		return nil, fmt.Errorf("待签名摘要长度必须为 32, 实际 %d", len(msg))
	}
	key, err := c.privKey(priv)
	if err != nil {
		return nil, err
	}
	return ecdsa.Sign(key, msg).Serialize(), nil
}

func (Secp256k1Curve) Verify(pub, msg, sig []byte) bool {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return false
	}
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return signature.Verify(msg, key)
}

// Uncompressed 把公钥转换为 65 字节非压缩格式 (0x04 || X || Y)
func (Secp256k1Curve) Uncompressed(pub []byte) ([]byte, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return key.SerializeUncompressed(), nil
}

// Compressed 把公钥转换为 33 字节压缩格式
func (Secp256k1Curve) Compressed(pub []byte) ([]byte, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return key.SerializeCompressed(), nil
}

// TweakAddPrivate 计算 (tweak + k) mod n
func (Secp256k1Curve) TweakAddPrivate(k, tweak []byte) ([]byte, error) {
	var t btcec.ModNScalar
	if len(tweak) != 32 || t.SetByteSlice(tweak) {
		return nil, ErrTweakOutOfRange
	}

	var s btcec.ModNScalar
	if len(k) != 32 || s.SetByteSlice(k) || s.IsZero() {
		return nil, ErrInvalidPrivateKey
	}

	t.Add(&s)
	if t.IsZero() {
		return nil, ErrPointAtInfinity
	}
	out := t.Bytes()
	return out[:], nil
}

// TweakAddPublic 计算 tweak*G + K，返回压缩公钥
func (Secp256k1Curve) TweakAddPublic(pub, tweak []byte) ([]byte, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	var t btcec.ModNScalar
	if len(tweak) != 32 || t.SetByteSlice(tweak) {
		return nil, ErrTweakOutOfRange
	}

	var (
		tweakJacobian  btcec.JacobianPoint
		pubKeyJacobian btcec.JacobianPoint
		resultJacobian btcec.JacobianPoint
	)
	btcec.ScalarBaseMultNonConst(&t, &tweakJacobian)
	key.AsJacobian(&pubKeyJacobian)
	btcec.AddNonConst(&tweakJacobian, &pubKeyJacobian, &resultJacobian)

	if (resultJacobian.X.IsZero() && resultJacobian.Y.IsZero()) || resultJacobian.Z.IsZero() {
		return nil, ErrPointAtInfinity
	}

	resultJacobian.ToAffine()
	return btcec.NewPublicKey(&resultJacobian.X, &resultJacobian.Y).SerializeCompressed(), nil
}

func (Secp256k1Curve) privKey(priv []byte) (*btcec.PrivateKey, error) {
	if len(priv) != 32 {
		return nil, fmt.Errorf("%w: 长度 %d", ErrInvalidPrivateKey, len(priv))
	}
	var s btcec.ModNScalar
	if overflow := s.SetByteSlice(priv); overflow || s.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return &btcec.PrivateKey{Key: s}, nil
}
