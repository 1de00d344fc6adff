package bip32

import (
	"encoding/binary"
	"errors"
	"fmt"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
	"hdwallet-core/pkg/hdpath"
)

// ExtendedKey BIP-32 扩展密钥 (secp256k1)，构造后不可变
type ExtendedKey struct {
	versions    VersionPair
	depth       uint8
	parentFP    [4]byte
	childNumber uint32
	chainCode   [32]byte
	// key 私钥为 32 字节标量，公钥为 33 字节压缩点
	key       []byte
	pubKey    []byte
	isPrivate bool
}

func newExtendedKey(versions VersionPair, key []byte, chainCode []byte, parentFP [4]byte, depth uint8, childNumber uint32, isPrivate bool) (*ExtendedKey, error) {
	k := &ExtendedKey{
		versions:    versions,
		depth:       depth,
		parentFP:    parentFP,
		childNumber: childNumber,
		key:         append([]byte(nil), key...),
		isPrivate:   isPrivate,
	}
	copy(k.chainCode[:], chainCode)

	if isPrivate {
		pub, err := curve.Secp256k1.PublicKey(key)
		if err != nil {
			return nil, err
		}
		k.pubKey = pub
	} else {
		if !curve.Secp256k1.IsValidPublicKey(key) || len(key) != 33 {
			return nil, curve.ErrInvalidPublicKey
		}
		k.pubKey = k.key
	}
	return k, nil
}

// NewMaster 由种子生成主扩展私钥: HMAC-SHA512(key="Bitcoin seed", seed)
func NewMaster(seed []byte, versions VersionPair) (*ExtendedKey, error) {
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		return nil, ErrInvalidSeed
	}

	il, ir := crypto_util.HmacSHA512([]byte("Bitcoin seed"), seed)
	if !curve.Secp256k1.IsValidPrivateKey(il) {
		return nil, ErrUnusableSeed
	}
	return newExtendedKey(versions, il, ir, [4]byte{}, 0, 0, true)
}

func (k *ExtendedKey) Versions() VersionPair { return k.versions }
func (k *ExtendedKey) Depth() uint8          { return k.depth }
func (k *ExtendedKey) ChildNumber() uint32   { return k.childNumber }
func (k *ExtendedKey) IsPrivate() bool       { return k.isPrivate }

// Version 返回当前密钥类型对应的版本号
func (k *ExtendedKey) Version() Version {
	if k.isPrivate {
		return k.versions.Private
	}
	return k.versions.Public
}

func (k *ExtendedKey) ParentFingerprint() [4]byte {
	return k.parentFP
}

func (k *ExtendedKey) ChainCode() []byte {
	return append([]byte(nil), k.chainCode[:]...)
}

// PublicKey 返回 33 字节压缩公钥
func (k *ExtendedKey) PublicKey() []byte {
	return append([]byte(nil), k.pubKey...)
}

// PrivateKey 返回 32 字节私钥
func (k *ExtendedKey) PrivateKey() ([]byte, error) {
	if !k.isPrivate {
		return nil, ErrNotPrivate
	}
	return append([]byte(nil), k.key...), nil
}

// Fingerprint HASH160(公钥) 的前 4 字节
func (k *ExtendedKey) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], crypto_util.Hash160(k.pubKey))
	return fp
}

// Neuter 返回对应的扩展公钥，不修改原对象
func (k *ExtendedKey) Neuter() *ExtendedKey {
	if !k.isPrivate {
		return k
	}
	n := *k
	n.key = append([]byte(nil), k.pubKey...)
	n.pubKey = n.key
	n.isPrivate = false
	return &n
}

// WithVersions 用另一组版本号展示同一把密钥，密钥材料不变
func (k *ExtendedKey) WithVersions(versions VersionPair) *ExtendedKey {
	n := *k
	n.versions = versions
	return &n
}

// Derive 根据索引派生子密钥，index >= 2^31 为硬化派生
func (k *ExtendedKey) Derive(index uint32) (*ExtendedKey, error) {
	if k.depth == 255 {
		return nil, ErrDeriveBeyondMaxDepth
	}

	hardened := index >= hdpath.HardenedOffset
	if hardened && !k.isPrivate {
		return nil, ErrDeriveHardFromPublic
	}

	// 硬化: 0x00 || k || index，普通: serP(K) || index
	data := make([]byte, 37)
	if hardened {
		copy(data[1:33], k.key)
	} else {
		copy(data[:33], k.pubKey)
	}
	binary.BigEndian.PutUint32(data[33:], index)

	il, ir := crypto_util.HmacSHA512(k.chainCode[:], data)

	var (
		childKey []byte
		err      error
	)
	if k.isPrivate {
		childKey, err = curve.Secp256k1.TweakAddPrivate(k.key, il)
	} else {
		childKey, err = curve.Secp256k1.TweakAddPublic(k.key, il)
	}
	if err != nil {
		if errors.Is(err, curve.ErrTweakOutOfRange) || errors.Is(err, curve.ErrPointAtInfinity) {
			return nil, ErrInvalidChild
		}
		return nil, fmt.Errorf("派生子密钥失败: %w", err)
	}

	return newExtendedKey(k.versions, childKey, ir, k.Fingerprint(), k.depth+1, index, k.isPrivate)
}

// DerivePath 依次派生路径上的每一段
func (k *ExtendedKey) DerivePath(path hdpath.Path) (*ExtendedKey, error) {
	current := k
	for _, seg := range path {
		next, err := current.Derive(seg.ChildNumber())
		if err != nil {
			return nil, fmt.Errorf("派生 %s 失败: %w", seg, err)
		}
		current = next
	}
	return current, nil
}
