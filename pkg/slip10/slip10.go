// Package slip10 实现 SLIP-0010 ed25519 分层派生，只支持硬化索引。
package slip10

import (
	"encoding/binary"
	"fmt"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
	"hdwallet-core/pkg/errno"
	"hdwallet-core/pkg/hdpath"
)

// ed25519Seed SLIP-10 主密钥的 HMAC key
const ed25519Seed = "ed25519 seed"

// ErrNonHardened ed25519 没有公钥派生，遇到非硬化段直接拒绝，不做自动升级
var ErrNonHardened = fmt.Errorf("%w: ed25519 只支持硬化派生", errno.ErrDerivationTypeNotSupported)

// Node SLIP-10 节点 (32 字节私钥种子 + 链码)，不可变
type Node struct {
	key         [32]byte
	chainCode   [32]byte
	depth       uint8
	parentFP    [4]byte
	childNumber uint32
}

// NewMaster HMAC-SHA512(key="ed25519 seed", seed)
func NewMaster(seed []byte) (*Node, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, fmt.Errorf("%w: 种子长度必须在 16 到 64 字节之间", errno.ErrInvalidSeed)
	}
	il, ir := crypto_util.HmacSHA512([]byte(ed25519Seed), seed)
	n := &Node{}
	copy(n.key[:], il)
	copy(n.chainCode[:], ir)
	return n, nil
}

// Derive 派生硬化子节点，index 为不带硬化位的索引
func (n *Node) Derive(index uint32) (*Node, error) {
	if index >= hdpath.HardenedOffset {
		return nil, fmt.Errorf("%w: 索引 %d 超出范围", errno.ErrDerivePath, index)
	}
	if n.depth == 255 {
		return nil, fmt.Errorf("%w: 派生深度不能超过 255", errno.ErrGeneration)
	}

	childNumber := index | hdpath.HardenedOffset
	data := make([]byte, 37)
	copy(data[1:33], n.key[:])
	binary.BigEndian.PutUint32(data[33:], childNumber)

	il, ir := crypto_util.HmacSHA512(n.chainCode[:], data)
	child := &Node{
		depth:       n.depth + 1,
		parentFP:    n.Fingerprint(),
		childNumber: childNumber,
	}
	copy(child.key[:], il)
	copy(child.chainCode[:], ir)
	return child, nil
}

// DerivePath 派生整条路径，任何非硬化段都返回 ErrNonHardened
func (n *Node) DerivePath(path hdpath.Path) (*Node, error) {
	current := n
	for _, seg := range path {
		if !seg.Hardened {
			return nil, fmt.Errorf("%w: 段 %s", ErrNonHardened, seg)
		}
		next, err := current.Derive(seg.Index)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// DeriveFromSeed 由种子直接派生到路径末端
func DeriveFromSeed(seed []byte, path hdpath.Path) (*Node, error) {
	master, err := NewMaster(seed)
	if err != nil {
		return nil, err
	}
	return master.DerivePath(path)
}

// PrivateKey 返回 32 字节私钥种子
func (n *Node) PrivateKey() []byte {
	return append([]byte(nil), n.key[:]...)
}

func (n *Node) ChainCode() []byte {
	return append([]byte(nil), n.chainCode[:]...)
}

// PublicKey 返回 32 字节 ed25519 公钥
func (n *Node) PublicKey() []byte {
	// 32 字节种子总是合法的
	pub, _ := curve.Ed25519.PublicKey(n.key[:])
	return pub
}

func (n *Node) Depth() uint8        { return n.depth }
func (n *Node) ChildNumber() uint32 { return n.childNumber }

func (n *Node) ParentFingerprint() [4]byte {
	return n.parentFP
}

// Fingerprint HASH160(0x00 || 公钥) 的前 4 字节
func (n *Node) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], crypto_util.Hash160(append([]byte{0x00}, n.PublicKey()...)))
	return fp
}
