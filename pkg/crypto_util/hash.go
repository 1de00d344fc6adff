package crypto_util

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/ripemd160"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ChecksumLen Base58Check 校验和长度
const ChecksumLen = 4

// SHA256 计算输入的 SHA256 哈希值。
func SHA256(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// DoubleSHA256 计算 SHA256(SHA256(data))
func DoubleSHA256(data []byte) []byte {
	return chainhash.DoubleHashB(data)
}

// Checksum 返回 DoubleSHA256 的前 4 个字节
func Checksum(data []byte) []byte {
	return DoubleSHA256(data)[:ChecksumLen]
}

// RIPEMD160 计算输入的 RIPEMD-160 哈希值。
func RIPEMD160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Hash160 计算 RIPEMD160(SHA256(data))，比特币系地址和指纹都用它
func Hash160(data []byte) []byte {
	return RIPEMD160(SHA256(data))
}

// Keccak256 计算输入的 Keccak256 哈希值。
// 这是以太坊使用的哈希算法 (不是标准化后的 SHA3-256)。
func Keccak256(data ...[]byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hash.Write(d)
	}
	return hash.Sum(nil)
}

// Blake2b160 计算 20 字节的 Blake2b 摘要 (Tezos 地址)
func Blake2b160(data []byte) []byte {
	return blake2bSum(20, data)
}

// Blake2b512 计算 64 字节的 Blake2b 摘要 (SS58 校验和)
func Blake2b512(data ...[]byte) []byte {
	return blake2bSum(blake2b.Size, data...)
}

func blake2bSum(size int, data ...[]byte) []byte {
	// size 只会是 1..64 的常量，New 不会失败
	h, err := blake2b.New(size, nil)
	if err != nil {
		panic(err)
	}
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// HmacSHA512 计算 HMAC-SHA512 并拆分为左右两半 (IL, IR)
func HmacSHA512(key, data []byte) (il, ir []byte) {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
