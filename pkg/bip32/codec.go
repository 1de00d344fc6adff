package bip32

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
	"hdwallet-core/pkg/errno"
)

// RecordLen 序列化后的扩展密钥长度
// version(4) || depth(1) || parentFP(4) || childNumber(4) || chainCode(32) || key(33)
const RecordLen = 78

// Serialize 返回 78 字节记录，私钥前面补 0x00
func (k *ExtendedKey) Serialize() []byte {
	out := make([]byte, 0, RecordLen)
	v := k.Version()
	out = append(out, v[:]...)
	out = append(out, k.depth)
	out = append(out, k.parentFP[:]...)
	out = binary.BigEndian.AppendUint32(out, k.childNumber)
	out = append(out, k.chainCode[:]...)
	if k.isPrivate {
		out = append(out, 0x00)
	}
	out = append(out, k.key...)
	return out
}

// String 返回 Base58Check 编码 (xprv... / xpub...)
func (k *ExtendedKey) String() string {
	return encodeCheck(k.Serialize())
}

// Parse 解析 78 字节记录，版本号必须在 KnownVersions 中
func Parse(record []byte) (*ExtendedKey, error) {
	return ParseWithVersions(record, KnownVersions)
}

// ParseWithVersions 使用自定义版本号表解析
func ParseWithVersions(record []byte, table []VersionPair) (*ExtendedKey, error) {
	if len(record) != RecordLen {
		return nil, fmt.Errorf("%w: 长度 %d, 期望 %d", errno.ErrFormat, len(record), RecordLen)
	}

	var v Version
	copy(v[:], record[:4])
	pair, isPrivate, ok := LookupVersion(v, table)
	if !ok {
		return nil, fmt.Errorf("%w: 未知版本号 %s", errno.ErrFormat, v)
	}

	depth := record[4]
	var parentFP [4]byte
	copy(parentFP[:], record[5:9])
	childNumber := binary.BigEndian.Uint32(record[9:13])
	chainCode := record[13:45]
	keyData := record[45:78]

	if depth == 0 && (parentFP != [4]byte{} || childNumber != 0) {
		return nil, fmt.Errorf("%w: 深度为 0 时父指纹和子索引必须为 0", errno.ErrFormat)
	}

	var key []byte
	if isPrivate {
		if keyData[0] != 0x00 {
			return nil, fmt.Errorf("%w: 私钥前缀必须为 0x00", errno.ErrFormat)
		}
		key = keyData[1:]
		if !curve.Secp256k1.IsValidPrivateKey(key) {
			return nil, fmt.Errorf("%w: 私钥超出范围", errno.ErrFormat)
		}
	} else {
		key = keyData
		if !curve.Secp256k1.IsValidPublicKey(key) {
			return nil, fmt.Errorf("%w: 公钥不在曲线上", errno.ErrFormat)
		}
	}

	return newExtendedKey(pair, key, chainCode, parentFP, depth, childNumber, isPrivate)
}

// NewKeyFromString 解析 Base58Check 编码的扩展密钥
func NewKeyFromString(s string) (*ExtendedKey, error) {
	record, err := decodeCheck(s)
	if err != nil {
		return nil, err
	}
	return Parse(record)
}

// NewKeyFromStringWithVersions 只接受 table 中的版本号
func NewKeyFromStringWithVersions(s string, table []VersionPair) (*ExtendedKey, error) {
	record, err := decodeCheck(s)
	if err != nil {
		return nil, err
	}
	return ParseWithVersions(record, table)
}

// RemapVersion 只替换记录中的版本号，用于在 xpub/ypub/zpub 等格式之间转换展示。
// 密钥类型由记录本身判断 (0x00 前缀为私钥)。
func RemapVersion(record []byte, target VersionPair) ([]byte, error) {
	if len(record) != RecordLen {
		return nil, fmt.Errorf("%w: 长度 %d, 期望 %d", errno.ErrFormat, len(record), RecordLen)
	}
	out := append([]byte(nil), record...)
	if record[45] == 0x00 {
		copy(out[:4], target.Private[:])
	} else {
		copy(out[:4], target.Public[:])
	}
	return out, nil
}

// RemapString 对 Base58Check 字符串做 RemapVersion
func RemapString(s string, target VersionPair) (string, error) {
	record, err := decodeCheck(s)
	if err != nil {
		return "", err
	}
	remapped, err := RemapVersion(record, target)
	if err != nil {
		return "", err
	}
	return encodeCheck(remapped), nil
}

// IsValidExtendedKey 字符串能否被解析为扩展密钥
func IsValidExtendedKey(s string) bool {
	_, err := NewKeyFromString(s)
	return err == nil
}

func encodeCheck(payload []byte) string {
	return base58.Encode(append(append([]byte(nil), payload...), crypto_util.Checksum(payload)...))
}

func decodeCheck(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) != RecordLen+crypto_util.ChecksumLen {
		return nil, fmt.Errorf("%w: 解码后长度 %d", errno.ErrFormat, len(decoded))
	}
	payload := decoded[:RecordLen]
	if !bytes.Equal(crypto_util.Checksum(payload), decoded[RecordLen:]) {
		return nil, fmt.Errorf("%w: 校验和不匹配", errno.ErrFormat)
	}
	return payload, nil
}
