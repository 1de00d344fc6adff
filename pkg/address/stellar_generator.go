package address

import (
	"encoding/base32"
	"encoding/binary"

	"hdwallet-core/pkg/curve"
)

// StrKey 版本字节 (base32 编码后的首字母 G / S)
const (
	stellarAccountVersion byte = 6 << 3  // G
	stellarSeedVersion    byte = 18 << 3 // S
)

var strKeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// StellarGenerator Stellar StrKey: base32(version || key || crc16-xmodem LE)
type StellarGenerator struct{}

func NewStellarGenerator() *StellarGenerator {
	return &StellarGenerator{}
}

func (g *StellarGenerator) PublicAddress(pub []byte) (string, error) {
	if err := rawEd25519(pub); err != nil {
		return "", err
	}
	return encodeStrKey(stellarAccountVersion, pub), nil
}

func (g *StellarGenerator) IsValidAddress(address string) bool {
	_, ok := decodeStrKey(stellarAccountVersion, address)
	return ok
}

// PrivateAddress S 开头的 seed
func (g *StellarGenerator) PrivateAddress(priv []byte) (string, error) {
	if !curve.Ed25519.IsValidPrivateKey(priv) {
		return "", invalidPrivateKey("需要 32 字节 ed25519 种子")
	}
	return encodeStrKey(stellarSeedVersion, priv), nil
}

// IsValidSecret 校验 S 开头的 seed
func (g *StellarGenerator) IsValidSecret(secret string) bool {
	_, ok := decodeStrKey(stellarSeedVersion, secret)
	return ok
}

func encodeStrKey(version byte, payload []byte) string {
	data := make([]byte, 0, 1+len(payload)+2)
	data = append(data, version)
	data = append(data, payload...)
	data = binary.LittleEndian.AppendUint16(data, crc16XModem(data))
	return strKeyEncoding.EncodeToString(data)
}

func decodeStrKey(version byte, s string) ([]byte, bool) {
	// 1 + 32 + 2 = 35 字节 -> 56 个 base32 字符
	if len(s) != 56 {
		return nil, false
	}
	data, err := strKeyEncoding.DecodeString(s)
	if err != nil || len(data) != 35 || data[0] != version {
		return nil, false
	}
	body, checksum := data[:33], data[33:]
	if binary.LittleEndian.Uint16(checksum) != crc16XModem(body) {
		return nil, false
	}
	// 拒绝非规范编码 (最后一个字符的未用位不为零)
	if strKeyEncoding.EncodeToString(data) != s {
		return nil, false
	}
	return body[1:], true
}

// crc16XModem 多项式 0x1021，初值 0
func crc16XModem(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
