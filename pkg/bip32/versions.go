package bip32

import (
	"encoding/hex"
)

// Version 扩展密钥的 4 字节版本前缀
type Version [4]byte

func (v Version) String() string {
	return hex.EncodeToString(v[:])
}

// VersionPair 同一地址格式下私钥和公钥的版本号
type VersionPair struct {
	Name    string
	Private Version
	Public  Version
}

// 常用版本号，和现有钱包 bit 级兼容
var (
	BitcoinLegacy        = VersionPair{Name: "xpub", Private: Version{0x04, 0x88, 0xad, 0xe4}, Public: Version{0x04, 0x88, 0xb2, 0x1e}}
	BitcoinWrappedSegwit = VersionPair{Name: "ypub", Private: Version{0x04, 0x9d, 0x78, 0x78}, Public: Version{0x04, 0x9d, 0x7c, 0xb2}}
	BitcoinNativeSegwit  = VersionPair{Name: "zpub", Private: Version{0x04, 0xb2, 0x43, 0x0c}, Public: Version{0x04, 0xb2, 0x47, 0x46}}
	BitcoinTestnet       = VersionPair{Name: "tpub", Private: Version{0x04, 0x35, 0x83, 0x94}, Public: Version{0x04, 0x35, 0x87, 0xcf}}
	LitecoinLegacy       = VersionPair{Name: "Ltub", Private: Version{0x01, 0x9d, 0x9c, 0xfe}, Public: Version{0x01, 0x9d, 0xa4, 0x62}}
	DogecoinLegacy       = VersionPair{Name: "dgub", Private: Version{0x02, 0xfa, 0xc3, 0x98}, Public: Version{0x02, 0xfa, 0xca, 0xfd}}
)

// KnownVersions Parse 能识别的版本号表
var KnownVersions = []VersionPair{
	BitcoinLegacy,
	BitcoinWrappedSegwit,
	BitcoinNativeSegwit,
	BitcoinTestnet,
	LitecoinLegacy,
	DogecoinLegacy,
}

// LookupVersion 在表中查找版本号，返回所属的版本对以及是否为私钥版本
func LookupVersion(v Version, table []VersionPair) (pair VersionPair, private bool, ok bool) {
	for _, p := range table {
		switch v {
		case p.Private:
			return p, true, true
		case p.Public:
			return p, false, true
		}
	}
	return VersionPair{}, false, false
}

// VersionPairByName 按名称 (xpub/ypub/zpub/...) 查找
func VersionPairByName(name string) (VersionPair, bool) {
	for _, p := range KnownVersions {
		if p.Name == name {
			return p, true
		}
	}
	return VersionPair{}, false
}
