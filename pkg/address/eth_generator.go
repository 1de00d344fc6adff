package address

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"hdwallet-core/pkg/curve"
)

// EVMFormat EVM 链的地址展示格式
type EVMFormat int

const (
	// EVMHex EIP-55 校验大小写的 0x 地址
	EVMHex EVMFormat = iota
	// EVMXDC XDC 网络使用 xdc 替换 0x
	EVMXDC
	// EVMHarmony Harmony 的 bech32 "one" 地址
	EVMHarmony
	// EVMOKX OKX Chain 的 bech32 "ex" 地址
	EVMOKX
)

// ETHGenerator 以太坊及 EVM 兼容链地址生成器
type ETHGenerator struct {
	format EVMFormat
}

func NewETHGenerator() *ETHGenerator {
	return &ETHGenerator{format: EVMHex}
}

func NewEVMGenerator(format EVMFormat) *ETHGenerator {
	return &ETHGenerator{format: format}
}

// PublicAddress 接受 33 字节压缩、65 字节非压缩 (0x04...) 或 64 字节无前缀公钥
func (g *ETHGenerator) PublicAddress(pub []byte) (string, error) {
	addr, err := evmAddress(pub)
	if err != nil {
		return "", err
	}

	switch g.format {
	case EVMXDC:
		return "xdc" + addr.Hex()[2:], nil
	case EVMHarmony:
		return bech32Address("one", addr.Bytes())
	case EVMOKX:
		return bech32Address("ex", addr.Bytes())
	default:
		return addr.Hex(), nil
	}
}

func (g *ETHGenerator) IsValidAddress(address string) bool {
	switch g.format {
	case EVMXDC:
		if !strings.HasPrefix(address, "xdc") {
			return false
		}
		return isChecksumHex("0x" + address[3:])
	case EVMHarmony:
		return isBech32Hash(address, "one")
	case EVMOKX:
		return isBech32Hash(address, "ex")
	default:
		return isChecksumHex(address)
	}
}

// PrivateAddress 0x 前缀的十六进制私钥
func (g *ETHGenerator) PrivateAddress(priv []byte) (string, error) {
	if !curve.Secp256k1.IsValidPrivateKey(priv) {
		return "", invalidPrivateKey("secp256k1 私钥无效")
	}
	return "0x" + hex.EncodeToString(priv), nil
}

func evmAddress(pub []byte) (common.Address, error) {
	switch len(pub) {
	case 64:
		pub = append([]byte{0x04}, pub...)
	case 33, 65:
	default:
		return common.Address{}, invalidPublicKey("EVM 公钥长度错误: %d", len(pub))
	}

	unc, err := curve.Secp256k1.Uncompressed(pub)
	if err != nil {
		return common.Address{}, invalidPublicKey("公钥不在 secp256k1 曲线上")
	}
	key, err := crypto.UnmarshalPubkey(unc)
	if err != nil {
		return common.Address{}, invalidPublicKey("%v", err)
	}
	return crypto.PubkeyToAddress(*key), nil
}

// isChecksumHex 全小写/全大写直接接受，混合大小写必须符合 EIP-55
func isChecksumHex(address string) bool {
	if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
		return false
	}
	body := address[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return common.HexToAddress(address).Hex() == address
}
