package bip39

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"hdwallet-core/pkg/errno"
)

// MnemonicService 提供助记词相关的功能
type MnemonicService struct{}

// NewMnemonicService 创建一个新的助记词服务实例
func NewMnemonicService() *MnemonicService {
	return &MnemonicService{}
}

// GenerateMnemonic 生成一个新的随机助记词 (BIP-39)。
// bitSize: 熵的位数，128 (12个单词) 到 256 (24个单词)，必须是 32 的倍数。
func (s *MnemonicService) GenerateMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", fmt.Errorf("生成熵失败: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("生成助记词失败: %w", err)
	}

	return mnemonic, nil
}

// ValidateMnemonic 验证助记词是否有效。
func (s *MnemonicService) ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalize(mnemonic))
}

// MnemonicToSeed 将助记词转换为种子 (BIP-39 Seed)。
// password: 可选的密码 (Passphrase)，不需要时传空字符串 ""。
// 不做校验，调用方需要先 ValidateMnemonic。
func (s *MnemonicService) MnemonicToSeed(mnemonic string, password string) []byte {
	return bip39.NewSeed(normalize(mnemonic), password)
}

// SeedFromMnemonic 校验助记词后生成 64 字节种子
func (s *MnemonicService) SeedFromMnemonic(mnemonic string, password string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(normalize(mnemonic), password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errno.ErrInvalidMnemonic, err)
	}
	return seed, nil
}

// normalize 去掉多余空白，助记词单词之间只保留一个空格
func normalize(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}
