package bip39

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"hdwallet-core/pkg/errno"
)

func TestGenerateMnemonic(t *testing.T) {
	service := NewMnemonicService()

	// 测试 12 个单词 (128 bits)
	mnemonic12, err := service.GenerateMnemonic(128)
	if err != nil {
		t.Fatalf("生成 12 词助记词失败: %v", err)
	}
	if n := len(strings.Fields(mnemonic12)); n != 12 {
		t.Errorf("期望 12 个单词, 实际 %d", n)
	}
	if !service.ValidateMnemonic(mnemonic12) {
		t.Errorf("生成的 12 词助记词无效")
	}

	// 测试 24 个单词 (256 bits)
	mnemonic24, err := service.GenerateMnemonic(256)
	if err != nil {
		t.Fatalf("生成 24 词助记词失败: %v", err)
	}
	if !service.ValidateMnemonic(mnemonic24) {
		t.Errorf("生成的 24 词助记词无效")
	}

	if _, err := service.GenerateMnemonic(100); err == nil {
		t.Errorf("非法熵位数应该返回错误")
	}
}

func TestMnemonicToSeed(t *testing.T) {
	service := NewMnemonicService()

	// 已知的测试向量 (Test Vector)
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	expectedSeedHex := "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"

	if !service.ValidateMnemonic(mnemonic) {
		t.Fatalf("测试向量助记词无效")
	}

	seed := service.MnemonicToSeed(mnemonic, "")
	if seedHex := hex.EncodeToString(seed); seedHex != expectedSeedHex {
		t.Errorf("Seed 生成不匹配。\n预期: %s\n实际: %s", expectedSeedHex, seedHex)
	}

	// 多余空白不影响结果
	seed2, err := service.SeedFromMnemonic("  "+strings.ReplaceAll(mnemonic, " ", "  ")+"\n", "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic 失败: %v", err)
	}
	if hex.EncodeToString(seed2) != expectedSeedHex {
		t.Errorf("规范化后的 Seed 不匹配")
	}
}

func TestValidateMnemonic_Invalid(t *testing.T) {
	service := NewMnemonicService()

	invalidMnemonic := "hello world invalid mnemonic phrase designed to fail validation check"
	if service.ValidateMnemonic(invalidMnemonic) {
		t.Errorf("期望验证失败，但验证通过了")
	}

	_, err := service.SeedFromMnemonic(invalidMnemonic, "")
	if !errors.Is(err, errno.ErrInvalidMnemonic) {
		t.Errorf("期望 ErrInvalidMnemonic, 实际 %v", err)
	}
}
