// Package keystore 把助记词用密码加密后存到磁盘。
// 文件结构参照 Ethereum Keystore V3，但加密内容是助记词而不是单个私钥。
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/errno"
)

const (
	Version = 3

	cipherName = "aes-256-gcm"
	kdfName    = "scrypt"
)

// EncryptedMnemonicJSON 磁盘上的文件格式
type EncryptedMnemonicJSON struct {
	Crypto  CryptoJSON `json:"crypto"`
	ID      string     `json:"id"`
	Version int        `json:"version"`
}

type CryptoJSON struct {
	Cipher       string       `json:"cipher"`
	CipherText   string       `json:"ciphertext"`
	CipherParams CipherParams `json:"cipherparams"`
	KDF          string       `json:"kdf"`
	KDFParams    KDFParams    `json:"kdfparams"`
	MAC          string       `json:"mac"`
}

type CipherParams struct {
	Nonce string `json:"nonce"`
}

type KDFParams struct {
	DKLen int    `json:"dklen"`
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
	Salt  string `json:"salt"`
}

// ScryptParams 加密时使用的 KDF 参数
type ScryptParams struct {
	N, R, P int
}

var (
	// StandardScrypt 与 geth 的 StandardScryptN 相同
	StandardScrypt = ScryptParams{N: 1 << 18, R: 8, P: 1}
	// LightScrypt 测试和低配设备使用
	LightScrypt = ScryptParams{N: 1 << 12, R: 8, P: 6}
)

const (
	dkLen = 32
	// r*p 的上限，LightScrypt 是 48
	maxScryptRP = 64
)

// Encrypt 加密助记词
func Encrypt(mnemonic, password string, params ScryptParams) (*EncryptedMnemonicJSON, error) {
	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("生成 salt 失败: %w", err)
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, dkLen)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(derivedKey)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("生成 nonce 失败: %w", err)
	}
	ciphertext := gcm.Seal(nil, nonce, []byte(mnemonic), nil)

	return &EncryptedMnemonicJSON{
		Version: Version,
		ID:      uuid.NewString(),
		Crypto: CryptoJSON{
			Cipher:       cipherName,
			CipherText:   hex.EncodeToString(ciphertext),
			CipherParams: CipherParams{Nonce: hex.EncodeToString(nonce)},
			KDF:          kdfName,
			KDFParams: KDFParams{
				DKLen: dkLen,
				N:     params.N,
				R:     params.R,
				P:     params.P,
				Salt:  hex.EncodeToString(salt),
			},
			MAC: hex.EncodeToString(mac(derivedKey, ciphertext)),
		},
	}, nil
}

// Decrypt 解密出助记词。密码错误和数据损坏都返回 ErrKeystore
func Decrypt(k *EncryptedMnemonicJSON, password string) (string, error) {
	if k.Version != Version || k.Crypto.Cipher != cipherName || k.Crypto.KDF != kdfName {
		return "", fmt.Errorf("%w: 不支持的格式 v%d %s/%s", errno.ErrKeystore, k.Version, k.Crypto.Cipher, k.Crypto.KDF)
	}

	salt, err := hex.DecodeString(k.Crypto.KDFParams.Salt)
	if err != nil {
		return "", fmt.Errorf("%w: salt: %v", errno.ErrKeystore, err)
	}
	nonce, err := hex.DecodeString(k.Crypto.CipherParams.Nonce)
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %v", errno.ErrKeystore, err)
	}
	ciphertext, err := hex.DecodeString(k.Crypto.CipherText)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %v", errno.ErrKeystore, err)
	}
	wantMAC, err := hex.DecodeString(k.Crypto.MAC)
	if err != nil {
		return "", fmt.Errorf("%w: mac: %v", errno.ErrKeystore, err)
	}

	p := k.Crypto.KDFParams
	if err := checkKDFParams(p); err != nil {
		return "", err
	}
	derivedKey, err := scrypt.Key([]byte(password), salt, p.N, p.R, p.P, p.DKLen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errno.ErrKeystore, err)
	}
	if !hmac.Equal(wantMAC, mac(derivedKey, ciphertext)) {
		return "", fmt.Errorf("%w: 密码错误或数据损坏", errno.ErrKeystore)
	}

	gcm, err := newGCM(derivedKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errno.ErrKeystore, err)
	}
	if len(nonce) != gcm.NonceSize() {
		return "", fmt.Errorf("%w: nonce 长度 %d", errno.ErrKeystore, len(nonce))
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errno.ErrKeystore, err)
	}
	return string(plaintext), nil
}

// SaveToFile 权限 0600
func (k *EncryptedMnemonicJSON) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o600)
}

func LoadFromFile(filename string) (*EncryptedMnemonicJSON, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var k EncryptedMnemonicJSON
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("%w: %v", errno.ErrKeystore, err)
	}
	return &k, nil
}

// checkKDFParams 文件里的参数不可信，dklen 必须是 32，N/R/P 不能超过 StandardScrypt 的开销
func checkKDFParams(p KDFParams) error {
	if p.DKLen != dkLen {
		return fmt.Errorf("%w: dklen %d", errno.ErrKeystore, p.DKLen)
	}
	if p.N <= 1 || p.N > StandardScrypt.N || p.N&(p.N-1) != 0 {
		return fmt.Errorf("%w: n %d", errno.ErrKeystore, p.N)
	}
	if p.R < 1 || p.P < 1 || p.R > maxScryptRP || p.P > maxScryptRP || p.R*p.P > maxScryptRP {
		return fmt.Errorf("%w: r %d p %d", errno.ErrKeystore, p.R, p.P)
	}
	return nil
}

// mac = keccak256(derivedKey[16:32] || ciphertext)，和 V3 一致
func mac(derivedKey, ciphertext []byte) []byte {
	return crypto_util.Keccak256(derivedKey[16:32], ciphertext)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
