package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdwallet-core/pkg/errno"
)

const testMnemonic = "derive lab over dragon nothing pioneer until deputy inherit help next release"

func TestEncryptDecrypt(t *testing.T) {
	k, err := Encrypt(testMnemonic, "secure-password", LightScrypt)
	require.NoError(t, err)
	assert.Equal(t, "aes-256-gcm", k.Crypto.Cipher)
	assert.Equal(t, Version, k.Version)
	assert.Len(t, k.ID, 36)

	plaintext, err := Decrypt(k, "secure-password")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, plaintext)

	_, err = Decrypt(k, "wrong-password")
	assert.ErrorIs(t, err, errno.ErrKeystore)
}

func TestEncryptUsesFreshSalt(t *testing.T) {
	a, err := Encrypt(testMnemonic, "pw", LightScrypt)
	require.NoError(t, err)
	b, err := Encrypt(testMnemonic, "pw", LightScrypt)
	require.NoError(t, err)
	assert.NotEqual(t, a.Crypto.KDFParams.Salt, b.Crypto.KDFParams.Salt)
	assert.NotEqual(t, a.Crypto.CipherText, b.Crypto.CipherText)
}

func TestDecryptRejectsTampering(t *testing.T) {
	k, err := Encrypt(testMnemonic, "pw", LightScrypt)
	require.NoError(t, err)

	tampered := *k
	ct := []byte(tampered.Crypto.CipherText)
	if ct[0] == 'a' {
		ct[0] = 'b'
	} else {
		ct[0] = 'a'
	}
	tampered.Crypto.CipherText = string(ct)
	_, err = Decrypt(&tampered, "pw")
	assert.ErrorIs(t, err, errno.ErrKeystore)

	unknown := *k
	unknown.Crypto.Cipher = "aes-128-ctr"
	_, err = Decrypt(&unknown, "pw")
	assert.ErrorIs(t, err, errno.ErrKeystore)
}

func TestFileSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "wallet.json")

	k, err := Encrypt(testMnemonic, "123456", LightScrypt)
	require.NoError(t, err)
	require.NoError(t, k.SaveToFile(filename))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFromFile(filename)
	require.NoError(t, err)
	assert.Equal(t, k.ID, loaded.ID)

	plaintext, err := Decrypt(loaded, "123456")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, plaintext)
}

func TestDecryptRejectsBadKDFParams(t *testing.T) {
	k, err := Encrypt(testMnemonic, "pw", LightScrypt)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(p *KDFParams)
	}{
		{"dklen zero", func(p *KDFParams) { p.DKLen = 0 }},
		{"dklen short", func(p *KDFParams) { p.DKLen = 16 }},
		{"dklen long", func(p *KDFParams) { p.DKLen = 64 }},
		{"n not power of two", func(p *KDFParams) { p.N = 3000 }},
		{"n too large", func(p *KDFParams) { p.N = 1 << 30 }},
		{"n zero", func(p *KDFParams) { p.N = 0 }},
		{"r zero", func(p *KDFParams) { p.R = 0 }},
		{"p negative", func(p *KDFParams) { p.P = -1 }},
		{"r*p too large", func(p *KDFParams) { p.R = 1 << 20 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bad := *k
			tc.mutate(&bad.Crypto.KDFParams)
			assert.NotPanics(t, func() {
				_, err := Decrypt(&bad, "pw")
				assert.ErrorIs(t, err, errno.ErrKeystore)
			})
		})
	}

	// 原文件不受影响
	plaintext, err := Decrypt(k, "pw")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, plaintext)
}
