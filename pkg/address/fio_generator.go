package address

import (
	"bytes"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"

	"hdwallet-core/pkg/crypto_util"
	"hdwallet-core/pkg/curve"
)

const fioPrefix = "FIO"

// FIOGenerator FIO 公钥地址: "FIO" + base58(pub || ripemd160(pub)[:4])
type FIOGenerator struct{}

func NewFIOGenerator() *FIOGenerator {
	return &FIOGenerator{}
}

func (g *FIOGenerator) PublicAddress(pub []byte) (string, error) {
	if err := compressedSecp256k1(pub); err != nil {
		return "", err
	}
	checksum := crypto_util.RIPEMD160(pub)[:4]
	return fioPrefix + base58.Encode(append(append([]byte(nil), pub...), checksum...)), nil
}

func (g *FIOGenerator) IsValidAddress(address string) bool {
	if !strings.HasPrefix(address, fioPrefix) {
		return false
	}
	data := base58.Decode(address[len(fioPrefix):])
	if len(data) != 37 {
		return false
	}
	pub, checksum := data[:33], data[33:]
	if !bytes.Equal(crypto_util.RIPEMD160(pub)[:4], checksum) {
		return false
	}
	return curve.Secp256k1.IsValidPublicKey(pub)
}

// EncodedPublicKey FIO 的公钥字符串就是地址本身
func (g *FIOGenerator) EncodedPublicKey(pub []byte) (string, error) {
	return g.PublicAddress(pub)
}

// PrivateAddress 非压缩 WIF (5...)，EOSIO 系私钥格式
func (g *FIOGenerator) PrivateAddress(priv []byte) (string, error) {
	if !curve.Secp256k1.IsValidPrivateKey(priv) {
		return "", invalidPrivateKey("secp256k1 私钥无效")
	}
	key, _ := btcec.PrivKeyFromBytes(priv)
	wif, err := btcutil.NewWIF(key, &chaincfg.MainNetParams, false)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}
