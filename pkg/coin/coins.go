package coin

import (
	"github.com/btcsuite/btcd/chaincfg"

	"hdwallet-core/pkg/address"
	"hdwallet-core/pkg/bip32"
)

// BIP-44 coin type
const (
	CoinTypeBTC     uint32 = 0
	CoinTypeLTC     uint32 = 2
	CoinTypeDOGE    uint32 = 3
	CoinTypeGRS     uint32 = 17
	CoinTypeETH     uint32 = 60
	CoinTypeXRP     uint32 = 144
	CoinTypeStellar uint32 = 148
	CoinTypeFIO     uint32 = 235
	CoinTypeDOT     uint32 = 354
	CoinTypeKSM     uint32 = 434
	CoinTypeSolana  uint32 = 501
	CoinTypeBNB     uint32 = 714
	CoinTypeTezos   uint32 = 1729
)

// utxoCoin BTC 系网络，每种派生方案对应一种地址类型
func utxoCoin(params NetworkParams, derivations ...utxoDerivation) Coin {
	c := &secpCoin{baseCoin{params: params}}
	for _, d := range derivations {
		c.derivations = append(c.derivations, Derivation{
			Name:     d.name,
			Template: d.template,
			Versions: d.versions,
			Encoder:  address.NewBTCGenerator(params.ChainParams(d.versions), d.addrType),
		})
	}
	return c
}

type utxoDerivation struct {
	name     DerivationName
	template string
	versions bip32.VersionPair
	addrType address.BTCAddressType
}

// evmCoin m/44'/60' 下的 EVM 链，format 决定地址展示格式
func evmCoin(symbol, name string, chainID uint64, format address.EVMFormat) Coin {
	dname := Legacy
	switch format {
	case address.EVMXDC:
		dname = XDC
	case address.EVMOKX:
		dname = OKX
	case address.EVMHarmony:
		dname = Harmony
	}

	c := &secpCoin{baseCoin{params: NetworkParams{
		Symbol:   symbol,
		Name:     name,
		CoinType: CoinTypeETH,
		Curve:    Secp256k1,
		ChainID:  chainID,
	}}}
	c.derivations = append(c.derivations, evmDerivation(dname, format))
	// Harmony 同时提供 0x 格式
	if format == address.EVMHarmony {
		c.derivations = append(c.derivations, evmDerivation(Legacy, address.EVMHex))
	}
	return c
}

func evmDerivation(name DerivationName, format address.EVMFormat) Derivation {
	return Derivation{
		Name:     name,
		Template: "m/44'/60'/ACCOUNT'/0/0",
		Versions: bip32.BitcoinLegacy,
		Encoder:  address.NewEVMGenerator(format),
	}
}

// simpleSecpCoin 单一派生方案、xprv/xpub 版本号的 secp256k1 币种
func simpleSecpCoin(params NetworkParams, name DerivationName, template string, enc Encoder) Coin {
	params.Curve = Secp256k1
	return &secpCoin{baseCoin{
		params: params,
		derivations: []Derivation{{
			Name:     name,
			Template: template,
			Versions: bip32.BitcoinLegacy,
			Encoder:  enc,
		}},
	}}
}

func ed25519Coin(params NetworkParams, name DerivationName, template string, enc Encoder) Coin {
	return &edCoin{baseCoin{
		params: params,
		derivations: []Derivation{{
			Name:     name,
			Template: template,
			Encoder:  enc,
		}},
	}}
}

// builtinCoins 内置币种，顺序即 Coins() 的返回顺序
func builtinCoins() []Coin {
	btc := NetworkParams{
		Symbol:     "BTC",
		Name:       "bitcoin",
		CoinType:   CoinTypeBTC,
		Curve:      Secp256k1,
		PubKeyHash: chaincfg.MainNetParams.PubKeyHashAddrID,
		ScriptHash: chaincfg.MainNetParams.ScriptHashAddrID,
		WIF:        chaincfg.MainNetParams.PrivateKeyID,
		Bech32HRP:  chaincfg.MainNetParams.Bech32HRPSegwit,
	}
	ltc := NetworkParams{Symbol: "LTC", Name: "litecoin", CoinType: CoinTypeLTC, Curve: Secp256k1,
		PubKeyHash: 0x30, ScriptHash: 0x32, WIF: 0xb0, Bech32HRP: "ltc"}
	doge := NetworkParams{Symbol: "DOGE", Name: "dogecoin", CoinType: CoinTypeDOGE, Curve: Secp256k1,
		PubKeyHash: 0x1e, ScriptHash: 0x16, WIF: 0x9e}
	grs := NetworkParams{Symbol: "GRS", Name: "groestlcoin", CoinType: CoinTypeGRS, Curve: Secp256k1,
		PubKeyHash: 0x24, ScriptHash: 0x05, WIF: 0x80, Bech32HRP: "grs"}

	return []Coin{
		utxoCoin(btc,
			utxoDerivation{Segwit, "m/84'/0'/ACCOUNT'/0/0", bip32.BitcoinNativeSegwit, address.P2WPKH},
			utxoDerivation{WrappedSegwit, "m/49'/0'/ACCOUNT'/0/0", bip32.BitcoinWrappedSegwit, address.P2WPKHInP2SH},
			utxoDerivation{Legacy, "m/44'/0'/ACCOUNT'/0/0", bip32.BitcoinLegacy, address.P2PKH},
		),
		utxoCoin(ltc,
			utxoDerivation{Legacy, "m/44'/2'/ACCOUNT'/0/0", bip32.LitecoinLegacy, address.P2PKH},
		),
		utxoCoin(doge,
			utxoDerivation{Legacy, "m/44'/3'/ACCOUNT'/0/0", bip32.DogecoinLegacy, address.P2PKH},
		),
		// Groestlcoin 的 base58 校验和使用 groestl 哈希，这里只提供 bech32 地址
		utxoCoin(grs,
			utxoDerivation{Segwit, "m/84'/17'/ACCOUNT'/0/0", bip32.BitcoinNativeSegwit, address.P2WPKH},
		),

		evmCoin("ETH", "ethereum", 1, address.EVMHex),
		evmCoin("ETH_TESTNET", "ethereum sepolia", 11155111, address.EVMHex),
		evmCoin("MATIC", "polygon", 137, address.EVMHex),
		evmCoin("BSC", "bnb smart chain", 56, address.EVMHex),
		evmCoin("BSC_TESTNET", "bnb smart chain testnet", 97, address.EVMHex),
		evmCoin("ONE", "harmony", 1666600000, address.EVMHarmony),
		evmCoin("CRS", "cronos", 25, address.EVMHex),
		evmCoin("VET", "vechain", 74, address.EVMHex),
		evmCoin("AVAX", "avalanche c-chain", 43114, address.EVMHex),
		evmCoin("XDC", "xdc network", 50, address.EVMXDC),
		evmCoin("KCC", "kcc", 321, address.EVMHex),
		evmCoin("OKX", "okx chain", 66, address.EVMOKX),
		evmCoin("ARB", "arbitrum one", 42161, address.EVMHex),
		evmCoin("OP", "optimism", 10, address.EVMHex),
		evmCoin("BASE", "base", 8453, address.EVMHex),

		simpleSecpCoin(NetworkParams{Symbol: "BNB", Name: "bnb beacon chain", CoinType: CoinTypeBNB, Bech32HRP: "bnb"},
			BNB, "m/44'/714'/ACCOUNT'/0/0", address.NewBech32Generator("bnb")),
		simpleSecpCoin(NetworkParams{Symbol: "FIO", Name: "fio", CoinType: CoinTypeFIO},
			FIO, "m/44'/235'/ACCOUNT'/0/0", address.NewFIOGenerator()),
		simpleSecpCoin(NetworkParams{Symbol: "XRP", Name: "xrp ledger", CoinType: CoinTypeXRP},
			XRP, "m/44'/144'/ACCOUNT'/0/0", address.NewXRPGenerator()),

		ed25519Coin(NetworkParams{Symbol: "STELLAR", Name: "stellar", CoinType: CoinTypeStellar, Curve: Ed25519},
			Stellar, "m/44'/148'/ACCOUNT'", address.NewStellarGenerator()),
		ed25519Coin(NetworkParams{Symbol: "SOLANA", Name: "solana", CoinType: CoinTypeSolana, Curve: Ed25519},
			Solana, "m/44'/501'/ACCOUNT'/0'", address.NewSolanaGenerator()),
		ed25519Coin(NetworkParams{Symbol: "TEZOS", Name: "tezos", CoinType: CoinTypeTezos, Curve: Ed25519},
			Tezos, "m/44'/1729'/ACCOUNT'/0'", address.NewTezosGenerator()),
		ed25519Coin(NetworkParams{Symbol: "DOT", Name: "polkadot", CoinType: CoinTypeDOT, Curve: Ed25519SS58, SS58Prefix: address.SS58Polkadot},
			DOT, "m/44'/354'/ACCOUNT'/0'/0'", address.NewSS58Generator(address.SS58Polkadot)),
		ed25519Coin(NetworkParams{Symbol: "KSM", Name: "kusama", CoinType: CoinTypeKSM, Curve: Ed25519SS58, SS58Prefix: address.SS58Kusama},
			KSM, "m/44'/434'/ACCOUNT'/0'/0'", address.NewSS58Generator(address.SS58Kusama)),
	}
}
