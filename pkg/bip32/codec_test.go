package bip32

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"hdwallet-core/pkg/errno"
	"hdwallet-core/pkg/hdpath"
)

const vector1Xpub = "xpub6ASuArnXKPbfEwhqN6e3mwBcDTgzisQN1wXN9BJcM47sSikHjJf3UFHKkNAWbWMiGj7Wf5uMash7SyYq527Hqck2AxYysAA7xmALppuCkwQ"

func vector1Key(t *testing.T, path string) *ExtendedKey {
	t.Helper()
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	w, err := NewMasterKeyFromSeed(seed, nil)
	require.NoError(t, err)
	k, err := w.DerivePath(path)
	require.NoError(t, err)
	return k
}

func TestSerializeLayout(t *testing.T) {
	k := vector1Key(t, "m/0'/1")
	record := k.Serialize()
	require.Len(t, record, RecordLen)

	assert.Equal(t, BitcoinLegacy.Private[:], record[:4])
	assert.Equal(t, byte(2), record[4])
	assert.Equal(t, "5c1bd648", hex.EncodeToString(record[5:9]))
	assert.Equal(t, []byte{0, 0, 0, 1}, record[9:13])
	assert.Equal(t, "2a7857631386ba23dacac34180dd1983734e444fdbf774041578e9b6adb37c19", hex.EncodeToString(record[13:45]))
	assert.Equal(t, byte(0x00), record[45])

	hardened := vector1Key(t, "m/0'").Serialize()
	assert.Equal(t, []byte{0x80, 0, 0, 0}, hardened[9:13])
}

func TestParseRoundTrip(t *testing.T) {
	for _, path := range []string{"", "m/0'", "m/0'/1", "m/0'/1/2'/2/1000000000"} {
		k := vector1Key(t, path)
		for _, key := range []*ExtendedKey{k, k.Neuter()} {
			parsed, err := Parse(key.Serialize())
			require.NoError(t, err)
			assert.Equal(t, key.Serialize(), parsed.Serialize())
			assert.Equal(t, key.IsPrivate(), parsed.IsPrivate())
			assert.Equal(t, key.PublicKey(), parsed.PublicKey())

			fromString, err := NewKeyFromString(key.String())
			require.NoError(t, err)
			assert.Equal(t, key.String(), fromString.String())
		}
	}
}

func TestParseErrors(t *testing.T) {
	good := vector1Key(t, "m/0'/1").Serialize()

	mutate := func(f func(b []byte)) []byte {
		b := append([]byte(nil), good...)
		f(b)
		return b
	}

	master := vector1Key(t, "").Serialize()

	tests := []struct {
		name   string
		record []byte
	}{
		{"short", good[:77]},
		{"long", append(append([]byte(nil), good...), 0)},
		{"unknown version", mutate(func(b []byte) { copy(b, []byte{1, 2, 3, 4}) })},
		{"private prefix", mutate(func(b []byte) { b[45] = 0x01 })},
		{"depth zero with parent", func() []byte {
			b := append([]byte(nil), master...)
			b[5] = 0xff
			return b
		}()},
		{"depth zero with child number", func() []byte {
			b := append([]byte(nil), master...)
			b[12] = 0x01
			return b
		}()},
		{"private out of range", mutate(func(b []byte) {
			for i := 46; i < 78; i++ {
				b[i] = 0xff
			}
		})},
		{"public not on curve", func() []byte {
			b := vector1Key(t, "m/0'/1").Neuter().Serialize()
			b[45] = 0x05
			return b
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.record)
			assert.True(t, errors.Is(err, errno.ErrFormat), "err = %v", err)
		})
	}
}

func TestNewKeyFromStringChecksum(t *testing.T) {
	decoded := base58.Decode(vector1Xpub)
	decoded[len(decoded)-1] ^= 0x01
	_, err := NewKeyFromString(base58.Encode(decoded))
	assert.True(t, errors.Is(err, errno.ErrFormat))

	_, err = NewKeyFromString("xpub")
	assert.True(t, errors.Is(err, errno.ErrFormat))
	assert.True(t, IsValidExtendedKey(vector1Xpub))
	assert.False(t, IsValidExtendedKey(vector1Xpub[:len(vector1Xpub)-1]))
}

func TestRemapVersion(t *testing.T) {
	seed := make([]byte, 32)
	w, err := NewMasterKeyFromSeed(seed, nil)
	require.NoError(t, err)
	account, err := w.DerivePath("m/84'/0'/0'")
	require.NoError(t, err)

	for _, key := range []*ExtendedKey{account, account.Neuter()} {
		record := key.Serialize()
		zrecord, err := RemapVersion(record, BitcoinNativeSegwit)
		require.NoError(t, err)
		assert.Equal(t, record[4:], zrecord[4:], "只允许修改版本号")

		back, err := RemapVersion(zrecord, BitcoinLegacy)
		require.NoError(t, err)
		assert.Equal(t, record, back)

		parsed, err := Parse(zrecord)
		require.NoError(t, err)
		assert.Equal(t, key.IsPrivate(), parsed.IsPrivate())
		assert.Equal(t, BitcoinNativeSegwit, parsed.Versions())
	}

	zpub, err := RemapString(account.Neuter().String(), BitcoinNativeSegwit)
	require.NoError(t, err)
	assert.Equal(t, "zpub", zpub[:4])
	assert.Equal(t, account.Neuter().WithVersions(BitcoinNativeSegwit).String(), zpub)

	_, err = RemapVersion(make([]byte, 10), BitcoinLegacy)
	assert.True(t, errors.Is(err, errno.ErrFormat))
}

func TestPublicDerivation(t *testing.T) {
	account := vector1Key(t, "m/0'")
	pub := account.Neuter()

	_, err := pub.Derive(hdpath.HardenedOffset)
	assert.True(t, errors.Is(err, errno.ErrDerivationTypeNotSupported))
	assert.True(t, errors.Is(err, ErrDeriveHardFromPublic))

	child, err := pub.Derive(1)
	require.NoError(t, err)
	assert.Equal(t, vector1Xpub, child.String())

	_, err = pub.PrivateKey()
	assert.True(t, errors.Is(err, ErrNotPrivate))
	code, _ := errno.Decode(err)
	assert.Equal(t, errno.ErrDerivationTypeNotSupported.Code, code)
}

// 使用 btcutil/hdkeychain 作为独立实现交叉验证
func TestDeriveMatchesHDKeychain(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), MinSeedBytes, MaxSeedBytes).Draw(rt, "seed")
		path := rapid.SliceOfN(rapid.Uint32(), 1, 4).Draw(rt, "path")

		ours, err := NewMaster(seed, BitcoinLegacy)
		if err != nil {
			rt.Skip("unusable seed")
		}
		theirs, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
		if err != nil {
			rt.Fatalf("hdkeychain.NewMaster: %v", err)
		}

		for _, index := range path {
			ours, err = ours.Derive(index)
			if errors.Is(err, ErrInvalidChild) {
				rt.Skip("invalid child")
			}
			if err != nil {
				rt.Fatalf("Derive(%d): %v", index, err)
			}
			theirs, err = theirs.Derive(index)
			if err != nil {
				rt.Fatalf("hdkeychain Derive(%d): %v", index, err)
			}
		}

		if ours.String() != theirs.String() {
			rt.Fatalf("xprv 不一致\n%s\n%s", ours.String(), theirs.String())
		}
		theirsPub, _ := theirs.Neuter()
		if ours.Neuter().String() != theirsPub.String() {
			rt.Fatalf("xpub 不一致")
		}
	})
}

func TestNeuterCommutesWithPublicDerive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(rt, "seed")
		index := rapid.Uint32Range(0, hdpath.HardenedOffset-1).Draw(rt, "index")

		master, err := NewMaster(seed, BitcoinLegacy)
		if err != nil {
			rt.Skip("unusable seed")
		}
		viaPrivate, err := master.Derive(index)
		if err != nil {
			rt.Skip("invalid child")
		}
		viaPublic, err := master.Neuter().Derive(index)
		if err != nil {
			rt.Fatalf("public derive: %v", err)
		}
		if viaPrivate.Neuter().String() != viaPublic.String() {
			rt.Fatalf("N(CKDpriv) != CKDpub(N)")
		}
	})
}

func TestDeterminism(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), MinSeedBytes, MaxSeedBytes).Draw(rt, "seed")
		a, errA := NewMasterKeyFromSeed(seed, nil)
		b, errB := NewMasterKeyFromSeed(seed, nil)
		if errA != nil || errB != nil {
			rt.Skip("unusable seed")
		}
		ka, _ := a.DerivePath("m/44'/0'/0'/0/0")
		kb, _ := b.DerivePath("m/44'/0'/0'/0/0")
		if ka.String() != kb.String() {
			rt.Fatalf("相同输入得到不同结果")
		}
	})
}
