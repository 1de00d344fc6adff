package crypto_util

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashes(t *testing.T) {
	input := []byte("hello world")

	tests := []struct {
		name string
		got  []byte
		want string
	}{
		{"sha256", SHA256(input), "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
		{"keccak256", Keccak256(input), "47173285a8d7341e5e972fc677286384f802f8ef42a5ec5f03bbfa254cb01fad"},
		{"keccak256 split", Keccak256([]byte("hello "), []byte("world")), "47173285a8d7341e5e972fc677286384f802f8ef42a5ec5f03bbfa254cb01fad"},
		{"ripemd160", RIPEMD160(input), "98c615784ccb5fe5936fbc0cbe9dfdb408d92f0f"},
		{"ripemd160 empty", RIPEMD160(nil), "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		{"double sha256 empty", DoubleSHA256(nil), "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hex.EncodeToString(tt.got))
		})
	}
}

func TestDigestLengths(t *testing.T) {
	input := []byte("hello world")
	assert.Len(t, Hash160(input), 20)
	assert.Len(t, Blake2b160(input), 20)
	assert.Len(t, Blake2b512(input), 64)
	assert.Len(t, Checksum(input), ChecksumLen)
	assert.Equal(t, Blake2b512([]byte("hello "), []byte("world")), Blake2b512(input))

	il, ir := HmacSHA512([]byte("Bitcoin seed"), input)
	assert.Len(t, il, 32)
	assert.Len(t, ir, 32)
}
