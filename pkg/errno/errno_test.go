package errno

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"nil", nil, OK.Code, OK.Message},
		{"plain errno", ErrCoinNotSupported, ErrCoinNotSupported.Code, ErrCoinNotSupported.Message},
		{"pointer errno", &ErrInvalidSeed, ErrInvalidSeed.Code, ErrInvalidSeed.Message},
		{"wrapped errno", fmt.Errorf("%w: DOGE2", ErrCoinNotSupported), ErrCoinNotSupported.Code, "coin not supported: DOGE2"},
		{"foreign error", errors.New("boom"), InternalServerError.Code, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Decode(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrorsIsThroughWrap(t *testing.T) {
	err := fmt.Errorf("segment 3: %w", fmt.Errorf("%w: index too large", ErrDerivePath))
	assert.True(t, errors.Is(err, ErrDerivePath))
	assert.False(t, errors.Is(err, ErrFormat))
}
