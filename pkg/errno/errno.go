package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode tries to convert an error to Errno.
// Wrapped errors are unwrapped, the message keeps the full chain.
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, err.Error()
	}
	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, err.Error()
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
)

// Key derivation and address errors (30000+)
var (
	ErrFormat                     = Errno{Code: 30001, Message: "invalid extended key format"}
	ErrDerivePath                 = Errno{Code: 30002, Message: "invalid derivation path"}
	ErrDerivationTypeNotSupported = Errno{Code: 30003, Message: "derivation type not supported"}
	ErrCoinNotSupported           = Errno{Code: 30004, Message: "coin not supported"}
	ErrInvalidPublicKey           = Errno{Code: 30005, Message: "invalid public key"}
	ErrInvalidSeed                = Errno{Code: 30006, Message: "invalid seed"}
	ErrInvalidMnemonic            = Errno{Code: 30007, Message: "invalid mnemonic"}
	ErrInvalidAddress             = Errno{Code: 30008, Message: "invalid address"}
	ErrGeneration                 = Errno{Code: 30009, Message: "key generation failed"}
	ErrInvalidPrivateKey          = Errno{Code: 30010, Message: "invalid private key"}
	ErrKeystore                   = Errno{Code: 30011, Message: "keystore decryption failed"}
)
