// Package curve 抽象出密钥派生和地址编码需要的椭圆曲线能力。
package curve

import "errors"

var (
	ErrInvalidPrivateKey = errors.New("无效的私钥")
	ErrInvalidPublicKey  = errors.New("无效的公钥")
	ErrTweakOutOfRange   = errors.New("tweak 超出曲线阶")
	ErrPointAtInfinity   = errors.New("结果为无穷远点")
)

// Curve 定义一条签名曲线的基本能力
type Curve interface {
	// Name 返回曲线名称
	Name() string
	// PublicKey 由私钥计算公钥 (secp256k1 为 33 字节压缩格式，ed25519 为 32 字节)
	PublicKey(priv []byte) ([]byte, error)
	// IsValidPrivateKey 检查私钥是否可用
	IsValidPrivateKey(priv []byte) bool
	// IsValidPublicKey 检查公钥是否在曲线上
	IsValidPublicKey(pub []byte) bool
	// Sign 对消息签名。secp256k1 要求 msg 为 32 字节摘要
	Sign(priv, msg []byte) ([]byte, error)
	// Verify 验证签名
	Verify(pub, msg, sig []byte) bool
}
