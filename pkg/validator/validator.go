package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hdwallet-core/pkg/coin"
	"hdwallet-core/pkg/hdpath"
)

var initOnce sync.Once

// Init 在 gin 的校验引擎上注册自定义规则:
//   - coin: 已注册的币种符号
//   - nonhardened: 小于 2^31 的非硬化索引
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			Register(v)
		}
	})
}

// Register 把自定义规则注册到指定实例，测试中可以用独立的 validator
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("coin", func(fl validator.FieldLevel) bool {
		_, err := coin.Default().Lookup(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("nonhardened", func(fl validator.FieldLevel) bool {
		return fl.Field().Uint() < uint64(hdpath.HardenedOffset)
	})
}

// GetErrorMsg translates validation errors into user-friendly messages
func GetErrorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "请求参数错误"
	}

	var errMsgs []string
	for _, e := range validationErrors {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 不能为空", field))
		case "coin":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 不是支持的币种", field))
		case "nonhardened":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 必须小于 2^31", field))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 长度至少为 %s", field, param))
		case "max":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 长度不能超过 %s", field, param))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 必须是 [%s] 之一", field, param))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("%s 校验失败 (%s)", field, e.Tag()))
		}
	}
	return strings.Join(errMsgs, "; ")
}
