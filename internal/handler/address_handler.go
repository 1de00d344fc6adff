package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hdwallet-core/internal/handler/request"
	"hdwallet-core/internal/handler/response"
	"hdwallet-core/internal/service"
	"hdwallet-core/pkg/bip32"
	"hdwallet-core/pkg/validator"
)

// AddressHandler 只暴露不需要私密输入的操作
type AddressHandler struct {
	svc service.AddressService
}

func NewAddressHandler(svc service.AddressService) *AddressHandler {
	return &AddressHandler{svc: svc}
}

// ListCoins 支持的币种列表
// GET /api/v1/coins
func (h *AddressHandler) ListCoins(c *gin.Context) {
	response.Success(c, gin.H{
		"coins": h.svc.Coins(c.Request.Context()),
	})
}

// ValidateAddress 校验地址格式
// POST /api/v1/address/validate
func (h *AddressHandler) ValidateAddress(c *gin.Context) {
	var req request.ValidateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, validator.GetErrorMsg(err))
		return
	}

	valid, err := h.svc.ValidateAddress(c.Request.Context(), req.Coin, req.Address)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"coin":    strings.ToUpper(req.Coin),
		"address": req.Address,
		"valid":   valid,
	})
}

// DeriveFromExtended watch-only 地址派生
// POST /api/v1/address/extended
func (h *AddressHandler) DeriveFromExtended(c *gin.Context) {
	var req request.ExtendedAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, validator.GetErrorMsg(err))
		return
	}

	key, err := bip32.NewKeyFromString(strings.TrimSpace(req.Extended))
	if err == nil && key.IsPrivate() {
		// 私钥不应该出现在网络请求里
		response.BindError(c, "extended 必须是扩展公钥")
		return
	}

	addr, err := h.svc.DeriveFromExtended(c.Request.Context(), req.Coin, req.Extended, req.Change, req.Index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"coin":    strings.ToUpper(req.Coin),
		"change":  req.Change,
		"index":   req.Index,
		"address": addr,
	})
}

// RemapExtended 转换扩展公钥的版本号
// POST /api/v1/extended/remap
func (h *AddressHandler) RemapExtended(c *gin.Context) {
	var req request.RemapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, validator.GetErrorMsg(err))
		return
	}

	key, err := bip32.NewKeyFromString(strings.TrimSpace(req.Extended))
	if err == nil && key.IsPrivate() {
		response.BindError(c, "extended 必须是扩展公钥")
		return
	}

	out, err := h.svc.RemapExtended(c.Request.Context(), req.Extended, req.Target)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"extended": out})
}
