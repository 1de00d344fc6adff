package request

// ValidateAddressRequest 地址格式校验
type ValidateAddressRequest struct {
	Coin    string `json:"coin" binding:"required,coin"`
	Address string `json:"address" binding:"required,max=128"`
}

// ExtendedAddressRequest 用账户级扩展公钥派生地址，不接受私钥或助记词
type ExtendedAddressRequest struct {
	Coin     string `json:"coin" binding:"required,coin"`
	Extended string `json:"extended" binding:"required,min=100,max=120"`
	Change   uint32 `json:"change" binding:"nonhardened"`
	Index    uint32 `json:"index" binding:"nonhardened"`
}

// RemapRequest 扩展密钥版本号转换
type RemapRequest struct {
	Extended string `json:"extended" binding:"required,min=100,max=120"`
	Target   string `json:"target" binding:"required,oneof=xpub ypub zpub tpub Ltub dgub"`
}
