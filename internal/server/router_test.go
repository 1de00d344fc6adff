package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdwallet-core/internal/handler/response"
	"hdwallet-core/internal/service"
	"hdwallet-core/pkg/cache"
	"hdwallet-core/pkg/coin"
	"hdwallet-core/pkg/errno"
)

const (
	testZpub = "zpub6qeRC8KMzbzx5D9bdPystD4Cf8KDEqfknzmDUhRwKCsspNaMFvRdZoYeZxUYVkWx8E274jeFk4EWKmWqvaZSR2KUNfHyppdVByAbE9GSTPM"
	testZprv = "zprvAcf4ncnUAESerj58XNSsX57U76UiqNwuRmqcgK2KksLtwaFCiP7P21EAifdWVN9dkByxZ2RZ58gLwiR1p1nky91CF83MSkt36tFfkcRGksM"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAddressService(coin.Default(), cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	return NewHTTPRouter(svc)
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, map[string]interface{}, string) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		return w.Code, nil, w.Body.String()
	}
	data, _ := resp.Data.(map[string]interface{})
	return resp.Code, data, resp.Message
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter()

	code, data, _ := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, errno.OK.Code, code)
	assert.Equal(t, "UP", data["status"])

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestListCoins(t *testing.T) {
	r := newTestRouter()

	code, data, _ := do(t, r, http.MethodGet, "/api/v1/coins", nil)
	require.Equal(t, errno.OK.Code, code)
	coins, ok := data["coins"].([]interface{})
	require.True(t, ok)
	assert.Len(t, coins, len(coin.Default().Coins()))
	first := coins[0].(map[string]interface{})
	assert.Equal(t, "BTC", first["symbol"])
}

func TestValidateAddressEndpoint(t *testing.T) {
	r := newTestRouter()

	code, data, _ := do(t, r, http.MethodPost, "/api/v1/address/validate", gin.H{
		"coin":    "solana",
		"address": "bc1qh493z9tmfegw2z4ly26whu8crh3ukwl4v4jkvj",
	})
	require.Equal(t, errno.OK.Code, code)
	assert.Equal(t, "SOLANA", data["coin"])
	assert.Equal(t, false, data["valid"])

	code, data, _ = do(t, r, http.MethodPost, "/api/v1/address/validate", gin.H{
		"coin":    "BTC",
		"address": "bc1qh493z9tmfegw2z4ly26whu8crh3ukwl4v4jkvj",
	})
	require.Equal(t, errno.OK.Code, code)
	assert.Equal(t, true, data["valid"])

	code, _, msg := do(t, r, http.MethodPost, "/api/v1/address/validate", gin.H{
		"coin":    "DOESNOTEXIST",
		"address": "x",
	})
	assert.Equal(t, errno.ErrBind.Code, code)
	assert.Contains(t, msg, "Coin 不是支持的币种")
}

func TestExtendedEndpoint(t *testing.T) {
	r := newTestRouter()

	code, data, _ := do(t, r, http.MethodPost, "/api/v1/address/extended", gin.H{
		"coin":     "BTC",
		"extended": testZpub,
		"change":   1,
		"index":    0,
	})
	require.Equal(t, errno.OK.Code, code)
	assert.Equal(t, "bc1ql939w3gj47zcvw3akmzd9q056ef9pd25jjjeq3", data["address"])

	code, _, _ = do(t, r, http.MethodPost, "/api/v1/address/extended", gin.H{
		"coin":     "BTC",
		"extended": testZprv,
	})
	assert.Equal(t, errno.ErrBind.Code, code)

	code, _, msg := do(t, r, http.MethodPost, "/api/v1/address/extended", gin.H{
		"coin":     "BTC",
		"extended": testZpub,
		"index":    uint32(1) << 31,
	})
	assert.Equal(t, errno.ErrBind.Code, code)
	assert.Contains(t, msg, "Index 必须小于 2^31")

	code, _, _ = do(t, r, http.MethodPost, "/api/v1/address/extended", gin.H{
		"coin":     "TEZOS",
		"extended": testZpub,
	})
	assert.Equal(t, errno.ErrDerivationTypeNotSupported.Code, code)
}

func TestRemapEndpoint(t *testing.T) {
	r := newTestRouter()

	code, data, _ := do(t, r, http.MethodPost, "/api/v1/extended/remap", gin.H{
		"extended": testZpub,
		"target":   "zpub",
	})
	require.Equal(t, errno.OK.Code, code)
	assert.Equal(t, testZpub, data["extended"])

	code, _, _ = do(t, r, http.MethodPost, "/api/v1/extended/remap", gin.H{
		"extended": testZpub,
		"target":   "qpub",
	})
	assert.Equal(t, errno.ErrBind.Code, code)
}
