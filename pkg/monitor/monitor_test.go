package monitor

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletMetrics(t *testing.T) {
	m := NewWalletMetrics()

	m.ObserveDerivation("BTC", "seed", time.Now(), nil)
	m.ObserveDerivation("BTC", "seed", time.Now(), errors.New("boom"))
	m.ObserveDerivation("BTC", "seed", time.Now(), nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DerivationsTotal.WithLabelValues("BTC", "seed", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DerivationsTotal.WithLabelValues("BTC", "seed", ResultError)))

	m.ObserveValidation("ETH", true)
	m.ObserveValidation("ETH", false)
	m.ObserveValidation("ETH", false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("ETH", ResultValid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("ETH", ResultInvalid)))

	m.ObserveCache(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues(ResultHit)))
}

func TestInitIsIdempotent(t *testing.T) {
	require.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "204"))
	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "204"))
	assert.Equal(t, 2.0, after-before)
}
