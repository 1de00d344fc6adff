package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 结果标签
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// 派生来源标签
const (
	KindSeed     = "seed"
	KindExtended = "extended"
)

// WalletMetrics 派生和校验相关的业务指标
type WalletMetrics struct {
	DerivationsTotal   *prometheus.CounterVec
	DerivationDuration *prometheus.HistogramVec
	ValidationsTotal   *prometheus.CounterVec
	CacheLookupsTotal  *prometheus.CounterVec
}

// Wallet 全局业务指标，未调用 Init 时照常计数，只是不会被 /metrics 暴露
var Wallet = NewWalletMetrics()

func NewWalletMetrics() *WalletMetrics {
	return &WalletMetrics{
		DerivationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_derivations_total",
			Help: "Number of address derivations by coin, kind and result",
		}, []string{"coin", "kind", "result"}),
		DerivationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wallet_derivation_duration_seconds",
			Help:    "Latency of address derivations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"coin", "kind"}),
		ValidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_address_validations_total",
			Help: "Number of address validations by coin and result",
		}, []string{"coin", "result"}),
		CacheLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_cache_lookups_total",
			Help: "Watch-only derivation cache lookups",
		}, []string{"result"}),
	}
}

func (m *WalletMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.DerivationsTotal, m.DerivationDuration, m.ValidationsTotal, m.CacheLookupsTotal}
}

// ObserveDerivation kind 为 seed 或 extended
func (m *WalletMetrics) ObserveDerivation(coin, kind string, start time.Time, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.DerivationsTotal.WithLabelValues(coin, kind, result).Inc()
	m.DerivationDuration.WithLabelValues(coin, kind).Observe(time.Since(start).Seconds())
}

func (m *WalletMetrics) ObserveValidation(coin string, valid bool) {
	result := ResultInvalid
	if valid {
		result = ResultValid
	}
	m.ValidationsTotal.WithLabelValues(coin, result).Inc()
}

func (m *WalletMetrics) ObserveCache(hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}
