package metrics

import (
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module. All methods are
// safe on a nil receiver so wiring stays optional in tests.
type Metrics struct {
	TokensMinted      prometheus.Counter
	Transfers         prometheus.Counter
	PermissionGrants  prometheus.Counter
	PermissionRevokes prometheus.Counter
	Withdrawals       prometheus.Counter
	RejectedCalls     *prometheus.CounterVec
	MintDuration      prometheus.Histogram
	TreasuryWei       prometheus.Gauge
}

// New creates a Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		TokensMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cnft_tokens_minted_total",
			Help: "Total number of confidential tokens minted",
		}),
		Transfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cnft_transfers_total",
			Help: "Total number of token ownership transfers",
		}),
		PermissionGrants: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cnft_view_permission_grants_total",
			Help: "Total number of view permission grants",
		}),
		PermissionRevokes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cnft_view_permission_revokes_total",
			Help: "Total number of view permission revocations",
		}),
		Withdrawals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cnft_treasury_withdrawals_total",
			Help: "Total number of treasury withdrawals",
		}),
		RejectedCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cnft_rejected_calls_total",
			Help: "Registry calls rejected, by error code",
		}, []string{"code"}),
		MintDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cnft_mint_duration_seconds",
			Help:    "Duration of mint operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		TreasuryWei: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cnft_treasury_wei",
			Help: "Current treasury balance in wei",
		}),
	}
}

func (m *Metrics) AddMinted(n int) {
	if m != nil {
		m.TokensMinted.Add(float64(n))
	}
}

func (m *Metrics) IncrementTransfers() {
	if m != nil {
		m.Transfers.Inc()
	}
}

func (m *Metrics) IncrementGrants() {
	if m != nil {
		m.PermissionGrants.Inc()
	}
}

func (m *Metrics) IncrementRevokes() {
	if m != nil {
		m.PermissionRevokes.Inc()
	}
}

func (m *Metrics) IncrementWithdrawals() {
	if m != nil {
		m.Withdrawals.Inc()
	}
}

func (m *Metrics) IncrementRejected(code string) {
	if m != nil {
		m.RejectedCalls.WithLabelValues(code).Inc()
	}
}

// ObserveMint records the duration of a mint operation. Call with time.Now()
// at the start of the operation.
func (m *Metrics) ObserveMint(start time.Time) {
	if m != nil {
		m.MintDuration.Observe(time.Since(start).Seconds())
	}
}

// SetTreasury reports the current balance. Wei beyond float64 precision is
// acceptable for a gauge.
func (m *Metrics) SetTreasury(balance *big.Int) {
	if m != nil && balance != nil {
		f, _ := new(big.Float).SetInt(balance).Float64()
		m.TreasuryWei.Set(f)
	}
}
