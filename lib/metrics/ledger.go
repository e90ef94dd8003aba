package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type LedgerMetrics struct {
	QueueSize         metrics.Gauge
	TransactionsTotal metrics.Counter
	ApplySeconds      metrics.Histogram
}

func (m *LedgerMetrics) AddQueueSize(delta int) {
	m.QueueSize.Add(float64(delta))
}

func (m *LedgerMetrics) AddTransaction(status string) {
	m.TransactionsTotal.With("status", status).Add(1)
}

func (m *LedgerMetrics) ObserveApplySeconds(begin time.Time) {
	m.ApplySeconds.Observe(time.Since(begin).Seconds())
}

func PromLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		QueueSize: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "queue_size",
			Help:      "Number of transactions waiting to be applied.",
		}, []string{}),
		TransactionsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "transactions_total",
			Help:      "Total number of processed transactions.",
		}, []string{"status"}),
		ApplySeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "apply_seconds",
			Help:      "Time applying one transaction.",
		}, []string{}),
	}
}

func NopLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		QueueSize:         discard.NewGauge(),
		TransactionsTotal: discard.NewCounter(),
		ApplySeconds:      discard.NewHistogram(),
	}
}
