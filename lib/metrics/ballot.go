package metrics

import (
	"strconv"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type BallotMetrics struct {
	Deployed   metrics.Counter
	Calls      metrics.Counter
	Rejections metrics.Counter
}

func (m *BallotMetrics) AddDeployed() {
	m.Deployed.Add(1)
}

func (m *BallotMetrics) AddCall(method string) {
	m.Calls.With("method", method).Add(1)
}

func (m *BallotMetrics) AddRejection(method string, code uint) {
	m.Rejections.With("method", method, "code", strconv.FormatUint(uint64(code), 10)).Add(1)
}

func PromBallotMetrics() *BallotMetrics {
	return &BallotMetrics{
		Deployed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BallotSubsystem,
			Name:      "deployed_total",
			Help:      "Total number of deployed ballots.",
		}, []string{}),
		Calls: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BallotSubsystem,
			Name:      "calls_total",
			Help:      "Total number of applied ballot calls.",
		}, []string{"method"}),
		Rejections: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BallotSubsystem,
			Name:      "rejections_total",
			Help:      "Total number of rejected ballot calls.",
		}, []string{"method", "code"}),
	}
}

func NopBallotMetrics() *BallotMetrics {
	return &BallotMetrics{
		Deployed:   discard.NewCounter(),
		Calls:      discard.NewCounter(),
		Rejections: discard.NewCounter(),
	}
}
