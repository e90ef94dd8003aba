package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var promOnce sync.Once

// InitPrometheusMetrics replaces the nop metrics; the metrics are registered
// to the default prometheus registry only once.
func InitPrometheusMetrics() {
	promOnce.Do(func() {
		Version = PromVersion()
		Ledger = PromLedgerMetrics()
		Ballot = PromBallotMetrics()
		API = PromAPIMetrics()
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
