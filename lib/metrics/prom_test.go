package metrics

import (
	"io/ioutil"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	InitPrometheusMetrics()
	InitPrometheusMetrics()

	SetVersion()
	Ledger.AddTransaction(LedgerStatusApplied)
	Ballot.AddRejection("vote", 103)

	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(b), `ballot_ledger_transactions_total{status="applied"} 1`)
	require.Contains(t, string(b), `ballot_ballot_rejections_total{code="103",method="vote"} 1`)
}
