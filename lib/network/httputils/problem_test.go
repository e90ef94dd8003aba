package httputils

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

func getProblem(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var m map[string]interface{}
	common.MustUnmarshalJSON(b, &m)

	return resp, m
}

func TestProblem(t *testing.T) {
	router := mux.NewRouter()

	statusProblem := NewStatusProblem(http.StatusBadRequest)
	detailedStatusProblem := NewDetailedStatusProblem(http.StatusBadRequest, "parameters are not enough")

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusBadRequest, statusProblem)
	})
	router.HandleFunc("/detail", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusBadRequest, detailedStatusProblem.SetInstance("/detail"))
	})
	router.HandleFunc("/error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, errors.ErrorNoRight)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	{
		resp, m := getProblem(t, ts.URL+"/status")
		require.Equal(t, ProblemContentType, resp.Header.Get("Content-Type"))
		require.Equal(t, "about:blank", m["type"])
		require.Equal(t, statusProblem.Title, m["title"])
		require.Equal(t, float64(http.StatusBadRequest), m["status"])
		require.Empty(t, m["detail"])
		require.Empty(t, m["instance"])
	}

	{
		_, m := getProblem(t, ts.URL+"/detail")
		require.Equal(t, detailedStatusProblem.Detail, m["detail"])
		require.Equal(t, "/detail", m["instance"])
	}

	{
		resp, m := getProblem(t, ts.URL+"/error")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Has no right to vote", m["title"])
		require.Equal(t, float64(errors.ErrorNoRight.Code), m["code"])
	}
}

func TestProblemToError(t *testing.T) {
	p := NewErrorProblem(errors.ErrorAlreadyVoted.Clone().SetData("voter", "GA"), http.StatusBadRequest)

	e := p.ToError()
	require.True(t, errors.Is(e, errors.ErrorAlreadyVoted))
	require.Equal(t, "Already voted.", e.Message)
	require.Equal(t, "GA", e.GetData("voter"))

	unknown := NewDetailedStatusProblem(http.StatusBadGateway, "upstream is gone").ToError()
	require.True(t, errors.Is(unknown, errors.ErrorHTTPProblem))
	require.Equal(t, "upstream is gone", unknown.GetData("detail"))
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, StatusCode(errors.ErrorDelegationLoop))
	require.Equal(t, http.StatusNotFound, StatusCode(errors.ErrorContractNotFound.Clone().SetData("address", "GA")))
	require.Equal(t, http.StatusServiceUnavailable, StatusCode(errors.ErrorLedgerQueueFull))
	require.Equal(t, http.StatusInternalServerError, StatusCode(http.ErrHandlerTimeout))
}
