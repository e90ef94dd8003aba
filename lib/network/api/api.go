package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/metrics"
	"boscoin.io/ballot/lib/network"
	"boscoin.io/ballot/lib/network/httpcache"
	"boscoin.io/ballot/lib/network/httputils"
)

// API Endpoint patterns
const (
	GetAccountHandlerPattern     = "/accounts/{id}"
	PostTransactionPattern       = "/transactions"
	GetTransactionByHashPattern  = "/transactions/{id}"
	GetProposalsHandlerPattern   = "/contracts/{id}/proposals"
	GetProposalHandlerPattern    = "/contracts/{id}/proposals/{index}"
	GetVoterHandlerPattern       = "/contracts/{id}/voters/{address}"
	GetWinnerHandlerPattern      = "/contracts/{id}/winner"
	GetChairpersonHandlerPattern = "/contracts/{id}/chairperson"
	DefaultAwaitTimeout          = common.DefaultAwaitTimeout
	DefaultMaxAwaitTimeout       = 2 * time.Minute
	QueryWait                    = "wait"
	QueryTimeout                 = "timeout"
)

type NetworkHandlerAPI struct {
	ledger ledger.Ledger
	cache  httpcache.Cache
}

func NewNetworkHandlerAPI(l ledger.Ledger, cache httpcache.Cache) *NetworkHandlerAPI {
	if cache == nil {
		cache = httpcache.NewNopClient()
	}

	return &NetworkHandlerAPI{
		ledger: l,
		cache:  cache,
	}
}

// Register adds the API, metrics and JSON-RPC handlers with their
// middlewares to the server.
func (api NetworkHandlerAPI) Register(s *network.HTTP2Server, conf common.Config) error {
	rateLimit, err := network.RateLimitMiddleware(conf.RateLimitRuleAPI)
	if err != nil {
		return err
	}

	if err = s.AddMiddleware("", network.RecoverMiddleware(false)); err != nil {
		return err
	}
	if err = s.AddMiddleware(
		network.RouterNameAPI,
		network.CORSMiddleware(),
		rateLimit,
		network.MetricsMiddleware,
	); err != nil {
		return err
	}
	if err = s.AddMiddleware(network.RouterNameRPC, network.MetricsMiddleware); err != nil {
		return err
	}

	api.addAPIHandlers(s)
	s.AddHandler(network.UrlPathPrefixMetric, metrics.Handler().ServeHTTP).Methods(http.MethodGet)
	s.AddHandler(network.UrlPathPrefixRPC, NewJSONRPCServer(api.ledger).ServeHTTP).Methods(http.MethodPost, http.MethodOptions)

	return nil
}

func (api NetworkHandlerAPI) addAPIHandlers(s *network.HTTP2Server) {
	handlers := []struct {
		pattern string
		handler http.HandlerFunc
		method  string
	}{
		{GetAccountHandlerPattern, api.GetAccountHandler, http.MethodGet},
		{PostTransactionPattern, api.PostTransactionHandler, http.MethodPost},
		{GetTransactionByHashPattern, api.cache.WrapHandlerFunc(api.GetTransactionByHashHandler), http.MethodGet},
		{GetProposalsHandlerPattern, api.GetProposalsHandler, http.MethodGet},
		{GetProposalHandlerPattern, api.GetProposalHandler, http.MethodGet},
		{GetVoterHandlerPattern, api.GetVoterHandler, http.MethodGet},
		{GetWinnerHandlerPattern, api.GetWinnerHandler, http.MethodGet},
		{GetChairpersonHandlerPattern, api.GetChairpersonHandler, http.MethodGet},
	}

	for _, h := range handlers {
		s.AddHandler(network.UrlPathPrefixAPI+h.pattern, h.handler).Methods(h.method, http.MethodOptions)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httputils.StatusCode(err)
	problem := httputils.NewErrorProblem(err, status).SetInstance(r.URL.Path)
	if status >= http.StatusInternalServerError {
		log.Error("failed to handle request", "uri", r.RequestURI, "error", err)
	}

	if e := httputils.WriteJSON(w, status, problem); e != nil {
		log.Error("failed to write problem", "error", e)
	}
}

func writeResource(w http.ResponseWriter, status int, v interface{}) {
	if err := httputils.WriteJSON(w, status, v); err != nil {
		log.Error("failed to write response", "error", err)
	}
}

func parseUint64(r *http.Request, key string) (uint64, error) {
	s := mux.Vars(r)[key]
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.ErrorBadRequestParameter.Clone().SetData(key, s)
	}

	return i, nil
}

// awaitTimeout reads the `timeout` query, like "10s"; it can not exceed
// `DefaultMaxAwaitTimeout`.
func awaitTimeout(r *http.Request) (time.Duration, error) {
	s := r.URL.Query().Get(QueryTimeout)
	if len(s) < 1 {
		return DefaultAwaitTimeout, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.ErrorBadRequestParameter.Clone().SetData(QueryTimeout, s)
	}
	if d > DefaultMaxAwaitTimeout {
		d = DefaultMaxAwaitTimeout
	}

	return d, nil
}

func isDeadline(err error) bool {
	return err == context.DeadlineExceeded
}
