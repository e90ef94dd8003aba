package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	ballotErrors "boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/metrics"
	"boscoin.io/ballot/lib/network/httputils"
)

func RecoverMiddleware(printStack bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rc := recover(); rc != nil {
					err, ok := rc.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rc)
					}
					log.Error("recover a panic", "error", err, "uri", r.RequestURI)
					if printStack {
						debug.PrintStack()
					}
					httputils.WriteJSONError(w, ballotErrors.ErrorHTTPServerError.Clone().SetData("error", err.Error()))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware limits the requests per client ip by the rule, like
// "100-S" for 100 requests per second. The empty rule does not limit.
func RateLimitMiddleware(rule string) (mux.MiddlewareFunc, error) {
	if len(rule) < 1 {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	rate, err := limiter.NewRateFromFormatted(rule)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid rate limit rule: %q", rule)
	}

	mw := stdlib.NewMiddleware(
		limiter.New(memory.NewStore(), rate),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			log.Debug("too many requests", "remote", r.RemoteAddr, "uri", r.RequestURI)
			httputils.WriteJSONError(w, ballotErrors.ErrorTooManyRequests)
		}),
	)

	return mw.Handler, nil
}

func CORSMiddleware() mux.MiddlewareFunc {
	return ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"}),
	)
}

// MetricsMiddleware counts the requests by the route template, not by the
// requested path.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()

		writer := &HTTP2ResponseLog15Writer{w: w}
		next.ServeHTTP(writer, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		status := writer.Status()
		if status == 0 {
			status = http.StatusOK
		}

		labels := []string{"endpoint", endpoint, "method", r.Method, "status", strconv.Itoa(status)}
		metrics.API.RequestsTotal.With(labels...).Add(1)
		metrics.API.RequestDurationSeconds.With(labels...).Observe(time.Since(begin).Seconds())
		if status >= http.StatusBadRequest {
			metrics.API.RequestErrorsTotal.With(labels...).Add(1)
		}
	})
}
