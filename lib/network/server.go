package network

import (
	goLog "log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/net/http2"
)

const (
	RouterNameAPI    = "api"
	RouterNameMetric = "metrics"
	RouterNameRPC    = "jsonrpc"
)

const (
	UrlPathPrefixAPI    = "/api/v1"
	UrlPathPrefixMetric = "/metrics"
	UrlPathPrefixRPC    = "/jsonrpc"
)

// HTTP2Server serves the API, metrics and JSON-RPC routers; each router has
// its own middlewares.
type HTTP2Server struct {
	config *HTTP2ServerConfig

	server   *http.Server
	router   *mux.Router
	routers  map[string]*mux.Router
	prefixes map[string]string
}

func NewHTTP2Server(config *HTTP2ServerConfig) *HTTP2Server {
	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ErrorLog:          goLog.New(HTTP2ErrorLog15Writer{log}, "", 0),
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(server, &http2.Server{IdleTimeout: config.IdleTimeout})

	baseRouter := mux.NewRouter()

	s := &HTTP2Server{
		config: config,
		server: server,
		router: baseRouter,
		prefixes: map[string]string{
			RouterNameAPI:    UrlPathPrefixAPI,
			RouterNameMetric: UrlPathPrefixMetric,
			RouterNameRPC:    UrlPathPrefixRPC,
		},
	}

	s.routers = map[string]*mux.Router{}
	for name, prefix := range s.prefixes {
		s.routers[name] = baseRouter.PathPrefix(prefix).Subrouter()
	}

	server.Handler = s.Handler()

	return s
}

func (s *HTTP2Server) Config() *HTTP2ServerConfig {
	return s.config
}

// Handler is the whole routers with the request log.
func (s *HTTP2Server) Handler() http.Handler {
	return HTTP2Log15Handler{log: log, handler: s.router}
}

// AddMiddleware adds the middlewares to the router; the empty name is the
// base router, which all the routers pass through.
func (s *HTTP2Server) AddMiddleware(routerName string, mws ...mux.MiddlewareFunc) error {
	r := s.router
	if len(routerName) > 0 {
		var found bool
		if r, found = s.routers[routerName]; !found {
			return errors.Errorf("unknown router: %q", routerName)
		}
	}

	for _, mw := range mws {
		r.Use(mw)
	}

	return nil
}

// AddHandler adds the handler to the router matched by the prefix of the
// pattern.
func (s *HTTP2Server) AddHandler(pattern string, handler http.HandlerFunc) *mux.Route {
	for name, prefix := range s.prefixes {
		if strings.HasPrefix(pattern, prefix) {
			return s.routers[name].HandleFunc(pattern[len(prefix):], handler)
		}
	}

	return s.router.HandleFunc(pattern, handler)
}

func (s *HTTP2Server) Start() (err error) {
	log.Info("starting server", "endpoint", s.config.Endpoint, "https", s.config.IsHTTPS())

	if s.config.IsHTTPS() {
		err = s.server.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	} else {
		err = s.server.ListenAndServe()
	}

	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (s *HTTP2Server) Stop() error {
	return s.server.Close()
}
