package network

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"boscoin.io/ballot/lib/common"
)

type HTTP2ServerConfig struct {
	Endpoint *common.Endpoint
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

func parseTimeout(query url.Values, key string) (time.Duration, error) {
	d, err := time.ParseDuration(common.GetUrlQuery(query, key, "0s"))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %q", key)
	}
	if d < 0 {
		return 0, errors.Errorf("invalid %q: negative duration", key)
	}

	return d, nil
}

// NewHTTP2ServerConfigFromEndpoint reads the server options from the query
// of the endpoint, like
// `https://localhost:12345?TLSCertFile=ballot.crt&TLSKeyFile=ballot.key&ReadTimeout=5s`.
func NewHTTP2ServerConfigFromEndpoint(endpoint *common.Endpoint) (config *HTTP2ServerConfig, err error) {
	query := endpoint.Query()

	config = &HTTP2ServerConfig{
		Endpoint:    endpoint,
		Addr:        endpoint.Host,
		TLSCertFile: query.Get("TLSCertFile"),
		TLSKeyFile:  query.Get("TLSKeyFile"),
	}

	timeouts := map[string]*time.Duration{
		"ReadTimeout":       &config.ReadTimeout,
		"ReadHeaderTimeout": &config.ReadHeaderTimeout,
		"WriteTimeout":      &config.WriteTimeout,
		"IdleTimeout":       &config.IdleTimeout,
	}
	for key, d := range timeouts {
		if *d, err = parseTimeout(query, key); err != nil {
			return nil, err
		}
	}

	if strings.ToLower(endpoint.Scheme) == "https" && !config.IsHTTPS() {
		return nil, errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
	}

	return
}

func (config HTTP2ServerConfig) IsHTTPS() bool {
	return len(config.TLSCertFile) > 0 && len(config.TLSKeyFile) > 0
}

func (config HTTP2ServerConfig) String() string {
	return string(common.MustMarshalJSON(config))
}
