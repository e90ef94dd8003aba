package storage

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"

	ballotErrors "boscoin.io/ballot/lib/errors"
)

// Config is parsed from the storage uri, `memory://` or `file:///path`.
type Config struct {
	Scheme string
	Path   string
	Query  url.Values
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(ballotErrors.ErrorStorageConfigError, "%s: %v", s, err)
	}

	config := &Config{Scheme: strings.ToLower(u.Scheme), Query: u.Query()}
	switch config.Scheme {
	case "memory":
	case "file":
		config.Path = u.Path
		if len(config.Path) < 1 {
			return nil, errors.Wrapf(ballotErrors.ErrorStorageConfigError, "%s: empty path", s)
		}
	default:
		return nil, errors.Wrapf(ballotErrors.ErrorStorageConfigError, "%s: unsupported scheme %q", s, u.Scheme)
	}

	return config, nil
}

func (c Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}

	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
