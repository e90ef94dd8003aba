package httpcache

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// Client caches the responses of the wrapped handlers. Only the responses
// with the registered status codes are cached; by default only
// `http.StatusOK`.
type Client struct {
	adapter     Adapter
	methods     map[string]bool
	statusCodes map[int]time.Duration
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		methods:     map[string]bool{http.MethodGet: true},
		statusCodes: map[int]time.Duration{},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.New("cache client adapter is nil")
	}
	if len(c.statusCodes) < 1 {
		c.statusCodes[http.StatusOK] = 0
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

func WithMethods(methods ...string) ClientOption {
	return func(c *Client) error {
		for _, m := range methods {
			c.methods[m] = true
		}
		return nil
	}
}

// WithStatusCode caches the responses of the status code for ttl; zero ttl
// never expires.
func WithStatusCode(code int, ttl time.Duration) ClientOption {
	return func(c *Client) error {
		if ttl < 0 {
			return errors.Errorf("negative ttl for status %d", code)
		}
		c.statusCodes[code] = ttl
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.serve(next, w, r)
	})
}

func (c *Client) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	next := http.HandlerFunc(handlerFunc)
	return func(w http.ResponseWriter, r *http.Request) {
		c.serve(next, w, r)
	}
}

func (c *Client) serve(next http.Handler, w http.ResponseWriter, r *http.Request) {
	if !c.methods[r.Method] {
		next.ServeHTTP(w, r)
		return
	}

	key := cacheKey(r.URL)
	if resp, ok := c.adapter.Get(key); ok {
		if !resp.Expired(time.Now()) {
			log.Debug("return cache", "url", key)
			writeResponse(w, resp.StatusCode, resp.Header, resp.Value)
			return
		}
		c.adapter.Remove(key)
	}

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)

	result := rec.Result()
	value := rec.Body.Bytes()

	if ttl, ok := c.statusCodes[result.StatusCode]; ok {
		var expiration time.Time
		if ttl > 0 {
			expiration = time.Now().Add(ttl)
		}

		c.adapter.Set(key, &Response{
			Value:      value,
			StatusCode: result.StatusCode,
			Header:     result.Header,
		}, expiration)
		log.Debug("page cached", "url", key, "status", result.StatusCode, "expiration", expiration)
	}

	writeResponse(w, result.StatusCode, result.Header, value)
}

func writeResponse(w http.ResponseWriter, status int, header http.Header, value []byte) {
	for k, v := range header {
		w.Header()[k] = v
	}
	w.WriteHeader(status)
	w.Write(value)
}

// cacheKey sorts the query values, so the same query in the different order
// hits the same cache.
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, p := range params {
		sort.Strings(p)
	}

	k := *u
	k.RawQuery = params.Encode()

	return k.String()
}
