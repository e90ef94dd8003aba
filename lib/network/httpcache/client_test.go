package httpcache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/common"
)

func TestClientMiddleware(t *testing.T) {
	a, err := NewMemCacheAdapter(10)
	require.NoError(t, err)
	a.Set("http://foo?bar=1", &Response{Value: []byte("value 1"), StatusCode: http.StatusOK}, time.Time{})

	c, err := NewClient(WithAdapter(a))
	require.NoError(t, err)

	cnt := 0
	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pending") == "1" {
			w.WriteHeader(http.StatusAccepted)
		}
		w.Write([]byte(fmt.Sprintf("new value:%d", cnt)))
	}))

	tests := []struct {
		name string
		url  string
		code int
		body string
	}{
		{"return cached resp", "http://foo?bar=1", http.StatusOK, "value 1"},
		{"return not cached resp", "http://foo?bar=2", http.StatusOK, "new value:2"},
		{"cached by the previous request", "http://foo?bar=2", http.StatusOK, "new value:2"},
		{"not cached status", "http://foo?pending=1", http.StatusAccepted, "new value:4"},
		{"not cached status again", "http://foo?pending=1", http.StatusAccepted, "new value:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cnt++
			r, err := http.NewRequest(http.MethodGet, tt.url, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			require.Equal(t, tt.code, w.Code)
			require.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestClientExpiration(t *testing.T) {
	a, err := NewMemCacheAdapter(10)
	require.NoError(t, err)
	a.Set("http://foo", &Response{Value: []byte("old"), StatusCode: http.StatusOK}, time.Now().Add(-time.Second))

	c, err := NewClient(WithAdapter(a), WithStatusCode(http.StatusOK, time.Minute))
	require.NoError(t, err)

	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new"))
	})

	r, err := http.NewRequest(http.MethodGet, "http://foo", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	handler(w, r)
	require.Equal(t, "new", w.Body.String())

	cached, ok := a.Get("http://foo")
	require.True(t, ok)
	require.Equal(t, "new", string(cached.Value))
	require.False(t, cached.Expired(time.Now()))
}

func TestCacheKey(t *testing.T) {
	r1, _ := http.NewRequest(http.MethodGet, "http://foo/a?x=2&x=1&y=3", nil)
	r2, _ := http.NewRequest(http.MethodGet, "http://foo/a?y=3&x=1&x=2", nil)
	require.Equal(t, cacheKey(r1.URL), cacheKey(r2.URL))
}

func TestNew(t *testing.T) {
	conf := common.NewConfig([]byte("test"))

	conf.HTTPCacheAdapter = common.HTTPCacheNoneAdapterName
	c, err := New(conf)
	require.NoError(t, err)
	require.IsType(t, &NopClient{}, c)

	conf.HTTPCacheAdapter = common.HTTPCacheMemoryAdapterName
	c, err = New(conf)
	require.NoError(t, err)
	require.IsType(t, &Client{}, c)

	conf.HTTPCacheAdapter = common.HTTPCacheRedisAdapterName
	_, err = New(conf)
	require.Error(t, err)

	conf.HTTPCacheAdapter = "unknown"
	_, err = New(conf)
	require.Error(t, err)
}
