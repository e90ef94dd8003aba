package httpcache

import (
	"net/http"

	"github.com/pkg/errors"

	"boscoin.io/ballot/lib/common"
)

type Cache interface {
	WrapHandlerFunc(http.HandlerFunc) http.HandlerFunc
}

func NewAdapter(conf common.Config) (Adapter, error) {
	switch conf.HTTPCacheAdapter {
	case common.HTTPCacheMemoryAdapterName:
		return NewMemCacheAdapter(conf.HTTPCachePoolSize)
	case common.HTTPCacheRedisAdapterName:
		if len(conf.HTTPCacheRedisAddrs) < 1 {
			return nil, errors.New("redis cache needs the addresses")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: conf.HTTPCacheRedisAddrs}), nil
	default:
		return nil, errors.Errorf("unknown http cache adapter: %q", conf.HTTPCacheAdapter)
	}
}

// New returns the cache configured by `conf`; with
// `HTTPCacheNoneAdapterName` nothing is cached.
func New(conf common.Config, opts ...ClientOption) (Cache, error) {
	if conf.HTTPCacheAdapter == common.HTTPCacheNoneAdapterName || len(conf.HTTPCacheAdapter) < 1 {
		return NewNopClient(), nil
	}

	adapter, err := NewAdapter(conf)
	if err != nil {
		return nil, err
	}

	return NewClient(append([]ClientOption{WithAdapter(adapter)}, opts...)...)
}
