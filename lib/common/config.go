package common

import (
	"time"
)

const (
	DefaultNetworkID        string        = "ballot-local-network"
	DefaultBaseFee          Amount        = Amount(10000)
	DefaultQueueSize        int           = 1000
	DefaultReceiptCacheSize int           = 1024
	DefaultAwaitTimeout     time.Duration = 30 * time.Second

	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"
	HTTPCacheNoneAdapterName   = "none"
	DefaultHTTPCachePoolSize   = 10000

	DefaultRateLimitAPI = "100-S"
)

// Config holds the settings shared by the ledger and the API server.
type Config struct {
	NetworkID []byte

	// fee charged for every transaction, applied or rejected
	BaseFee   Amount
	QueueSize int

	ReceiptCacheSize int

	RateLimitRuleAPI string

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.BaseFee = DefaultBaseFee
	p.QueueSize = DefaultQueueSize
	p.ReceiptCacheSize = DefaultReceiptCacheSize

	p.RateLimitRuleAPI = DefaultRateLimitAPI

	p.HTTPCacheAdapter = HTTPCacheMemoryAdapterName
	p.HTTPCachePoolSize = DefaultHTTPCachePoolSize

	return p
}
