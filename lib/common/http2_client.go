package common

import (
	"bytes"
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

type HttpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type BackoffStrategy = pester.BackoffStrategy

type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     BackoffStrategy
}

var DefaultRetrySetting = &RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialBackoff,
}

type HTTP2Client struct {
	doer      HttpDoer
	client    http.Client
	transport *http.Transport
}

func NewHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool) (client *HTTP2Client, err error) {
	if keepAlive {
		idleTimeout = 0
	}

	transport := &http.Transport{
		TLSClientConfig:   &tls.Config{},
		IdleConnTimeout:   idleTimeout,
		DisableKeepAlives: !keepAlive,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: 1 * time.Second,
			DualStack: true,
		}).DialContext,
	}

	if err = http2.ConfigureTransport(transport); err != nil {
		return
	}

	client = &HTTP2Client{
		client: http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		transport: transport,
	}

	client.doer = &client.client

	return
}

// NewPersistentHTTP2Client retries only on the transport errors and 5xx
// responses; 4xx responses are returned as they are.
func NewPersistentHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool, retrySetting *RetrySetting) (client *HTTP2Client, err error) {
	client, err = NewHTTP2Client(timeout, idleTimeout, keepAlive)
	if err != nil {
		return nil, err
	}

	if retrySetting != nil {
		ec := pester.NewExtendedClient(&client.client)
		{
			ec.MaxRetries = retrySetting.MaxRetries
			ec.Concurrency = retrySetting.Concurrency
			ec.Backoff = retrySetting.Backoff
		}
		client.doer = ec
	}
	return
}

func (c *HTTP2Client) Close() {
	c.transport.CloseIdleConnections()
}

func (c *HTTP2Client) Get(ctx context.Context, url string, headers http.Header) (response *http.Response, err error) {
	var request *http.Request
	if request, err = http.NewRequest("GET", url, nil); err != nil {
		return
	}
	if headers != nil {
		request.Header = headers
	}

	return c.Do(request.WithContext(ctx))
}

func (c *HTTP2Client) Post(ctx context.Context, url string, b []byte, headers http.Header) (response *http.Response, err error) {
	var request *http.Request
	if request, err = http.NewRequest("POST", url, bytes.NewBuffer(b)); err != nil {
		return
	}
	if headers != nil {
		request.Header = headers
	}

	return c.Do(request.WithContext(ctx))
}

// It's same interface as https://golang.org/pkg/net/http/#Client.Do
func (c *HTTP2Client) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}
