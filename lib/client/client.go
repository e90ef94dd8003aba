package client

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/network"
	"boscoin.io/ballot/lib/network/httputils"
)

const (
	UrlAccount           = "/accounts/{id}"
	UrlTransactions      = "/transactions"
	UrlTransactionByHash = "/transactions/{id}"
)

const (
	QueryWait    = "wait"
	QueryTimeout = "timeout"
)

type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

// NewClient connects to the node api at url, like "http://localhost:12345";
// the transport errors and 5xx responses are retried by
// `common.DefaultRetrySetting`.
func NewClient(url string) (*Client, error) {
	return NewClientWithRetry(url, common.DefaultRetrySetting)
}

func NewClientWithRetry(url string, retry *common.RetrySetting) (*Client, error) {
	// no timeout; the requests are limited by the context
	httpClient, err := common.NewPersistentHTTP2Client(0, 0, true, retry)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: httpClient,
	}, nil
}

func (c *Client) Close() {
	c.HTTP.Close()
}

func (c *Client) Get(ctx context.Context, path string, headers http.Header) (*http.Response, error) {
	return c.HTTP.Get(ctx, c.URL+network.UrlPathPrefixAPI+path, headers)
}

func (c *Client) Post(ctx context.Context, path string, body []byte, headers http.Header) (*http.Response, error) {
	return c.HTTP.Post(ctx, c.URL+network.UrlPathPrefixAPI+path, body, headers)
}

func jsonHeaders() http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	return headers
}

// toResponse decodes the body into response. The problem response becomes
// the `*errors.Error` of its code.
func toResponse(resp *http.Response, response interface{}) error {
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var p httputils.Problem
		if err = json.Unmarshal(body, &p); err != nil || len(p.Title) < 1 {
			return errors.ErrorHTTPProblem.Clone().
				SetData("status", resp.StatusCode).
				SetData("body", string(body))
		}
		if p.Status == 0 {
			p.Status = resp.StatusCode
		}

		return p.ToError()
	}

	if err = json.Unmarshal(body, response); err != nil {
		return pkgerrors.Wrap(err, "failed to decode response")
	}

	return nil
}

// awaitTimeout is the server side timeout of one await request; it ends
// before the context does.
func awaitTimeout(ctx context.Context, max time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return max
	}

	left := time.Until(deadline)
	if left < time.Millisecond {
		return time.Millisecond
	}
	if left < max {
		return left
	}

	return max
}
