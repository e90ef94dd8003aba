package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	rpcjson "github.com/gorilla/rpc/json"
	pkgerrors "github.com/pkg/errors"

	"boscoin.io/ballot/lib/account"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/network"
	"boscoin.io/ballot/lib/network/api"
	"boscoin.io/ballot/lib/transaction"
)

var _ ledger.Ledger = (*Client)(nil)

func (c *Client) Submit(ctx context.Context, tx transaction.Transaction) (ledger.Handle, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to encode transaction")
	}

	resp, err := c.Post(ctx, UrlTransactions, body, jsonHeaders())
	if err != nil {
		return "", err
	}

	var r Receipt
	if err = toResponse(resp, &r); err != nil {
		return "", err
	}

	log.Debug("transaction submitted", "hash", r.Hash, "status", r.Status)

	return ledger.Handle(r.Hash), nil
}

func (c *Client) receipt(ctx context.Context, h ledger.Handle, query url.Values) (*ledger.Receipt, error) {
	path := strings.Replace(UrlTransactionByHash, "{id}", url.PathEscape(h.String()), -1)
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := c.Get(ctx, path, jsonHeaders())
	if err != nil {
		return nil, err
	}

	var r Receipt
	if err = toResponse(resp, &r); err != nil {
		return nil, err
	}

	return &r.Receipt, nil
}

func (c *Client) Receipt(ctx context.Context, h ledger.Handle) (*ledger.Receipt, error) {
	return c.receipt(ctx, h, nil)
}

// Await asks the node to wait for the receipt until ctx is done; the
// rejected receipt returns with its error.
func (c *Client) Await(ctx context.Context, h ledger.Handle) (*ledger.Receipt, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		query := url.Values{}
		query.Set(QueryWait, "true")
		query.Set(QueryTimeout, awaitTimeout(ctx, api.DefaultAwaitTimeout).String())

		r, err := c.receipt(ctx, h, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}

		if !r.IsPending() {
			if r.Error != nil {
				return r, r.Error
			}
			return r, nil
		}
	}
}

// Read calls the contract view thru the JSON-RPC; the error of the
// response is restored to `*errors.Error` when it is known.
func (c *Client) Read(ctx context.Context, contract, method string, args ...string) (*value.Value, error) {
	message, err := rpcjson.EncodeClientRequest(
		api.JSONRPCServiceName+".Read",
		&api.ReadArgs{Contract: contract, Method: method, Args: args},
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to encode request")
	}

	resp, err := c.HTTP.Post(ctx, c.URL+network.UrlPathPrefixRPC, message, jsonHeaders())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.ErrorHTTPProblem.Clone().SetData("status", resp.StatusCode)
	}

	var v value.Value
	if err = rpcjson.DecodeClientResponse(resp.Body, &v); err != nil {
		return nil, rpcError(err)
	}

	return &v, nil
}

func rpcError(err error) error {
	var e errors.Error
	if json.Unmarshal([]byte(err.Error()), &e) != nil || e.Code == 0 {
		return err
	}

	known, found := errors.Known(e.Code)
	if !found {
		return &e
	}

	restored := known.Clone()
	for k, v := range e.Data {
		restored.SetData(k, v)
	}

	return restored
}

func (c *Client) Account(ctx context.Context, address string) (*account.Account, error) {
	resp, err := c.Get(ctx, strings.Replace(UrlAccount, "{id}", url.PathEscape(address), -1), jsonHeaders())
	if err != nil {
		return nil, err
	}

	var ac Account
	if err = toResponse(resp, &ac); err != nil {
		return nil, err
	}

	return &ac.Account, nil
}

func (c *Client) CurrentBalance(ctx context.Context, address string) (common.Amount, error) {
	ac, err := c.Account(ctx, address)
	if err != nil {
		return 0, err
	}

	return ac.Balance, nil
}
