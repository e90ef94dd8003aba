package api

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/network/api/resource"
	"boscoin.io/ballot/lib/transaction"
)

const maxTransactionBodySize = 1 << 20

// PostTransactionHandler submits the transaction and responds with the
// pending receipt; the final receipt is at the `self` link.
func (api NetworkHandlerAPI) PostTransactionHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxTransactionBodySize))
	if err != nil {
		writeError(w, r, errors.ErrorBadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	var tx transaction.Transaction
	if err = json.Unmarshal(body, &tx); err != nil {
		writeError(w, r, errors.ErrorInvalidTransaction.Clone().SetData("error", err.Error()))
		return
	}

	h, err := api.ledger.Submit(r.Context(), tx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := api.ledger.Receipt(r.Context(), h)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeReceipt(w, receipt)
}

// GetTransactionByHashHandler responds with the receipt. With `wait=true`
// it waits until the transaction is applied or rejected, or the `timeout`
// passes. The pending receipt is `202 Accepted`, so it is never cached.
func (api NetworkHandlerAPI) GetTransactionByHashHandler(w http.ResponseWriter, r *http.Request) {
	h := ledger.Handle(mux.Vars(r)["id"])

	var receipt *ledger.Receipt
	var err error

	if r.URL.Query().Get(QueryWait) == "true" {
		receipt, err = api.await(r, h)
	} else {
		receipt, err = api.ledger.Receipt(r.Context(), h)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeReceipt(w, receipt)
}

func (api NetworkHandlerAPI) await(r *http.Request, h ledger.Handle) (*ledger.Receipt, error) {
	timeout, err := awaitTimeout(r)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	receipt, err := api.ledger.Await(ctx, h)
	if receipt != nil {
		// the rejected receipt is still the result
		return receipt, nil
	}
	if isDeadline(err) {
		return api.ledger.Receipt(r.Context(), h)
	}

	return nil, err
}

func writeReceipt(w http.ResponseWriter, receipt *ledger.Receipt) {
	status := http.StatusOK
	if receipt.IsPending() {
		status = http.StatusAccepted
	}

	writeResource(w, status, resource.NewReceipt(receipt))
}
