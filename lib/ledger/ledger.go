package ledger

import (
	"context"

	"boscoin.io/ballot/lib/account"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/transaction"
)

// Handle identifies the submitted transaction; it is the transaction hash.
type Handle string

func (h Handle) String() string {
	return string(h)
}

// Ledger is the service the ballot contracts run on. Transactions are
// submitted asynchronously and applied one by one.
type Ledger interface {
	Submit(context.Context, transaction.Transaction) (Handle, error)

	// Await blocks until the transaction is applied or rejected. The
	// rejection is returned as error together with the receipt.
	Await(context.Context, Handle) (*Receipt, error)

	// Receipt does not block; the pending transaction has the
	// `StatusPending` receipt.
	Receipt(context.Context, Handle) (*Receipt, error)

	// Read calls the contract view.
	Read(ctx context.Context, contract, method string, args ...string) (*value.Value, error)

	Account(context.Context, string) (*account.Account, error)
	CurrentBalance(context.Context, string) (common.Amount, error)
}
