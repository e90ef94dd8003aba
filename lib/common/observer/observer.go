package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// ReceiptObserver triggers `NewReceiptEvent(hash)` once the transaction is
// applied or rejected by the ledger.
var ReceiptObserver = observable.New()

const ResourceReceipt = "receipt"

func NewReceiptEvent(hash string) string {
	return ResourceReceipt + "-" + hash
}
