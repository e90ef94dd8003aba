package ledger

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

const ReceiptPrefixHash string = "rc-hash-" // rc-hash-<transaction hash>

const (
	StatusPending  = "pending"
	StatusApplied  = "applied"
	StatusRejected = "rejected"
)

type Receipt struct {
	Hash       string            `json:"hash"`
	Source     string            `json:"source"`
	SequenceID uint64            `json:"sequence_id"`
	Status     string            `json:"status"`
	Fee        common.Amount     `json:"fee"`
	Error      *errors.Error     `json:"error,omitempty"`
	Results    []OperationResult `json:"results,omitempty"`
	Confirmed  string            `json:"confirmed,omitempty"`
}

// OperationResult is the outcome of one applied operation. `Contract` is
// set for the contract operations; for `contract-deploy` it is the address
// of the new contract.
type OperationResult struct {
	Type     operation.OperationType `json:"type"`
	Contract string                  `json:"contract,omitempty"`
	Value    *value.Value            `json:"value,omitempty"`
}

func NewReceipt(tx transaction.Transaction) *Receipt {
	return &Receipt{
		Hash:       tx.GetHash(),
		Source:     tx.Source(),
		SequenceID: tx.B.SequenceID,
		Status:     StatusPending,
	}
}

func (r *Receipt) IsPending() bool {
	return r.Status == StatusPending
}

func (r *Receipt) apply(results []OperationResult) {
	r.Status = StatusApplied
	r.Results = results
	r.Confirmed = common.NowISO8601()
}

func (r *Receipt) reject(err *errors.Error) {
	r.Status = StatusRejected
	r.Error = err
	r.Results = nil
	r.Confirmed = common.NowISO8601()
}

// ContractAddresses returns the addresses of the deployed contracts.
func (r *Receipt) ContractAddresses() (addresses []string) {
	for _, result := range r.Results {
		if result.Type == operation.TypeContractDeploy {
			addresses = append(addresses, result.Contract)
		}
	}

	return
}

func (r *Receipt) String() string {
	return string(common.MustMarshalJSON(r))
}

func (r *Receipt) Save(st storage.DBBackend) error {
	return st.New(GetReceiptKey(r.Hash), r)
}

func GetReceiptKey(hash string) string {
	return ReceiptPrefixHash + hash
}

func ExistsReceipt(st storage.DBBackend, hash string) (bool, error) {
	return st.Has(GetReceiptKey(hash))
}

func GetReceipt(st storage.DBBackend, hash string) (*Receipt, error) {
	var r Receipt
	if err := st.Get(GetReceiptKey(hash), &r); err != nil {
		if errors.Is(err, errors.ErrorStorageRecordDoesNotExist) {
			return nil, errors.ErrorTransactionNotFound.Clone().SetData("hash", hash)
		}
		return nil, err
	}

	return &r, nil
}
