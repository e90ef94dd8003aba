package transaction

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

const (
	TransactionVersionV1 = "1"

	MaxOperationsInTransaction = 100
)

type Transaction struct {
	T string            `json:"T"`
	H TransactionHeader `json:"H"`
	B TransactionBody   `json:"B"`
}

type TransactionHeader struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

type TransactionBody struct {
	Source     string                `json:"source"`
	Fee        common.Amount         `json:"fee"`
	SequenceID uint64                `json:"sequence_id"`
	Operations []operation.Operation `json:"operations"`
}

func (tb TransactionBody) MakeHash() []byte {
	return common.MustMakeObjectHash(tb)
}

func (tb TransactionBody) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

// NewTransaction makes unsigned transaction; `fee` is charged per
// operation.
func NewTransaction(source string, sequenceID uint64, fee common.Amount, ops ...operation.Operation) (tx Transaction, err error) {
	if len(ops) < 1 {
		err = errors.ErrorTransactionEmptyOperations
		return
	}

	txBody := TransactionBody{
		Source:     source,
		Fee:        fee,
		SequenceID: sequenceID,
		Operations: ops,
	}

	tx = Transaction{
		T: "transaction",
		H: TransactionHeader{
			Version: TransactionVersionV1,
			Created: common.NowISO8601(),
			Hash:    txBody.MakeHashString(),
		},
		B: txBody,
	}

	return
}

var TransactionWellFormedCheckerFuncs = []common.CheckerFunc{
	CheckTransactionOperationsLimit,
	CheckTransactionSource,
	CheckTransactionBaseFee,
	CheckTransactionOperation,
	CheckTransactionHash,
	CheckTransactionVerifySignature,
}

// IsWellFormed checks the transaction without the ledger state.
func (tx Transaction) IsWellFormed(conf common.Config) (err error) {
	checker := &TransactionChecker{
		DefaultChecker: common.DefaultChecker{Funcs: TransactionWellFormedCheckerFuncs},
		Config:         conf,
		Transaction:    tx,
	}

	return common.RunChecker(checker, common.DefaultDeferFunc)
}

func (tx Transaction) GetHash() string {
	return tx.H.Hash
}

func (tx Transaction) Source() string {
	return tx.B.Source
}

func (tx Transaction) IsValidSequenceID(sequenceID uint64) bool {
	return tx.B.SequenceID == sequenceID
}

// TotalFee is the fee times the number of operations.
func (tx Transaction) TotalFee() common.Amount {
	var fee common.Amount
	for range tx.B.Operations {
		fee = fee.MustAdd(tx.B.Fee)
	}

	return fee
}

// TotalAmount is the sum of the payable operations, with fee or not.
func (tx Transaction) TotalAmount(withFee bool) (amount common.Amount, err error) {
	for _, op := range tx.B.Operations {
		if pop, ok := op.B.(operation.Payable); ok {
			if amount, err = amount.Add(pop.GetAmount()); err != nil {
				return
			}
		}
	}

	if withFee {
		amount, err = amount.Add(tx.TotalFee())
	}

	return
}

func (tx Transaction) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(tx)
	return
}

func (tx Transaction) String() string {
	encoded, _ := json.MarshalIndent(tx, "", "  ")
	return string(encoded)
}

func (tx *Transaction) Sign(kp keypair.KP, networkID []byte) {
	tx.H.Hash = tx.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, tx.H.Hash)

	tx.H.Signature = base58.Encode(signature)
}
