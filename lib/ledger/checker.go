package ledger

import (
	"boscoin.io/ballot/lib/account"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

// TransactionChecker checks the transaction against the ledger state. The
// transaction failing these checks is rejected without charging the fee.
type TransactionChecker struct {
	common.DefaultChecker

	Storage     storage.DBBackend
	Transaction transaction.Transaction

	source *account.Account
}

var TransactionCheckerFuncs = []common.CheckerFunc{
	CheckSourceAccount,
	CheckSequenceID,
	CheckSourceBalance,
}

func NewTransactionChecker(st storage.DBBackend, tx transaction.Transaction) *TransactionChecker {
	return &TransactionChecker{
		DefaultChecker: common.DefaultChecker{Funcs: TransactionCheckerFuncs},
		Storage:        st,
		Transaction:    tx,
	}
}

func CheckSourceAccount(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransactionChecker)

	checker.source, err = account.GetAccount(checker.Storage, checker.Transaction.Source())
	return
}

func CheckSequenceID(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)
	if !checker.Transaction.IsValidSequenceID(checker.source.SequenceID) {
		return errors.ErrorInvalidSequenceID.Clone().
			SetData("expected", checker.source.SequenceID).
			SetData("given", checker.Transaction.B.SequenceID)
	}

	return nil
}

// CheckSourceBalance checks the source can pay the amounts of the operations
// and the fee.
func CheckSourceBalance(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)

	total, err := checker.Transaction.TotalAmount(true)
	if err != nil {
		return err
	}
	if checker.source.Balance < total {
		return errors.ErrorInsufficientBalance.Clone().
			SetData("balance", checker.source.Balance).
			SetData("amount", total)
	}

	return nil
}
