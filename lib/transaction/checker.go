package transaction

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

type TransactionChecker struct {
	common.DefaultChecker

	Config      common.Config
	Transaction Transaction
}

func CheckTransactionSource(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)
	if !keypair.IsAddress(checker.Transaction.B.Source) {
		return errors.ErrorInvalidAddress.Clone().SetData("source", checker.Transaction.B.Source)
	}

	return nil
}

func CheckTransactionOperationsLimit(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)

	if len(checker.Transaction.B.Operations) < 1 {
		return errors.ErrorTransactionEmptyOperations
	}
	if len(checker.Transaction.B.Operations) > MaxOperationsInTransaction {
		return errors.ErrorInvalidTransaction.Clone().SetData("operations", len(checker.Transaction.B.Operations))
	}

	return nil
}

func CheckTransactionBaseFee(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)
	if checker.Transaction.B.Fee < checker.Config.BaseFee {
		return errors.ErrorInvalidFee.Clone().SetData("base_fee", checker.Config.BaseFee)
	}

	return nil
}

func CheckTransactionOperation(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransactionChecker)

	var hashes []string
	for _, op := range checker.Transaction.B.Operations {
		if err = op.IsWellFormed(checker.Config); err != nil {
			return
		}

		pop, ok := op.B.(operation.Payable)
		if !ok {
			continue
		}

		if checker.Transaction.B.Source == pop.TargetAddress() {
			return errors.ErrorInvalidOperation.Clone().SetData("target", pop.TargetAddress())
		}

		// same 'Type' and same 'TargetAddress()' can not be in one
		// transaction.
		u := fmt.Sprintf("%s-%s", op.H.Type, pop.TargetAddress())
		if _, found := common.InStringArray(hashes, u); found {
			return errors.ErrorInvalidOperation.Clone().SetData("duplicated", u)
		}

		hashes = append(hashes, u)
	}

	return
}

func CheckTransactionHash(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)
	if checker.Transaction.B.MakeHashString() != checker.Transaction.H.Hash {
		return errors.ErrorInvalidHash
	}

	return nil
}

func CheckTransactionVerifySignature(c common.Checker, args ...interface{}) error {
	checker := c.(*TransactionChecker)

	err := keypair.VerifySignature(
		checker.Transaction.B.Source,
		checker.Config.NetworkID,
		checker.Transaction.H.Hash,
		base58.Decode(checker.Transaction.H.Signature),
	)
	if err != nil {
		return errors.ErrorSignatureVerificationFailed
	}

	return nil
}
