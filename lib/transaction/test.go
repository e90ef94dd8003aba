package transaction

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/transaction/operation"
)

// TestMakeTransaction makes signed transaction for the tests.
func TestMakeTransaction(networkID []byte, kp *keypair.Full, sequenceID uint64, bodies ...operation.Body) Transaction {
	var ops []operation.Operation
	for _, b := range bodies {
		ops = append(ops, operation.MustNewOperation(b))
	}

	tx, err := NewTransaction(kp.Address(), sequenceID, common.DefaultBaseFee, ops...)
	if err != nil {
		panic(err)
	}
	tx.Sign(kp, networkID)

	return tx
}
