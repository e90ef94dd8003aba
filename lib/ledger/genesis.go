package ledger

import (
	"boscoin.io/ballot/lib/account"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

// InitGenesis creates the genesis account which holds the whole initial
// balance. The existing genesis account is kept as it is.
func InitGenesis(st storage.DBBackend, address string, balance common.Amount) (created bool, err error) {
	if !keypair.IsAddress(address) {
		err = errors.ErrorInvalidAddress.Clone().SetData("address", address)
		return
	}
	if balance < 1 {
		err = errors.ErrorInvalidAmount.Clone().SetData("balance", balance)
		return
	}

	var exists bool
	if exists, err = account.ExistsAccount(st, address); err != nil || exists {
		return
	}

	if err = account.NewAccount(address, balance).Save(st); err != nil {
		return
	}

	log.Info("genesis account created", "address", address, "balance", balance)
	created = true

	return
}
