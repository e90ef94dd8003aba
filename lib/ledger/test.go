package ledger

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/storage"
)

// TestGenesisBalance is the balance of the genesis account made by
// `NewTestLocal()`.
const TestGenesisBalance = common.Amount(1000000000000000)

// NewTestLocal makes the ledger over the memory storage with the random
// genesis account; the ledger is not started.
func NewTestLocal(conf common.Config) (*Local, *keypair.Full) {
	st := storage.NewTestMemoryLevelDBBackend()

	genesis := keypair.Random()
	if _, err := InitGenesis(st, genesis.Address(), TestGenesisBalance); err != nil {
		panic(err)
	}

	l, err := NewLocal(st, conf)
	if err != nil {
		panic(err)
	}

	return l, genesis
}
