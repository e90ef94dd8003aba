package ledger

import (
	"sync"

	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction"
)

// pool keeps the submitted transactions until they are applied. Only one
// transaction from the same source can be pending.
type pool struct {
	sync.RWMutex

	txs     map[ /* Transaction.GetHash() */ string]transaction.Transaction
	sources map[ /* Transaction.Source() */ string] /* Transaction.GetHash() */ string
}

func newPool() *pool {
	return &pool{
		txs:     map[string]transaction.Transaction{},
		sources: map[string]string{},
	}
}

func (p *pool) Len() int {
	p.RLock()
	defer p.RUnlock()

	return len(p.txs)
}

func (p *pool) Has(hash string) bool {
	p.RLock()
	defer p.RUnlock()

	_, found := p.txs[hash]
	return found
}

func (p *pool) Get(hash string) (transaction.Transaction, bool) {
	p.RLock()
	defer p.RUnlock()

	tx, found := p.txs[hash]
	return tx, found
}

func (p *pool) Add(tx transaction.Transaction) error {
	p.Lock()
	defer p.Unlock()

	if _, found := p.txs[tx.GetHash()]; found {
		return errors.ErrorTransactionAlreadyExists.Clone().SetData("hash", tx.GetHash())
	}
	if hash, found := p.sources[tx.Source()]; found {
		return errors.ErrorTransactionSameSource.Clone().SetData("pending", hash)
	}

	p.txs[tx.GetHash()] = tx
	p.sources[tx.Source()] = tx.GetHash()

	return nil
}

func (p *pool) Remove(hash string) {
	p.Lock()
	defer p.Unlock()

	tx, found := p.txs[hash]
	if !found {
		return
	}

	delete(p.txs, hash)
	delete(p.sources, tx.Source())
}
