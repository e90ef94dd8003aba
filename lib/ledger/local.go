package ledger

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	pkgerrors "github.com/pkg/errors"

	"boscoin.io/ballot/lib/account"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/observer"
	"boscoin.io/ballot/lib/contract"
	contractContext "boscoin.io/ballot/lib/contract/context"
	_ "boscoin.io/ballot/lib/contract/native/execfunc"
	"boscoin.io/ballot/lib/contract/payload"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/metrics"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

// awaitPollInterval bounds the wait when the receipt event was missed.
var awaitPollInterval = time.Second

// Local is the ledger over the local storage. The submitted transactions are
// applied one by one by a single worker; each transaction is applied inside
// one leveldb transaction, so the rejected transaction leaves no change
// except the charged fee.
type Local struct {
	st   *storage.LevelDBBackend
	conf common.Config

	pool     *pool
	queue    chan transaction.Transaction
	receipts *lru.Cache

	closeOnce sync.Once
	closing   chan struct{}
	wg        sync.WaitGroup
}

func NewLocal(st *storage.LevelDBBackend, conf common.Config) (*Local, error) {
	cacheSize := conf.ReceiptCacheSize
	if cacheSize < 1 {
		cacheSize = common.DefaultReceiptCacheSize
	}
	receipts, err := lru.New(cacheSize)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create receipt cache")
	}

	queueSize := conf.QueueSize
	if queueSize < 1 {
		queueSize = common.DefaultQueueSize
	}

	return &Local{
		st:       st,
		conf:     conf,
		pool:     newPool(),
		queue:    make(chan transaction.Transaction, queueSize),
		receipts: receipts,
		closing:  make(chan struct{}),
	}, nil
}

func (l *Local) Storage() *storage.LevelDBBackend {
	return l.st
}

func (l *Local) Config() common.Config {
	return l.conf
}

// Start runs the worker; it returns immediately.
func (l *Local) Start() {
	l.wg.Add(1)
	go l.run()

	log.Debug("ledger started", "queue-size", cap(l.queue))
}

// Stop waits until the transaction being applied is finished. The queued
// transactions stay pending.
func (l *Local) Stop() {
	l.closeOnce.Do(func() {
		close(l.closing)
	})
	l.wg.Wait()

	log.Debug("ledger stopped", "pending", l.pool.Len())
}

func (l *Local) isClosed() bool {
	select {
	case <-l.closing:
		return true
	default:
		return false
	}
}

func (l *Local) Submit(ctx context.Context, tx transaction.Transaction) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if l.isClosed() {
		return "", errors.ErrorLedgerClosed
	}

	if err := tx.IsWellFormed(l.conf); err != nil {
		return "", err
	}

	hash := tx.GetHash()
	if exists, err := ExistsReceipt(l.st, hash); err != nil {
		return "", err
	} else if exists {
		return "", errors.ErrorTransactionAlreadyExists.Clone().SetData("hash", hash)
	}

	if err := common.RunChecker(NewTransactionChecker(l.st, tx), common.DefaultDeferFunc); err != nil {
		return "", err
	}

	if err := l.pool.Add(tx); err != nil {
		return "", err
	}

	select {
	case l.queue <- tx:
	default:
		l.pool.Remove(hash)
		return "", errors.ErrorLedgerQueueFull
	}
	metrics.Ledger.AddQueueSize(1)

	log.Debug("transaction submitted", "hash", hash, "source", tx.Source(), "operations", len(tx.B.Operations))

	return Handle(hash), nil
}

func (l *Local) Receipt(ctx context.Context, h Handle) (*Receipt, error) {
	hash := h.String()
	if r, found := l.receipts.Get(hash); found {
		return r.(*Receipt), nil
	}

	// the receipt is saved before the transaction leaves the pool
	if tx, found := l.pool.Get(hash); found {
		return NewReceipt(tx), nil
	}

	r, err := GetReceipt(l.st, hash)
	if err != nil {
		return nil, err
	}
	l.receipts.Add(hash, r)

	return r, nil
}

func (l *Local) Await(ctx context.Context, h Handle) (*Receipt, error) {
	received := make(chan *Receipt, 1)
	handler := func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		if r, ok := args[0].(*Receipt); ok {
			select {
			case received <- r:
			default:
			}
		}
	}

	event := observer.NewReceiptEvent(h.String())
	observer.ReceiptObserver.On(event, handler)
	defer observer.ReceiptObserver.Off(event, handler)

	ticker := time.NewTicker(awaitPollInterval)
	defer ticker.Stop()

	for {
		r, err := l.Receipt(ctx, h)
		if err != nil {
			return nil, err
		}
		if !r.IsPending() {
			return r, receiptError(r)
		}

		select {
		case r = <-received:
			return r, receiptError(r)
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func receiptError(r *Receipt) error {
	if r.Error != nil {
		return r.Error
	}

	return nil
}

func (l *Local) Read(ctx context.Context, contractAddress, method string, args ...string) (*value.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return contract.Execute(contractContext.NewReadOnlyContext(l.st), &payload.ExecCode{
		ContractAddress: contractAddress,
		Method:          method,
		Args:            args,
	})
}

func (l *Local) Account(ctx context.Context, address string) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return account.GetAccount(l.st, address)
}

func (l *Local) CurrentBalance(ctx context.Context, address string) (common.Amount, error) {
	ac, err := l.Account(ctx, address)
	if err != nil {
		return 0, err
	}

	return ac.Balance, nil
}

func (l *Local) run() {
	defer l.wg.Done()

	for {
		select {
		case <-l.closing:
			return
		case tx := <-l.queue:
			metrics.Ledger.AddQueueSize(-1)
			l.apply(tx)
		}
	}
}

func (l *Local) apply(tx transaction.Transaction) {
	begin := time.Now()
	defer metrics.Ledger.ObserveApplySeconds(begin)

	receipt, err := l.applyTransaction(tx)
	if err != nil {
		log.Error("failed to apply transaction", "hash", tx.GetHash(), "error", err)

		receipt = NewReceipt(tx)
		receipt.reject(rejection(err))
		if err = receipt.Save(l.st); err != nil {
			log.Error("failed to save receipt", "hash", tx.GetHash(), "error", err)
		}
	}

	l.receipts.Add(receipt.Hash, receipt)
	l.pool.Remove(receipt.Hash)
	metrics.Ledger.AddTransaction(receipt.Status)

	if receipt.Error != nil {
		log.Debug("transaction rejected", "hash", receipt.Hash, "error", receipt.Error)
	} else {
		log.Debug("transaction applied", "hash", receipt.Hash, "elapsed", time.Since(begin))
	}

	observer.ReceiptObserver.Trigger(observer.NewReceiptEvent(receipt.Hash), receipt)
}

// applyTransaction returns error only when the storage fails; the rejected
// transaction returns the rejected receipt.
func (l *Local) applyTransaction(tx transaction.Transaction) (*Receipt, error) {
	receipt := NewReceipt(tx)

	if err := common.RunChecker(NewTransactionChecker(l.st, tx), common.DefaultDeferFunc); err != nil {
		if isStorageError(err) {
			return nil, err
		}
		receipt.reject(rejection(err))
		return receipt, receipt.Save(l.st)
	}

	ts, err := l.st.OpenTransaction()
	if err != nil {
		return nil, err
	}

	var results []OperationResult
	if results, err = applyOperations(ts, tx); err == nil {
		receipt.apply(results)
		if err = l.finish(ts, tx, receipt); err == nil {
			return receipt, nil
		}
	}
	ts.Discard()

	if isStorageError(err) {
		return nil, err
	}
	receipt.reject(rejection(err))

	// the rejected transaction still pays the fee
	if ts, err = l.st.OpenTransaction(); err != nil {
		return nil, err
	}
	if err = l.finish(ts, tx, receipt); err != nil {
		ts.Discard()
		return nil, err
	}

	return receipt, nil
}

// finish charges the fee, increases the sequence id of the source and saves
// the receipt.
func (l *Local) finish(ts *storage.LevelDBBackend, tx transaction.Transaction, receipt *Receipt) (err error) {
	var source *account.Account
	if source, err = account.GetAccount(ts, tx.Source()); err != nil {
		return
	}

	fee := tx.TotalFee()
	if err = source.Withdraw(fee); err != nil {
		return
	}
	source.IncreaseSequenceID()
	if err = source.Save(ts); err != nil {
		return
	}

	receipt.Fee = fee
	if err = receipt.Save(ts); err != nil {
		return
	}

	return ts.Commit()
}

func isStorageError(err error) bool {
	return errors.Is(err, errors.ErrorStorageCoreError)
}

func rejection(err error) *errors.Error {
	if e, ok := errors.Cause(err); ok {
		return e
	}

	return errors.ErrorInvalidTransaction.Clone().SetData("error", err.Error())
}
