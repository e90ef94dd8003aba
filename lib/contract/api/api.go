package api

import (
	"time"

	"boscoin.io/ballot/lib/contract/context"
	"boscoin.io/ballot/lib/contract/storage"
	"boscoin.io/ballot/lib/errors"
	ballotStorage "boscoin.io/ballot/lib/storage"
)

// API is used by the executors to reach the contract's own storage.
type API struct {
	contractAddress string // the current contract address
	ctx             *context.Context
}

func NewAPI(ctx *context.Context, contractAddr string) *API {
	return &API{
		contractAddress: contractAddr,
		ctx:             ctx,
	}
}

func (a *API) ContractAddress() string {
	return a.contractAddress
}

func (a *API) Sender() string {
	return a.ctx.SenderAddress()
}

// GetStorageItem reads a item of a key from this contract own storage; nil
// if not found.
func (a *API) GetStorageItem(key string) (*storage.StorageItem, error) {
	return storage.GetStorageItem(a.ctx.Storage(), a.contractAddress, key)
}

// PutStorageItem writes a item to this contract's own storage
func (a *API) PutStorageItem(key string, v interface{}) error {
	if a.ctx.ReadOnly() {
		return errors.ErrorInvalidOperation.Clone().SetData("reason", "read only context")
	}

	item, err := storage.NewStorageItem(a.contractAddress, key, v)
	if err != nil {
		return err
	}

	return item.Save(a.ctx.Storage())
}

func (a *API) GetStorageItems(prefix string, options ballotStorage.ListOptions) ([]*storage.StorageItem, error) {
	return storage.GetStorageItems(a.ctx.Storage(), a.contractAddress, prefix, options)
}

func (a *API) Now() time.Time {
	return time.Now().UTC()
}
