package context

import (
	"boscoin.io/ballot/lib/contract/payload"
	"boscoin.io/ballot/lib/storage"
)

// Context is the environment of one contract call. `Storage` is usually the
// leveldb transaction of the ledger transaction.
type Context struct {
	sender   string
	storage  storage.DBBackend
	readOnly bool
}

func NewContext(senderAddr string, st storage.DBBackend) *Context {
	return &Context{
		sender:  senderAddr,
		storage: st,
	}
}

// NewReadOnlyContext makes the context for the views; the storage writes are
// rejected.
func NewReadOnlyContext(st storage.DBBackend) *Context {
	return &Context{
		storage:  st,
		readOnly: true,
	}
}

func (c *Context) SenderAddress() string {
	return c.sender
}

func (c *Context) ReadOnly() bool {
	return c.readOnly
}

func (c *Context) Storage() storage.DBBackend {
	return c.storage
}

func (c *Context) PutDeployCode(code *payload.DeployCode) error {
	return code.Save(c.storage)
}

func (c *Context) GetDeployCode(address string) (*payload.DeployCode, error) {
	return payload.GetDeployCode(c.storage, address)
}
