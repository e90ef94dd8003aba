package storage

type DBBackend interface {
	Has(string) (bool, error)
	GetRaw(string) ([]byte, error)
	Get(string, interface{}) error
	New(string, interface{}) error
	Set(string, interface{}) error
	Put(string, interface{}) error
	Remove(string) error

	GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func())

	News(...Item) error
	Sets(...Item) error
}

type Item struct {
	Key   string
	Value interface{}
}

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}
