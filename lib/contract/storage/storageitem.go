package storage

import (
	"encoding/json"
	"fmt"

	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

const (
	StorageItemKeyPrefix = "tc-si-" // tc-si-{address}-{key}
)

// StorageItem is a record in the contract's own storage.
type StorageItem struct {
	Address string          `json:"address"`
	Key     string          `json:"key"`
	Value   json.RawMessage `json:"value"`
}

func NewStorageItem(addr, key string, v interface{}) (*StorageItem, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &StorageItem{
		Address: addr,
		Key:     key,
		Value:   b,
	}, nil
}

func (s *StorageItem) Decode(v interface{}) error {
	return json.Unmarshal(s.Value, v)
}

func (s *StorageItem) Save(st storage.DBBackend) error {
	return st.Put(GetStorageItemDBKey(s.Address, s.Key), s)
}

func GetStorageItemDBKey(addr, key string) string {
	return fmt.Sprintf("%s%s-%s", StorageItemKeyPrefix, addr, key)
}

// GetStorageItem returns nil without error if the item does not exist.
func GetStorageItem(st storage.DBBackend, addr, key string) (*StorageItem, error) {
	var item StorageItem
	if err := st.Get(GetStorageItemDBKey(addr, key), &item); err != nil {
		if errors.Is(err, errors.ErrorStorageRecordDoesNotExist) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

// GetStorageItems lists the items whose key starts with `prefix`.
func GetStorageItems(st storage.DBBackend, addr, prefix string, options storage.ListOptions) (items []*StorageItem, err error) {
	if options != nil && options.Cursor() != nil {
		options = storage.NewDefaultListOptions(
			options.Reverse(),
			[]byte(GetStorageItemDBKey(addr, string(options.Cursor()))),
			options.Limit(),
		)
	}

	iterFunc, closeFunc := st.GetIterator(GetStorageItemDBKey(addr, prefix), options)
	defer closeFunc()

	for {
		it, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var item StorageItem
		if err = json.Unmarshal(it.Value, &item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return
}
