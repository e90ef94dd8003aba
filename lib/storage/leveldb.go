package storage

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/ballot/lib/common"
	ballotErrors "boscoin.io/ballot/lib/errors"
)

type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}

	return ballotErrors.ErrorStorageCoreError.Clone().SetData("error", err.Error())
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case "file":
		if db, err = leveldb.OpenFile(config.Path, nil); err != nil {
			return errors.Wrapf(setLevelDBCoreError(err), "failed to open %s", config.Path)
		}
	case "memory":
		if db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil); err != nil {
			return errors.Wrap(setLevelDBCoreError(err), "failed to open memory storage")
		}
	default:
		return errors.Wrapf(ballotErrors.ErrorStorageConfigError, "unknown scheme %q", config.Scheme)
	}

	st.DB = db
	st.Core = db

	return
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

// OpenTransaction returns new backend which writes into the leveldb
// transaction; nothing is visible until `Commit()`.
func (st *LevelDBBackend) OpenTransaction() (*LevelDBBackend, error) {
	if _, ok := st.Core.(*leveldb.Transaction); ok {
		return nil, setLevelDBCoreError(errors.New("this is already *leveldb.Transaction"))
	}

	transaction, err := st.DB.OpenTransaction()
	if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: transaction,
	}, nil
}

func (st *LevelDBBackend) IsTransaction() bool {
	_, ok := st.Core.(*leveldb.Transaction)
	return ok
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(errors.New("this is not *leveldb.Transaction"))
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(errors.New("this is not *leveldb.Transaction"))
	}

	return setLevelDBCoreError(ts.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) (b []byte, err error) {
	b, err = st.Core.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		return nil, ballotErrors.ErrorStorageRecordDoesNotExist
	}

	err = setLevelDBCoreError(err)
	return
}

func (st *LevelDBBackend) Get(k string, i interface{}) (err error) {
	var b []byte
	if b, err = st.GetRaw(k); err != nil {
		return
	}

	if err = json.Unmarshal(b, i); err != nil {
		err = setLevelDBCoreError(err)
		return
	}

	return
}

func (st *LevelDBBackend) New(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = common.EncodeJSONValue(v); err != nil {
		return setLevelDBCoreError(err)
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if exists {
		return ballotErrors.ErrorStorageRecordAlreadyExists
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

func (st *LevelDBBackend) Set(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = common.EncodeJSONValue(v); err != nil {
		return setLevelDBCoreError(err)
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		return ballotErrors.ErrorStorageRecordDoesNotExist
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

// Put stores the value whether the key exists or not.
func (st *LevelDBBackend) Put(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = common.EncodeJSONValue(v); err != nil {
		return setLevelDBCoreError(err)
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

func (st *LevelDBBackend) News(vs ...Item) (err error) {
	if len(vs) < 1 {
		return setLevelDBCoreError(errors.New("empty values"))
	}

	var exists bool
	for _, v := range vs {
		if exists, err = st.Has(v.Key); err != nil {
			return
		} else if exists {
			return ballotErrors.ErrorStorageRecordAlreadyExists.Clone().SetData("key", v.Key)
		}
	}

	return st.writeBatch(vs)
}

func (st *LevelDBBackend) Sets(vs ...Item) (err error) {
	if len(vs) < 1 {
		return setLevelDBCoreError(errors.New("empty values"))
	}

	var exists bool
	for _, v := range vs {
		if exists, err = st.Has(v.Key); err != nil {
			return
		} else if !exists {
			return ballotErrors.ErrorStorageRecordDoesNotExist.Clone().SetData("key", v.Key)
		}
	}

	return st.writeBatch(vs)
}

func (st *LevelDBBackend) writeBatch(vs []Item) error {
	batch := new(leveldb.Batch)
	for _, v := range vs {
		encoded, err := common.EncodeJSONValue(v.Value)
		if err != nil {
			return setLevelDBCoreError(err)
		}

		batch.Put(st.makeKey(v.Key), encoded)
	}

	return setLevelDBCoreError(st.Core.Write(batch, nil))
}

func (st *LevelDBBackend) Remove(k string) (err error) {
	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		return ballotErrors.ErrorStorageRecordDoesNotExist
	}

	return setLevelDBCoreError(st.Core.Delete(st.makeKey(k), nil))
}

// GetIterator iterates the records under prefix. The second returned func
// must be called when the caller stops before the iteration ends.
func (st *LevelDBBackend) GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func()) {
	var reverse = false
	var cursor []byte
	var limit uint64 = 0
	if option != nil {
		reverse = option.Reverse()
		cursor = option.Cursor()
		limit = option.Limit()
	}

	var dbRange *leveldbUtil.Range
	if len(prefix) > 0 {
		dbRange = leveldbUtil.BytesPrefix(st.makeKey(prefix))
	}

	iter := st.Core.NewIterator(dbRange, nil)

	var funcNext func() bool
	var hasUnsent bool
	if cursor != nil {
		// the cursor itself is excluded
		if reverse {
			if !iter.Seek(cursor) {
				hasUnsent = iter.Last()
			} else {
				hasUnsent = iter.Prev()
			}
		} else if iter.Seek(cursor) {
			if string(iter.Key()) == string(cursor) {
				hasUnsent = iter.Next()
			} else {
				hasUnsent = true
			}
		}
	} else if reverse {
		hasUnsent = iter.Last()
	} else {
		hasUnsent = iter.First()
	}

	if reverse {
		funcNext = iter.Prev
	} else {
		funcNext = iter.Next
	}

	var n uint64
	var released bool
	release := func() {
		if !released {
			iter.Release()
			released = true
		}
	}

	return func() (IterItem, bool) {
			if released || (limit != 0 && n >= limit) {
				release()
				return IterItem{}, false
			}

			if !hasUnsent {
				release()
				return IterItem{}, false
			}

			n++
			item := IterItem{
				N:     n,
				Key:   append([]byte{}, iter.Key()...),
				Value: append([]byte{}, iter.Value()...),
			}
			hasUnsent = funcNext()

			return item, true
		},
		release
}
