package storage

import (
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/errors"
)

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, _ := ioutil.TempDir("/tmp", "ballot")
	defer CleanDB(path)

	config, err := NewConfigFromString("file://" + path)
	require.NoError(t, err)

	st := &LevelDBBackend{}
	require.NoError(t, st.Init(config))
	require.NoError(t, st.New("showme", "findme"))
	require.NoError(t, st.Close())

	st = &LevelDBBackend{}
	require.NoError(t, st.Init(config))
	defer st.Close()

	var s string
	require.NoError(t, st.Get("showme", &s))
	require.Equal(t, "findme", s)
}

func TestNewConfigFromString(t *testing.T) {
	{
		c, err := NewConfigFromString("memory://")
		require.NoError(t, err)
		require.Equal(t, "memory", c.Scheme)
	}

	{
		c, err := NewConfigFromString("file:///tmp/ballot")
		require.NoError(t, err)
		require.Equal(t, "/tmp/ballot", c.Path)
		require.Equal(t, "file:///tmp/ballot", c.String())
	}

	{
		_, err := NewConfigFromString("file://")
		require.True(t, errors.Is(err, errors.ErrorStorageConfigError))
	}

	{
		_, err := NewConfigFromString("redis://localhost")
		require.True(t, errors.Is(err, errors.ErrorStorageConfigError))
	}
}

func TestLevelDBBackendNewSet(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	input := map[string]int{"a": 1, "b": 2}
	require.NoError(t, st.New("showme", input))

	fetched := map[string]int{}
	require.NoError(t, st.Get("showme", &fetched))
	require.Equal(t, input, fetched)

	err := st.New("showme", input)
	require.True(t, errors.Is(err, errors.ErrorStorageRecordAlreadyExists))

	err = st.Set("unknown", input)
	require.True(t, errors.Is(err, errors.ErrorStorageRecordDoesNotExist))

	input["c"] = 3
	require.NoError(t, st.Set("showme", input))
	require.NoError(t, st.Get("showme", &fetched))
	require.Equal(t, 3, fetched["c"])

	require.NoError(t, st.Put("unknown", 1))
	require.NoError(t, st.Remove("unknown"))
	exists, err := st.Has("unknown")
	require.NoError(t, err)
	require.False(t, exists)

	err = st.Get("unknown", &fetched)
	require.True(t, errors.Is(err, errors.ErrorStorageRecordDoesNotExist))
}

func TestLevelDBBackendNewsSets(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	var items []Item
	for i := 0; i < 5; i++ {
		items = append(items, Item{Key: fmt.Sprintf("k-%d", i), Value: i})
	}
	require.NoError(t, st.News(items...))

	err := st.News(items[0])
	require.True(t, errors.Is(err, errors.ErrorStorageRecordAlreadyExists))

	err = st.Sets(Item{Key: "k-0", Value: 10}, Item{Key: "k-9", Value: 9})
	require.True(t, errors.Is(err, errors.ErrorStorageRecordDoesNotExist))

	// nothing was written by the failed `Sets`
	var v int
	require.NoError(t, st.Get("k-0", &v))
	require.Equal(t, 0, v)
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	{
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		require.True(t, ts.IsTransaction())
		require.NoError(t, ts.New("discarded", 1))
		require.NoError(t, ts.Discard())

		exists, err := st.Has("discarded")
		require.NoError(t, err)
		require.False(t, exists)
	}

	{
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		require.NoError(t, ts.New("committed", 1))

		_, err = ts.OpenTransaction()
		require.Error(t, err)

		require.NoError(t, ts.Commit())

		exists, err := st.Has("committed")
		require.NoError(t, err)
		require.True(t, exists)
	}

	require.Error(t, st.Commit())
}

func TestLevelDBBackendIterator(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.New(fmt.Sprintf("p-%d", i), i))
	}
	require.NoError(t, st.New("q-0", 0))

	collect := func(options ListOptions) (keys []string) {
		iterFunc, closeFunc := st.GetIterator("p-", options)
		defer closeFunc()
		for {
			item, hasNext := iterFunc()
			if !hasNext {
				break
			}
			keys = append(keys, string(item.Key))
		}
		return
	}

	require.Equal(t, []string{"p-0", "p-1", "p-2", "p-3", "p-4"}, collect(nil))
	require.Equal(t, []string{"p-4", "p-3", "p-2", "p-1", "p-0"}, collect(NewDefaultListOptions(true, nil, 0)))
	require.Equal(t, []string{"p-0", "p-1"}, collect(NewDefaultListOptions(false, nil, 2)))
	require.Equal(t, []string{"p-3", "p-4"}, collect(NewDefaultListOptions(false, []byte("p-2"), 0)))
	require.Equal(t, []string{"p-1", "p-0"}, collect(NewDefaultListOptions(true, []byte("p-2"), 0)))
}
