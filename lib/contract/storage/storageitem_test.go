package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/storage"
)

func TestStorageItem(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	item, err := GetStorageItem(st, "GCONTRACT", "showme")
	require.NoError(t, err)
	require.Nil(t, item)

	item, err = NewStorageItem("GCONTRACT", "showme", []string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, item.Save(st))

	item, err = NewStorageItem("GCONTRACT", "showme", []string{"c"})
	require.NoError(t, err)
	require.NoError(t, item.Save(st))

	fetched, err := GetStorageItem(st, "GCONTRACT", "showme")
	require.NoError(t, err)

	var v []string
	require.NoError(t, fetched.Decode(&v))
	require.Equal(t, []string{"c"}, v)
}

func TestStorageItems(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	for i := 0; i < 4; i++ {
		item, err := NewStorageItem("GCONTRACT", fmt.Sprintf("voter-%d", i), i)
		require.NoError(t, err)
		require.NoError(t, item.Save(st))
	}
	{
		item, err := NewStorageItem("GOTHER", "voter-9", 9)
		require.NoError(t, err)
		require.NoError(t, item.Save(st))
	}

	items, err := GetStorageItems(st, "GCONTRACT", "voter-", nil)
	require.NoError(t, err)
	require.Equal(t, 4, len(items))

	items, err = GetStorageItems(st, "GCONTRACT", "voter-", storage.NewDefaultListOptions(false, []byte("voter-1"), 2))
	require.NoError(t, err)
	require.Equal(t, 2, len(items))
	require.Equal(t, "voter-2", items[0].Key)
	require.Equal(t, "voter-3", items[1].Key)
}
