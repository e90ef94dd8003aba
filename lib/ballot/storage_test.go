package ballot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/contract/api"
	"boscoin.io/ballot/lib/contract/context"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

func TestBallotSaveLoad(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	store := api.NewAPI(context.NewContext(chair, st), "GCONTRACT")

	_, err := Load(store)
	require.Equal(t, errors.ErrorBallotNotFound, err)

	b := newTestBallot(t, WithStrictDelegation())
	require.NoError(t, b.GiveRightToVote(chair, v1))
	require.NoError(t, b.GiveRightToVote(chair, v2))
	require.NoError(t, b.Vote(v1, 2))
	require.NoError(t, b.Save(store))

	loaded, err := Load(store)
	require.NoError(t, err)
	require.Equal(t, b.Chairperson(), loaded.Chairperson())
	require.Equal(t, b.Proposals(), loaded.Proposals())
	require.Equal(t, b.Voters(), loaded.Voters())
	require.True(t, loaded.StrictDelegation())

	require.NoError(t, loaded.Delegate(v2, v1))
	require.NoError(t, loaded.Save(store))

	reloaded, err := Load(store)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 0, 2}, voteCounts(reloaded))
	require.Equal(t, v1, reloaded.Voter(v2).Delegate)

	v, err := LoadVoter(store, v2)
	require.NoError(t, err)
	require.Equal(t, v1, v.Delegate)

	v, err = LoadVoter(store, v4)
	require.NoError(t, err)
	require.Equal(t, uint64(0), v.Weight)

	voters, err := LoadVoters(store, storage.NewDefaultListOptions(false, []byte(v1), 10))
	require.NoError(t, err)
	require.Equal(t, 1, len(voters))
	require.Equal(t, v2, voters[0].Address)
}

func TestBallotLoadWithoutProposals(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	store := api.NewAPI(context.NewContext(chair, st), "GCONTRACT")
	require.NoError(t, store.PutStorageItem(headerKey, header{Chairperson: chair}))

	_, err := Load(store)
	require.Equal(t, errors.ErrorInvalidConfiguration, err)
}
