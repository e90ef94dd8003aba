package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/contract/native/execfunc"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

func TestBallotView(t *testing.T) {
	tl := newTestLedger(t)
	defer tl.close()

	kps := tl.createAccounts(2, common.Amount(100000000))
	chair, voter := kps[0], kps[1]

	receipt, err := tl.submit(chair, operation.NewContractDeploy(execfunc.BallotCode, "Proposal 1", "Proposal 2", "Proposal 3"))
	require.NoError(t, err)

	ctx := context.Background()
	view := NewBallotView(tl.l, receipt.ContractAddresses()[0])

	chairperson, err := view.Chairperson(ctx)
	require.NoError(t, err)
	require.Equal(t, chair.Address(), chairperson)

	// no votes yet
	winner, err := view.Winner(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), winner.Index)
	require.Equal(t, "Proposal 1", winner.Name)

	_, err = tl.submit(chair, operation.NewContractExecute(view.Contract(), execfunc.MethodDelegate, voter.Address()))
	require.NoError(t, err)

	// the delegate has no right to vote, so the weight stays on the delegate
	delegated, err := view.Voter(ctx, voter.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(1), delegated.Weight)
	require.False(t, delegated.Voted)

	_, err = tl.submit(voter, operation.NewContractExecute(view.Contract(), execfunc.MethodVote, "2"))
	require.NoError(t, err)

	proposals, err := view.Proposals(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, len(proposals))
	for i, p := range proposals {
		require.Equal(t, uint64(i), p.Index)
	}
	require.Equal(t, uint64(1), proposals[2].VoteCount)

	winner, err = view.Winner(ctx)
	require.NoError(t, err)
	require.Equal(t, "Proposal 3", winner.Name)

	_, err = view.Proposal(ctx, 3)
	require.True(t, errors.Is(err, errors.ErrorInvalidProposal))

	_, err = NewBallotView(tl.l, voter.Address()).Chairperson(ctx)
	require.True(t, errors.Is(err, errors.ErrorContractNotFound))
}
