package contract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/contract/context"
	"boscoin.io/ballot/lib/contract/native/execfunc"
	"boscoin.io/ballot/lib/contract/payload"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

type testBallot struct {
	t        *testing.T
	st       *storage.LevelDBBackend
	address  string
	chair    *keypair.Full
	proposal []string
}

func newTestBallot(t *testing.T, code string) *testBallot {
	st := storage.NewTestMemoryLevelDBBackend()

	address, err := MakeContractAddress("test-hash", 0)
	require.NoError(t, err)

	tb := &testBallot{
		t:        t,
		st:       st,
		address:  address,
		chair:    keypair.Random(),
		proposal: []string{"Proposal 1", "Proposal 2", "Proposal 3"},
	}

	err = Deploy(context.NewContext(tb.chair.Address(), st), &payload.DeployCode{
		ContractAddress: address,
		Type:            payload.Native,
		Code:            []byte(code),
		Args:            tb.proposal,
	})
	require.NoError(t, err)

	return tb
}

func (tb *testBallot) exec(sender, method string, args ...string) error {
	_, err := Execute(context.NewContext(sender, tb.st), &payload.ExecCode{
		ContractAddress: tb.address,
		Method:          method,
		Args:            args,
	})
	return err
}

func (tb *testBallot) view(method string, args ...string) (v interface{}) {
	ret, err := Execute(context.NewReadOnlyContext(tb.st), &payload.ExecCode{
		ContractAddress: tb.address,
		Method:          method,
		Args:            args,
	})
	require.NoError(tb.t, err)

	return ret.Interface()
}

func TestContractBallotEndToEnd(t *testing.T) {
	tb := newTestBallot(t, execfunc.BallotCode)
	defer tb.st.Close()

	dc, err := payload.GetDeployCode(tb.st, tb.address)
	require.NoError(t, err)
	require.Equal(t, tb.chair.Address(), dc.Deployer)

	require.Equal(t, tb.chair.Address(), tb.view(execfunc.MethodChairperson))
	require.Equal(t, uint64(3), tb.view(execfunc.MethodProposalCount))

	voters := []*keypair.Full{keypair.Random(), keypair.Random(), keypair.Random(), keypair.Random()}
	for _, v := range voters {
		require.NoError(t, tb.exec(tb.chair.Address(), execfunc.MethodGiveRightToVote, v.Address()))
	}

	require.NoError(t, tb.exec(tb.chair.Address(), execfunc.MethodVote, "0"))
	require.NoError(t, tb.exec(voters[0].Address(), execfunc.MethodVote, "2"))
	for _, v := range voters[1:] {
		require.NoError(t, tb.exec(v.Address(), execfunc.MethodVote, "1"))
	}

	require.Equal(t, uint64(1), tb.view(execfunc.MethodWinningProposal))
	require.Equal(t, "Proposal 2", tb.view(execfunc.MethodWinnerName))

	{
		ret, err := Execute(context.NewReadOnlyContext(tb.st), &payload.ExecCode{
			ContractAddress: tb.address,
			Method:          execfunc.MethodWinner,
		})
		require.NoError(t, err)

		var p ballot.Proposal
		require.NoError(t, ret.Decode(&p))
		require.Equal(t, ballot.Proposal{Index: 1, Name: "Proposal 2", VoteCount: 3}, p)
	}

	{
		ret, err := Execute(context.NewReadOnlyContext(tb.st), &payload.ExecCode{
			ContractAddress: tb.address,
			Method:          execfunc.MethodProposals,
			Args:            []string{"1"},
		})
		require.NoError(t, err)

		var p ballot.Proposal
		require.NoError(t, ret.Decode(&p))
		require.Equal(t, "Proposal 2", p.Name)
		require.Equal(t, uint64(3), p.VoteCount)
	}

	{
		ret, err := Execute(context.NewReadOnlyContext(tb.st), &payload.ExecCode{
			ContractAddress: tb.address,
			Method:          execfunc.MethodVoters,
			Args:            []string{voters[0].Address()},
		})
		require.NoError(t, err)

		var v ballot.Voter
		require.NoError(t, ret.Decode(&v))
		require.True(t, v.Voted)
		require.Equal(t, uint64(2), *v.Vote)
	}

	// querying the proposals stops at the first invalid index
	_, err = Execute(context.NewReadOnlyContext(tb.st), &payload.ExecCode{
		ContractAddress: tb.address,
		Method:          execfunc.MethodProposals,
		Args:            []string{"3"},
	})
	require.True(t, errors.Is(err, errors.ErrorInvalidProposal))
}

func TestContractBallotRejections(t *testing.T) {
	tb := newTestBallot(t, execfunc.BallotCode)
	defer tb.st.Close()

	outsider := keypair.Random()

	err := tb.exec(outsider.Address(), execfunc.MethodGiveRightToVote, outsider.Address())
	require.Equal(t, "Only chairperson can give right to vote.", err.(*errors.Error).Message)

	err = tb.exec(outsider.Address(), execfunc.MethodVote, "0")
	require.Equal(t, "Has no right to vote", err.(*errors.Error).Message)

	err = tb.exec(tb.chair.Address(), execfunc.MethodDelegate, tb.chair.Address())
	require.Equal(t, "Self-delegation is disallowed.", err.(*errors.Error).Message)

	err = tb.exec(tb.chair.Address(), execfunc.MethodGiveRightToVote, "not-an-address")
	require.True(t, errors.Is(err, errors.ErrorInvalidAddress))

	err = tb.exec(tb.chair.Address(), execfunc.MethodVote)
	require.True(t, errors.Is(err, errors.ErrorContractInvalidArgs))

	err = tb.exec(tb.chair.Address(), execfunc.MethodVote, "x")
	require.True(t, errors.Is(err, errors.ErrorContractInvalidArgs))

	err = tb.exec(tb.chair.Address(), "unknown")
	require.True(t, errors.Is(err, errors.ErrorContractMethodNotFound))

	// views can not mutate
	_, err = Execute(context.NewReadOnlyContext(tb.st), &payload.ExecCode{
		ContractAddress: tb.address,
		Method:          execfunc.MethodVote,
		Args:            []string{"0"},
	})
	require.True(t, errors.Is(err, errors.ErrorInvalidOperation))
}

func TestContractStrictBallot(t *testing.T) {
	tb := newTestBallot(t, execfunc.StrictBallotCode)
	defer tb.st.Close()

	err := tb.exec(tb.chair.Address(), execfunc.MethodDelegate, keypair.Random().Address())
	require.Equal(t, "Delegate has no right to vote", err.(*errors.Error).Message)
}

func TestContractDeployErrors(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	ctx := context.NewContext(keypair.Random().Address(), st)

	err := Deploy(ctx, &payload.DeployCode{ContractAddress: "GA", Type: payload.Native, Code: []byte("unknown")})
	require.True(t, errors.Is(err, errors.ErrorContractUnknownCode))

	err = Deploy(ctx, &payload.DeployCode{ContractAddress: "GA", Type: payload.NONE, Code: []byte(execfunc.BallotCode)})
	require.True(t, errors.Is(err, errors.ErrorContractUnknownType))

	err = Deploy(ctx, &payload.DeployCode{ContractAddress: "GA", Type: payload.Native, Code: []byte(execfunc.BallotCode)})
	require.Equal(t, errors.ErrorInvalidConfiguration, err)

	_, err = Execute(ctx, &payload.ExecCode{ContractAddress: "GB", Method: execfunc.MethodVote})
	require.True(t, errors.Is(err, errors.ErrorContractNotFound))
}
