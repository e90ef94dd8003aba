package ledger

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/contract/native/execfunc"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

var networkID = []byte("ledger-test-network")

type testLedger struct {
	t       *testing.T
	l       *Local
	genesis *keypair.Full
}

func newTestLedger(t *testing.T) *testLedger {
	l, genesis := NewTestLocal(common.NewConfig(networkID))
	l.Start()

	return &testLedger{t: t, l: l, genesis: genesis}
}

func (tl *testLedger) close() {
	tl.l.Stop()
	tl.l.Storage().Close()
}

func (tl *testLedger) makeTransaction(kp *keypair.Full, bodies ...operation.Body) transaction.Transaction {
	ac, err := tl.l.Account(context.Background(), kp.Address())
	require.NoError(tl.t, err)

	return transaction.TestMakeTransaction(networkID, kp, ac.SequenceID, bodies...)
}

func (tl *testLedger) submit(kp *keypair.Full, bodies ...operation.Body) (*Receipt, error) {
	h, err := tl.l.Submit(context.Background(), tl.makeTransaction(kp, bodies...))
	require.NoError(tl.t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return tl.l.Await(ctx, h)
}

func (tl *testLedger) createAccounts(n int, amount common.Amount) (kps []*keypair.Full) {
	var bodies []operation.Body
	for i := 0; i < n; i++ {
		kp := keypair.Random()
		kps = append(kps, kp)
		bodies = append(bodies, operation.NewCreateAccount(kp.Address(), amount))
	}

	_, err := tl.submit(tl.genesis, bodies...)
	require.NoError(tl.t, err)

	return
}

func (tl *testLedger) proposal(contract string, index uint64) ballot.Proposal {
	v, err := tl.l.Read(context.Background(), contract, execfunc.MethodProposals, strconv.FormatUint(index, 10))
	require.NoError(tl.t, err)

	var p ballot.Proposal
	require.NoError(tl.t, v.Decode(&p))

	return p
}

func TestLocalCreateAccountAndPayment(t *testing.T) {
	tl := newTestLedger(t)
	defer tl.close()

	amount := common.Amount(100000000)
	kps := tl.createAccounts(1, amount)

	balance, err := tl.l.CurrentBalance(context.Background(), kps[0].Address())
	require.NoError(t, err)
	require.Equal(t, amount, balance)

	receipt, err := tl.submit(kps[0], operation.NewPayment(tl.genesis.Address(), common.Amount(1000)))
	require.NoError(t, err)
	require.Equal(t, StatusApplied, receipt.Status)
	require.Equal(t, common.DefaultBaseFee, receipt.Fee)

	ac, err := tl.l.Account(context.Background(), kps[0].Address())
	require.NoError(t, err)
	require.Equal(t, amount-common.Amount(1000)-common.DefaultBaseFee, ac.Balance)
	require.Equal(t, uint64(1), ac.SequenceID)

	// payment to unknown account
	_, err = tl.submit(kps[0], operation.NewPayment(keypair.Random().Address(), common.Amount(1000)))
	require.True(t, errors.Is(err, errors.ErrorAccountNotFound))

	// creating existing account
	_, err = tl.submit(kps[0], operation.NewCreateAccount(tl.genesis.Address(), common.Amount(1000)))
	require.True(t, errors.Is(err, errors.ErrorAccountAlreadyExists))
}

func TestLocalBallot(t *testing.T) {
	tl := newTestLedger(t)
	defer tl.close()

	kps := tl.createAccounts(5, common.Amount(100000000))
	chair, voters := kps[0], kps[1:]

	names := []string{"Proposal 1", "Proposal 2", "Proposal 3"}
	receipt, err := tl.submit(chair, operation.NewContractDeploy(execfunc.BallotCode, names...))
	require.NoError(t, err)
	require.Equal(t, 1, len(receipt.ContractAddresses()))
	contract := receipt.ContractAddresses()[0]

	v, err := tl.l.Read(context.Background(), contract, execfunc.MethodChairperson)
	require.NoError(t, err)
	require.Equal(t, chair.Address(), v.Interface())

	var grants []operation.Body
	for _, voter := range voters {
		grants = append(grants, operation.NewContractExecute(contract, execfunc.MethodGiveRightToVote, voter.Address()))
	}
	_, err = tl.submit(chair, grants...)
	require.NoError(t, err)

	_, err = tl.submit(chair, operation.NewContractExecute(contract, execfunc.MethodVote, "0"))
	require.NoError(t, err)
	_, err = tl.submit(voters[0], operation.NewContractExecute(contract, execfunc.MethodVote, "2"))
	require.NoError(t, err)
	for _, voter := range voters[1:] {
		_, err = tl.submit(voter, operation.NewContractExecute(contract, execfunc.MethodVote, "1"))
		require.NoError(t, err)
	}

	require.Equal(t, uint64(1), tl.proposal(contract, 0).VoteCount)
	require.Equal(t, uint64(3), tl.proposal(contract, 1).VoteCount)
	require.Equal(t, uint64(1), tl.proposal(contract, 2).VoteCount)

	v, err = tl.l.Read(context.Background(), contract, execfunc.MethodWinningProposal)
	require.NoError(t, err)
	require.Equal(t, uint64(1), v.Interface())

	v, err = tl.l.Read(context.Background(), contract, execfunc.MethodWinnerName)
	require.NoError(t, err)
	require.Equal(t, "Proposal 2", v.Interface())

	// voting twice
	_, err = tl.submit(voters[0], operation.NewContractExecute(contract, execfunc.MethodVote, "1"))
	require.Equal(t, "Already voted.", err.(*errors.Error).Message)
}

func TestLocalRejectedTransaction(t *testing.T) {
	tl := newTestLedger(t)
	defer tl.close()

	kps := tl.createAccounts(3, common.Amount(100000000))
	chair, voter, outsider := kps[0], kps[1], kps[2]

	receipt, err := tl.submit(chair, operation.NewContractDeploy(execfunc.BallotCode, "A", "B"))
	require.NoError(t, err)
	contract := receipt.ContractAddresses()[0]

	before, err := tl.l.Account(context.Background(), outsider.Address())
	require.NoError(t, err)

	receipt, err = tl.submit(outsider, operation.NewContractExecute(contract, execfunc.MethodVote, "0"))
	require.Error(t, err)
	require.Equal(t, "Has no right to vote", err.(*errors.Error).Message)
	require.Equal(t, StatusRejected, receipt.Status)
	require.Empty(t, receipt.Results)

	{ // the fee is charged and the sequence id increased
		after, err := tl.l.Account(context.Background(), outsider.Address())
		require.NoError(t, err)
		require.Equal(t, before.Balance-common.DefaultBaseFee, after.Balance)
		require.Equal(t, before.SequenceID+1, after.SequenceID)
	}
	require.Equal(t, uint64(0), tl.proposal(contract, 0).VoteCount)

	// the second grant fails, so the first one is not applied either
	_, err = tl.submit(
		chair,
		operation.NewContractExecute(contract, execfunc.MethodGiveRightToVote, voter.Address()),
		operation.NewContractExecute(contract, execfunc.MethodGiveRightToVote, voter.Address()),
	)
	require.True(t, errors.Is(err, errors.ErrorAlreadyEnfranchised))

	v, err := tl.l.Read(context.Background(), contract, execfunc.MethodVoters, voter.Address())
	require.NoError(t, err)
	var vt ballot.Voter
	require.NoError(t, v.Decode(&vt))
	require.Equal(t, uint64(0), vt.Weight)

	// the receipt is kept
	stored, err := tl.l.Receipt(context.Background(), Handle(receipt.Hash))
	require.NoError(t, err)
	require.Equal(t, StatusRejected, stored.Status)
	require.True(t, errors.Is(stored.Error, errors.ErrorNoRight))
}

func TestLocalSubmitChecks(t *testing.T) {
	l, genesis := NewTestLocal(common.NewConfig(networkID))
	defer l.Storage().Close()

	ctx := context.Background()
	target := operation.NewCreateAccount(keypair.Random().Address(), common.Amount(1000))

	{ // wrong sequence id
		tx := transaction.TestMakeTransaction(networkID, genesis, 1, target)
		_, err := l.Submit(ctx, tx)
		require.True(t, errors.Is(err, errors.ErrorInvalidSequenceID))
	}

	{ // signed with the other network id
		tx := transaction.TestMakeTransaction([]byte("other-network"), genesis, 0, target)
		_, err := l.Submit(ctx, tx)
		require.True(t, errors.Is(err, errors.ErrorSignatureVerificationFailed))
	}

	{ // unknown source
		tx := transaction.TestMakeTransaction(networkID, keypair.Random(), 0, target)
		_, err := l.Submit(ctx, tx)
		require.True(t, errors.Is(err, errors.ErrorAccountNotFound))
	}

	{ // more than the balance
		tx := transaction.TestMakeTransaction(networkID, genesis, 0, operation.NewCreateAccount(keypair.Random().Address(), TestGenesisBalance))
		_, err := l.Submit(ctx, tx)
		require.True(t, errors.Is(err, errors.ErrorInsufficientBalance))
	}

	tx := transaction.TestMakeTransaction(networkID, genesis, 0, target)
	h, err := l.Submit(ctx, tx)
	require.NoError(t, err)
	require.Equal(t, tx.GetHash(), h.String())

	_, err = l.Submit(ctx, tx)
	require.True(t, errors.Is(err, errors.ErrorTransactionAlreadyExists))

	other := transaction.TestMakeTransaction(networkID, genesis, 0, operation.NewPayment(keypair.Random().Address(), common.Amount(1)))
	_, err = l.Submit(ctx, other)
	require.True(t, errors.Is(err, errors.ErrorTransactionSameSource))

	// the ledger is not started, so the transaction stays pending
	receipt, err := l.Receipt(ctx, h)
	require.NoError(t, err)
	require.True(t, receipt.IsPending())

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = l.Await(waitCtx, h)
	require.Equal(t, context.DeadlineExceeded, err)

	_, err = l.Await(ctx, Handle("unknown"))
	require.True(t, errors.Is(err, errors.ErrorTransactionNotFound))

	l.Start()
	waitCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	receipt, err = l.Await(waitCtx, h)
	require.NoError(t, err)
	require.Equal(t, StatusApplied, receipt.Status)
	l.Stop()

	_, err = l.Submit(ctx, transaction.TestMakeTransaction(networkID, genesis, 1, target))
	require.True(t, errors.Is(err, errors.ErrorLedgerClosed))
}

func TestLocalQueueFull(t *testing.T) {
	conf := common.NewConfig(networkID)
	conf.QueueSize = 1

	l, genesis := NewTestLocal(conf)
	defer l.Storage().Close()

	second := keypair.Random()
	_, err := InitGenesis(l.Storage(), second.Address(), TestGenesisBalance)
	require.NoError(t, err)

	ctx := context.Background()
	target := operation.NewCreateAccount(keypair.Random().Address(), common.Amount(1000))

	_, err = l.Submit(ctx, transaction.TestMakeTransaction(networkID, genesis, 0, target))
	require.NoError(t, err)

	tx := transaction.TestMakeTransaction(networkID, second, 0, target)
	_, err = l.Submit(ctx, tx)
	require.True(t, errors.Is(err, errors.ErrorLedgerQueueFull))

	// the rejected transaction does not stay in the pool
	_, err = l.Receipt(ctx, Handle(tx.GetHash()))
	require.True(t, errors.Is(err, errors.ErrorTransactionNotFound))
}

func TestInitGenesis(t *testing.T) {
	l, genesis := NewTestLocal(common.NewConfig(networkID))
	defer l.Storage().Close()

	created, err := InitGenesis(l.Storage(), genesis.Address(), common.Amount(1))
	require.NoError(t, err)
	require.False(t, created)

	balance, err := l.CurrentBalance(context.Background(), genesis.Address())
	require.NoError(t, err)
	require.Equal(t, TestGenesisBalance, balance)

	_, err = InitGenesis(l.Storage(), "invalid", common.Amount(1))
	require.True(t, errors.Is(err, errors.ErrorInvalidAddress))
}
