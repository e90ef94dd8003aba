package execfunc

import (
	"strconv"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/contract/native"
	"boscoin.io/ballot/lib/contract/payload"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/errors"
)

const (
	BallotCode       = "ballot"
	StrictBallotCode = "ballot-strict"
)

// ballot contract methods
const (
	MethodGiveRightToVote = "giveRightToVote"
	MethodVote            = "vote"
	MethodDelegate        = "delegate"
	MethodChairperson     = "chairperson"
	MethodProposalCount   = "proposalCount"
	MethodProposals       = "proposals"
	MethodVoters          = "voters"
	MethodWinningProposal = "winningProposal"
	MethodWinnerName      = "winnerName"
	MethodWinner          = "winner"
)

func init() {
	native.AddContract(BallotCode, RegisterBallot)
	native.AddContract(StrictBallotCode, RegisterStrictBallot)
}

func RegisterBallot(ex *native.NativeExecutor) {
	registerBallot(ex)
}

func RegisterStrictBallot(ex *native.NativeExecutor) {
	registerBallot(ex, ballot.WithStrictDelegation())
}

func registerBallot(ex *native.NativeExecutor, opts ...ballot.Option) {
	ex.RegisterFunc(native.ConstructorMethod, func(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
		b, err := ballot.New(c.Args, ex.Context.SenderAddress(), opts...)
		if err != nil {
			return nil, err
		}

		return nil, b.Save(ex.API())
	})

	ex.RegisterFunc(MethodGiveRightToVote, giveRightToVote)
	ex.RegisterFunc(MethodVote, vote)
	ex.RegisterFunc(MethodDelegate, delegate)

	ex.RegisterView(MethodChairperson, chairperson)
	ex.RegisterView(MethodProposalCount, proposalCount)
	ex.RegisterView(MethodProposals, proposals)
	ex.RegisterView(MethodVoters, voters)
	ex.RegisterView(MethodWinningProposal, winningProposal)
	ex.RegisterView(MethodWinnerName, winnerName)
	ex.RegisterView(MethodWinner, winner)
}

func checkArgs(c *payload.ExecCode, n int) error {
	if len(c.Args) != n {
		return errors.ErrorContractInvalidArgs.Clone().
			SetData("method", c.Method).
			SetData("expected", n).
			SetData("given", len(c.Args))
	}

	return nil
}

func addressArg(c *payload.ExecCode, i int) (string, error) {
	if !keypair.IsAddress(c.Args[i]) {
		return "", errors.ErrorInvalidAddress.Clone().SetData("address", c.Args[i])
	}

	return c.Args[i], nil
}

func indexArg(c *payload.ExecCode, i int) (uint64, error) {
	index, err := strconv.ParseUint(c.Args[i], 10, 64)
	if err != nil {
		return 0, errors.ErrorContractInvalidArgs.Clone().SetData("index", c.Args[i])
	}

	return index, nil
}

// mutate loads the ballot, applies f and saves the changes only when f
// succeeds.
func mutate(ex *native.NativeExecutor, f func(*ballot.Ballot) error) (*value.Value, error) {
	b, err := ballot.Load(ex.API())
	if err != nil {
		return nil, err
	}

	if err = f(b); err != nil {
		return nil, err
	}

	if err = b.Save(ex.API()); err != nil {
		return nil, err
	}

	return value.ToValue(nil)
}

func giveRightToVote(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(c, 1); err != nil {
		return nil, err
	}
	target, err := addressArg(c, 0)
	if err != nil {
		return nil, err
	}

	return mutate(ex, func(b *ballot.Ballot) error {
		return b.GiveRightToVote(ex.Context.SenderAddress(), target)
	})
}

func vote(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(c, 1); err != nil {
		return nil, err
	}
	index, err := indexArg(c, 0)
	if err != nil {
		return nil, err
	}

	return mutate(ex, func(b *ballot.Ballot) error {
		return b.Vote(ex.Context.SenderAddress(), index)
	})
}

func delegate(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(c, 1); err != nil {
		return nil, err
	}
	to, err := addressArg(c, 0)
	if err != nil {
		return nil, err
	}

	return mutate(ex, func(b *ballot.Ballot) error {
		return b.Delegate(ex.Context.SenderAddress(), to)
	})
}

func load(ex *native.NativeExecutor, c *payload.ExecCode, n int) (*ballot.Ballot, error) {
	if err := checkArgs(c, n); err != nil {
		return nil, err
	}

	return ballot.Load(ex.API())
}

func chairperson(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	b, err := load(ex, c, 0)
	if err != nil {
		return nil, err
	}

	return value.ToValue(b.Chairperson())
}

func proposalCount(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	b, err := load(ex, c, 0)
	if err != nil {
		return nil, err
	}

	return value.ToValue(b.ProposalCount())
}

func proposals(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	b, err := load(ex, c, 1)
	if err != nil {
		return nil, err
	}

	index, err := indexArg(c, 0)
	if err != nil {
		return nil, err
	}

	p, err := b.Proposal(index)
	if err != nil {
		return nil, err
	}

	return value.ToValue(p)
}

// voters reads only the requested voter.
func voters(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(c, 1); err != nil {
		return nil, err
	}
	address, err := addressArg(c, 0)
	if err != nil {
		return nil, err
	}

	v, err := ballot.LoadVoter(ex.API(), address)
	if err != nil {
		return nil, err
	}

	return value.ToValue(v)
}

func winningProposal(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	b, err := load(ex, c, 0)
	if err != nil {
		return nil, err
	}

	return value.ToValue(b.WinningProposal())
}

func winnerName(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	b, err := load(ex, c, 0)
	if err != nil {
		return nil, err
	}

	return value.ToValue(b.WinnerName())
}

// winner returns the winning proposal with its vote count from the same
// state.
func winner(ex *native.NativeExecutor, c *payload.ExecCode) (*value.Value, error) {
	b, err := load(ex, c, 0)
	if err != nil {
		return nil, err
	}

	return value.ToValue(b.Winner())
}
