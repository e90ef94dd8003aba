package ledger

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/contract/native/execfunc"
)

// BallotView reads the deployed ballot contract through the ledger views.
type BallotView struct {
	l        Ledger
	contract string
}

func NewBallotView(l Ledger, contract string) *BallotView {
	return &BallotView{l: l, contract: contract}
}

func (v *BallotView) Contract() string {
	return v.contract
}

func (v *BallotView) Chairperson(ctx context.Context) (string, error) {
	ret, err := v.l.Read(ctx, v.contract, execfunc.MethodChairperson)
	if err != nil {
		return "", err
	}

	return ret.String(), nil
}

func (v *BallotView) ProposalCount(ctx context.Context) (uint64, error) {
	ret, err := v.l.Read(ctx, v.contract, execfunc.MethodProposalCount)
	if err != nil {
		return 0, err
	}

	return ret.Uint64()
}

func (v *BallotView) Proposal(ctx context.Context, index uint64) (p ballot.Proposal, err error) {
	ret, err := v.l.Read(ctx, v.contract, execfunc.MethodProposals, strconv.FormatUint(index, 10))
	if err != nil {
		return
	}

	err = ret.Decode(&p)
	return
}

// Proposals reads every proposal concurrently.
func (v *BallotView) Proposals(ctx context.Context) ([]ballot.Proposal, error) {
	count, err := v.ProposalCount(ctx)
	if err != nil {
		return nil, err
	}

	proposals := make([]ballot.Proposal, count)

	g, gctx := errgroup.WithContext(ctx)
	for i := uint64(0); i < count; i++ {
		index := i
		g.Go(func() (err error) {
			proposals[index], err = v.Proposal(gctx, index)
			return
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return proposals, nil
}

func (v *BallotView) Voter(ctx context.Context, address string) (voter ballot.Voter, err error) {
	ret, err := v.l.Read(ctx, v.contract, execfunc.MethodVoters, address)
	if err != nil {
		return
	}

	err = ret.Decode(&voter)
	return
}

// Winner returns the winning proposal; before any vote it is the first
// proposal.
func (v *BallotView) Winner(ctx context.Context) (p ballot.Proposal, err error) {
	ret, err := v.l.Read(ctx, v.contract, execfunc.MethodWinner)
	if err != nil {
		return
	}

	err = ret.Decode(&p)
	return
}
