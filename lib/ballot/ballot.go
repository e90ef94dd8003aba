package ballot

import (
	"sort"

	"boscoin.io/ballot/lib/errors"
)

type Proposal struct {
	Index     uint64 `json:"index"`
	Name      string `json:"name"`
	VoteCount uint64 `json:"vote_count"`
}

type Voter struct {
	Address  string `json:"address"`
	Weight   uint64 `json:"weight"`
	Voted    bool   `json:"voted"`
	Delegate string `json:"delegate,omitempty"`
	// set only when the voter voted by itself
	Vote *uint64 `json:"vote,omitempty"`
}

func (v Voter) HasDelegated() bool {
	return v.Voted && len(v.Delegate) > 0
}

type Option func(*Ballot)

// WithStrictDelegation rejects the delegation from a voter without weight and
// the delegation to the voter without right to vote.
func WithStrictDelegation() Option {
	return func(b *Ballot) {
		b.strictDelegation = true
	}
}

// Ballot keeps the proposals and voters of one ballot. It is not safe for
// concurrent use; the callers serialize the mutating calls.
type Ballot struct {
	chairperson      string
	proposals        []Proposal
	voters           map[string]*Voter
	strictDelegation bool

	// voters changed since the last `Save()`
	dirty map[string]struct{}
}

// New creates the ballot; the creator becomes the chairperson and gets the
// right to vote.
func New(names []string, creator string, opts ...Option) (*Ballot, error) {
	if len(names) < 1 {
		return nil, errors.ErrorInvalidConfiguration
	}

	b := &Ballot{
		chairperson: creator,
		proposals:   make([]Proposal, len(names)),
		voters:      map[string]*Voter{},
		dirty:       map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(b)
	}

	for i, name := range names {
		b.proposals[i] = Proposal{Index: uint64(i), Name: name}
	}

	b.setVoter(&Voter{Address: creator, Weight: 1})

	log.Debug("ballot created", "chairperson", creator, "proposals", len(names), "strict", b.strictDelegation)

	return b, nil
}

func (b *Ballot) Chairperson() string {
	return b.chairperson
}

func (b *Ballot) StrictDelegation() bool {
	return b.strictDelegation
}

func (b *Ballot) ProposalCount() uint64 {
	return uint64(len(b.proposals))
}

func (b *Ballot) Proposal(index uint64) (Proposal, error) {
	if index >= uint64(len(b.proposals)) {
		return Proposal{}, errors.ErrorInvalidProposal
	}

	return b.proposals[index], nil
}

func (b *Ballot) Proposals() []Proposal {
	ps := make([]Proposal, len(b.proposals))
	copy(ps, b.proposals)
	return ps
}

// Voter returns the copy of voter; unknown address returns the empty voter
// without right to vote.
func (b *Ballot) Voter(address string) Voter {
	if v, found := b.voters[address]; found {
		return *v
	}

	return Voter{Address: address}
}

// Voters returns all the known voters sorted by address.
func (b *Ballot) Voters() []Voter {
	var vs []Voter
	for _, v := range b.voters {
		vs = append(vs, *v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Address < vs[j].Address })

	return vs
}

func (b *Ballot) getVoter(address string) (*Voter, bool) {
	v, found := b.voters[address]
	return v, found
}

func (b *Ballot) setVoter(v *Voter) {
	b.voters[v.Address] = v
	b.dirty[v.Address] = struct{}{}
}

// GiveRightToVote gives the weight 1 to target. Only the chairperson can
// call.
func (b *Ballot) GiveRightToVote(caller, target string) error {
	checker := &grantChecker{
		ballotChecker: newBallotChecker(b, caller, grantCheckerFuncs),
		Target:        target,
	}
	if err := runChecker(checker); err != nil {
		return err
	}

	v, found := b.getVoter(target)
	if !found {
		v = &Voter{Address: target}
	}
	v.Weight = 1
	b.setVoter(v)

	log.Debug("right to vote given", "target", target)

	return nil
}

// Vote adds the caller's whole weight to the proposal.
func (b *Ballot) Vote(caller string, index uint64) error {
	checker := &voteChecker{
		ballotChecker: newBallotChecker(b, caller, voteCheckerFuncs),
		Index:         index,
	}
	if err := runChecker(checker); err != nil {
		return err
	}

	v := checker.voter
	v.Voted = true
	vote := index
	v.Vote = &vote
	b.proposals[index].VoteCount += v.Weight
	b.setVoter(v)

	log.Debug("voted", "voter", caller, "proposal", index, "weight", v.Weight)

	return nil
}

// Delegate hands over the caller's weight to the end of the delegation chain
// starting at `to`. If the end already voted, the weight is added to its
// proposal.
func (b *Ballot) Delegate(caller, to string) error {
	checker := &delegateChecker{
		ballotChecker: newBallotChecker(b, caller, delegateCheckerFuncs(b.strictDelegation)),
		To:            to,
	}
	if err := runChecker(checker); err != nil {
		return err
	}

	v := checker.voter
	if v == nil {
		v = &Voter{Address: caller}
	}
	v.Voted = true
	v.Delegate = checker.final

	final := checker.finalVoter
	if final != nil && final.Voted {
		b.proposals[*final.Vote].VoteCount += v.Weight
	} else {
		if final == nil {
			final = &Voter{Address: checker.final}
		}
		final.Weight += v.Weight
		b.setVoter(final)
	}
	b.setVoter(v)

	log.Debug("delegated", "voter", caller, "to", to, "final", checker.final, "weight", v.Weight)

	return nil
}

// WinningProposal returns the index of the proposal with the most votes; the
// lowest index wins the tie, so it is 0 when nobody voted.
func (b *Ballot) WinningProposal() uint64 {
	var winning uint64
	var winningCount uint64
	for i, p := range b.proposals {
		if p.VoteCount > winningCount {
			winningCount = p.VoteCount
			winning = uint64(i)
		}
	}

	return winning
}

// Winner is the proposal at `WinningProposal()`.
func (b *Ballot) Winner() Proposal {
	return b.proposals[b.WinningProposal()]
}

func (b *Ballot) WinnerName() string {
	return b.Winner().Name
}

// TotalVoteCount is the sum of the vote counts of all proposals.
func (b *Ballot) TotalVoteCount() uint64 {
	var total uint64
	for _, p := range b.proposals {
		total += p.VoteCount
	}

	return total
}
