package ballot

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

// every checker only reads the ballot; the effects are applied after all the
// checkers passed.
type ballotChecker struct {
	common.DefaultChecker

	ballot *Ballot
	Caller string

	voter *Voter
}

func newBallotChecker(b *Ballot, caller string, funcs []common.CheckerFunc) ballotChecker {
	return ballotChecker{
		DefaultChecker: common.DefaultChecker{Funcs: funcs},
		ballot:         b,
		Caller:         caller,
	}
}

func runChecker(checker common.Checker) error {
	return common.RunChecker(checker, nil)
}

type grantChecker struct {
	ballotChecker

	Target string
}

var grantCheckerFuncs = []common.CheckerFunc{
	checkCallerIsChairperson,
	checkTargetNotVoted,
	checkTargetHasNoRight,
}

func checkCallerIsChairperson(c common.Checker, args ...interface{}) error {
	checker := c.(*grantChecker)
	if checker.Caller != checker.ballot.chairperson {
		return errors.ErrorUnauthorized
	}

	return nil
}

func checkTargetNotVoted(c common.Checker, args ...interface{}) error {
	checker := c.(*grantChecker)
	if v, found := checker.ballot.getVoter(checker.Target); found && v.Voted {
		return errors.ErrorAlreadyVoted
	}

	return nil
}

func checkTargetHasNoRight(c common.Checker, args ...interface{}) error {
	checker := c.(*grantChecker)
	if v, found := checker.ballot.getVoter(checker.Target); found && v.Weight != 0 {
		return errors.ErrorAlreadyEnfranchised
	}

	return nil
}

type voteChecker struct {
	ballotChecker

	Index uint64
}

var voteCheckerFuncs = []common.CheckerFunc{
	loadCaller,
	checkCallerHasRight,
	checkCallerNotVoted,
	checkProposalIndex,
}

func callerChecker(c common.Checker) *ballotChecker {
	switch checker := c.(type) {
	case *voteChecker:
		return &checker.ballotChecker
	case *delegateChecker:
		return &checker.ballotChecker
	default:
		panic("unknown checker")
	}
}

func loadCaller(c common.Checker, args ...interface{}) error {
	checker := callerChecker(c)
	if v, found := checker.ballot.getVoter(checker.Caller); found {
		checker.voter = v
	}

	return nil
}

func checkCallerHasRight(c common.Checker, args ...interface{}) error {
	checker := callerChecker(c)
	if checker.voter == nil || checker.voter.Weight == 0 {
		return errors.ErrorNoRight
	}

	return nil
}

func checkCallerNotVoted(c common.Checker, args ...interface{}) error {
	checker := callerChecker(c)
	if checker.voter != nil && checker.voter.Voted {
		return errors.ErrorAlreadyVoted
	}

	return nil
}

func checkProposalIndex(c common.Checker, args ...interface{}) error {
	checker := c.(*voteChecker)
	if checker.Index >= uint64(len(checker.ballot.proposals)) {
		return errors.ErrorInvalidProposal
	}

	return nil
}

type delegateChecker struct {
	ballotChecker

	To string

	final      string
	finalVoter *Voter
}

func delegateCheckerFuncs(strict bool) []common.CheckerFunc {
	if !strict {
		return []common.CheckerFunc{
			loadCaller,
			checkNotSelfDelegation,
			checkCallerNotVoted,
			checkDelegationChain,
		}
	}

	return []common.CheckerFunc{
		loadCaller,
		checkNotSelfDelegation,
		checkCallerNotVoted,
		checkCallerHasRight,
		checkDelegationChain,
		checkDelegateHasRight,
	}
}

func checkNotSelfDelegation(c common.Checker, args ...interface{}) error {
	checker := c.(*delegateChecker)
	if checker.To == checker.Caller {
		return errors.ErrorSelfDelegation
	}

	return nil
}

// checkDelegationChain follows the delegates from `To` until the voter which
// did not delegate.
func checkDelegationChain(c common.Checker, args ...interface{}) error {
	checker := c.(*delegateChecker)

	visited := map[string]struct{}{}
	final := checker.To
	for {
		v, found := checker.ballot.getVoter(final)
		if !found || !v.HasDelegated() {
			checker.finalVoter = v
			break
		}

		visited[final] = struct{}{}
		final = v.Delegate
		if final == checker.Caller {
			return errors.ErrorDelegationLoop
		}
		if _, found := visited[final]; found {
			return errors.ErrorDelegationLoop
		}
	}

	checker.final = final

	return nil
}

func checkDelegateHasRight(c common.Checker, args ...interface{}) error {
	checker := c.(*delegateChecker)
	if checker.finalVoter == nil || checker.finalVoter.Weight == 0 {
		return errors.ErrorDelegateHasNoRight
	}

	return nil
}
