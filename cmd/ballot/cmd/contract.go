package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/contract/native/execfunc"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/transaction/operation"
)

var flagStrict bool

type deployResult struct {
	Hash     string `json:"hash"`
	Contract string `json:"contract"`
}

type voteResult struct {
	Hash   string          `json:"hash"`
	Before ballot.Proposal `json:"before"`
	After  ballot.Proposal `json:"after"`
}

type winnerResult struct {
	Index uint64 `json:"index"`
	Name  string `json:"name"`
	Votes uint64 `json:"votes"`
}

func init() {
	deployCmd := &cobra.Command{
		Use:   "deploy <proposal name> [<proposal name>...]",
		Short: "Deploy new ballot with the proposals; the sender is the chairperson",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			w, closeFunc := parseWallet(c)
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			result, err := runDeploy(ctx, w, flagStrict, args...)
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(result)
		},
	}
	deployCmd.Flags().BoolVar(&flagStrict, "strict", flagStrict, "the delegate must have the right to vote")

	giveRightCmd := &cobra.Command{
		Use:   "give-right <contract> <voter address>",
		Short: "Give the right to vote; only the chairperson can",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			voter, err := cmdcommon.ParseAddress(args[1])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<voter address>", err)
			}

			w, closeFunc := parseWallet(c)
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			r, err := runExecute(ctx, w, args[0], execfunc.MethodGiveRightToVote, voter)
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(newSubmitResult(r))
		},
	}

	voteCmd := &cobra.Command{
		Use:   "vote <contract> <proposal index>",
		Short: "Vote the proposal",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			index, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<proposal index>", err)
			}

			w, closeFunc := parseWallet(c)
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			result, err := runVote(ctx, w, args[0], index)
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(result)
		},
	}

	delegateCmd := &cobra.Command{
		Use:   "delegate <contract> <to address>",
		Short: "Delegate the vote",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			to, err := cmdcommon.ParseAddress(args[1])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<to address>", err)
			}

			w, closeFunc := parseWallet(c)
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			r, err := runExecute(ctx, w, args[0], execfunc.MethodDelegate, to)
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(newSubmitResult(r))
		},
	}

	proposalsCmd := &cobra.Command{
		Use:   "proposals <contract>",
		Short: "List the proposals with the vote counts",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			l, closeFunc, err := openLedger()
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			proposals, err := ledger.NewBallotView(l, args[0]).Proposals(ctx)
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(proposals)
		},
	}

	resultCmd := &cobra.Command{
		Use:   "result <contract>",
		Short: "Show the winning proposal",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			l, closeFunc, err := openLedger()
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			result, err := runResult(ctx, l, args[0])
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(result)
		},
	}

	for _, c := range []*cobra.Command{deployCmd, giveRightCmd, voteCmd, delegateCmd} {
		addWalletFlags(c)
	}

	rootCmd.AddCommand(deployCmd, giveRightCmd, voteCmd, delegateCmd, proposalsCmd, resultCmd)
}

func runDeploy(ctx context.Context, w *wallet, strict bool, names ...string) (deployResult, error) {
	code := execfunc.BallotCode
	if strict {
		code = execfunc.StrictBallotCode
	}

	r, err := w.submit(ctx, operation.NewContractDeploy(code, names...))
	if err != nil {
		return deployResult{}, err
	}

	result := deployResult{Hash: r.Hash}
	if addresses := r.ContractAddresses(); len(addresses) > 0 {
		result.Contract = addresses[0]
	}

	return result, nil
}

func runExecute(ctx context.Context, w *wallet, contract, method string, args ...string) (*ledger.Receipt, error) {
	return w.submit(ctx, operation.NewContractExecute(contract, method, args...))
}

// runVote reads the proposal before and after the vote.
func runVote(ctx context.Context, w *wallet, contract string, index uint64) (voteResult, error) {
	view := ledger.NewBallotView(w.l, contract)

	before, err := view.Proposal(ctx, index)
	if err != nil {
		return voteResult{}, err
	}

	r, err := runExecute(ctx, w, contract, execfunc.MethodVote, strconv.FormatUint(index, 10))
	if err != nil {
		return voteResult{}, err
	}

	after, err := view.Proposal(ctx, index)
	if err != nil {
		return voteResult{}, err
	}

	return voteResult{Hash: r.Hash, Before: before, After: after}, nil
}

func runResult(ctx context.Context, l ledger.Ledger, contract string) (winnerResult, error) {
	p, err := ledger.NewBallotView(l, contract).Winner(ctx)
	if err != nil {
		return winnerResult{}, err
	}

	return winnerResult{Index: p.Index, Name: p.Name, Votes: p.VoteCount}, nil
}
