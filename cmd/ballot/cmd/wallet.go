package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/client"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

var (
	flagSecretSeed string = common.GetENVValue("BALLOT_SECRET_SEED", "")
	flagMinBalance string = common.GetENVValue("BALLOT_MIN_BALANCE", (common.DefaultBaseFee * 10).String())
	flagFee        string = common.GetENVValue("BALLOT_FEE", common.DefaultBaseFee.String())
)

// addWalletFlags adds the flags of the commands which submit transaction.
func addWalletFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagSecretSeed, "secret-seed", flagSecretSeed, "secret seed of the source account")
	c.Flags().StringVar(&flagMinBalance, "min-balance", flagMinBalance, "refuse to submit below this balance")
	c.Flags().StringVar(&flagFee, "fee", flagFee, "fee per operation")
}

// wallet signs and submits the transactions of the source account.
type wallet struct {
	kp         *keypair.Full
	l          ledger.Ledger
	networkID  []byte
	fee        common.Amount
	minBalance common.Amount
}

func newWallet(kp *keypair.Full, l ledger.Ledger, networkID []byte, fee, minBalance common.Amount) *wallet {
	return &wallet{
		kp:         kp,
		l:          l,
		networkID:  networkID,
		fee:        fee,
		minBalance: minBalance,
	}
}

func (w *wallet) Address() string {
	return w.kp.Address()
}

// checkBalance refuses to go on when the balance is lower than the minimum
// balance.
func (w *wallet) checkBalance(ctx context.Context) error {
	balance, err := w.l.CurrentBalance(ctx, w.kp.Address())
	if err != nil {
		return err
	}

	if balance < w.minBalance {
		return errors.ErrorNotEnoughBalance.Clone().
			SetData("balance", balance).
			SetData("min-balance", w.minBalance)
	}

	return nil
}

// submit checks the balance, submits the operations in one transaction and
// waits for the receipt.
func (w *wallet) submit(ctx context.Context, bodies ...operation.Body) (*ledger.Receipt, error) {
	if err := w.checkBalance(ctx); err != nil {
		return nil, err
	}

	ac, err := w.l.Account(ctx, w.kp.Address())
	if err != nil {
		return nil, err
	}

	var ops []operation.Operation
	for _, body := range bodies {
		op, err := operation.NewOperation(body)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	tx, err := transaction.NewTransaction(w.kp.Address(), ac.SequenceID, w.fee, ops...)
	if err != nil {
		return nil, err
	}
	tx.Sign(w.kp, w.networkID)

	h, err := w.l.Submit(ctx, tx)
	if err != nil {
		return nil, err
	}
	log.Debug("transaction submitted", "hash", h)

	return w.l.Await(ctx, h)
}

// openLedger connects to the node of `--endpoint`.
func openLedger() (ledger.Ledger, func(), error) {
	c, err := client.NewClient(flagEndpoint)
	if err != nil {
		return nil, nil, err
	}

	return c, c.Close, nil
}

// parseWallet parses the wallet flags and opens the wallet; the failure
// exits.
func parseWallet(c *cobra.Command) (*wallet, func()) {
	kp, err := cmdcommon.ParseSecretSeed(flagSecretSeed)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--secret-seed", err)
	}

	fee, err := cmdcommon.ParseAmountFromString(flagFee)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--fee", err)
	}

	minBalance, err := cmdcommon.ParseAmountFromString(flagMinBalance)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--min-balance", err)
	}

	l, closeFunc, err := openLedger()
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--endpoint", fmt.Errorf("failed to connect: %v", err))
	}

	return newWallet(kp, l, []byte(flagNetworkID), fee, minBalance), closeFunc
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

type submitResult struct {
	Hash   string `json:"hash"`
	Status string `json:"status"`
}

func newSubmitResult(r *ledger.Receipt) submitResult {
	return submitResult{Hash: r.Hash, Status: r.Status}
}
