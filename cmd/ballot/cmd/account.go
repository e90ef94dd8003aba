package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/account"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/transaction/operation"
)

var (
	accountCmd       *cobra.Command
	accountCreateCmd *cobra.Command
	accountShowCmd   *cobra.Command
	accountPayCmd    *cobra.Command
)

func init() {
	accountCmd = &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	accountCreateCmd = &cobra.Command{
		Use:   "create <address> <amount>",
		Short: "Create new account with the initial balance",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			address, amount := parseAddressAmount(c, args)

			w, closeFunc := parseWallet(c)
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			r, err := runPayment(ctx, w, address, amount, true)
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(newSubmitResult(r))
		},
	}

	accountPayCmd = &cobra.Command{
		Use:   "pay <address> <amount>",
		Short: "Send <amount> to the existing account",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			address, amount := parseAddressAmount(c, args)

			w, closeFunc := parseWallet(c)
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			r, err := runPayment(ctx, w, address, amount, false)
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(newSubmitResult(r))
		},
	}

	accountShowCmd = &cobra.Command{
		Use:   "show <address>",
		Short: "Show the account",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			address, err := cmdcommon.ParseAddress(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<address>", err)
			}

			l, closeFunc, err := openLedger()
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			defer closeFunc()

			ctx, cancel := commandContext()
			defer cancel()

			ac, err := runShowAccount(ctx, l, address)
			if err != nil {
				cmdcommon.PrintError(os.Stderr, err)
			}
			printResult(ac)
		},
	}

	addWalletFlags(accountCreateCmd)
	addWalletFlags(accountPayCmd)

	accountCmd.AddCommand(accountCreateCmd, accountPayCmd, accountShowCmd)
	rootCmd.AddCommand(accountCmd)
}

func parseAddressAmount(c *cobra.Command, args []string) (string, common.Amount) {
	address, err := cmdcommon.ParseAddress(args[0])
	if err != nil {
		cmdcommon.PrintFlagsError(c, "<address>", err)
	}

	amount, err := cmdcommon.ParseAmountFromString(args[1])
	if err != nil {
		cmdcommon.PrintFlagsError(c, "<amount>", err)
	}

	return address, amount
}

func runPayment(ctx context.Context, w *wallet, address string, amount common.Amount, create bool) (*ledger.Receipt, error) {
	var body operation.Body
	if create {
		body = operation.NewCreateAccount(address, amount)
	} else {
		body = operation.NewPayment(address, amount)
	}

	return w.submit(ctx, body)
}

func runShowAccount(ctx context.Context, l ledger.Ledger, address string) (*account.Account, error) {
	return l.Account(ctx, address)
}
