package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
)

func errorString(err error) string {
	if e, ok := errors.Cause(err); ok {
		return e.Message
	}

	return err.Error()
}

/**
 * Issue a message on Stderr then exit with an error code
 */
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// PrintError prints `error: <message>` and exits; the message of
// `*errors.Error` is printed without its code.
func PrintError(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintf(w, "error: %s\n", errorString(err))
	}

	os.Exit(1)
}

// Parse an input string as a monetary amount
//
// Commas (','), and dots ('.') and underscores ('_')
// are treated as digit separator, and not decimal separators,
// and will be skipped.
func ParseAmountFromString(input string) (common.Amount, error) {
	amountStr := strings.Replace(input, ",", "", -1)
	amountStr = strings.Replace(amountStr, ".", "", -1)
	amountStr = strings.Replace(amountStr, "_", "", -1)
	return common.AmountFromString(amountStr)
}

// ParseSecretSeed accepts only the secret seed, not the public address.
func ParseSecretSeed(seed string) (*keypair.Full, error) {
	if len(seed) < 1 {
		return nil, fmt.Errorf("secret seed must be given")
	}

	kp, err := keypair.Parse(seed)
	if err != nil {
		return nil, err
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		return nil, fmt.Errorf("provided key is an address, not a secret seed")
	}

	return full, nil
}

// ParseAddress accepts only the public address.
func ParseAddress(address string) (string, error) {
	if !keypair.IsAddress(address) {
		return "", errors.ErrorInvalidAddress.Clone().SetData("address", address)
	}

	return address, nil
}

var _ pflag.Value = (*ListFlags)(nil)

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
