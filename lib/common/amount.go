// Define the `Amount` type, the monetary unit of the ledger accounts.
//
// One coin accounts for 10 million currency units. Fees are paid in
// `Amount`, and the command line refuses to submit transactions when the
// sender balance is below a configured minimum.
package common

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"

	"boscoin.io/ballot/lib/errors"
)

const (
	// 10,000,000 units == 1 coin
	AmountPerCoin Amount = 10000000
	// The maximum possible supply of coins within any ledger
	MaximumBalance Amount = 1000000000000 * AmountPerCoin
	// An invalid value, used to make an instance unusable
	invalidValue = Amount(MaximumBalance + 1)
)

type Amount uint64

// Invariant panics when the value is higher than `MaximumBalance`.
func (a Amount) Invariant() {
	if a > MaximumBalance {
		// `uint64` is necessary to avoid a recursive call to `String`
		panic(fmt.Errorf("Amount '%d' is higher than the total supply of coins (%d)", uint64(a), uint64(MaximumBalance)))
	}
}

func (a Amount) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, uint64(a))
}

func (a Amount) String() string {
	a.Invariant()
	return strconv.FormatUint(uint64(a), 10)
}

// Add returns an error when the result would be higher than `MaximumBalance`.
func (a Amount) Add(added Amount) (n Amount, err error) {
	a.Invariant()
	added.Invariant()
	if n = a + added; n > MaximumBalance {
		err = errors.ErrorAmountOverflow
	}
	return
}

func (a Amount) MustAdd(added Amount) Amount {
	if v, err := a.Add(added); err != nil {
		panic(err)
	} else {
		return v
	}
}

func (a Amount) Sub(sub Amount) (Amount, error) {
	a.Invariant()
	sub.Invariant()
	if a < sub {
		return invalidValue, errors.ErrorAmountUnderflow
	}
	return a - sub, nil
}

func (a Amount) MustSub(sub Amount) Amount {
	if v, err := a.Sub(sub); err != nil {
		panic(err)
	} else {
		return v
	}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

func (a *Amount) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	*a, err = AmountFromString(s)
	return
}

// AmountFromString parses the amount in units.
func AmountFromString(str string) (Amount, error) {
	value, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return invalidValue, errors.ErrorInvalidAmount.Clone().SetData("amount", str)
	}

	if Amount(value) > MaximumBalance {
		return invalidValue, errors.ErrorAmountOverflow
	}

	return Amount(value), nil
}

func MustAmountFromString(str string) Amount {
	if value, err := AmountFromString(str); err != nil {
		panic(err)
	} else {
		return value
	}
}

// AmountFromCoin parses a decimal coin amount like "0.01" into units.
func AmountFromCoin(str string) (Amount, error) {
	parts := strings.SplitN(strings.TrimSpace(str), ".", 2)

	whole, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return invalidValue, errors.ErrorInvalidAmount.Clone().SetData("amount", str)
	}

	var frac uint64
	if len(parts) == 2 {
		f := parts[1]
		digits := len(strconv.FormatUint(uint64(AmountPerCoin), 10)) - 1
		if len(f) > digits {
			return invalidValue, errors.ErrorInvalidAmount.Clone().SetData("amount", str)
		}
		f += strings.Repeat("0", digits-len(f))
		if frac, err = strconv.ParseUint(f, 10, 64); err != nil {
			return invalidValue, errors.ErrorInvalidAmount.Clone().SetData("amount", str)
		}
	}

	if whole > uint64(MaximumBalance/AmountPerCoin) {
		return invalidValue, errors.ErrorAmountOverflow
	}

	return Amount(whole)*AmountPerCoin + Amount(frac), nil
}

// Coin formats the amount as a decimal coin string.
func (a Amount) Coin() string {
	a.Invariant()
	whole := a / AmountPerCoin
	frac := a % AmountPerCoin
	if frac == 0 {
		return strconv.FormatUint(uint64(whole), 10)
	}

	return strings.TrimRight(fmt.Sprintf("%d.%07d", whole, frac), "0")
}
