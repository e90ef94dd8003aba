package account

import (
	"fmt"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

// Account is the ledger account; the balance pays the transaction fees.
//   - 'ac-address-<Address>': `Account`
const AccountPrefixAddress string = "ac-address-"

type Account struct {
	Address    string        `json:"address"`
	Balance    common.Amount `json:"balance"`
	SequenceID uint64        `json:"sequence_id"`
}

func NewAccount(address string, balance common.Amount) *Account {
	return &Account{
		Address:    address,
		Balance:    balance,
		SequenceID: 0,
	}
}

func (a *Account) String() string {
	return string(common.MustMarshalJSON(a))
}

func (a *Account) Save(st storage.DBBackend) error {
	return st.Put(GetAccountKey(a.Address), a)
}

func (a *Account) Deposit(amount common.Amount) (err error) {
	var n common.Amount
	if n, err = a.Balance.Add(amount); err != nil {
		return
	}
	a.Balance = n

	return
}

func (a *Account) Withdraw(amount common.Amount) (err error) {
	var n common.Amount
	if n, err = a.Balance.Sub(amount); err != nil {
		return errors.ErrorInsufficientBalance.Clone().
			SetData("balance", a.Balance).
			SetData("amount", amount)
	}
	a.Balance = n

	return
}

// IncreaseSequenceID is called once for every transaction the account
// submitted, whether it was applied or rejected.
func (a *Account) IncreaseSequenceID() {
	a.SequenceID++
}

func GetAccountKey(address string) string {
	return fmt.Sprintf("%s%s", AccountPrefixAddress, address)
}

func ExistsAccount(st storage.DBBackend, address string) (bool, error) {
	return st.Has(GetAccountKey(address))
}

func GetAccount(st storage.DBBackend, address string) (*Account, error) {
	var a Account
	if err := st.Get(GetAccountKey(address), &a); err != nil {
		if errors.Is(err, errors.ErrorStorageRecordDoesNotExist) {
			return nil, errors.ErrorAccountNotFound.Clone().SetData("address", address)
		}
		return nil, err
	}

	return &a, nil
}
