package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/account"
)

type Account struct {
	ac *account.Account
}

func NewAccount(ac *account.Account) *Account {
	return &Account{ac: ac}
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"id":          a.ac.Address,
		"address":     a.ac.Address,
		"balance":     a.ac.Balance,
		"sequence_id": a.ac.SequenceID,
	}
}

func (a Account) Resource() *hal.Resource {
	return hal.NewResource(a, a.LinkSelf())
}

func (a Account) LinkSelf() string {
	return strings.Replace(URLAccounts, "{id}", a.ac.Address, -1)
}
