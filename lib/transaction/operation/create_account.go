package operation

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
)

type CreateAccount struct {
	Target string        `json:"target"`
	Amount common.Amount `json:"amount"`
}

func NewCreateAccount(target string, amount common.Amount) CreateAccount {
	return CreateAccount{
		Target: target,
		Amount: amount,
	}
}

func (o CreateAccount) IsWellFormed(common.Config) (err error) {
	if !keypair.IsAddress(o.Target) {
		return errors.ErrorInvalidAddress.Clone().SetData("target", o.Target)
	}

	if o.Amount < 1 {
		return errors.ErrorInvalidAmount
	}

	return
}

func (o CreateAccount) TargetAddress() string {
	return o.Target
}

func (o CreateAccount) GetAmount() common.Amount {
	return o.Amount
}
