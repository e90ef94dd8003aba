package operation

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
)

type Payment struct {
	Target string        `json:"target"`
	Amount common.Amount `json:"amount"`
}

func NewPayment(target string, amount common.Amount) Payment {
	return Payment{
		Target: target,
		Amount: amount,
	}
}

func (o Payment) IsWellFormed(common.Config) (err error) {
	if !keypair.IsAddress(o.Target) {
		return errors.ErrorInvalidAddress.Clone().SetData("target", o.Target)
	}

	if o.Amount < 1 {
		return errors.ErrorInvalidAmount
	}

	return
}

func (o Payment) TargetAddress() string {
	return o.Target
}

func (o Payment) GetAmount() common.Amount {
	return o.Amount
}
