package operation

import (
	"encoding/json"
	"reflect"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

type OperationType string

const (
	TypeCreateAccount   OperationType = "create-account"
	TypePayment         OperationType = "payment"
	TypeContractDeploy  OperationType = "contract-deploy"
	TypeContractExecute OperationType = "contract-execute"
)

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray([]string{
		string(TypeCreateAccount),
		string(TypePayment),
		string(TypeContractDeploy),
		string(TypeContractExecute),
	}, oType)
	return b
}

type Operation struct {
	H Header `json:"H"`
	B Body   `json:"B"`
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case CreateAccount:
		t = TypeCreateAccount
	case Payment:
		t = TypePayment
	case ContractDeploy:
		t = TypeContractDeploy
	case ContractExecute:
		t = TypeContractExecute
	default:
		err = errors.ErrorInvalidOperation
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

func MustNewOperation(opb Body) Operation {
	op, err := NewOperation(opb)
	if err != nil {
		panic(err)
	}
	return op
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	// IsWellFormed checks that the operation is self consistent, without
	// looking into the ledger state.
	IsWellFormed(common.Config) error
}

type Payable interface {
	Body
	TargetAddress() string
	GetAmount() common.Amount
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	return o.B.IsWellFormed(conf)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, err
	} else {
		// values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeCreateAccount:
		return &CreateAccount{}, nil
	case TypePayment:
		return &Payment{}, nil
	case TypeContractDeploy:
		return &ContractDeploy{}, nil
	case TypeContractExecute:
		return &ContractExecute{}, nil
	default:
		return nil, errors.ErrorInvalidOperation.Clone().SetData("type", ty)
	}
}
