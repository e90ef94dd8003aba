package operation

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/contract/native"
	"boscoin.io/ballot/lib/contract/payload"
	"boscoin.io/ballot/lib/errors"
)

// ContractDeploy deploys the native contract; the contract address is
// derived from the transaction hash.
type ContractDeploy struct {
	Code string   `json:"code"`
	Args []string `json:"args"`
}

func NewContractDeploy(code string, args ...string) ContractDeploy {
	return ContractDeploy{Code: code, Args: args}
}

func (o ContractDeploy) IsWellFormed(common.Config) error {
	if !native.HasContract(o.Code) {
		return errors.ErrorContractUnknownCode.Clone().SetData("code", o.Code)
	}

	return nil
}

func (o ContractDeploy) DeployCode(address string) *payload.DeployCode {
	return &payload.DeployCode{
		ContractAddress: address,
		Type:            payload.Native,
		Code:            []byte(o.Code),
		Args:            o.Args,
	}
}

type ContractExecute struct {
	Target string   `json:"target"`
	Method string   `json:"method"`
	Args   []string `json:"args"`
}

func NewContractExecute(target, method string, args ...string) ContractExecute {
	return ContractExecute{Target: target, Method: method, Args: args}
}

func (o ContractExecute) IsWellFormed(common.Config) error {
	if !keypair.IsAddress(o.Target) {
		return errors.ErrorInvalidAddress.Clone().SetData("target", o.Target)
	}
	if len(o.Method) < 1 {
		return errors.ErrorContractMethodNotFound
	}

	return nil
}

func (o ContractExecute) TargetAddress() string {
	return o.Target
}

func (o ContractExecute) ExecCode() *payload.ExecCode {
	return &payload.ExecCode{
		ContractAddress: o.Target,
		Method:          o.Method,
		Args:            o.Args,
	}
}
