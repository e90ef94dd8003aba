package contract

import (
	"boscoin.io/ballot/lib/contract/api"
	"boscoin.io/ballot/lib/contract/context"
	"boscoin.io/ballot/lib/contract/native"
	"boscoin.io/ballot/lib/contract/payload"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/errors"
)

type Executor interface {
	Execute(*payload.ExecCode) (*value.Value, error)
}

func NewExecutor(ctx *context.Context, execCode *payload.ExecCode) (Executor, error) {
	deployCode, err := ctx.GetDeployCode(execCode.ContractAddress)
	if err != nil {
		return nil, err
	}

	switch deployCode.Type {
	case payload.Native:
		return native.NewNativeExecutor(ctx, api.NewAPI(ctx, execCode.ContractAddress), string(deployCode.Code))
	default:
		return nil, errors.ErrorContractUnknownType.Clone().SetData("type", deployCode.Type)
	}
}

func Execute(ctx *context.Context, execCode *payload.ExecCode) (*value.Value, error) {
	ex, err := NewExecutor(ctx, execCode)
	if err != nil {
		return nil, err
	}

	return ex.Execute(execCode)
}
