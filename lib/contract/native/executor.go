package native

import (
	"boscoin.io/ballot/lib/contract/api"
	"boscoin.io/ballot/lib/contract/context"
	"boscoin.io/ballot/lib/contract/payload"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/errors"
)

// ConstructorMethod is called once when the contract is deployed.
const ConstructorMethod = "init"

type ExecFunc func(e *NativeExecutor, code *payload.ExecCode) (*value.Value, error)

type NativeExecutor struct {
	Context *context.Context
	api     *api.API

	execFuncs map[string]ExecFunc
	views     map[string]bool
}

func NewNativeExecutor(ctx *context.Context, api *api.API, code string) (*NativeExecutor, error) {
	r, found := contracts[code]
	if !found {
		return nil, errors.ErrorContractUnknownCode.Clone().SetData("code", code)
	}

	ex := &NativeExecutor{
		Context:   ctx,
		api:       api,
		execFuncs: map[string]ExecFunc{},
		views:     map[string]bool{},
	}
	r(ex)

	return ex, nil
}

func (ex *NativeExecutor) API() *api.API {
	return ex.api
}

func (ex *NativeExecutor) Execute(c *payload.ExecCode) (*value.Value, error) {
	f, ok := ex.execFuncs[c.Method]
	if !ok {
		return nil, errors.ErrorContractMethodNotFound.Clone().SetData("method", c.Method)
	}

	if ex.Context.ReadOnly() && !ex.views[c.Method] {
		return nil, errors.ErrorInvalidOperation.Clone().SetData("method", c.Method)
	}

	return f(ex, c)
}

// Deploy runs the constructor, if the contract has.
func (ex *NativeExecutor) Deploy(dc *payload.DeployCode) error {
	if _, found := ex.execFuncs[ConstructorMethod]; !found {
		return nil
	}

	_, err := ex.execFuncs[ConstructorMethod](ex, &payload.ExecCode{
		ContractAddress: dc.ContractAddress,
		Method:          ConstructorMethod,
		Args:            dc.Args,
	})

	return err
}

func (ex *NativeExecutor) RegisterFunc(name string, f ExecFunc) {
	ex.execFuncs[name] = f
}

// RegisterView registers the method which does not write; only the views
// can be called by the read only context.
func (ex *NativeExecutor) RegisterView(name string, f ExecFunc) {
	ex.execFuncs[name] = f
	ex.views[name] = true
}

func (ex *NativeExecutor) IsView(name string) bool {
	return ex.views[name]
}
