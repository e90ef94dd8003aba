package contract

import (
	"fmt"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/contract/api"
	"boscoin.io/ballot/lib/contract/context"
	"boscoin.io/ballot/lib/contract/native"
	"boscoin.io/ballot/lib/contract/payload"
	"boscoin.io/ballot/lib/errors"
)

type Deployer interface {
	Deploy(*payload.DeployCode) error
}

func NewDeployer(ctx *context.Context, dc *payload.DeployCode) (Deployer, error) {
	switch dc.Type {
	case payload.Native:
		return native.NewNativeExecutor(ctx, api.NewAPI(ctx, dc.ContractAddress), string(dc.Code))
	default:
		return nil, errors.ErrorContractUnknownType.Clone().SetData("type", dc.Type)
	}
}

// Deploy stores the deploy code and runs the constructor. `ctx` must be
// writable.
func Deploy(ctx *context.Context, dc *payload.DeployCode) (err error) {
	deployer, err := NewDeployer(ctx, dc)
	if err != nil {
		return
	}

	dc.Deployer = ctx.SenderAddress()
	if err = ctx.PutDeployCode(dc); err != nil {
		return
	}

	if err = deployer.Deploy(dc); err != nil {
		return
	}

	log.Debug("contract deployed", "address", dc.ContractAddress, "type", dc.Type, "code", string(dc.Code))

	return
}

// MakeContractAddress derives the contract address from the hash of the
// deploying transaction and the index of the operation.
func MakeContractAddress(txHash string, index int) (string, error) {
	kp, err := keypair.FromHash(common.MakeHash([]byte(fmt.Sprintf("%s-%d", txHash, index))))
	if err != nil {
		return "", err
	}

	return kp.Address(), nil
}
