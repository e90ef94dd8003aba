package ledger

import (
	"boscoin.io/ballot/lib/account"
	"boscoin.io/ballot/lib/contract"
	contractContext "boscoin.io/ballot/lib/contract/context"
	"boscoin.io/ballot/lib/contract/value"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/metrics"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
	"boscoin.io/ballot/lib/transaction/operation"
)

func applyOperations(st storage.DBBackend, tx transaction.Transaction) (results []OperationResult, err error) {
	for i, op := range tx.B.Operations {
		var result OperationResult
		if result, err = applyOperation(st, tx, i, op); err != nil {
			log.Debug("operation failed", "hash", tx.GetHash(), "index", i, "type", op.H.Type, "error", err)
			return
		}
		results = append(results, result)
	}

	return
}

func applyOperation(st storage.DBBackend, tx transaction.Transaction, index int, op operation.Operation) (result OperationResult, err error) {
	result.Type = op.H.Type

	switch op.H.Type {
	case operation.TypeCreateAccount:
		pop, ok := op.B.(operation.CreateAccount)
		if !ok {
			err = errors.ErrorInvalidOperation
			return
		}
		err = applyCreateAccount(st, tx.Source(), pop)
	case operation.TypePayment:
		pop, ok := op.B.(operation.Payment)
		if !ok {
			err = errors.ErrorInvalidOperation
			return
		}
		err = applyPayment(st, tx.Source(), pop)
	case operation.TypeContractDeploy:
		pop, ok := op.B.(operation.ContractDeploy)
		if !ok {
			err = errors.ErrorInvalidOperation
			return
		}
		if result.Contract, err = contract.MakeContractAddress(tx.GetHash(), index); err != nil {
			return
		}
		err = applyContractDeploy(st, tx.Source(), result.Contract, pop)
	case operation.TypeContractExecute:
		pop, ok := op.B.(operation.ContractExecute)
		if !ok {
			err = errors.ErrorInvalidOperation
			return
		}
		result.Contract = pop.TargetAddress()
		result.Value, err = applyContractExecute(st, tx.Source(), pop)
	default:
		err = errors.ErrorInvalidOperation.Clone().SetData("type", op.H.Type)
	}

	return
}

func applyCreateAccount(st storage.DBBackend, source string, op operation.CreateAccount) (err error) {
	var src *account.Account
	if src, err = account.GetAccount(st, source); err != nil {
		return
	}

	var exists bool
	if exists, err = account.ExistsAccount(st, op.TargetAddress()); err != nil {
		return
	} else if exists {
		return errors.ErrorAccountAlreadyExists.Clone().SetData("address", op.TargetAddress())
	}

	if err = src.Withdraw(op.GetAmount()); err != nil {
		return
	}
	if err = src.Save(st); err != nil {
		return
	}

	return account.NewAccount(op.TargetAddress(), op.GetAmount()).Save(st)
}

func applyPayment(st storage.DBBackend, source string, op operation.Payment) (err error) {
	var src, target *account.Account
	if src, err = account.GetAccount(st, source); err != nil {
		return
	}
	if target, err = account.GetAccount(st, op.TargetAddress()); err != nil {
		return
	}

	if err = src.Withdraw(op.GetAmount()); err != nil {
		return
	}
	if err = target.Deposit(op.GetAmount()); err != nil {
		return
	}
	if err = src.Save(st); err != nil {
		return
	}

	return target.Save(st)
}

func applyContractDeploy(st storage.DBBackend, source, address string, op operation.ContractDeploy) error {
	if err := contract.Deploy(contractContext.NewContext(source, st), op.DeployCode(address)); err != nil {
		return err
	}

	metrics.Ballot.AddDeployed()
	log.Debug("contract deployed", "address", address, "code", op.Code, "deployer", source)

	return nil
}

func applyContractExecute(st storage.DBBackend, source string, op operation.ContractExecute) (*value.Value, error) {
	metrics.Ballot.AddCall(op.Method)

	v, err := contract.Execute(contractContext.NewContext(source, st), op.ExecCode())
	if err != nil {
		if e, ok := errors.Cause(err); ok {
			metrics.Ballot.AddRejection(op.Method, e.Code)
		}
		return nil, err
	}

	return v, nil
}
