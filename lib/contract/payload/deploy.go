package payload

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

type CodeType int

const (
	Native CodeType = iota
	NONE
)

const DeployCodeKeyPrefix = "tc-dc-" // tc-dc-{address}

func (t CodeType) String() string {
	switch t {
	case Native:
		return "native"
	default:
		return "none"
	}
}

// DeployCode is the deployed contract. For the `Native` type, `Code` is the
// name of the registered native contract, and `Args` are passed to the
// constructor.
type DeployCode struct {
	ContractAddress string   `json:"contract_address"`
	Deployer        string   `json:"deployer"`
	Type            CodeType `json:"type"`
	Code            []byte   `json:"code"`
	Args            []string `json:"args"`
}

func (dc *DeployCode) Serialize() (encoded []byte, err error) {
	encoded, err = EncodeJSONValue(dc)
	return
}

func (dc *DeployCode) Deserialize(encoded []byte) (err error) {
	err = DecodeJSONValue(encoded, dc)
	return
}

func GetDeployCodeDBKey(addr string) string {
	return DeployCodeKeyPrefix + addr
}

func (dc *DeployCode) Save(st storage.DBBackend) error {
	if err := st.New(GetDeployCodeDBKey(dc.ContractAddress), dc); err != nil {
		if errors.Is(err, errors.ErrorStorageRecordAlreadyExists) {
			return errors.ErrorContractAlreadyExists
		}
		return err
	}

	return nil
}

func GetDeployCode(st storage.DBBackend, addr string) (*DeployCode, error) {
	b, err := st.GetRaw(GetDeployCodeDBKey(addr))
	if err != nil {
		if errors.Is(err, errors.ErrorStorageRecordDoesNotExist) {
			return nil, errors.ErrorContractNotFound.Clone().SetData("address", addr)
		}
		return nil, err
	}

	dc := &DeployCode{}
	common.MustUnmarshalJSON(b, dc)
	return dc, nil
}
