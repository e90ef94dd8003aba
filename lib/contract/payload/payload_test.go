package payload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

func TestDeployCodeSave(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	_, err := GetDeployCode(st, "GCONTRACT")
	require.True(t, errors.Is(err, errors.ErrorContractNotFound))

	dc := &DeployCode{
		ContractAddress: "GCONTRACT",
		Deployer:        "GDEPLOYER",
		Type:            Native,
		Code:            []byte("ballot"),
		Args:            []string{"Proposal 1", "Proposal 2"},
	}
	require.NoError(t, dc.Save(st))
	require.True(t, errors.Is(dc.Save(st), errors.ErrorContractAlreadyExists))

	fetched, err := GetDeployCode(st, "GCONTRACT")
	require.NoError(t, err)
	require.Equal(t, dc, fetched)
}

func TestExecCodeSerialize(t *testing.T) {
	ec := &ExecCode{ContractAddress: "GCONTRACT", Method: "vote", Args: []string{"1"}}
	b, err := ec.Serialize()
	require.NoError(t, err)

	var decoded ExecCode
	require.NoError(t, decoded.Deserialize(b))
	require.Equal(t, *ec, decoded)
}
