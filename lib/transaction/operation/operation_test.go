package operation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
)

func TestOperationUnmarshal(t *testing.T) {
	target := keypair.Random().Address()

	for _, body := range []Body{
		NewCreateAccount(target, common.Amount(10)),
		NewPayment(target, common.Amount(10)),
		NewContractDeploy("ballot", "a", "b"),
		NewContractExecute(target, "giveRightToVote", keypair.Random().Address()),
	} {
		op := MustNewOperation(body)

		b, err := json.Marshal(op)
		require.NoError(t, err)

		var decoded Operation
		require.NoError(t, json.Unmarshal(b, &decoded))
		require.Equal(t, op, decoded)
	}
}

func TestOperationUnknownType(t *testing.T) {
	var op Operation
	err := json.Unmarshal([]byte(`{"H":{"type":"inflation"},"B":{}}`), &op)
	require.Error(t, err)

	require.False(t, IsValidOperationType("inflation"))
	require.True(t, IsValidOperationType("contract-execute"))
}

func TestPaymentWellFormed(t *testing.T) {
	conf := common.NewConfig([]byte("n"))

	require.NoError(t, NewPayment(keypair.Random().Address(), 1).IsWellFormed(conf))
	require.Error(t, NewPayment(keypair.Random().Address(), 0).IsWellFormed(conf))
	require.Error(t, NewPayment("GABC", 1).IsWellFormed(conf))
	require.Error(t, NewCreateAccount(keypair.Random().Seed(), 1).IsWellFormed(conf))
}
