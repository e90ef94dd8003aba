package key

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateKP(t *testing.T) {
	kp, err := GenerateKP("", false)
	require.NoError(t, err)

	parsed, err := GenerateKP(kp.Seed(), true)
	require.NoError(t, err)
	require.Equal(t, kp.Address(), parsed.Address())

	// address is not secret seed
	_, err = GenerateKP(kp.Address(), true)
	require.Error(t, err)

	// same passphrase, same keypair
	a, err := GenerateKP("ballot network", false)
	require.NoError(t, err)
	b, err := GenerateKP("ballot network", false)
	require.NoError(t, err)
	require.Equal(t, a.Address(), b.Address())
}
