package keypair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	kp := Random()
	networkID := []byte("test-network")

	sig, err := MakeSignature(kp, networkID, "hash")
	require.NoError(t, err)

	require.NoError(t, VerifySignature(kp.Address(), networkID, "hash", sig))
	require.Error(t, VerifySignature(kp.Address(), []byte("other-network"), "hash", sig))
	require.Error(t, VerifySignature(Random().Address(), networkID, "hash", sig))
}

func TestIsAddress(t *testing.T) {
	kp := Random()
	require.True(t, IsAddress(kp.Address()))
	require.False(t, IsAddress(kp.Seed()))
	require.False(t, IsAddress("GABC"))
}

func TestFromHash(t *testing.T) {
	h := make([]byte, 32)
	h[0] = 1

	a, err := FromHash(h)
	require.NoError(t, err)
	b, err := FromHash(h)
	require.NoError(t, err)
	require.Equal(t, a.Address(), b.Address())
}
