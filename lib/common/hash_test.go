package common

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"
)

func TestMakeObjectHash(t *testing.T) {
	type body struct {
		Source string
		Names  []string
	}

	a := body{Source: "GABC", Names: []string{"Proposal 1", "Proposal 2"}}
	b := body{Source: "GABC", Names: []string{"Proposal 2", "Proposal 1"}}

	ha, err := MakeObjectHashString(a)
	require.NoError(t, err)
	hb, err := MakeObjectHashString(b)
	require.NoError(t, err)

	require.NotEqual(t, ha, hb)
	require.Equal(t, ha, MustMakeObjectHashString(a))
	require.Equal(t, 32, len(base58.Decode(ha)))
}
