package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	{
		e, err := ParseEndpoint("http://127.0.0.1:2821")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:2821", e.String())
	}

	{
		e, err := ParseEndpoint("https://Ballot.Example.com")
		require.NoError(t, err)
		require.Equal(t, "https://ballot.example.com:12345", e.String())
	}

	{
		_, err := ParseEndpoint("localhost:2821")
		require.Error(t, err)
	}

	{
		_, err := ParseEndpoint("memory://localhost")
		require.Error(t, err)
	}
}

func TestCheckBindString(t *testing.T) {
	require.NoError(t, CheckBindString("0.0.0.0:2821"))
	require.Error(t, CheckBindString("0.0.0.0"))
	require.Error(t, CheckBindString("0.0.0.0:0"))
}
