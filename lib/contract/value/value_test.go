package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	MaxUint64 = ^uint64(0)
	MaxInt64  = int64(MaxUint64 >> 1)
	MinInt64  = -MaxInt64 - 1
)

func TestValue(t *testing.T) {
	testValues := []interface{}{
		true,
		false,
		"Proposal 1",
		MaxUint64,
		uint(0),
		MaxInt64,
		MinInt64,
		int8(-3),
		uint16(7),
		nil,
	}

	for _, tv := range testValues {
		v, err := ToValue(tv)
		require.NoError(t, err)
		require.True(t, v.EqualNative(tv), "%v", tv)

		encoded, err := v.Serialize()
		require.NoError(t, err)

		decoded, err := ToValue(encoded)
		require.NoError(t, err)
		require.Equal(t, v.Type, decoded.Type)
		require.True(t, decoded.EqualNative(tv), "%v", tv)
	}
}

func TestValueObject(t *testing.T) {
	type proposal struct {
		Name      string `json:"name"`
		VoteCount uint64 `json:"vote_count"`
	}

	v, err := ToValue(proposal{Name: "Proposal 2", VoteCount: 3})
	require.NoError(t, err)
	require.Equal(t, Object, v.Type)

	var p proposal
	require.NoError(t, v.Decode(&p))
	require.Equal(t, "Proposal 2", p.Name)
	require.Equal(t, uint64(3), p.VoteCount)

	encoded, err := v.Serialize()
	require.NoError(t, err)
	decoded, err := ToValue(encoded)
	require.NoError(t, err)
	require.Equal(t, v.String(), decoded.String())
}

func TestValueJSON(t *testing.T) {
	for _, tv := range []interface{}{"Proposal 1", MaxUint64, MinInt64, true, nil, []string{"a"}} {
		v := MustToValue(tv)

		b, err := json.Marshal(v)
		require.NoError(t, err)

		var decoded Value
		require.NoError(t, json.Unmarshal(b, &decoded))
		require.Equal(t, v.Type, decoded.Type)
		require.Equal(t, v.String(), decoded.String())
	}
}

func TestValueNotSupported(t *testing.T) {
	_, err := ToValue(1.5)
	require.Error(t, err)

	v := MustToValue("a")
	_, err = v.Uint64()
	require.Error(t, err)
}
