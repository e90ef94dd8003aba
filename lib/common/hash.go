package common

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/sha3"
)

func MakeHash(b []byte) []byte {
	h := sha3.Sum256(b)
	return h[:]
}

func MakeObjectHash(i interface{}) (b []byte, err error) {
	var e []byte
	if e, err = rlp.EncodeToBytes(i); err != nil {
		return
	}

	b = MakeHash(e)

	return
}

func MustMakeObjectHash(i interface{}) (b []byte) {
	b, _ = MakeObjectHash(i)
	return
}

func MakeObjectHashString(i interface{}) (string, error) {
	b, err := MakeObjectHash(i)
	if err != nil {
		return "", err
	}

	return base58.Encode(b), nil
}

func MustMakeObjectHashString(i interface{}) string {
	s, _ := MakeObjectHashString(i)
	return s
}
