// Encapsulate Stellar's keypair package
//
// Voters, chairpersons and contracts are all addressed by stellar
// public keys.
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP

// Aliases to stellar functions
var Master = stellar.Master
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// MakeSignature makes signature from given hash string
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(append(networkID, []byte(hash)...))
}

// VerifySignature verifies the signature made by `MakeSignature`.
func VerifySignature(address string, networkID []byte, hash string, signature []byte) error {
	kp, err := Parse(address)
	if err != nil {
		return err
	}

	return kp.Verify(append(networkID, []byte(hash)...), signature)
}

// IsAddress checks the given string is a valid public address.
func IsAddress(address string) bool {
	kp, err := Parse(address)
	if err != nil {
		return false
	}

	_, isFull := kp.(*Full)
	return !isFull
}

// FromHash derives a keypair from the 32 bytes hash; the contract
// addresses are derived from the deploy transaction this way.
func FromHash(b []byte) (*Full, error) {
	var seed [32]byte
	copy(seed[:], b)
	return stellar.FromRawSeed(seed)
}
