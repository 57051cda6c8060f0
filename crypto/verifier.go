package crypto

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ECDSAVerifier is the default Verifier collaborator: secp256k1 ECDSA over
// a 32-byte message digest, matching the curve the teacher codebase uses
// for account keys.
type ECDSAVerifier struct{}

// Verify checks sig against message under pubKey. message is expected to
// already be a 32-byte digest (the body hash the spec's witness rule signs
// over); pubKey is the uncompressed SEC1 encoding.
func (ECDSAVerifier) Verify(pubKey []byte, message []byte, sig []byte) bool {
	if len(message) != 32 {
		return false
	}
	// VerifySignature expects a signature without the recovery id byte.
	trimmed := sig
	if len(trimmed) == 65 {
		trimmed = trimmed[:64]
	}
	return ethcrypto.VerifySignature(pubKey, message, trimmed)
}

var _ Verifier = ECDSAVerifier{}
