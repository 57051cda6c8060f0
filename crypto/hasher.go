package crypto

import (
	"lukechampine.com/blake3"

	"ledgerengine/types"
)

// Blake3Hasher is the default Hasher collaborator, backed by
// lukechampine.com/blake3.
type Blake3Hasher struct{}

// Hash returns the blake3-256 digest of b.
func (Blake3Hasher) Hash(b []byte) [32]byte {
	return blake3.Sum256(b)
}

// HashKey hashes b and returns it as a types.HashKey directly, the form
// every core package actually wants.
func (h Blake3Hasher) HashKey(b []byte) types.HashKey {
	digest := h.Hash(b)
	return types.HashKey(digest)
}

var _ Hasher = Blake3Hasher{}
