package types

import (
	"encoding/hex"
	"fmt"
)

// HashKey is the collision-resistant hash of a verification key. It is the
// identity used for stake keys, pool keys, and genesis delegates throughout
// the ledger. The core never computes a HashKey itself — it is produced by
// the Hasher collaborator in package crypto (see spec §6) — but it needs a
// comparable, map-key-friendly representation here.
type HashKey [32]byte

// ZeroHashKey is the reserved empty identity; no real key hashes to it with
// overwhelming probability, so it is safe to use as a "not present" sentinel
// in code that wants to avoid a pointer or ok-bool.
var ZeroHashKey HashKey

// HashKeyFromBytes copies up to 32 bytes into a HashKey, left-padding with
// zero if the collaborator's digest is shorter (the spec allows 224- or
// 256-bit hashes).
func HashKeyFromBytes(b []byte) HashKey {
	var h HashKey
	if len(b) > len(h) {
		b = b[len(b)-len(h):]
	}
	copy(h[len(h)-len(b):], b)
	return h
}

// IsZero reports whether h is the reserved empty identity.
func (h HashKey) IsZero() bool { return h == ZeroHashKey }

// Bytes returns a copy of the underlying digest.
func (h HashKey) Bytes() []byte {
	out := make([]byte, len(h))
	copy(out, h[:])
	return out
}

// String renders the hash as lowercase hex, matching the teacher's
// human-readable address conventions.
func (h HashKey) String() string { return hex.EncodeToString(h[:]) }

// Compare provides a total order over hash keys so callers that must iterate
// deterministically (spec §5: "map iteration order must not leak") can sort
// by key.
func (h HashKey) Compare(other HashKey) int {
	for i := range h {
		if h[i] != other[i] {
			if h[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// RewardAcnt identifies a reward account; it is always the hash of the stake
// key that owns it, kept as a distinct type so the two domains (stake key
// identity vs. reward account identity) cannot be mixed up by accident.
type RewardAcnt HashKey

// NewRewardAcnt constructs a reward account identifier from a stake key
// hash, per §4.1's `RewardAcnt(h)` notation.
func NewRewardAcnt(h HashKey) RewardAcnt { return RewardAcnt(h) }

// Hash returns the underlying stake-key hash.
func (r RewardAcnt) Hash() HashKey { return HashKey(r) }

func (r RewardAcnt) String() string { return fmt.Sprintf("reward:%s", HashKey(r).String()) }
