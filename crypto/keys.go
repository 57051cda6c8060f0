package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"ledgerengine/types"
)

// AddressPrefix selects the human-readable bech32 prefix for a rendered
// key hash. The core itself never renders addresses — it is pure, per
// §5 — but embedding tools (cmd/ledgerctl, a block explorer) need a stable
// way to print a HashKey, so the prefix lives next to the keys it names.
type AddressPrefix string

const (
	StakePrefix AddressPrefix = "stake"
	PoolPrefix  AddressPrefix = "pool"
)

// Bech32Encode renders a HashKey under the given prefix.
func Bech32Encode(prefix AddressPrefix, h types.HashKey) string {
	conv, err := bech32.ConvertBits(h.Bytes(), 8, 5, true)
	if err != nil {
		panic(err)
	}
	encoded, err := bech32.Encode(string(prefix), conv)
	if err != nil {
		panic(err)
	}
	return encoded
}

// Bech32Decode parses a rendered address back into its prefix and HashKey.
func Bech32Decode(addrStr string) (AddressPrefix, types.HashKey, error) {
	prefix, decoded, err := bech32.Decode(addrStr)
	if err != nil {
		return "", types.HashKey{}, fmt.Errorf("crypto: invalid bech32 string: %w", err)
	}
	conv, err := bech32.ConvertBits(decoded, 5, 8, false)
	if err != nil {
		return "", types.HashKey{}, fmt.Errorf("crypto: error converting bits: %w", err)
	}
	return AddressPrefix(prefix), types.HashKeyFromBytes(conv), nil
}

// PrivateKey wraps an ECDSA secp256k1 key; used only by test fixtures and
// the trace generator to produce witnesses, never by the core itself (§1: the core
// consumes signature verification, it never signs).
type PrivateKey struct {
	*ecdsa.PrivateKey
}

// PublicKey wraps the corresponding verification key.
type PublicKey struct {
	*ecdsa.PublicKey
}

// GeneratePrivateKey creates a fresh secp256k1 key pair.
func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := ecdsa.GenerateKey(ethcrypto.S256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key}, nil
}

// Bytes returns the raw private scalar.
func (k *PrivateKey) Bytes() []byte {
	return ethcrypto.FromECDSA(k.PrivateKey)
}

// PubKey derives the corresponding public key.
func (k *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{&k.PrivateKey.PublicKey}
}

// Sign produces a recoverable ECDSA signature over a 32-byte digest, the
// format ECDSAVerifier expects.
func (k *PrivateKey) Sign(digest [32]byte) ([]byte, error) {
	return ethcrypto.Sign(digest[:], k.PrivateKey)
}

// Hash returns the HashKey identity of this public key: the Blake3Hasher
// digest of its uncompressed encoding, the same identity validate's
// witness check computes from a witness's PubKey under the default deps.
func (k *PublicKey) Hash() types.HashKey {
	return Blake3Hasher{}.HashKey(k.PubKeyBytes())
}

// PubKeyBytes returns the uncompressed SEC1 encoding.
func (k *PublicKey) PubKeyBytes() []byte {
	return ethcrypto.FromECDSAPub(k.PublicKey)
}

// PrivateKeyFromBytes restores a key pair from its raw scalar.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	key, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key}, nil
}
