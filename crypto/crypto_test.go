package crypto

import (
	"testing"

	"ledgerengine/types"
)

func TestBlake3HasherIsDeterministic(t *testing.T) {
	h := Blake3Hasher{}
	a := h.Hash([]byte("some transaction bytes"))
	b := h.Hash([]byte("some transaction bytes"))
	if a != b {
		t.Fatal("expected the same digest for the same input")
	}
	c := h.Hash([]byte("different bytes"))
	if a == c {
		t.Fatal("expected different digests for different input")
	}
}

func TestBech32RoundTrip(t *testing.T) {
	var h types.HashKey
	h[0] = 0xde
	h[31] = 0xad

	encoded := Bech32Encode(StakePrefix, h)
	prefix, decoded, err := Bech32Decode(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != StakePrefix {
		t.Fatalf("got prefix %q, want %q", prefix, StakePrefix)
	}
	if decoded != h {
		t.Fatalf("got %v, want %v", decoded, h)
	}
}

func TestBech32DecodeRejectsGarbage(t *testing.T) {
	if _, _, err := Bech32Decode("not a bech32 string"); err == nil {
		t.Fatal("expected an error decoding garbage input")
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error generating key: %v", err)
	}
	digest := Blake3Hasher{}.Hash([]byte("message to sign"))

	sig, err := priv.Sign(digest)
	if err != nil {
		t.Fatalf("unexpected error signing: %v", err)
	}

	verifier := ECDSAVerifier{}
	if !verifier.Verify(priv.PubKey().PubKeyBytes(), digest[:], sig) {
		t.Fatal("expected a valid signature to verify")
	}

	tampered := append([]byte{}, digest[:]...)
	tampered[0] ^= 0xff
	if verifier.Verify(priv.PubKey().PubKeyBytes(), tampered, sig) {
		t.Fatal("expected verification to fail against a different message")
	}
}

func TestPrivateKeyFromBytesRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored, err := PrivateKeyFromBytes(priv.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.PubKey().Hash() != priv.PubKey().Hash() {
		t.Fatal("expected the restored key to derive the same public identity")
	}
}
