package validate

import (
	"testing"

	"ledgerengine/delegation"
	"ledgerengine/ledgererrors"
	"ledgerengine/params"
	"ledgerengine/pool"
	"ledgerengine/types"
	"ledgerengine/utxo"
)

// fakeHasher is a length-extension-free stand-in so tests never need a real
// digest function; it just echoes the last 32 bytes of its input (left
// zero-padded when shorter), which is enough to exercise the body-hash
// plumbing.
type fakeHasher struct{}

func (fakeHasher) Hash(b []byte) [32]byte {
	return types.HashKeyFromBytes(b)
}

// fakeVerifier accepts a witness iff its signature equals its pubkey, so
// tests can construct "valid" and "invalid" witnesses without real ECDSA.
type fakeVerifier struct{}

func (fakeVerifier) Verify(pubKey, _, sig []byte) bool {
	if len(pubKey) != len(sig) {
		return false
	}
	for i := range pubKey {
		if pubKey[i] != sig[i] {
			return false
		}
	}
	return true
}

func hashOf(b byte) types.HashKey {
	var h types.HashKey
	h[31] = b
	return h
}

func txIn(b byte) types.TxIn {
	return types.NewTxIn(types.TxId(hashOf(b)), 0)
}

func newDeps() Deps {
	return Deps{
		CurrentSlot: 100,
		UTxO:        utxo.New(),
		DState:      delegation.New(nil),
		PState:      pool.New(),
		Params:      params.Default(),
		Hasher:      fakeHasher{},
		Verifier:    fakeVerifier{},
	}
}

// witnessFor builds a witness that both verifies (pubkey==sig) and claims
// to be signed by hash h.
func witnessFor(h types.HashKey) types.Witness {
	key := append([]byte{}, h.Bytes()...)
	return types.Witness{VKeyHash: h, PubKey: key, Signature: key}
}

func TestTxRejectsEmptyInputSet(t *testing.T) {
	d := newDeps()
	body := types.NewTxBody()
	body.TTL = 200
	body.Fee = types.NewCoin(1_000_000)

	res := Tx(d, types.Tx{Body: *body})
	if res.Valid() {
		t.Fatal("expected validation failure for an empty input set")
	}
	foundEmpty := false
	for _, e := range res.Errors {
		if e.Kind == ledgererrors.KindInputSetEmpty {
			foundEmpty = true
		}
	}
	if !foundEmpty {
		t.Fatalf("expected InputSetEmpty among %v", res.Errors)
	}
}

func TestTxAcceptsSimpleTransfer(t *testing.T) {
	d := newDeps()
	payHash := hashOf(1)
	in := txIn(1)
	d.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(payHash, hashOf(2)), types.NewCoin(1_000_000)))

	body := types.NewTxBody()
	body.AddInput(in)
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(900_000)))
	body.Fee = types.NewCoin(100_000)
	body.TTL = 200

	tx := types.Tx{Body: *body, Witness: []types.Witness{witnessFor(payHash)}}

	res := Tx(d, tx)
	if !res.Valid() {
		t.Fatalf("expected a valid transfer, got errors: %v", res.Errors)
	}
}

func TestTxRejectsExpiredTTL(t *testing.T) {
	d := newDeps()
	payHash := hashOf(1)
	in := txIn(1)
	d.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(payHash, hashOf(2)), types.NewCoin(1_000_000)))

	body := types.NewTxBody()
	body.AddInput(in)
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(900_000)))
	body.Fee = types.NewCoin(100_000)
	body.TTL = 1 // before CurrentSlot (100)

	tx := types.Tx{Body: *body, Witness: []types.Witness{witnessFor(payHash)}}
	res := Tx(d, tx)
	if res.Valid() {
		t.Fatal("expected failure for an expired ttl")
	}
}

func TestTxRejectsUnbalancedValue(t *testing.T) {
	d := newDeps()
	payHash := hashOf(1)
	in := txIn(1)
	d.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(payHash, hashOf(2)), types.NewCoin(1_000_000)))

	body := types.NewTxBody()
	body.AddInput(in)
	// output + fee exceeds input: value is not conserved
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(999_999)))
	body.Fee = types.NewCoin(100_000)
	body.TTL = 200

	tx := types.Tx{Body: *body, Witness: []types.Witness{witnessFor(payHash)}}
	res := Tx(d, tx)
	if res.Valid() {
		t.Fatal("expected a value-not-conserved failure")
	}
}

func TestTxRejectsFeeBelowFloor(t *testing.T) {
	d := newDeps()
	payHash := hashOf(1)
	in := txIn(1)
	d.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(payHash, hashOf(2)), types.NewCoin(1_000_000)))

	body := types.NewTxBody()
	body.AddInput(in)
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(999_999)))
	body.Fee = types.ZeroCoin
	body.TTL = 200

	tx := types.Tx{Body: *body, Witness: []types.Witness{witnessFor(payHash)}}
	res := Tx(d, tx)
	if res.Valid() {
		t.Fatal("expected failure when fee is below the minimum")
	}
}

func TestTxRejectsPartialWithdrawal(t *testing.T) {
	d := newDeps()
	payHash := hashOf(1)
	stakeKey := hashOf(2)
	in := txIn(1)
	d.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(payHash, stakeKey), types.NewCoin(1_000_000)))
	d.DState.RegisterKey(stakeKey, 0, types.NewPtr(0, 0, 0))
	d.DState.Rewards[types.NewRewardAcnt(stakeKey)] = types.NewCoin(50)

	body := types.NewTxBody()
	body.AddInput(in)
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(800_000)))
	body.Withdrawals[types.NewRewardAcnt(stakeKey)] = types.NewCoin(25) // partial, not the full 50
	body.Fee = types.NewCoin(100_000)
	body.TTL = 200

	tx := types.Tx{Body: *body, Witness: []types.Witness{witnessFor(payHash), witnessFor(stakeKey)}}
	res := Tx(d, tx)
	if res.Valid() {
		t.Fatal("expected a partial withdrawal to be rejected")
	}
}

func TestTxRejectsMissingWitness(t *testing.T) {
	d := newDeps()
	payHash := hashOf(1)
	in := txIn(1)
	d.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(payHash, hashOf(2)), types.NewCoin(1_000_000)))

	body := types.NewTxBody()
	body.AddInput(in)
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(900_000)))
	body.Fee = types.NewCoin(100_000)
	body.TTL = 200

	tx := types.Tx{Body: *body} // no witnesses at all
	res := Tx(d, tx)
	if res.Valid() {
		t.Fatal("expected failure for a missing witness")
	}
}

func TestTxRejectsWitnessWhoseClaimedHashDoesNotMatchItsPubKey(t *testing.T) {
	d := newDeps()
	payHash := hashOf(1)
	in := txIn(1)
	d.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(payHash, hashOf(2)), types.NewCoin(1_000_000)))

	body := types.NewTxBody()
	body.AddInput(in)
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(900_000)))
	body.Fee = types.NewCoin(100_000)
	body.TTL = 200

	// attacker signs legitimately with their own key but claims VKeyHash is
	// payHash, the required signer they don't hold a key for.
	attackerKey := hashOf(99).Bytes()
	forged := types.Witness{VKeyHash: payHash, PubKey: attackerKey, Signature: attackerKey}

	tx := types.Tx{Body: *body, Witness: []types.Witness{forged}}
	res := Tx(d, tx)
	if res.Valid() {
		t.Fatal("expected failure when VKeyHash does not match hash(PubKey)")
	}
	found := false
	for _, e := range res.Errors {
		if e.Kind == ledgererrors.KindInvalidWitness {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected InvalidWitness among %v", res.Errors)
	}
}

func TestTxRejectsUnneededWitness(t *testing.T) {
	d := newDeps()
	payHash := hashOf(1)
	in := txIn(1)
	d.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(payHash, hashOf(2)), types.NewCoin(1_000_000)))

	body := types.NewTxBody()
	body.AddInput(in)
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(900_000)))
	body.Fee = types.NewCoin(100_000)
	body.TTL = 200

	tx := types.Tx{Body: *body, Witness: []types.Witness{witnessFor(payHash), witnessFor(hashOf(99))}}
	res := Tx(d, tx)
	if res.Valid() {
		t.Fatal("expected failure for an unneeded witness")
	}
}

func TestCertsValidRejectsDoubleRegistration(t *testing.T) {
	d := newDeps()
	stakeKey := hashOf(5)
	d.DState.RegisterKey(stakeKey, 0, types.NewPtr(0, 0, 0))

	body := types.NewTxBody()
	body.AddInput(txIn(1))
	body.AddCert(types.RegKeyCert(stakeKey))
	body.Fee = types.NewCoin(1_000_000)
	body.TTL = 200
	d.UTxO.Insert(txIn(1), types.NewTxOut(types.AddrTxin(hashOf(1), hashOf(1)), types.NewCoin(10_000_000)))

	tx := types.Tx{Body: *body, Witness: []types.Witness{witnessFor(hashOf(1)), witnessFor(stakeKey)}}
	res := Tx(d, tx)

	found := false
	for _, e := range res.Errors {
		if e.Kind == ledgererrors.KindStakeKeyAlreadyRegistered {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected StakeKeyAlreadyRegistered among %v", res.Errors)
	}
}

func TestFreshOperationalCountersRejectsStaleCounter(t *testing.T) {
	d := newDeps()
	poolHash := hashOf(7)
	d.PState.OpCounters[poolHash] = 10

	pp := types.PoolParams{PoolKeyHash: poolHash, RewardAccount: types.NewRewardAcnt(hashOf(8))}
	stale := uint64(5)
	body := types.NewTxBody()
	body.AddCert(types.RegPoolCertWithOpCounter(pp, stale))

	var res Result
	freshOperationalCounters(d, types.Tx{Body: *body}, &res)
	if res.Valid() {
		t.Fatal("expected a stale operational counter to be rejected")
	}
}

func TestEntropyContributorExtractsLeadingHash(t *testing.T) {
	h := hashOf(42)
	got, ok := entropyContributor(types.EEnt(h.Bytes()))
	if !ok || got != h {
		t.Fatalf("got (%v, %v), want (%v, true)", got, ok, h)
	}
	if _, ok := entropyContributor(nil); ok {
		t.Fatal("expected no contributor for empty entropy")
	}
}
