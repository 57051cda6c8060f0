package codec

import (
	"bytes"
	"testing"

	"ledgerengine/types"
)

func hashOf(b byte) types.HashKey {
	var h types.HashKey
	h[31] = b
	return h
}

func buildBody() *types.TxBody {
	body := types.NewTxBody()
	body.AddInput(types.NewTxIn(types.TxId(hashOf(1)), 0))
	body.AddInput(types.NewTxIn(types.TxId(hashOf(2)), 1))
	body.AddOutput(types.NewTxOut(types.AddrTxin(hashOf(3), hashOf(4)), types.NewCoin(100)))
	body.AddCert(types.RegKeyCert(hashOf(5)))
	body.Withdrawals[types.NewRewardAcnt(hashOf(6))] = types.NewCoin(10)
	body.Fee = types.NewCoin(1000)
	body.TTL = 42
	return body
}

func TestEncodeTxBodyIsDeterministic(t *testing.T) {
	a := EncodeTxBody(*buildBody())
	b := EncodeTxBody(*buildBody())
	if !bytes.Equal(a, b) {
		t.Fatal("expected identical encodings for identical bodies")
	}
}

func TestEncodeTxBodyInputOrderDoesNotMatterToTheCaller(t *testing.T) {
	b1 := types.NewTxBody()
	b1.AddInput(types.NewTxIn(types.TxId(hashOf(1)), 0))
	b1.AddInput(types.NewTxIn(types.TxId(hashOf(2)), 0))
	b1.Fee = types.NewCoin(1)
	b1.TTL = 1

	b2 := types.NewTxBody()
	b2.AddInput(types.NewTxIn(types.TxId(hashOf(2)), 0))
	b2.AddInput(types.NewTxIn(types.TxId(hashOf(1)), 0))
	b2.Fee = types.NewCoin(1)
	b2.TTL = 1

	if !bytes.Equal(EncodeTxBody(*b1), EncodeTxBody(*b2)) {
		t.Fatal("expected the same encoding regardless of insertion order, since the input set is sorted before encoding")
	}
}

func TestSizeMatchesEncodedLength(t *testing.T) {
	body := buildBody()
	if got, want := Size(*body), uint64(len(EncodeTxBody(*body))); got != want {
		t.Fatalf("got size %d, want %d", got, want)
	}
}

func TestEncodeTxBodyDiffersOnFeeChange(t *testing.T) {
	a := buildBody()
	b := buildBody()
	b.Fee = b.Fee.Add(types.NewCoin(1))
	if bytes.Equal(EncodeTxBody(*a), EncodeTxBody(*b)) {
		t.Fatal("expected different encodings for different fees")
	}
}

func TestEncodeTxBodyDiffersOnOpCounterChange(t *testing.T) {
	pp := types.PoolParams{PoolKeyHash: hashOf(7), RewardAccount: types.NewRewardAcnt(hashOf(8))}

	a := types.NewTxBody()
	a.AddInput(types.NewTxIn(types.TxId(hashOf(1)), 0))
	a.AddCert(types.RegPoolCertWithOpCounter(pp, 1))
	a.Fee = types.NewCoin(1)
	a.TTL = 1

	b := types.NewTxBody()
	b.AddInput(types.NewTxIn(types.TxId(hashOf(1)), 0))
	b.AddCert(types.RegPoolCertWithOpCounter(pp, 2))
	b.Fee = types.NewCoin(1)
	b.TTL = 1

	if bytes.Equal(EncodeTxBody(*a), EncodeTxBody(*b)) {
		t.Fatal("expected different encodings for the same cert with different operational counters")
	}

	noCounter := types.NewTxBody()
	noCounter.AddInput(types.NewTxIn(types.TxId(hashOf(1)), 0))
	noCounter.AddCert(types.RegPoolCert(pp))
	noCounter.Fee = types.NewCoin(1)
	noCounter.TTL = 1

	if bytes.Equal(EncodeTxBody(*a), EncodeTxBody(*noCounter)) {
		t.Fatal("expected a cert carrying an operational counter to encode differently from one without")
	}
}
