package utxo

import (
	"testing"

	"ledgerengine/types"
)

func hashOf(b byte) types.HashKey {
	var h types.HashKey
	h[31] = b
	return h
}

func txIn(b byte, ix uint32) types.TxIn {
	return types.NewTxIn(types.TxId(hashOf(b)), ix)
}

func TestContainsAllAndSumInputs(t *testing.T) {
	u := New()
	in1 := txIn(1, 0)
	in2 := txIn(2, 0)
	out1 := types.NewTxOut(types.AddrTxin(hashOf(10), hashOf(20)), types.NewCoin(100))
	out2 := types.NewTxOut(types.AddrTxin(hashOf(11), hashOf(21)), types.NewCoin(50))
	u.Insert(in1, out1)
	u.Insert(in2, out2)

	ins := map[types.TxIn]struct{}{in1: {}, in2: {}}
	if !u.ContainsAll(ins) {
		t.Fatal("expected both inputs to be present")
	}
	if got := u.SumInputs(ins); got != types.NewCoin(150) {
		t.Fatalf("got %d, want 150", got)
	}

	missing := map[types.TxIn]struct{}{txIn(3, 0): {}}
	if u.ContainsAll(missing) {
		t.Fatal("expected missing input to fail ContainsAll")
	}
}

func TestRestrictExcludesSpentInputs(t *testing.T) {
	u := New()
	in1, in2 := txIn(1, 0), txIn(2, 0)
	u.Insert(in1, types.NewTxOut(types.AddrTxin(hashOf(1), hashOf(1)), types.NewCoin(1)))
	u.Insert(in2, types.NewTxOut(types.AddrTxin(hashOf(2), hashOf(2)), types.NewCoin(1)))

	restricted := u.Restrict(map[types.TxIn]struct{}{in1: {}})
	if _, ok := restricted.Get(in1); ok {
		t.Fatal("expected in1 to be restricted out")
	}
	if _, ok := restricted.Get(in2); !ok {
		t.Fatal("expected in2 to remain")
	}
	if len(u) != 2 {
		t.Fatal("Restrict must not mutate the receiver")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	u := New()
	in := txIn(1, 0)
	u.Insert(in, types.NewTxOut(types.AddrTxin(hashOf(1), hashOf(1)), types.NewCoin(1)))

	clone := u.Clone()
	clone.Insert(txIn(2, 0), types.NewTxOut(types.AddrTxin(hashOf(2), hashOf(2)), types.NewCoin(2)))

	if len(u) != 1 {
		t.Fatalf("original mutated: got %d entries, want 1", len(u))
	}
}

func TestOutputsForAssignsSequentialIndices(t *testing.T) {
	bodyHash := hashOf(99)
	outs := []types.TxOut{
		types.NewTxOut(types.AddrTxin(hashOf(1), hashOf(1)), types.NewCoin(10)),
		types.NewTxOut(types.AddrTxin(hashOf(2), hashOf(2)), types.NewCoin(20)),
	}
	result := OutputsFor(bodyHash, outs)
	if len(result) != 2 {
		t.Fatalf("got %d entries, want 2", len(result))
	}
	in0 := types.NewTxIn(types.TxId(bodyHash), 0)
	in1 := types.NewTxIn(types.TxId(bodyHash), 1)
	if result[in0].Coin != types.NewCoin(10) {
		t.Fatal("index 0 should map to the first output")
	}
	if result[in1].Coin != types.NewCoin(20) {
		t.Fatal("index 1 should map to the second output")
	}
}
