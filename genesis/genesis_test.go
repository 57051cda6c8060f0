package genesis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ledgerengine/crypto"
	"ledgerengine/params"
	"ledgerengine/types"
)

func writeSpecFile(t *testing.T, spec Spec) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "genesis.json")
	raw, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("unexpected error marshaling fixture: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}
	return path
}

func TestLoadRejectsMissingPayKeyHash(t *testing.T) {
	path := writeSpecFile(t, Spec{Outputs: []OutputSpec{{Coin: 100}}})
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an output with no payKeyHash")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genesis.json")
	if err := os.WriteFile(path, []byte(`{"reserves": 1, "bogusField": true}`), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown JSON field")
	}
}

func TestBuildAssignsSequentialOutputsAndGenesisDelegates(t *testing.T) {
	spec := Spec{
		Reserves: 1_000_000,
		Treasury: 500,
		Outputs: []OutputSpec{
			{PayKeyHash: "0xaa", StakeKeyHash: "0xbb", Coin: 100},
			{PayKeyHash: "0xcc", StakeKeyHash: "0xdd", Coin: 200},
		},
		Delegates: []DelegateSpec{
			{GenesisKeyHash: "0x01", DelegateHash: "0x02"},
		},
	}

	es, err := spec.Build(crypto.Blake3Hasher{}, params.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if es.Accounts.Reserves != types.NewCoin(1_000_000) {
		t.Fatalf("got reserves %d, want 1000000", es.Accounts.Reserves)
	}
	if es.Accounts.Treasury != types.NewCoin(500) {
		t.Fatalf("got treasury %d, want 500", es.Accounts.Treasury)
	}
	if len(es.LedgerState.UTxOState.UTxO) != 2 {
		t.Fatalf("got %d utxo entries, want 2", len(es.LedgerState.UTxOState.UTxO))
	}
	txID, _ := genesisTxID(crypto.Blake3Hasher{})
	for i, want := range []uint64{100, 200} {
		out, ok := es.LedgerState.UTxOState.UTxO.Get(types.NewTxIn(txID, uint32(i)))
		if !ok || out.Coin != types.NewCoin(want) {
			t.Fatalf("output %d: got %v (present=%v), want coin %d", i, out.Coin, ok, want)
		}
	}
	var genKey, delegateKey types.HashKey
	genKey[31], delegateKey[31] = 0x01, 0x02
	if got := es.LedgerState.DelegationState.DState.GenesisDelegates[genKey]; got != delegateKey {
		t.Fatalf("got genesis delegate %s, want %s", got, delegateKey)
	}
}

func TestBuildAcceptsBech32Addresses(t *testing.T) {
	var h types.HashKey
	h[31] = 7
	encoded := crypto.Bech32Encode(crypto.StakePrefix, h)

	spec := Spec{
		Outputs: []OutputSpec{{PayKeyHash: encoded, StakeKeyHash: encoded, Coin: 50}},
	}
	es, err := spec.Build(crypto.Blake3Hasher{}, params.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(es.LedgerState.UTxOState.UTxO) != 1 {
		t.Fatalf("expected exactly one output to be built")
	}
}

func TestBuildRejectsMalformedHash(t *testing.T) {
	spec := Spec{Outputs: []OutputSpec{{PayKeyHash: "not-hex-or-bech32!!", StakeKeyHash: "0x01", Coin: 1}}}
	if _, err := spec.Build(crypto.Blake3Hasher{}, params.Default()); err == nil {
		t.Fatal("expected an error building from a malformed hash")
	}
}
