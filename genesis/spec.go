// Package genesis builds the initial EpochState from a JSON-encoded
// genesis specification: a list of initial UTxO outputs, the immutable
// genesis-delegate set, and the starting protocol parameters and
// reserves.
package genesis

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ledgerengine/codec"
	"ledgerengine/crypto"
	"ledgerengine/delegation"
	"ledgerengine/params"
	"ledgerengine/pool"
	"ledgerengine/state"
	"ledgerengine/types"
	"ledgerengine/utxo"
)

// OutputSpec is one genesis UTxO entry, key hashes given either as bech32
// strings or as hex (with or without a 0x prefix); see parseHashKey.
type OutputSpec struct {
	PayKeyHash   string `json:"payKeyHash"`
	StakeKeyHash string `json:"stakeKeyHash"`
	Coin         uint64 `json:"coin"`
}

// DelegateSpec binds a genesis key hash to the operational key hash it
// delegates entropy-signing authority to.
type DelegateSpec struct {
	GenesisKeyHash string `json:"genesisKeyHash"`
	DelegateHash   string `json:"delegateHash"`
}

// Spec is the JSON wire format for a genesis configuration.
type Spec struct {
	ParamsFile string         `json:"paramsFile,omitempty"`
	Reserves   uint64         `json:"reserves"`
	Treasury   uint64         `json:"treasury"`
	Outputs    []OutputSpec   `json:"outputs"`
	Delegates  []DelegateSpec `json:"genesisDelegates"`
}

// Load reads and validates a genesis spec from a JSON file.
func Load(path string) (*Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("genesis: read %q: %w", path, err)
	}
	var spec Spec
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("genesis: decode %q: %w", path, err)
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("genesis: invalid spec %q: %w", path, err)
	}
	return &spec, nil
}

func (s *Spec) validate() error {
	for i, o := range s.Outputs {
		if strings.TrimSpace(o.PayKeyHash) == "" {
			return fmt.Errorf("outputs[%d]: payKeyHash must be provided", i)
		}
	}
	for i, d := range s.Delegates {
		if strings.TrimSpace(d.GenesisKeyHash) == "" || strings.TrimSpace(d.DelegateHash) == "" {
			return fmt.Errorf("genesisDelegates[%d]: both hashes must be provided", i)
		}
	}
	return nil
}

// Build assembles the genesis EpochState: an empty genesis transaction id
// (the hash of an empty body, per §6) producing every configured output,
// zero deposits and fees, and the immutable genesis-delegate set.
func (s *Spec) Build(hasher crypto.Hasher, pp params.ProtocolParams) (state.EpochState, error) {
	genesisTxID, err := genesisTxID(hasher)
	if err != nil {
		return state.EpochState{}, err
	}

	u := utxo.New()
	for i, o := range s.Outputs {
		payHash, err := parseHashKey(o.PayKeyHash)
		if err != nil {
			return state.EpochState{}, fmt.Errorf("outputs[%d]: %w", i, err)
		}
		stakeHash, err := parseHashKey(o.StakeKeyHash)
		if err != nil {
			return state.EpochState{}, fmt.Errorf("outputs[%d]: %w", i, err)
		}
		in := types.NewTxIn(genesisTxID, uint32(i))
		addr := types.AddrTxin(payHash, stakeHash)
		u.Insert(in, types.NewTxOut(addr, types.NewCoin(o.Coin)))
	}

	genesisDelegates := make(map[types.HashKey]types.HashKey, len(s.Delegates))
	for i, d := range s.Delegates {
		genHash, err := parseHashKey(d.GenesisKeyHash)
		if err != nil {
			return state.EpochState{}, fmt.Errorf("genesisDelegates[%d]: %w", i, err)
		}
		delegateHash, err := parseHashKey(d.DelegateHash)
		if err != nil {
			return state.EpochState{}, fmt.Errorf("genesisDelegates[%d]: %w", i, err)
		}
		genesisDelegates[genHash] = delegateHash
	}

	ls := state.LedgerState{
		UTxOState:       state.NewUTxOState(u),
		DelegationState: state.DelegationState{DState: delegation.New(genesisDelegates), PState: pool.New()},
		ProtocolParams:  pp,
		TxSlotIx:        0,
		CurrentSlot:     0,
	}

	return state.EpochState{
		Accounts:       state.Accounts{Treasury: types.NewCoin(s.Treasury), Reserves: types.NewCoin(s.Reserves)},
		ProtocolParams: pp,
		LedgerState:    ls,
	}, nil
}

// genesisTxID returns the hash of an empty transaction body, the fixed id
// §6 assigns to the genesis transaction.
func genesisTxID(hasher crypto.Hasher) (types.TxId, error) {
	empty := types.NewTxBody()
	digest := hasher.Hash(codec.EncodeTxBody(*empty))
	return types.TxId(digest), nil
}

// parseHashKey accepts either a bech32-encoded address (crypto.StakePrefix
// or crypto.PoolPrefix) or a bare hex string, so a genesis file can use
// whichever form its author generated keys with.
func parseHashKey(s string) (types.HashKey, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "1") && !strings.HasPrefix(s, "0x") {
		if _, h, err := crypto.Bech32Decode(s); err == nil {
			return h, nil
		}
	}
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return types.HashKey{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return types.HashKeyFromBytes(b), nil
}
