package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"ledgerengine/trace"
	"ledgerengine/types"
)

// wireTxIn/wireTxOut/... mirror the JSON shape a trace file uses; types.Tx
// itself is not JSON-tagged since the core has no serialization concern
// (§1: byte-level serialization is an external collaborator), so this
// translation lives entirely in the CLI.
type wireTxIn struct {
	TxId string `json:"txId"`
	Ix   uint32 `json:"ix"`
}

type wireAddress struct {
	Kind         string `json:"kind"`
	PayKeyHash   string `json:"payKeyHash"`
	StakeKeyHash string `json:"stakeKeyHash,omitempty"`
	PtrSlot      uint64 `json:"ptrSlot,omitempty"`
	PtrTxIndex   uint32 `json:"ptrTxIndex,omitempty"`
	PtrCertIndex uint32 `json:"ptrCertIndex,omitempty"`
}

type wireTxOut struct {
	Address wireAddress `json:"address"`
	Coin    uint64      `json:"coin"`
}

type wireCert struct {
	Kind            string   `json:"kind"`
	StakeKeyHash    string   `json:"stakeKeyHash,omitempty"`
	DelegatorHash   string   `json:"delegatorHash,omitempty"`
	DelegateeHash   string   `json:"delegateeHash,omitempty"`
	PoolKeyHash     string   `json:"poolKeyHash,omitempty"`
	VrfKeyHash      string   `json:"vrfKeyHash,omitempty"`
	Pledge          uint64   `json:"pledge,omitempty"`
	Cost            uint64   `json:"cost,omitempty"`
	MarginNum       int64    `json:"marginNum,omitempty"`
	MarginDen       int64    `json:"marginDen,omitempty"`
	RewardAccount   string   `json:"rewardAccount,omitempty"`
	Owners          []string `json:"owners,omitempty"`
	OpCounter       *uint64  `json:"opCounter,omitempty"`
	RetirementEpoch uint64   `json:"retirementEpoch,omitempty"`
}

type wireWitness struct {
	VKeyHash  string `json:"vKeyHash"`
	PubKey    string `json:"pubKey"`
	Signature string `json:"signature"`
}

type wireTxBody struct {
	Inputs      []wireTxIn        `json:"inputs"`
	Outputs     []wireTxOut       `json:"outputs"`
	Certs       []wireCert        `json:"certs"`
	Withdrawals map[string]uint64 `json:"withdrawals"`
	Fee         uint64            `json:"fee"`
	TTL         uint64            `json:"ttl"`
	Entropy     string            `json:"entropy,omitempty"`
}

type wireTx struct {
	Body    wireTxBody    `json:"body"`
	Witness []wireWitness `json:"witness"`
}

type wireStep struct {
	Slot uint64 `json:"slot"`
	Tx   wireTx `json:"tx"`
}

func loadTrace(path string) ([]trace.Step, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ledgerctl: read trace %q: %w", path, err)
	}
	var wireSteps []wireStep
	if err := json.Unmarshal(raw, &wireSteps); err != nil {
		return nil, fmt.Errorf("ledgerctl: decode trace %q: %w", path, err)
	}

	steps := make([]trace.Step, 0, len(wireSteps))
	for i, ws := range wireSteps {
		tx, err := decodeTx(ws.Tx)
		if err != nil {
			return nil, fmt.Errorf("ledgerctl: trace step %d: %w", i, err)
		}
		steps = append(steps, trace.Step{Slot: types.Slot(ws.Slot), Tx: tx})
	}
	return steps, nil
}

func decodeTx(w wireTx) (types.Tx, error) {
	body := types.NewTxBody()
	for _, in := range w.Body.Inputs {
		id, err := decodeHash(in.TxId)
		if err != nil {
			return types.Tx{}, err
		}
		body.AddInput(types.NewTxIn(types.TxId(id), in.Ix))
	}
	for _, out := range w.Body.Outputs {
		addr, err := decodeAddress(out.Address)
		if err != nil {
			return types.Tx{}, err
		}
		body.AddOutput(types.NewTxOut(addr, types.NewCoin(out.Coin)))
	}
	for _, c := range w.Body.Certs {
		cert, err := decodeCert(c)
		if err != nil {
			return types.Tx{}, err
		}
		body.AddCert(cert)
	}
	for acntHex, amount := range w.Body.Withdrawals {
		h, err := decodeHash(acntHex)
		if err != nil {
			return types.Tx{}, err
		}
		body.Withdrawals[types.NewRewardAcnt(h)] = types.NewCoin(amount)
	}
	body.Fee = types.NewCoin(w.Body.Fee)
	body.TTL = types.Slot(w.Body.TTL)
	if w.Body.Entropy != "" {
		e, err := hex.DecodeString(w.Body.Entropy)
		if err != nil {
			return types.Tx{}, fmt.Errorf("invalid entropy: %w", err)
		}
		body.Entropy = types.EEnt(e)
	}

	witnesses := make([]types.Witness, 0, len(w.Witness))
	for _, wit := range w.Witness {
		vkh, err := decodeHash(wit.VKeyHash)
		if err != nil {
			return types.Tx{}, err
		}
		pub, err := hex.DecodeString(wit.PubKey)
		if err != nil {
			return types.Tx{}, fmt.Errorf("invalid witness pubkey: %w", err)
		}
		sig, err := hex.DecodeString(wit.Signature)
		if err != nil {
			return types.Tx{}, fmt.Errorf("invalid witness signature: %w", err)
		}
		witnesses = append(witnesses, types.Witness{VKeyHash: vkh, PubKey: pub, Signature: sig})
	}

	return types.Tx{Body: *body, Witness: witnesses}, nil
}

func decodeAddress(w wireAddress) (types.Address, error) {
	pay, err := decodeHash(w.PayKeyHash)
	if err != nil {
		return types.Address{}, err
	}
	switch w.Kind {
	case "ptr":
		return types.AddrPtr(pay, types.NewPtr(types.Slot(w.PtrSlot), w.PtrTxIndex, w.PtrCertIndex)), nil
	default:
		stake, err := decodeHash(w.StakeKeyHash)
		if err != nil {
			return types.Address{}, err
		}
		return types.AddrTxin(pay, stake), nil
	}
}

func decodeCert(w wireCert) (types.Cert, error) {
	switch w.Kind {
	case "regKey":
		h, err := decodeHash(w.StakeKeyHash)
		if err != nil {
			return types.Cert{}, err
		}
		return types.RegKeyCert(h), nil
	case "deRegKey":
		h, err := decodeHash(w.StakeKeyHash)
		if err != nil {
			return types.Cert{}, err
		}
		return types.DeRegKeyCert(h), nil
	case "delegate":
		src, err := decodeHash(w.DelegatorHash)
		if err != nil {
			return types.Cert{}, err
		}
		tgt, err := decodeHash(w.DelegateeHash)
		if err != nil {
			return types.Cert{}, err
		}
		return types.DelegateCert(src, tgt), nil
	case "regPool":
		pp, err := decodePoolParams(w)
		if err != nil {
			return types.Cert{}, err
		}
		if w.OpCounter != nil {
			return types.RegPoolCertWithOpCounter(pp, *w.OpCounter), nil
		}
		return types.RegPoolCert(pp), nil
	case "retirePool":
		h, err := decodeHash(w.PoolKeyHash)
		if err != nil {
			return types.Cert{}, err
		}
		return types.RetirePoolCert(h, types.Epoch(w.RetirementEpoch)), nil
	default:
		return types.Cert{}, fmt.Errorf("unknown certificate kind %q", w.Kind)
	}
}

func decodePoolParams(w wireCert) (types.PoolParams, error) {
	poolKey, err := decodeHash(w.PoolKeyHash)
	if err != nil {
		return types.PoolParams{}, err
	}
	vrfKey, err := decodeHash(w.VrfKeyHash)
	if err != nil {
		return types.PoolParams{}, err
	}
	rewardAcntHash, err := decodeHash(w.RewardAccount)
	if err != nil {
		return types.PoolParams{}, err
	}
	margin, err := types.NewUnitInterval(w.MarginNum, w.MarginDen)
	if err != nil {
		return types.PoolParams{}, err
	}
	owners := make([]types.HashKey, 0, len(w.Owners))
	for _, o := range w.Owners {
		h, err := decodeHash(o)
		if err != nil {
			return types.PoolParams{}, err
		}
		owners = append(owners, h)
	}
	return types.PoolParams{
		PoolKeyHash:   poolKey,
		VrfKeyHash:    vrfKey,
		Pledge:        types.NewCoin(w.Pledge),
		Cost:          types.NewCoin(w.Cost),
		Margin:        margin,
		RewardAccount: types.NewRewardAcnt(rewardAcntHash),
		Owners:        owners,
	}, nil
}

func decodeHash(s string) (types.HashKey, error) {
	if s == "" {
		return types.HashKey{}, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return types.HashKey{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return types.HashKeyFromBytes(b), nil
}
