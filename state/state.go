// Package state assembles the per-layer records the core threads through a
// state transition: UTxOState, the combined DState+PState under
// DelegationState, LedgerState, Accounts, SnapShots, and EpochState.
package state

import (
	"ledgerengine/delegation"
	"ledgerengine/params"
	"ledgerengine/pool"
	"ledgerengine/stake"
	"ledgerengine/types"
	"ledgerengine/utxo"
)

// UTxOState is the record named in spec §3: the live UTxO set, the total
// currently-locked deposit, accumulated fees since the last epoch
// boundary, and the entropy contribution of the most recently applied
// transaction.
type UTxOState struct {
	UTxO      utxo.UTxO
	Deposited types.Coin
	Fees      types.Coin
	Entropy   types.EEnt
}

// NewUTxOState returns an empty UTxOState seeded with the given initial
// UTxO set, as genesis construction requires.
func NewUTxOState(initial utxo.UTxO) UTxOState {
	return UTxOState{UTxO: initial, Deposited: types.ZeroCoin, Fees: types.ZeroCoin}
}

// Clone returns a UTxOState whose UTxO map is independent of the receiver.
func (s UTxOState) Clone() UTxOState {
	return UTxOState{
		UTxO:      s.UTxO.Clone(),
		Deposited: s.Deposited,
		Fees:      s.Fees,
		Entropy:   s.Entropy,
	}
}

// DelegationState bundles DState and PState, the two halves of the
// "delegation state" spec §3 groups under LedgerState.
type DelegationState struct {
	DState *delegation.DState
	PState *pool.PState
}

// Clone deep-clones both halves.
func (d DelegationState) Clone() DelegationState {
	return DelegationState{DState: d.DState.Clone(), PState: d.PState.Clone()}
}

// LedgerState is the per-slot record the transition rule operates on:
// UTxOState, the combined delegation state, the active protocol
// parameters, and the within-slot transaction index counter. It carries no
// update-proposal state.
type LedgerState struct {
	UTxOState       UTxOState
	DelegationState DelegationState
	ProtocolParams  params.ProtocolParams
	TxSlotIx        uint64
	CurrentSlot     types.Slot
}

// Clone returns a LedgerState whose mutable substructures are independent
// of the receiver; ProtocolParams is a value type and copies for free.
func (l LedgerState) Clone() LedgerState {
	return LedgerState{
		UTxOState:       l.UTxOState.Clone(),
		DelegationState: l.DelegationState.Clone(),
		ProtocolParams:  l.ProtocolParams,
		TxSlotIx:        l.TxSlotIx,
		CurrentSlot:     l.CurrentSlot,
	}
}

// Accounts holds the two global pots the reward engine moves money
// between: treasury and reserves.
type Accounts struct {
	Treasury types.Coin
	Reserves types.Coin
}

// SnapShots is the rolling triple of stake snapshots plus the fee and
// pool-parameter snapshots taken alongside them, consumed by the reward
// engine at the following epoch boundary (§3, §4.5).
type SnapShots struct {
	Mark stake.Distribution
	Set  stake.Distribution
	Go   stake.Distribution

	FeeSnapshot  types.Coin
	PoolSnapshot map[types.HashKey]pool.Params
}

// EpochState is the top-level record spec §3 names: global accounts, the
// active protocol parameters, the snapshot triple, and the current
// LedgerState.
type EpochState struct {
	Accounts       Accounts
	ProtocolParams params.ProtocolParams
	Snapshots      SnapShots
	LedgerState    LedgerState
}

// WithLedgerState returns a copy of e with its LedgerState replaced,
// following the teacher's shallow-clone-then-replace builder idiom rather
// than a lens library (§9).
func (e EpochState) WithLedgerState(ls LedgerState) EpochState {
	e.LedgerState = ls
	return e
}
