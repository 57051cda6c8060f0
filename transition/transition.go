// Package transition implements the six-step state transition (C7) and the
// five certificate-application rules (C8), plus the epoch-boundary pool
// retirement sweep.
package transition

import (
	"ledgerengine/codec"
	"ledgerengine/crypto"
	"ledgerengine/ledgererrors"
	"ledgerengine/state"
	"ledgerengine/types"
	"ledgerengine/utxo"
	"ledgerengine/validate"
)

// Deps bundles the external collaborators ApplyTx needs to validate a
// transaction before applying it.
type Deps struct {
	Hasher   crypto.Hasher
	Verifier crypto.Verifier
}

// ApplyTx validates tx against ls at currentSlot and, on success, returns
// the next LedgerState. On failure the original ls is returned unchanged
// alongside the accumulated validation errors (§4.6: the engine never
// throws, and the state is never mutated on an error path).
func ApplyTx(deps Deps, currentSlot types.Slot, ls state.LedgerState, tx types.Tx, genesisDelegates map[types.HashKey]types.HashKey) (state.LedgerState, []ledgererrors.ValidationError) {
	vdeps := validate.Deps{
		CurrentSlot: currentSlot,
		UTxO:        ls.UTxOState.UTxO,
		DState:      ls.DelegationState.DState,
		PState:      ls.DelegationState.PState,
		Params:      ls.ProtocolParams,
		Hasher:      deps.Hasher,
		Verifier:    deps.Verifier,
	}

	result := validate.Tx(vdeps, tx)
	if !result.Valid() {
		return ls, result.Errors
	}

	next := applyUnchecked(deps, currentSlot, ls, tx)
	return next, nil
}

// ApplyTxUnchecked applies tx's body to ls without validating it first,
// returning the pair (new state, accumulated errors from a post-hoc
// validity check). It exists only for conformance testing per §4.6; production
// code must always go through ApplyTx, since this entry point is the only
// place an invalid transaction is allowed to mutate the state.
func ApplyTxUnchecked(deps Deps, currentSlot types.Slot, ls state.LedgerState, tx types.Tx) (state.LedgerState, []ledgererrors.ValidationError) {
	vdeps := validate.Deps{
		CurrentSlot: currentSlot,
		UTxO:        ls.UTxOState.UTxO,
		DState:      ls.DelegationState.DState,
		PState:      ls.DelegationState.PState,
		Params:      ls.ProtocolParams,
		Hasher:      deps.Hasher,
		Verifier:    deps.Verifier,
	}
	result := validate.Tx(vdeps, tx)
	next := applyUnchecked(deps, currentSlot, ls, tx)
	return next, result.Errors
}

// applyUnchecked performs the six-step transition of §4.2. It assumes the
// caller has already established validity (or, for ApplyTxUnchecked,
// deliberately skipped that step) and never fails.
func applyUnchecked(deps Deps, currentSlot types.Slot, ls state.LedgerState, tx types.Tx) state.LedgerState {
	next := ls.Clone()

	bodyHashRaw := deps.Hasher.Hash(codec.EncodeTxBody(tx.Body))
	bodyHash := types.HashKey(bodyHashRaw)

	// Step 1: utxo := (utxo restricted to complement of inputs(tx)) union outputs(tx)
	next.UTxOState.UTxO = next.UTxOState.UTxO.Restrict(tx.Body.Inputs)
	for in, out := range utxo.OutputsFor(bodyHash, tx.Body.Outputs) {
		next.UTxOState.UTxO.Insert(in, out)
	}

	// Step 2: deposited += depositsThisTx - refundsThisTx
	deposits := validate.Deposits(next.ProtocolParams, next.DelegationState.PState, tx.Body.Certs)
	refunds := validate.KeyRefunds(next.ProtocolParams, next.DelegationState.DState, tx.Body)
	next.UTxOState.Deposited = next.UTxOState.Deposited.Add(deposits).SubSaturating(refunds)

	// Step 3: fees += fee(tx)
	next.UTxOState.Fees = next.UTxOState.Fees.Add(tx.Body.Fee)

	// Step 4: zero out each reward account listed in withdrawals(tx)
	for acnt := range tx.Body.Withdrawals {
		next.DelegationState.DState.Rewards[acnt] = types.ZeroCoin
	}

	// Step 5: update txSlotIx / currentSlot
	if currentSlot == next.CurrentSlot {
		next.TxSlotIx++
	} else {
		next.TxSlotIx = 0
		next.CurrentSlot = currentSlot
	}

	// Step 6: fold certificates through C8 with pointer (currentSlot, txSlotIx, i)
	for i, c := range tx.Body.Certs {
		ptr := types.NewPtr(currentSlot, uint32(next.TxSlotIx), uint32(i))
		ApplyCert(next.DelegationState, c, currentSlot, ptr)
	}

	next.UTxOState.Entropy = tx.Body.Entropy

	return next
}
