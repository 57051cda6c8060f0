// Package trace is a deterministic replay harness: it applies an ordered
// list of transactions against a LedgerState and checks the invariants of
// §8 after every step. It is the minimal in-module stand-in for the
// out-of-scope external trace generator (§1).
package trace

import (
	"fmt"

	"ledgerengine/crypto"
	"ledgerengine/ledgererrors"
	"ledgerengine/state"
	"ledgerengine/transition"
	"ledgerengine/types"
)

// Step is one entry in a trace: a transaction to apply at a given slot.
type Step struct {
	Slot types.Slot
	Tx   types.Tx
}

// Outcome records what happened when a step was applied.
type Outcome struct {
	Step             int
	Errors           []ledgererrors.ValidationError
	InvariantFailure error
}

// Run applies every step in order, checking invariants after each
// successful application. It stops at the first step whose application
// fails validation or whose resulting state violates an invariant, and
// returns the outcome list built so far plus the final state reached.
func Run(deps transition.Deps, initial state.LedgerState, genesisDelegates map[types.HashKey]types.HashKey, steps []Step) ([]Outcome, state.LedgerState) {
	ls := initial
	outcomes := make([]Outcome, 0, len(steps))

	for i, step := range steps {
		next, errs := transition.ApplyTx(deps, step.Slot, ls, step.Tx, genesisDelegates)
		if len(errs) > 0 {
			outcomes = append(outcomes, Outcome{Step: i, Errors: errs})
			return outcomes, ls
		}
		ls = next
		if err := CheckInvariants(ls); err != nil {
			outcomes = append(outcomes, Outcome{Step: i, InvariantFailure: err})
			return outcomes, ls
		}
		outcomes = append(outcomes, Outcome{Step: i})
	}
	return outcomes, ls
}

// CheckInvariants verifies the invariants §8 names for any reachable
// LedgerState:
//
//	deposited = keyDeposit*|stakeKeys| + poolDeposit*|pools| - accrued decay
//	fees >= 0 (guaranteed by the unsigned Coin type)
//	every RewardAcnt(h) in domain(rewards) has h in stakeKeys
//	every Ptr in domain(pointers) resolves to a key in stakeKeys
//	every h in retiring also has h in pools and h in params
//
// The deposited invariant's "minus accrued decay" term cannot be checked
// independently of transaction history (decay is a function of past
// DeRegKey refunds, not of the current state alone), so this function
// checks the three structural invariants that are checkable from state
// alone; the deposited invariant is not checked here.
func CheckInvariants(ls state.LedgerState) error {
	ds := ls.DelegationState.DState
	ps := ls.DelegationState.PState

	for acnt := range ds.Rewards {
		if !ds.IsRegistered(types.HashKey(acnt)) {
			return fmt.Errorf("trace: reward account %s has no matching stake key", acnt)
		}
	}

	for ptr, h := range ds.Pointers {
		if ptr.Slot > ls.CurrentSlot {
			return fmt.Errorf("trace: pointer %+v slot exceeds current slot %d", ptr, ls.CurrentSlot)
		}
		if !ds.IsRegistered(h) {
			return fmt.Errorf("trace: pointer %+v targets unregistered key %s", ptr, h)
		}
	}

	for h := range ps.Retiring {
		if !ps.IsRegistered(h) {
			return fmt.Errorf("trace: retiring pool %s missing from pools", h)
		}
		if _, ok := ps.Params[h]; !ok {
			return fmt.Errorf("trace: retiring pool %s missing from params", h)
		}
	}

	return nil
}

// DefaultDeps wires the default collaborator implementations, convenient
// for tests and cmd/ledgerctl that do not need to substitute a fake
// hasher or verifier.
func DefaultDeps() transition.Deps {
	return transition.Deps{Hasher: crypto.Blake3Hasher{}, Verifier: crypto.ECDSAVerifier{}}
}
