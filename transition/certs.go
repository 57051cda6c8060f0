package transition

import (
	"ledgerengine/state"
	"ledgerengine/types"
)

// ApplyCert applies a single certificate's effect to ds, per the table in
// §4.3. Validity (e.g. "hash(k) not already present" for RegKey) has
// already been checked by validate.Tx before this is ever called, so every
// branch here assumes its precondition holds.
func ApplyCert(ds state.DelegationState, c types.Cert, currentSlot types.Slot, ptr types.Ptr) {
	switch c.Kind {
	case types.CertRegKey:
		ds.DState.RegisterKey(c.StakeKeyHash, currentSlot, ptr)
	case types.CertDeRegKey:
		ds.DState.DeregisterKey(c.StakeKeyHash)
	case types.CertDelegate:
		ds.DState.Delegate(c.DelegatorHash, c.DelegateeHash)
	case types.CertRegPool:
		ds.PState.RegisterPool(c.PoolParams.PoolKeyHash, currentSlot, c.PoolParams, c.OpCounter)
	case types.CertRetirePool:
		ds.PState.RetirePool(c.PoolKeyHash, c.RetirementEpoch)
	}
}

// RetirePools sweeps every pool whose scheduled retirement epoch equals
// currentEpoch, per §4.3's epoch-boundary rule. Returns the LedgerState
// with those pools removed from Pools, Params, and Retiring.
func RetirePools(ls state.LedgerState, currentEpoch types.Epoch) state.LedgerState {
	next := ls.Clone()
	next.DelegationState.PState.SweepRetirements(currentEpoch)
	return next
}
