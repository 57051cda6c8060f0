// Package delegation implements DState (C3): registered stake keys, reward
// account balances, delegations, the pointer index, and the immutable
// genesis-delegate set.
package delegation

import (
	"ledgerengine/types"
)

// DState holds the registration and delegation bookkeeping for stake keys.
// Invariants (enforced by construction, not re-checked on every read):
//
//	domain(Rewards) == { RewardAcnt(h) | h in domain(StakeKeys) }
//	range(Pointers) subseteq domain(StakeKeys)
//	domain(Delegations) subseteq domain(StakeKeys)
type DState struct {
	StakeKeys   map[types.HashKey]types.Slot
	Rewards     map[types.RewardAcnt]types.Coin
	Delegations map[types.HashKey]types.HashKey
	Pointers    map[types.Ptr]types.HashKey

	// pointersByKey is the reverse index of Pointers, keyed by the stake
	// key hash a pointer addresses. It exists purely so DeRegKey can
	// remove every pointer aimed at a deregistered key without a linear
	// scan of Pointers.
	pointersByKey map[types.HashKey]map[types.Ptr]struct{}

	// GenesisDelegates is populated once at genesis and never mutated by
	// any certificate afterward.
	GenesisDelegates map[types.HashKey]types.HashKey
}

// New returns an empty DState with the given immutable genesis delegates.
func New(genesisDelegates map[types.HashKey]types.HashKey) *DState {
	gd := make(map[types.HashKey]types.HashKey, len(genesisDelegates))
	for k, v := range genesisDelegates {
		gd[k] = v
	}
	return &DState{
		StakeKeys:        make(map[types.HashKey]types.Slot),
		Rewards:          make(map[types.RewardAcnt]types.Coin),
		Delegations:      make(map[types.HashKey]types.HashKey),
		Pointers:         make(map[types.Ptr]types.HashKey),
		pointersByKey:    make(map[types.HashKey]map[types.Ptr]struct{}),
		GenesisDelegates: gd,
	}
}

// Clone returns a deep-enough copy: every top-level map gets its own
// backing array, matching the copy-on-write granularity used across the
// core (§5).
func (d *DState) Clone() *DState {
	out := &DState{
		StakeKeys:        make(map[types.HashKey]types.Slot, len(d.StakeKeys)),
		Rewards:          make(map[types.RewardAcnt]types.Coin, len(d.Rewards)),
		Delegations:      make(map[types.HashKey]types.HashKey, len(d.Delegations)),
		Pointers:         make(map[types.Ptr]types.HashKey, len(d.Pointers)),
		pointersByKey:    make(map[types.HashKey]map[types.Ptr]struct{}, len(d.pointersByKey)),
		GenesisDelegates: d.GenesisDelegates,
	}
	for k, v := range d.StakeKeys {
		out.StakeKeys[k] = v
	}
	for k, v := range d.Rewards {
		out.Rewards[k] = v
	}
	for k, v := range d.Delegations {
		out.Delegations[k] = v
	}
	for k, v := range d.Pointers {
		out.Pointers[k] = v
	}
	for k, set := range d.pointersByKey {
		cp := make(map[types.Ptr]struct{}, len(set))
		for p := range set {
			cp[p] = struct{}{}
		}
		out.pointersByKey[k] = cp
	}
	return out
}

// IsRegistered reports whether h is currently a registered stake key.
func (d *DState) IsRegistered(h types.HashKey) bool {
	_, ok := d.StakeKeys[h]
	return ok
}

// RegisterKey applies RegKey's effect: insert h with the current slot,
// zero its reward balance, and record the pointer assigned to this
// certificate. The caller (transition/certs.go) has already validated that
// h is not already registered.
func (d *DState) RegisterKey(h types.HashKey, slot types.Slot, ptr types.Ptr) {
	d.StakeKeys[h] = slot
	d.Rewards[types.NewRewardAcnt(h)] = types.ZeroCoin
	d.Pointers[ptr] = h
	d.addPointerIndex(h, ptr)
}

// DeregisterKey applies DeRegKey's effect: remove h from StakeKeys,
// Rewards, and Delegations, and every pointer addressing it. The caller
// has already validated that h is registered.
func (d *DState) DeregisterKey(h types.HashKey) {
	delete(d.StakeKeys, h)
	delete(d.Rewards, types.NewRewardAcnt(h))
	delete(d.Delegations, h)
	for ptr := range d.pointersByKey[h] {
		delete(d.Pointers, ptr)
	}
	delete(d.pointersByKey, h)
}

// Delegate applies Delegate's effect: src now delegates to tgt. The caller
// has already validated src is registered; tgt's registration state is
// deliberately not checked (future-registered pools may be targeted).
func (d *DState) Delegate(src, tgt types.HashKey) {
	d.Delegations[src] = tgt
}

// RegistrationSlot returns the slot h was registered at, if registered.
func (d *DState) RegistrationSlot(h types.HashKey) (types.Slot, bool) {
	slot, ok := d.StakeKeys[h]
	return slot, ok
}

func (d *DState) addPointerIndex(h types.HashKey, ptr types.Ptr) {
	set, ok := d.pointersByKey[h]
	if !ok {
		set = make(map[types.Ptr]struct{})
		d.pointersByKey[h] = set
	}
	set[ptr] = struct{}{}
}
