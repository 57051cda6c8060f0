// Package pool implements PState (C4): registered stake pools, their
// parameters, the pending-retirement schedule, and per-pool KES
// operational counters.
package pool

import (
	"ledgerengine/types"
)

// Params is an alias for the pool-parameter record defined in types, kept
// here under the package's own name so call sites read as pool.Params
// rather than types.PoolParams.
type Params = types.PoolParams

// PState holds pool registration and retirement bookkeeping. Invariant:
// domain(Params) superseteq domain(Pools) superseteq domain(Retiring).
type PState struct {
	Pools      map[types.HashKey]types.Slot
	Params     map[types.HashKey]Params
	Retiring   map[types.HashKey]types.Epoch
	OpCounters map[types.HashKey]uint64
}

// New returns an empty PState.
func New() *PState {
	return &PState{
		Pools:      make(map[types.HashKey]types.Slot),
		Params:     make(map[types.HashKey]Params),
		Retiring:   make(map[types.HashKey]types.Epoch),
		OpCounters: make(map[types.HashKey]uint64),
	}
}

// Clone returns a copy whose top-level maps are independent of p.
func (p *PState) Clone() *PState {
	out := &PState{
		Pools:      make(map[types.HashKey]types.Slot, len(p.Pools)),
		Params:     make(map[types.HashKey]Params, len(p.Params)),
		Retiring:   make(map[types.HashKey]types.Epoch, len(p.Retiring)),
		OpCounters: make(map[types.HashKey]uint64, len(p.OpCounters)),
	}
	for k, v := range p.Pools {
		out.Pools[k] = v
	}
	for k, v := range p.Params {
		out.Params[k] = v
	}
	for k, v := range p.Retiring {
		out.Retiring[k] = v
	}
	for k, v := range p.OpCounters {
		out.OpCounters[k] = v
	}
	return out
}

// IsRegistered reports whether h currently names a pool.
func (p *PState) IsRegistered(h types.HashKey) bool {
	_, ok := p.Pools[h]
	return ok
}

// RegisterPool applies RegPool's effect: if h is already registered its
// original registration slot is kept, otherwise it is set to slot; the
// parameters are replaced outright and any pending retirement is
// cancelled. opCounter, when non-nil, updates the pool's operational
// counter; the caller (validate) has already checked monotonicity.
func (p *PState) RegisterPool(h types.HashKey, slot types.Slot, params Params, opCounter *uint64) {
	if _, exists := p.Pools[h]; !exists {
		p.Pools[h] = slot
	}
	p.Params[h] = params
	delete(p.Retiring, h)
	if opCounter != nil {
		p.OpCounters[h] = *opCounter
	}
}

// RetirePool applies RetirePool's effect: schedule h for removal at e. The
// caller has already validated h is currently registered.
func (p *PState) RetirePool(h types.HashKey, e types.Epoch) {
	p.Retiring[h] = e
}

// SweepRetirements removes every pool whose scheduled retirement epoch has
// arrived, per §4.3's epoch-boundary sweep. Returns the set of removed
// pool hashes.
func (p *PState) SweepRetirements(currentEpoch types.Epoch) []types.HashKey {
	var removed []types.HashKey
	for h, e := range p.Retiring {
		if e == currentEpoch {
			removed = append(removed, h)
		}
	}
	for _, h := range removed {
		delete(p.Pools, h)
		delete(p.Params, h)
		delete(p.Retiring, h)
	}
	return removed
}
