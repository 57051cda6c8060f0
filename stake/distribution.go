// Package stake materializes the stake-by-key and stake-by-pool
// distributions (C9) from the UTxO and delegation state.
package stake

import (
	"ledgerengine/delegation"
	"ledgerengine/pool"
	"ledgerengine/types"
	"ledgerengine/utxo"
)

// Distribution maps an active stake key hash to its total stake. "Active"
// means the key is registered, has a delegation, and that delegation
// targets a currently registered pool (§4.4); everything else is
// "inactive" and is excluded entirely, not merely zeroed.
type Distribution map[types.HashKey]types.Coin

// Compute derives the active stake distribution from u and ds/ps, per
// §4.4: base stake from AddrTxin outputs, pointer stake from AddrPtr
// outputs resolved through the pointer index, and reward-account
// balances, summed per stake key hash and then filtered to active keys.
func Compute(u utxo.UTxO, ds *delegation.DState, ps *pool.PState) Distribution {
	buckets := make(map[types.HashKey]types.Coin)

	for _, out := range u {
		switch out.Address.Kind {
		case types.AddrKindTxin:
			addTo(buckets, out.Address.StakeKeyHash, out.Coin)
		case types.AddrKindPtr:
			if s, ok := ds.Pointers[out.Address.Pointer]; ok {
				addTo(buckets, s, out.Coin)
			}
		}
	}

	for acnt, c := range ds.Rewards {
		addTo(buckets, types.HashKey(acnt), c)
	}

	active := make(Distribution, len(buckets))
	for s, c := range buckets {
		if !ds.IsRegistered(s) {
			continue
		}
		tgt, delegated := ds.Delegations[s]
		if !delegated {
			continue
		}
		if !ps.IsRegistered(tgt) {
			continue
		}
		active[s] = c
	}
	return active
}

// PoolStake sums every active stake-key bucket delegating to pool h.
// delegations is the DState.Delegations map; it is taken directly rather
// than the whole DState so callers outside the core transition path (the
// reward engine, which works from an immutable snapshot) do not need to
// depend on package delegation.
func PoolStake(dist Distribution, delegations map[types.HashKey]types.HashKey, h types.HashKey) types.Coin {
	total := types.ZeroCoin
	for s, c := range dist {
		if delegations[s] == h {
			total = total.Add(c)
		}
	}
	return total
}

// Total sums every bucket in the distribution, the denominator used for
// each pool's sigma in the reward engine.
func (d Distribution) Total() types.Coin {
	total := types.ZeroCoin
	for _, c := range d {
		total = total.Add(c)
	}
	return total
}

func addTo(buckets map[types.HashKey]types.Coin, key types.HashKey, c types.Coin) {
	buckets[key] = buckets[key].Add(c)
}
