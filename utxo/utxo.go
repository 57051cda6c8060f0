// Package utxo implements the unspent-transaction-output store (C2): a map
// from transaction input to transaction output, plus the domain/range
// algebra the validators and the state transition need.
package utxo

import (
	"ledgerengine/types"
)

// UTxO is the unspent-output set. The zero value is the empty set.
type UTxO map[types.TxIn]types.TxOut

// New returns an empty UTxO set.
func New() UTxO {
	return make(UTxO)
}

// Clone returns a shallow copy whose top-level map is independent of u, the
// copy-on-write granularity this module uses throughout (§5).
func (u UTxO) Clone() UTxO {
	out := make(UTxO, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

// ContainsAll reports whether every element of ins is present in u, the
// validInputs predicate's "inputs(tx) subseteq domain(utxo)" check.
func (u UTxO) ContainsAll(ins map[types.TxIn]struct{}) bool {
	for in := range ins {
		if _, ok := u[in]; !ok {
			return false
		}
	}
	return true
}

// SumInputs returns the total coin value of every input in ins that is
// present in u. Inputs absent from u contribute nothing; callers must have
// already checked ContainsAll when that absence is itself an error.
func (u UTxO) SumInputs(ins map[types.TxIn]struct{}) types.Coin {
	total := types.ZeroCoin
	for in := range ins {
		if out, ok := u[in]; ok {
			total = total.Add(out.Coin)
		}
	}
	return total
}

// Restrict returns the subset of u whose keys are not in ins: "utxo
// restricted to the complement of inputs(tx)", step 1 of the state
// transition.
func (u UTxO) Restrict(ins map[types.TxIn]struct{}) UTxO {
	out := make(UTxO, len(u))
	for k, v := range u {
		if _, excluded := ins[k]; !excluded {
			out[k] = v
		}
	}
	return out
}

// Insert adds or overwrites the output at in.
func (u UTxO) Insert(in types.TxIn, out types.TxOut) {
	u[in] = out
}

// Get returns the output at in and whether it is present.
func (u UTxO) Get(in types.TxIn) (types.TxOut, bool) {
	out, ok := u[in]
	return out, ok
}

// OutputsFor builds the TxIn keys a body's outputs are inserted at:
// (hash(body), 0..n-1), per §4.2 step 1.
func OutputsFor(bodyHash types.HashKey, outs []types.TxOut) map[types.TxIn]types.TxOut {
	result := make(map[types.TxIn]types.TxOut, len(outs))
	for i, out := range outs {
		in := types.NewTxIn(types.TxId(bodyHash), uint32(i))
		result[in] = out
	}
	return result
}
