// Package validate implements the nine UTxO-rule predicates (C6) and the
// error-accumulating monoid that combines them. No predicate here ever
// short-circuits on another's failure; a single call to Tx evaluates all
// nine and returns every violation found.
package validate

import (
	"ledgerengine/codec"
	"ledgerengine/crypto"
	"ledgerengine/delegation"
	"ledgerengine/ledgererrors"
	"ledgerengine/params"
	"ledgerengine/pool"
	"ledgerengine/types"
	"ledgerengine/utxo"
)

// Result is the accumulation monoid named in §4.1/§7: Valid is the zero
// value (nil slice); combining results is slice append, never short
// circuit.
type Result struct {
	Errors []ledgererrors.ValidationError
}

// Valid reports whether no predicate recorded a failure.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Add appends err to the accumulated result, the monoid's "Invalid a
// (+) Invalid b = Invalid (a++b)" operation specialized to one element.
func (r *Result) Add(err ledgererrors.ValidationError) {
	r.Errors = append(r.Errors, err)
}

// Deps bundles everything the nine predicates read besides the
// transaction itself: the current slot, the live UTxO set, the delegation
// state halves, and the active protocol parameters, plus the external
// collaborators (§6) used to verify witnesses.
type Deps struct {
	CurrentSlot types.Slot
	UTxO        utxo.UTxO
	DState      *delegation.DState
	PState      *pool.PState
	Params      params.ProtocolParams
	Hasher      crypto.Hasher
	Verifier    crypto.Verifier
}

// Tx runs all nine predicates against tx and returns the accumulated
// result. A Valid result guarantees transition.ApplyTx cannot fail during
// its certificate-application phase (§4.2's up-front-validity invariant).
func Tx(d Deps, tx types.Tx) Result {
	var res Result

	bodyHash := d.Hasher.Hash(codec.EncodeTxBody(tx.Body))
	hk := types.HashKey(bodyHash)

	validInputs(d, tx, &res)
	current(d, tx, &res)
	validNoReplay(d, tx, &res)
	validFee(d, tx, &res)
	preserveBalance(d, tx, &res)
	correctWithdrawals(d, tx, &res)
	verifiedWits(d, tx, hk, &res)
	needed := WitsNeeded(d, tx)
	enoughWits(tx, needed, &res)
	noUnneededWits(tx, needed, &res)
	freshOperationalCounters(d, tx, &res)
	certsValid(d, tx, &res)

	return res
}

// certsValid enforces the per-certificate preconditions §4.3's table
// documents as "pre-validated" rather than listing among the nine UTxO
// predicates: a certificate whose precondition fails here is exactly the
// case §4.2 promises cannot happen once step 0-5 of the transition have
// already run, because this check runs first.
func certsValid(d Deps, tx types.Tx, res *Result) {
	currentEpoch := types.EpochFromSlot(d.CurrentSlot)
	for _, c := range tx.Body.Certs {
		switch c.Kind {
		case types.CertRegKey:
			if d.DState.IsRegistered(c.StakeKeyHash) {
				res.Add(ledgererrors.StakeKeyAlreadyRegistered(c.StakeKeyHash))
			}
		case types.CertDeRegKey:
			if !d.DState.IsRegistered(c.StakeKeyHash) {
				res.Add(ledgererrors.StakeKeyNotRegistered(c.StakeKeyHash))
			}
		case types.CertDelegate:
			if !d.DState.IsRegistered(c.DelegatorHash) {
				res.Add(ledgererrors.StakeDelegationImpossible(c.DelegatorHash))
			}
		case types.CertRetirePool:
			if !d.PState.IsRegistered(c.PoolKeyHash) {
				res.Add(ledgererrors.StakePoolNotRegisteredOnKey(c.PoolKeyHash))
				continue
			}
			if c.RetirementEpoch <= currentEpoch {
				res.Add(ledgererrors.RetirementCertExpired(c.RetirementEpoch, currentEpoch))
			}
		}
	}
}

// freshOperationalCounters is an addition to the nine named predicates,
// not a replacement for any of them: a RegPool certificate that carries an
// operational counter no greater than the pool's last recorded one is
// rejected with StaleOperationalCounter, so a stolen or replayed KES
// counter can never regress.
func freshOperationalCounters(d Deps, tx types.Tx, res *Result) {
	for _, c := range tx.Body.Certs {
		if c.Kind != types.CertRegPool || c.OpCounter == nil {
			continue
		}
		h := c.PoolParams.PoolKeyHash
		if last, ok := d.PState.OpCounters[h]; ok && *c.OpCounter <= last {
			res.Add(ledgererrors.StaleOperationalCounter(h))
		}
	}
}

// validInputs: inputs(tx) subseteq domain(utxo).
func validInputs(d Deps, tx types.Tx, res *Result) {
	if !d.UTxO.ContainsAll(tx.Body.Inputs) {
		res.Add(ledgererrors.BadInputs())
	}
}

// current: ttl(tx) >= currentSlot.
func current(d Deps, tx types.Tx, res *Result) {
	if tx.Body.TTL < d.CurrentSlot {
		res.Add(ledgererrors.Expired(tx.Body.TTL, d.CurrentSlot))
	}
}

// validNoReplay: inputs(tx) != empty.
func validNoReplay(d Deps, tx types.Tx, res *Result) {
	if len(tx.Body.Inputs) == 0 {
		res.Add(ledgererrors.InputSetEmpty())
	}
}

// validFee: fee(tx) >= minFee = a*size(tx) + b.
func validFee(d Deps, tx types.Tx, res *Result) {
	size := codec.Size(tx.Body)
	minFee := d.Params.FeeCoefficientA.Mul64(size).Add(d.Params.FeeConstantB)
	if tx.Body.Fee.Cmp(minFee) < 0 {
		res.Add(ledgererrors.FeeTooSmall(minFee, tx.Body.Fee))
	}
}

// preserveBalance: consumed == produced, per the definitions in §4.1.
func preserveBalance(d Deps, tx types.Tx, res *Result) {
	consumed, produced := balances(d, tx)
	if consumed.Uint64() != produced.Uint64() {
		res.Add(ledgererrors.ValueNotConserved(consumed, produced))
	}
}

// correctWithdrawals: every withdrawal matches the exact reward balance;
// partial withdrawals are rejected.
func correctWithdrawals(d Deps, tx types.Tx, res *Result) {
	for acnt, amount := range tx.Body.Withdrawals {
		balance, ok := d.DState.Rewards[acnt]
		if !ok || balance.Uint64() != amount.Uint64() {
			res.Add(ledgererrors.IncorrectRewards())
			return
		}
	}
}

// verifiedWits: every witness cryptographically verifies against the body
// hash, and its claimed VKeyHash is the hash of the PubKey that actually
// did the verifying. VKeyHash is caller-supplied and must never be trusted
// on its own: without this second check, a witness's PubKey/Signature could
// verify under the witness's own key while VKeyHash claims to be some other
// (unowned) signer, satisfying enoughWits/noUnneededWits without that
// signer ever having signed anything.
func verifiedWits(d Deps, tx types.Tx, bodyHash types.HashKey, res *Result) {
	for _, w := range tx.Witness {
		if !d.Verifier.Verify(w.PubKey, bodyHash.Bytes(), w.Signature) {
			res.Add(ledgererrors.InvalidWitness())
			return
		}
		if types.HashKey(d.Hasher.Hash(w.PubKey)) != w.VKeyHash {
			res.Add(ledgererrors.InvalidWitness())
			return
		}
	}
}

// enoughWits: signing set superseteq witsNeeded.
func enoughWits(tx types.Tx, needed map[types.HashKey]struct{}, res *Result) {
	signed := tx.WitnessHashes()
	for h := range needed {
		if _, ok := signed[h]; !ok {
			res.Add(ledgererrors.MissingWitnesses())
			return
		}
	}
}

// noUnneededWits: signing set subseteq witsNeeded.
func noUnneededWits(tx types.Tx, needed map[types.HashKey]struct{}, res *Result) {
	signed := tx.WitnessHashes()
	for h := range signed {
		if _, ok := needed[h]; !ok {
			res.Add(ledgererrors.UnneededWitnesses())
			return
		}
	}
}

// WitsNeeded computes the union described in §4.1: pay-key hashes of
// referenced inputs' outputs, reward-account hashes of withdrawal keys,
// each certificate's required signer, RegPool owner hashes, and the
// delegate hashes of genesis keys contributing to this transaction's
// entropy.
func WitsNeeded(d Deps, tx types.Tx) map[types.HashKey]struct{} {
	needed := make(map[types.HashKey]struct{})

	for in := range tx.Body.Inputs {
		if out, ok := d.UTxO.Get(in); ok {
			needed[out.Address.PayKeyHash] = struct{}{}
		}
	}

	for acnt := range tx.Body.Withdrawals {
		needed[types.HashKey(acnt)] = struct{}{}
	}

	for _, c := range tx.Body.Certs {
		needed[c.RequiredSigner()] = struct{}{}
		if c.Kind == types.CertRegPool {
			for o := range c.PoolParams.OwnerSet() {
				needed[o] = struct{}{}
			}
		}
	}

	if genHash, ok := entropyContributor(tx.Body.Entropy); ok {
		if delegateHash, ok := d.DState.GenesisDelegates[genHash]; ok {
			needed[delegateHash] = struct{}{}
		}
	}

	return needed
}

// entropyContributor extracts the genesis-key hash claiming credit for an
// entropy contribution. The real VRF/KES proof format is out of scope
// (§1); by convention the first 32 bytes of a non-empty contribution are
// the contributing genesis key's hash, so witsNeeded can still resolve a
// required signer without interpreting the rest of the payload.
func entropyContributor(e types.EEnt) (types.HashKey, bool) {
	if len(e) == 0 {
		return types.HashKey{}, false
	}
	b := []byte(e)
	if len(b) > len(types.HashKey{}) {
		b = b[:len(types.HashKey{})]
	}
	return types.HashKeyFromBytes(b), true
}

// balances computes the consumed/produced totals defined in §4.1:
//
//	produced = sum(output coins) + fee + deposits(pp, stakePools, certs)
//	consumed = sum(input coins) + keyRefunds(pp, stakeKeys, tx) + sum(withdrawals)
func balances(d Deps, tx types.Tx) (consumed, produced types.Coin) {
	outputsTotal := types.ZeroCoin
	for _, out := range tx.Body.Outputs {
		outputsTotal = outputsTotal.Add(out.Coin)
	}

	deposits := Deposits(d.Params, d.PState, tx.Body.Certs)
	produced = outputsTotal.Add(tx.Body.Fee).Add(deposits)

	inputsTotal := d.UTxO.SumInputs(tx.Body.Inputs)
	refunds := KeyRefunds(d.Params, d.DState, tx.Body)

	withdrawalsTotal := types.ZeroCoin
	for _, amount := range tx.Body.Withdrawals {
		withdrawalsTotal = withdrawalsTotal.Add(amount)
	}

	consumed = inputsTotal.Add(refunds).Add(withdrawalsTotal)
	return consumed, produced
}

// Deposits charges the configured per-key deposit for each RegKey cert and
// the per-pool deposit for each RegPool cert whose hash is not already
// registered; re-registration of an existing pool does not charge again.
func Deposits(pp params.ProtocolParams, ps *pool.PState, certs []types.Cert) types.Coin {
	total := types.ZeroCoin
	for _, c := range certs {
		switch c.Kind {
		case types.CertRegKey:
			total = total.Add(pp.KeyDeposit)
		case types.CertRegPool:
			if !ps.IsRegistered(c.PoolParams.PoolKeyHash) {
				total = total.Add(pp.PoolDeposit)
			}
		}
	}
	return total
}

// KeyRefunds credits the decayed refund for each DeRegKey cert whose
// target is currently registered, decayed against the age of the
// registration at the transaction's ttl.
func KeyRefunds(pp params.ProtocolParams, ds *delegation.DState, body types.TxBody) types.Coin {
	total := types.ZeroCoin
	for _, c := range body.Certs {
		if c.Kind != types.CertDeRegKey {
			continue
		}
		regSlot, ok := ds.RegistrationSlot(c.StakeKeyHash)
		if !ok {
			continue
		}
		age := body.TTL.Sub(regSlot)
		total = total.Add(pp.Refund(pp.KeyDeposit, age))
	}
	return total
}
