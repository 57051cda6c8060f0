package trace

import (
	"math/rand"
	"sort"

	"ledgerengine/codec"
	"ledgerengine/crypto"
	"ledgerengine/delegation"
	"ledgerengine/params"
	"ledgerengine/pool"
	"ledgerengine/state"
	"ledgerengine/transition"
	"ledgerengine/types"
	"ledgerengine/utxo"
	"ledgerengine/validate"
)

// randomActor is one synthetic trace participant: a payment key for
// spending UTxOs, a stake key for delegation certificates, and (created on
// first use) a pool operator key.
type randomActor struct {
	payKey   *crypto.PrivateKey
	stakeKey *crypto.PrivateKey
	poolKey  *crypto.PrivateKey
}

func newRandomActor() (*randomActor, error) {
	pay, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	stake, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &randomActor{payKey: pay, stakeKey: stake}, nil
}

func (a *randomActor) payHash() types.HashKey   { return a.payKey.PubKey().Hash() }
func (a *randomActor) stakeHash() types.HashKey { return a.stakeKey.PubKey().Hash() }

func (a *randomActor) poolHash() types.HashKey {
	if a.poolKey == nil {
		return types.ZeroHashKey
	}
	return a.poolKey.PubKey().Hash()
}

func (a *randomActor) ensurePoolKey() (*crypto.PrivateKey, error) {
	if a.poolKey == nil {
		key, err := crypto.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		a.poolKey = key
	}
	return a.poolKey, nil
}

// actionKind is one of the certificate kinds the generator can attach to a
// transaction, plus the plain transfer.
type actionKind int

const (
	actTransfer actionKind = iota
	actRegKey
	actDeRegKey
	actDelegate
	actRegPool
	actRetirePool
)

// generator holds the mutable state a random trace is built against: the
// real ledger state the steps so far actually applied against (so later
// steps see the effects of earlier ones), and the bookkeeping needed to
// keep spending a live UTxO per actor and advancing pool operational
// counters monotonically.
type generator struct {
	rng           *rand.Rand
	deps          transition.Deps
	ls            state.LedgerState
	live          map[int]types.TxIn
	poolOpCounter map[int]uint64
}

func randomHash(rng *rand.Rand) types.HashKey {
	var h types.HashKey
	rng.Read(h[:])
	return h
}

// GenerateRandomTrace builds a random but self-consistent sequence of up to
// numSteps transactions exercising transfers and RegKey/DeRegKey/Delegate/
// RegPool/RetirePool certificates. seed drives the choice of actor, action,
// slot and certificate parameters; the actors' keys come from crypto/rand,
// so key hashes, signatures and transaction ids differ from run to run
// even for the same seed. Every returned step was verified, at generation time,
// against the real validate/transition pipeline with real cryptographic
// keys and signatures — not a fake hasher or verifier — so the returned
// trace is the kind a property test can replay end to end and expect to
// succeed at every step.
//
// It returns the genesis ledger state the trace assumes (numActors funded
// UTxOs, nothing else registered) and the step list itself. The generator
// may produce fewer than numSteps steps if no actor can build a valid next
// transaction within a bounded number of attempts; callers should not
// assume len(steps) == numSteps.
func GenerateRandomTrace(seed int64, numActors, numSteps int) (state.LedgerState, []Step, error) {
	if numActors < 1 {
		numActors = 1
	}
	rng := rand.New(rand.NewSource(seed))
	deps := DefaultDeps()

	actors := make([]*randomActor, numActors)
	for i := range actors {
		a, err := newRandomActor()
		if err != nil {
			return state.LedgerState{}, nil, err
		}
		actors[i] = a
	}

	genesis := state.LedgerState{
		UTxOState:       state.NewUTxOState(utxo.New()),
		DelegationState: state.DelegationState{DState: delegation.New(nil), PState: pool.New()},
		ProtocolParams:  params.Default(),
		CurrentSlot:     0,
	}

	live := make(map[int]types.TxIn, numActors)
	for i, a := range actors {
		in := types.NewTxIn(types.TxId(randomHash(rng)), 0)
		genesis.UTxOState.UTxO.Insert(in, types.NewTxOut(types.AddrTxin(a.payHash(), a.stakeHash()), types.NewCoin(1_000_000_000_000)))
		live[i] = in
	}

	g := &generator{
		rng:           rng,
		deps:          deps,
		ls:            genesis,
		live:          live,
		poolOpCounter: make(map[int]uint64, numActors),
	}

	steps := make([]Step, 0, numSteps)
	slot := types.Slot(0)

	for len(steps) < numSteps {
		progressed := false
		for attempt := 0; attempt < 8 && !progressed; attempt++ {
			slot += types.Slot(1 + rng.Intn(5))
			idx := rng.Intn(numActors)
			actor := actors[idx]
			action := g.chooseAction(actor)

			step, ok, err := g.buildStep(actor, idx, slot, action)
			if err != nil {
				return state.LedgerState{}, nil, err
			}
			if !ok {
				continue
			}

			next, errs := transition.ApplyTx(deps, slot, g.ls, step.Tx, nil)
			if len(errs) > 0 {
				continue
			}

			g.ls = next
			bodyHash := types.HashKey(deps.Hasher.Hash(codec.EncodeTxBody(step.Tx.Body)))
			g.live[idx] = types.NewTxIn(types.TxId(bodyHash), 0)
			steps = append(steps, step)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	return genesis, steps, nil
}

// chooseAction picks an action kind actor is currently able to attempt.
// Transfer and RegPool are always candidates; the rest depend on actor's
// current registration state.
func (g *generator) chooseAction(actor *randomActor) actionKind {
	ds := g.ls.DelegationState.DState
	ps := g.ls.DelegationState.PState

	candidates := []actionKind{actTransfer, actRegPool}
	if ds.IsRegistered(actor.stakeHash()) {
		candidates = append(candidates, actDeRegKey, actDelegate)
	} else {
		candidates = append(candidates, actRegKey)
	}
	if actor.poolKey != nil && ps.IsRegistered(actor.poolHash()) {
		candidates = append(candidates, actRetirePool)
	}
	return candidates[g.rng.Intn(len(candidates))]
}

// randomPoolTarget picks a delegation target: a currently registered pool
// if one exists, falling back to actor's own (possibly unregistered) pool
// key or a fresh random hash, since Delegate never requires its target to
// already be registered.
func (g *generator) randomPoolTarget(actor *randomActor) types.HashKey {
	ps := g.ls.DelegationState.PState
	pools := make([]types.HashKey, 0, len(ps.Pools))
	for h := range ps.Pools {
		pools = append(pools, h)
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].Compare(pools[j]) < 0 })
	if len(pools) > 0 {
		return pools[g.rng.Intn(len(pools))]
	}
	if actor.poolKey != nil {
		return actor.poolHash()
	}
	return randomHash(g.rng)
}

// buildStep assembles, fees, deposits/refunds, and witnesses a single
// transaction for actor attempting action at slot. It returns ok=false
// (not an error) when actor currently has nothing spendable or cannot
// cover the action's cost, so the caller can simply try something else.
func (g *generator) buildStep(actor *randomActor, idx int, slot types.Slot, action actionKind) (Step, bool, error) {
	ds := g.ls.DelegationState.DState
	ps := g.ls.DelegationState.PState

	in, ok := g.live[idx]
	if !ok {
		return Step{}, false, nil
	}
	out, ok := g.ls.UTxOState.UTxO.Get(in)
	if !ok {
		return Step{}, false, nil
	}

	body := types.NewTxBody()
	body.AddInput(in)
	body.TTL = slot + 1000

	signers := map[types.HashKey]*crypto.PrivateKey{actor.payHash(): actor.payKey}

	switch action {
	case actRegKey:
		body.AddCert(types.RegKeyCert(actor.stakeHash()))
		signers[actor.stakeHash()] = actor.stakeKey
	case actDeRegKey:
		body.AddCert(types.DeRegKeyCert(actor.stakeHash()))
		signers[actor.stakeHash()] = actor.stakeKey
	case actDelegate:
		target := g.randomPoolTarget(actor)
		body.AddCert(types.DelegateCert(actor.stakeHash(), target))
		signers[actor.stakeHash()] = actor.stakeKey
	case actRegPool:
		key, err := actor.ensurePoolKey()
		if err != nil {
			return Step{}, false, err
		}
		g.poolOpCounter[idx]++
		pp := types.PoolParams{
			PoolKeyHash:   key.PubKey().Hash(),
			VrfKeyHash:    randomHash(g.rng),
			Pledge:        types.NewCoin(uint64(g.rng.Intn(1_000_000))),
			Cost:          types.NewCoin(uint64(g.rng.Intn(1_000_000))),
			Margin:        types.MustUnitInterval(int64(1+g.rng.Intn(9)), 10),
			RewardAccount: types.NewRewardAcnt(actor.stakeHash()),
			Owners:        []types.HashKey{actor.stakeHash()},
		}
		body.AddCert(types.RegPoolCertWithOpCounter(pp, g.poolOpCounter[idx]))
		signers[key.PubKey().Hash()] = key
		signers[actor.stakeHash()] = actor.stakeKey
	case actRetirePool:
		key := actor.poolKey
		epoch := types.EpochFromSlot(slot) + 1
		body.AddCert(types.RetirePoolCert(key.PubKey().Hash(), epoch))
		signers[key.PubKey().Hash()] = key
	}

	body.AddOutput(types.NewTxOut(out.Address, types.ZeroCoin))

	size := codec.Size(*body)
	minFee := g.ls.ProtocolParams.FeeCoefficientA.Mul64(size).Add(g.ls.ProtocolParams.FeeConstantB)

	deposits := validate.Deposits(g.ls.ProtocolParams, ps, body.Certs)
	refunds := validate.KeyRefunds(g.ls.ProtocolParams, ds, *body)

	spend := out.Coin.Add(refunds)
	cost := minFee.Add(deposits)
	if cost.Cmp(spend) > 0 {
		return Step{}, false, nil
	}

	body.Fee = minFee
	body.Outputs[0].Coin = spend.Sub(cost)

	bodyHash := types.HashKey(g.deps.Hasher.Hash(codec.EncodeTxBody(*body)))

	witnesses := make([]types.Witness, 0, len(signers))
	for _, key := range signers {
		sig, err := key.Sign([32]byte(bodyHash))
		if err != nil {
			return Step{}, false, err
		}
		witnesses = append(witnesses, types.Witness{
			VKeyHash:  key.PubKey().Hash(),
			PubKey:    key.PubKey().PubKeyBytes(),
			Signature: sig,
		})
	}

	return Step{Slot: slot, Tx: types.Tx{Body: *body, Witness: witnesses}}, true, nil
}
