// Package rewards implements the reward engine (C10): constructing a
// RewardUpdate from a stake snapshot and a blocks-produced map, and
// applying it to global accounts and reward-account balances.
package rewards

import (
	"math/big"

	"ledgerengine/params"
	"ledgerengine/pool"
	"ledgerengine/stake"
	"ledgerengine/types"
)

// RewardUpdate is the record §3 names: deltas to the treasury, reserves,
// and fee pots, plus the map of reward-account payouts this epoch.
type RewardUpdate struct {
	DeltaTreasury types.Coin
	DeltaReserves types.Coin
	DeltaFees     types.Coin
	Rewards       map[types.RewardAcnt]types.Coin

	// negative sign bits for the delta fields, since types.Coin itself is
	// unsigned; true means the corresponding delta above is a decrease.
	ReservesNegative bool
	FeesNegative     bool
}

// Snapshot is the (stake, delegations, poolParams) triple the reward
// engine consumes, the "go" member of the rolling snapshot triple (§3).
type Snapshot struct {
	Stake       stake.Distribution
	Delegations map[types.HashKey]types.HashKey
	PoolParams  map[types.HashKey]pool.Params
	FeeSnapshot types.Coin
}

// CreateRewardUpdate runs the seven-step computation of §4.5 and returns
// the resulting RewardUpdate. blocksMade maps a pool hash to the number of
// blocks it produced in the epoch just ended; addrsRew is the set of
// reward accounts currently registered, used in step 6 to drop rewards
// aimed at an account that has since deregistered.
func CreateRewardUpdate(pp params.ProtocolParams, reserves types.Coin, snap Snapshot, blocksMade map[types.HashKey]uint64, addrsRew map[types.RewardAcnt]struct{}) RewardUpdate {
	// Step 1: eta = min(1, blocksMade_total / (activeSlotCoeff * slotsPerEpoch))
	blocksTotal := uint64(0)
	for _, n := range blocksMade {
		blocksTotal += n
	}
	expectedBlocks := new(big.Rat).Mul(pp.ActiveSlotCoeff.Rat(), new(big.Rat).SetUint64(pp.SlotsPerEpoch))
	eta := new(big.Rat).Quo(new(big.Rat).SetUint64(blocksTotal), expectedBlocks)
	one := big.NewRat(1, 1)
	if eta.Cmp(one) > 0 {
		eta = one
	}

	// Step 2: deltaR = floor(eta * rho * reserves)
	deltaRRat := new(big.Rat).Mul(eta, pp.MonetaryExpansionRate.Rat())
	deltaRRat.Mul(deltaRRat, types.RatFromCoin(reserves))
	deltaR := types.CoinFromRatFloor(deltaRRat)

	// Step 3: totalPot = feesSnapshot + deltaR
	totalPot := snap.FeeSnapshot.Add(deltaR)

	// Step 4: deltaT1 = floor(tau * totalPot); r = totalPot - deltaT1
	deltaT1Rat := new(big.Rat).Mul(pp.TreasuryCut.Rat(), types.RatFromCoin(totalPot))
	deltaT1 := types.CoinFromRatFloor(deltaT1Rat)
	rewardPot := totalPot.Sub(deltaT1)

	totalStake := snap.Stake.Total()

	distributed := make(map[types.RewardAcnt]types.Coin)
	for h, blocksN := range blocksMade {
		poolParams, ok := snap.PoolParams[h]
		if !ok {
			continue
		}
		poolStakeCoin := stake.PoolStake(snap.Stake, snap.Delegations, h)
		maxPool := maxPoolReward(pp, rewardPot, poolStakeCoin, totalStake, poolParams, snap.Stake, snap.Delegations)

		blocksTotalOrOne := blocksTotal
		if blocksTotalOrOne == 0 {
			blocksTotalOrOne = 1
		}
		sigma := safeRat(poolStakeCoin, totalStake)

		poolRRat := new(big.Rat).SetFrac64(int64(blocksN), int64(blocksTotalOrOne))
		if sigma.Sign() > 0 {
			poolRRat.Quo(poolRRat, sigma)
		} else {
			poolRRat.SetInt64(0)
		}
		poolRRat.Mul(poolRRat, types.RatFromCoin(maxPool))
		poolR := types.CoinFromRatFloor(poolRRat)

		leaderStake := ownerStake(snap.Stake, snap.Delegations, poolParams, h)
		sigmaLeader := safeRat(leaderStake, totalStake)

		distributePoolReward(poolParams, poolR, sigma, sigmaLeader, poolStakeCoin, h, snap.Stake, snap.Delegations, distributed)
	}

	// Step 6: restrict to currently registered accounts; leftovers go to treasury
	total := types.ZeroCoin
	final := make(map[types.RewardAcnt]types.Coin, len(distributed))
	for acnt, c := range distributed {
		if _, ok := addrsRew[acnt]; !ok {
			continue
		}
		final[acnt] = c
		total = total.Add(c)
	}
	deltaT2 := rewardPot.Sub(total)

	return RewardUpdate{
		DeltaTreasury:    deltaT1.Add(deltaT2),
		DeltaReserves:    deltaR,
		ReservesNegative: true,
		DeltaFees:        snap.FeeSnapshot,
		FeesNegative:     true,
		Rewards:          final,
	}
}

// ApplyRewardUpdate applies ru to treasury, reserves, fees, and the reward
// account balances. Rewards present in the update shadow (fully replace,
// not add to) the prior balance, the convention §4.5's closing paragraph
// requires an implementer to pick and document.
func ApplyRewardUpdate(treasury, reserves, fees types.Coin, rewardBalances map[types.RewardAcnt]types.Coin, ru RewardUpdate) (newTreasury, newReserves, newFees types.Coin) {
	newTreasury = treasury.Add(ru.DeltaTreasury)
	if ru.ReservesNegative {
		newReserves = reserves.Sub(ru.DeltaReserves)
	} else {
		newReserves = reserves.Add(ru.DeltaReserves)
	}
	if ru.FeesNegative {
		newFees = fees.Sub(ru.DeltaFees)
	} else {
		newFees = fees.Add(ru.DeltaFees)
	}
	for acnt, c := range ru.Rewards {
		rewardBalances[acnt] = c
	}
	return newTreasury, newReserves, newFees
}

func safeRat(numer, denom types.Coin) *big.Rat {
	if denom.Uint64() == 0 {
		return big.NewRat(0, 1)
	}
	return new(big.Rat).SetFrac64(int64(numer.Uint64()), int64(denom.Uint64()))
}

// maxPoolReward implements maxPool(pp, r, sigma, pledge/total): the
// saturation-capped pool reward before the leader/member split, zeroed if
// the pool's owners are not currently staking at least its declared
// pledge.
func maxPoolReward(pp params.ProtocolParams, rewardPot types.Coin, poolStakeCoin, totalStake types.Coin, pp2 pool.Params, dist stake.Distribution, delegations map[types.HashKey]types.HashKey) types.Coin {
	ownerStaked := ownerStake(dist, delegations, pp2, pp2.PoolKeyHash)
	if ownerStaked.Uint64() < pp2.Pledge.Uint64() {
		return types.ZeroCoin
	}

	z0 := new(big.Rat).SetFrac64(1, int64(pp.K))
	sigma := safeRat(poolStakeCoin, totalStake)
	sigmaCapped := sigma
	if sigmaCapped.Cmp(z0) > 0 {
		sigmaCapped = z0
	}
	pledgeRat := safeRat(pp2.Pledge, totalStake)
	pledgeCapped := pledgeRat
	if pledgeCapped.Cmp(z0) > 0 {
		pledgeCapped = z0
	}

	a0 := pp.PoolPledgeInfluence.Rat()
	numer := new(big.Rat).Add(sigmaCapped, new(big.Rat).Mul(pledgeCapped, a0))
	denom := new(big.Rat).Add(one(), a0)
	factor := new(big.Rat).Quo(numer, denom)
	factor.Quo(factor, new(big.Rat).Add(one(), z0))
	maxPoolRat := new(big.Rat).Mul(types.RatFromCoin(rewardPot), factor)
	return types.CoinFromRatFloor(maxPoolRat)
}

func one() *big.Rat { return big.NewRat(1, 1) }

// ownerStake sums the active stake of a pool's declared owner keys.
func ownerStake(dist stake.Distribution, delegations map[types.HashKey]types.HashKey, pp pool.Params, poolHash types.HashKey) types.Coin {
	owners := pp.OwnerSet()
	total := types.ZeroCoin
	for s, c := range dist {
		if _, isOwner := owners[s]; !isOwner {
			continue
		}
		if delegations[s] != poolHash {
			continue
		}
		total = total.Add(c)
	}
	return total
}

// distributePoolReward splits poolR between the leader and its delegators
// per §4.5 step 5's leader/member formulas, accumulating into distributed.
// The leader's own stake is paid out through the leader formula's
// sigmaLeader/sigma term, not as a separate member reward, so member
// rewards below are computed only for delegators outside the pool's owner
// set.
func distributePoolReward(pp pool.Params, poolR types.Coin, sigma, sigmaLeader *big.Rat, poolStakeCoin types.Coin, poolHash types.HashKey, dist stake.Distribution, delegations map[types.HashKey]types.HashKey, distributed map[types.RewardAcnt]types.Coin) {
	leaderAcnt := pp.RewardAccount

	if poolR.Uint64() <= pp.Cost.Uint64() {
		distributed[leaderAcnt] = distributed[leaderAcnt].Add(poolR)
		return
	}

	margin := pp.Margin.Rat()
	remainder := poolR.Sub(pp.Cost)
	oneMinusMargin := new(big.Rat).Sub(one(), margin)

	leaderShare := new(big.Rat).Set(margin)
	if sigma.Sign() > 0 {
		leaderOnlyShare := new(big.Rat).Mul(oneMinusMargin, sigmaLeader)
		leaderOnlyShare.Quo(leaderOnlyShare, sigma)
		leaderShare.Add(leaderShare, leaderOnlyShare)
	}
	leaderRewardRat := new(big.Rat).Mul(types.RatFromCoin(remainder), leaderShare)
	leaderReward := types.CoinFromRatFloor(leaderRewardRat)

	distributed[leaderAcnt] = distributed[leaderAcnt].Add(pp.Cost).Add(leaderReward)

	if poolStakeCoin.Uint64() == 0 {
		return
	}
	owners := pp.OwnerSet()
	for s, t := range dist {
		if delegations[s] != poolHash {
			continue
		}
		if _, isOwner := owners[s]; isOwner {
			continue
		}
		memberShareRat := new(big.Rat).Mul(types.RatFromCoin(remainder), oneMinusMargin)
		memberShareRat.Mul(memberShareRat, types.RatFromCoin(t))
		memberShareRat.Quo(memberShareRat, types.RatFromCoin(poolStakeCoin))
		memberReward := types.CoinFromRatFloor(memberShareRat)

		acnt := types.NewRewardAcnt(s)
		distributed[acnt] = distributed[acnt].Add(memberReward)
	}
}
