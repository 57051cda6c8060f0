// Package params holds the protocol parameters that every validator and
// the reward engine read from: fee coefficients, deposit amounts, the
// refund decay curve, and the monetary-expansion/treasury-cut rates.
// Parameters are loaded once (typically from a TOML file via LoadFile) and
// passed by value into the pure core; nothing in this package mutates
// state.
package params

import (
	"fmt"

	"ledgerengine/types"
)

// ProtocolParams bundles every tunable the core consults. Field names
// follow the Greek-letter conventions of the rules they parameterize
// (MonetaryExpansionRate is "rho", TreasuryCut is "tau") so the
// cross-reference back to the component design stays obvious in code.
type ProtocolParams struct {
	// Fee floor: minFee = FeeCoefficientA*size(tx) + FeeConstantB.
	FeeCoefficientA types.Coin
	FeeConstantB    types.Coin

	KeyDeposit  types.Coin
	PoolDeposit types.Coin

	// Refund curve: d*(m + (1-m)*(1-lambda)^age).
	MinRefund  types.UnitInterval // m
	DecayRate  types.UnitInterval // lambda

	SlotsPerEpoch      uint64
	ActiveSlotCoeff    types.UnitInterval

	MonetaryExpansionRate types.UnitInterval // rho
	TreasuryCut           types.UnitInterval // tau

	// PoolPledgeInfluence shapes how sharply under-pledged pools are
	// penalized in maxPool; a0 in the historical notation.
	PoolPledgeInfluence types.NonNegativeInterval
	// K is the desired number of pools, used by maxPool's saturation
	// denominator (1/k of total stake is one "ideal" pool's share).
	K uint64
}

// Validate reports structural problems a loaded parameter set must never
// have: a zero SlotsPerEpoch would divide by zero in the reward engine's
// expected-block ratio, and K=0 would divide by zero in the saturation cap.
func (p ProtocolParams) Validate() error {
	if p.SlotsPerEpoch == 0 {
		return fmt.Errorf("params: SlotsPerEpoch must be positive")
	}
	if p.K == 0 {
		return fmt.Errorf("params: K must be positive")
	}
	return nil
}

// Default returns a parameter set suitable for local experimentation and
// as the base that LoadFile's TOML overlays on top of.
func Default() ProtocolParams {
	return ProtocolParams{
		FeeCoefficientA:       types.NewCoin(1),
		FeeConstantB:          types.ZeroCoin,
		KeyDeposit:            types.NewCoin(2_000_000),
		PoolDeposit:           types.NewCoin(500_000_000),
		MinRefund:             types.MustUnitInterval(0, 1),
		DecayRate:             types.MustUnitInterval(0, 1),
		SlotsPerEpoch:         432000,
		ActiveSlotCoeff:       types.MustUnitInterval(1, 20),
		MonetaryExpansionRate: types.MustUnitInterval(3, 1000),
		TreasuryCut:           types.MustUnitInterval(1, 5),
		PoolPledgeInfluence:   types.MustNonNegativeInterval(3, 10),
		K:                     100,
	}
}
