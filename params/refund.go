package params

import (
	"math/big"

	"ledgerengine/types"
)

// Refund computes the decayed refund for a deposit d aged ageSlots, per the
// curve in §4.1: d * (m + (1-m) * (1-lambda)^age). The result is
// monotonically decreasing in age, bounded below by d*m and above by d.
// All intermediate arithmetic is exact rational arithmetic; only the final
// result is floor-rounded to a Coin.
func (p ProtocolParams) Refund(d types.Coin, ageSlots uint64) types.Coin {
	m := p.MinRefund.Rat()
	lambda := p.DecayRate.Rat()

	oneMinusLambda := new(big.Rat).Sub(big.NewRat(1, 1), lambda)
	decay := ratPow(oneMinusLambda, ageSlots)

	oneMinusM := new(big.Rat).Sub(big.NewRat(1, 1), m)
	factor := new(big.Rat).Add(m, new(big.Rat).Mul(oneMinusM, decay))

	refund := new(big.Rat).Mul(types.RatFromCoin(d), factor)
	return types.CoinFromRatFloor(refund)
}

// ratPow raises r to the n-th power via exponentiation by squaring, since
// math/big.Rat has no built-in Pow.
func ratPow(r *big.Rat, n uint64) *big.Rat {
	result := big.NewRat(1, 1)
	base := new(big.Rat).Set(r)
	for n > 0 {
		if n&1 == 1 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
		n >>= 1
	}
	return result
}
