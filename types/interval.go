package types

import (
	"fmt"
	"math/big"
)

// UnitInterval is a rational number constrained to [0, 1], used for the
// margin, treasury cut, monetary-expansion, and decay-rate protocol
// parameters in §3. It is immutable once constructed; the smart constructor
// is the only way to obtain one so the bound can never be violated.
type UnitInterval struct {
	rat *big.Rat
}

// NewUnitInterval validates num/den lies in [0, 1] and rejects a zero
// denominator.
func NewUnitInterval(num, den int64) (UnitInterval, error) {
	if den == 0 {
		return UnitInterval{}, fmt.Errorf("types: unit interval denominator must not be zero")
	}
	r := big.NewRat(num, den)
	if r.Sign() < 0 || r.Cmp(big.NewRat(1, 1)) > 0 {
		return UnitInterval{}, fmt.Errorf("types: unit interval %s out of bounds [0,1]", r.String())
	}
	return UnitInterval{rat: r}, nil
}

// MustUnitInterval panics on an out-of-range constant; intended for
// literals defined at package init time, never for untrusted input.
func MustUnitInterval(num, den int64) UnitInterval {
	u, err := NewUnitInterval(num, den)
	if err != nil {
		panic(err)
	}
	return u
}

// Rat exposes the underlying rational for arithmetic; callers must treat the
// returned value as read-only.
func (u UnitInterval) Rat() *big.Rat {
	if u.rat == nil {
		return new(big.Rat)
	}
	return u.rat
}

func (u UnitInterval) String() string { return u.Rat().RatString() }

// NonNegativeInterval is a rational number constrained to [0, ∞), used for
// the pool-pledge-influence coefficient a0 and similar unbounded-above
// protocol parameters.
type NonNegativeInterval struct {
	rat *big.Rat
}

// NewNonNegativeInterval validates num/den is non-negative.
func NewNonNegativeInterval(num, den int64) (NonNegativeInterval, error) {
	if den == 0 {
		return NonNegativeInterval{}, fmt.Errorf("types: non-negative interval denominator must not be zero")
	}
	r := big.NewRat(num, den)
	if r.Sign() < 0 {
		return NonNegativeInterval{}, fmt.Errorf("types: non-negative interval %s is negative", r.String())
	}
	return NonNegativeInterval{rat: r}, nil
}

// MustNonNegativeInterval panics on a negative constant.
func MustNonNegativeInterval(num, den int64) NonNegativeInterval {
	n, err := NewNonNegativeInterval(num, den)
	if err != nil {
		panic(err)
	}
	return n
}

func (n NonNegativeInterval) Rat() *big.Rat {
	if n.rat == nil {
		return new(big.Rat)
	}
	return n.rat
}

func (n NonNegativeInterval) String() string { return n.Rat().RatString() }

// RatFromCoin lifts a Coin into an exact rational for use in the refund
// curve and reward-engine arithmetic, both of which the spec requires to
// use exact rational arithmetic before a single floor-rounding step.
func RatFromCoin(c Coin) *big.Rat {
	return new(big.Rat).SetUint64(c.Uint64())
}

// CoinFromRatFloor floors a non-negative rational to a Coin. It panics if
// given a negative value, since every call site in this module first clamps
// to non-negative before flooring.
func CoinFromRatFloor(r *big.Rat) Coin {
	if r.Sign() < 0 {
		panic("types: cannot floor a negative rational to Coin")
	}
	q := new(big.Int).Quo(r.Num(), r.Denom())
	return NewCoin(q.Uint64())
}
