package types

import "fmt"

// Coin is a non-negative integer count of the smallest monetary unit. Zero
// is the valid empty balance. Arithmetic outside the refund curve is exact
// integer arithmetic; callers must not let it underflow.
type Coin uint64

// ZeroCoin is the additive identity.
const ZeroCoin Coin = 0

// NewCoin validates that amount fits the non-negative domain. Coin is backed
// by uint64 so the only rejected input is none; the constructor exists so
// call sites read like every other smart constructor in this package.
func NewCoin(amount uint64) Coin {
	return Coin(amount)
}

// Add returns c + other. Overflow is a caller bug, not a recoverable error,
// matching the spec's "elsewhere exact integer arithmetic" rule.
func (c Coin) Add(other Coin) Coin {
	sum := c + other
	if sum < c {
		panic("types: coin addition overflow")
	}
	return sum
}

// Sub returns c - other and panics on underflow; callers that need saturating
// subtraction must call SubSaturating explicitly at the refund/deposit sites
// the spec names.
func (c Coin) Sub(other Coin) Coin {
	if other > c {
		panic(fmt.Sprintf("types: coin subtraction underflow: %d - %d", c, other))
	}
	return c - other
}

// SubSaturating returns max(0, c-other). Only the refund curve and deposit
// bookkeeping in §4.1/§4.3 of the spec are permitted to use this.
func (c Coin) SubSaturating(other Coin) Coin {
	if other >= c {
		return ZeroCoin
	}
	return c - other
}

// Mul64 returns c * factor, used by the fee-floor formula minFee =
// a*size(tx) + b where size(tx) is a byte count rather than a Coin.
func (c Coin) Mul64(factor uint64) Coin {
	product := uint64(c) * factor
	if factor != 0 && product/factor != uint64(c) {
		panic("types: coin multiplication overflow")
	}
	return Coin(product)
}

// Cmp returns -1, 0, or 1 as c is less than, equal to, or greater than other.
func (c Coin) Cmp(other Coin) int {
	switch {
	case c < other:
		return -1
	case c > other:
		return 1
	default:
		return 0
	}
}

// Uint64 exposes the raw value for encoding and arithmetic bridges.
func (c Coin) Uint64() uint64 { return uint64(c) }

// String renders the coin as a plain decimal integer.
func (c Coin) String() string { return fmt.Sprintf("%d", uint64(c)) }

// SumCoins folds Add across a slice, returning ZeroCoin for an empty slice.
func SumCoins(coins ...Coin) Coin {
	total := ZeroCoin
	for _, c := range coins {
		total = total.Add(c)
	}
	return total
}
