package params

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"ledgerengine/types"
)

// file is the TOML wire shape for a parameter file: plain rationals
// expressed as "num/den" strings rather than floats, since a float64
// cannot represent every protocol rational exactly and this package's
// arithmetic is required to be exact.
type file struct {
	FeeCoefficientA uint64 `toml:"fee_coefficient_a"`
	FeeConstantB    uint64 `toml:"fee_constant_b"`

	KeyDeposit  uint64 `toml:"key_deposit"`
	PoolDeposit uint64 `toml:"pool_deposit"`

	MinRefund string `toml:"min_refund"`
	DecayRate string `toml:"decay_rate"`

	SlotsPerEpoch   uint64 `toml:"slots_per_epoch"`
	ActiveSlotCoeff string `toml:"active_slot_coeff"`

	MonetaryExpansionRate string `toml:"monetary_expansion_rate"`
	TreasuryCut           string `toml:"treasury_cut"`

	PoolPledgeInfluence string `toml:"pool_pledge_influence"`
	K                   uint64 `toml:"k"`
}

// LoadFile reads a TOML-encoded protocol parameter file, starting from
// Default() so a file only needs to override what it changes.
func LoadFile(path string) (ProtocolParams, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return ProtocolParams{}, fmt.Errorf("params: decode %s: %w", path, err)
	}
	return fromFile(f)
}

func fromFile(f file) (ProtocolParams, error) {
	pp := Default()

	if f.FeeCoefficientA != 0 {
		pp.FeeCoefficientA = types.NewCoin(f.FeeCoefficientA)
	}
	pp.FeeConstantB = types.NewCoin(f.FeeConstantB)
	if f.KeyDeposit != 0 {
		pp.KeyDeposit = types.NewCoin(f.KeyDeposit)
	}
	if f.PoolDeposit != 0 {
		pp.PoolDeposit = types.NewCoin(f.PoolDeposit)
	}
	if f.SlotsPerEpoch != 0 {
		pp.SlotsPerEpoch = f.SlotsPerEpoch
	}
	if f.K != 0 {
		pp.K = f.K
	}

	var err error
	if f.MinRefund != "" {
		if pp.MinRefund, err = parseUnitInterval(f.MinRefund); err != nil {
			return ProtocolParams{}, err
		}
	}
	if f.DecayRate != "" {
		if pp.DecayRate, err = parseUnitInterval(f.DecayRate); err != nil {
			return ProtocolParams{}, err
		}
	}
	if f.ActiveSlotCoeff != "" {
		if pp.ActiveSlotCoeff, err = parseUnitInterval(f.ActiveSlotCoeff); err != nil {
			return ProtocolParams{}, err
		}
	}
	if f.MonetaryExpansionRate != "" {
		if pp.MonetaryExpansionRate, err = parseUnitInterval(f.MonetaryExpansionRate); err != nil {
			return ProtocolParams{}, err
		}
	}
	if f.TreasuryCut != "" {
		if pp.TreasuryCut, err = parseUnitInterval(f.TreasuryCut); err != nil {
			return ProtocolParams{}, err
		}
	}
	if f.PoolPledgeInfluence != "" {
		n, err := parseNonNegativeInterval(f.PoolPledgeInfluence)
		if err != nil {
			return ProtocolParams{}, err
		}
		pp.PoolPledgeInfluence = n
	}

	if err := pp.Validate(); err != nil {
		return ProtocolParams{}, err
	}
	return pp, nil
}

func parseUnitInterval(s string) (types.UnitInterval, error) {
	num, den, err := parseFraction(s)
	if err != nil {
		return types.UnitInterval{}, err
	}
	return types.NewUnitInterval(num, den)
}

func parseNonNegativeInterval(s string) (types.NonNegativeInterval, error) {
	num, den, err := parseFraction(s)
	if err != nil {
		return types.NonNegativeInterval{}, err
	}
	return types.NewNonNegativeInterval(num, den)
}

func parseFraction(s string) (int64, int64, error) {
	var num, den int64
	n, err := fmt.Sscanf(s, "%d/%d", &num, &den)
	if err != nil || n != 2 {
		return 0, 0, fmt.Errorf("params: %q is not a num/den fraction", s)
	}
	return num, den, nil
}
