// Package ledgererrors defines the stable, enumerated failure taxonomy the
// core returns instead of throwing. Every validator in package validate,
// including the certificate precondition checks, produces values of this
// package's ValidationError rather than an ad-hoc error string, so a caller
// can pattern-match on Kind and so repeated runs against the same bad input
// produce byte-identical error lists.
package ledgererrors

import (
	"fmt"

	"ledgerengine/types"
)

// Kind identifies one of the stable wire values from the error taxonomy.
// The numeric values are part of the wire contract: never renumber an
// existing constant, only append.
type Kind uint8

const (
	KindBadInputs Kind = iota
	KindExpired
	KindRetirementCertExpired
	KindFeeTooSmall
	KindValueNotConserved
	KindIncorrectRewards
	KindInvalidWitness
	KindMissingWitnesses
	KindUnneededWitnesses
	KindInputSetEmpty
	KindStakeKeyAlreadyRegistered
	KindStakeKeyNotRegistered
	KindStakeDelegationImpossible
	KindStakePoolNotRegisteredOnKey
	// KindStaleOperationalCounter is an addition to the taxonomy above, not
	// a replacement for any of it: RegPool certificates that carry a KES
	// operational counter lower than or equal to the pool's last-seen
	// counter are rejected with this, rather than being folded into
	// StakeDelegationImpossible.
	KindStaleOperationalCounter
)

var kindNames = map[Kind]string{
	KindBadInputs:                   "BadInputs",
	KindExpired:                     "Expired",
	KindRetirementCertExpired:       "RetirementCertExpired",
	KindFeeTooSmall:                 "FeeTooSmall",
	KindValueNotConserved:           "ValueNotConserved",
	KindIncorrectRewards:            "IncorrectRewards",
	KindInvalidWitness:              "InvalidWitness",
	KindMissingWitnesses:            "MissingWitnesses",
	KindUnneededWitnesses:           "UnneededWitnesses",
	KindInputSetEmpty:               "InputSetEmpty",
	KindStakeKeyAlreadyRegistered:   "StakeKeyAlreadyRegistered",
	KindStakeKeyNotRegistered:       "StakeKeyNotRegistered",
	KindStakeDelegationImpossible:   "StakeDelegationImpossible",
	KindStakePoolNotRegisteredOnKey: "StakePoolNotRegisteredOnKey",
	KindStaleOperationalCounter:     "StaleOperationalCounter",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ValidationError is the sum type every validator and certificate rule
// returns. Only the fields relevant to Kind are populated; the rest hold
// zero values. It implements error so it composes with errors.Is/As, but
// core code treats it as data: validators accumulate ValidationErrors in a
// slice rather than returning early.
type ValidationError struct {
	Kind Kind

	// Expired
	TTL         types.Slot
	CurrentSlot types.Slot

	// RetirementCertExpired
	CertEpoch    types.Epoch
	CurrentEpoch types.Epoch

	// FeeTooSmall
	FeeNeeded types.Coin
	FeeGiven  types.Coin

	// ValueNotConserved
	Consumed types.Coin
	Produced types.Coin

	// StakeKeyAlreadyRegistered, StakeKeyNotRegistered,
	// StakeDelegationImpossible, StakePoolNotRegisteredOnKey,
	// StaleOperationalCounter
	KeyHash types.HashKey
}

func (e ValidationError) Error() string {
	switch e.Kind {
	case KindExpired:
		return fmt.Sprintf("%s: ttl %d < current slot %d", e.Kind, e.TTL, e.CurrentSlot)
	case KindRetirementCertExpired:
		return fmt.Sprintf("%s: cert epoch %d <= current epoch %d", e.Kind, e.CertEpoch, e.CurrentEpoch)
	case KindFeeTooSmall:
		return fmt.Sprintf("%s: needed %d, given %d", e.Kind, e.FeeNeeded, e.FeeGiven)
	case KindValueNotConserved:
		return fmt.Sprintf("%s: consumed %d != produced %d", e.Kind, e.Consumed, e.Produced)
	case KindStakeKeyAlreadyRegistered, KindStakeKeyNotRegistered,
		KindStakeDelegationImpossible, KindStakePoolNotRegisteredOnKey,
		KindStaleOperationalCounter:
		return fmt.Sprintf("%s: %s", e.Kind, e.KeyHash)
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is a ValidationError of the same Kind,
// ignoring payload fields, so callers can write
// errors.Is(err, ledgererrors.BadInputs()) without comparing payloads.
func (e ValidationError) Is(target error) bool {
	other, ok := target.(ValidationError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func BadInputs() ValidationError { return ValidationError{Kind: KindBadInputs} }

func Expired(ttl, currentSlot types.Slot) ValidationError {
	return ValidationError{Kind: KindExpired, TTL: ttl, CurrentSlot: currentSlot}
}

func RetirementCertExpired(certEpoch, currentEpoch types.Epoch) ValidationError {
	return ValidationError{Kind: KindRetirementCertExpired, CertEpoch: certEpoch, CurrentEpoch: currentEpoch}
}

func FeeTooSmall(needed, given types.Coin) ValidationError {
	return ValidationError{Kind: KindFeeTooSmall, FeeNeeded: needed, FeeGiven: given}
}

func ValueNotConserved(consumed, produced types.Coin) ValidationError {
	return ValidationError{Kind: KindValueNotConserved, Consumed: consumed, Produced: produced}
}

func IncorrectRewards() ValidationError { return ValidationError{Kind: KindIncorrectRewards} }

func InvalidWitness() ValidationError { return ValidationError{Kind: KindInvalidWitness} }

func MissingWitnesses() ValidationError { return ValidationError{Kind: KindMissingWitnesses} }

func UnneededWitnesses() ValidationError { return ValidationError{Kind: KindUnneededWitnesses} }

func InputSetEmpty() ValidationError { return ValidationError{Kind: KindInputSetEmpty} }

func StakeKeyAlreadyRegistered(h types.HashKey) ValidationError {
	return ValidationError{Kind: KindStakeKeyAlreadyRegistered, KeyHash: h}
}

func StakeKeyNotRegistered(h types.HashKey) ValidationError {
	return ValidationError{Kind: KindStakeKeyNotRegistered, KeyHash: h}
}

func StakeDelegationImpossible(h types.HashKey) ValidationError {
	return ValidationError{Kind: KindStakeDelegationImpossible, KeyHash: h}
}

func StakePoolNotRegisteredOnKey(h types.HashKey) ValidationError {
	return ValidationError{Kind: KindStakePoolNotRegisteredOnKey, KeyHash: h}
}

func StaleOperationalCounter(h types.HashKey) ValidationError {
	return ValidationError{Kind: KindStaleOperationalCounter, KeyHash: h}
}
