package ledgererrors

import (
	"errors"
	"testing"

	"ledgerengine/types"
)

func TestKindStringKnownAndUnknown(t *testing.T) {
	if got := KindFeeTooSmall.String(); got != "FeeTooSmall" {
		t.Fatalf("got %q, want FeeTooSmall", got)
	}
	if got := Kind(255).String(); got != "Kind(255)" {
		t.Fatalf("got %q, want a fallback format for an unnamed kind", got)
	}
}

func TestErrorMessagesIncludePayload(t *testing.T) {
	err := Expired(types.Slot(5), types.Slot(10))
	if got := err.Error(); got != "Expired: ttl 5 < current slot 10" {
		t.Fatalf("got %q", got)
	}

	feeErr := FeeTooSmall(types.NewCoin(100), types.NewCoin(1))
	if got := feeErr.Error(); got != "FeeTooSmall: needed 100, given 1" {
		t.Fatalf("got %q", got)
	}
}

func TestIsIgnoresPayloadDifferences(t *testing.T) {
	a := StakeKeyAlreadyRegistered(types.HashKey{1})
	b := StakeKeyAlreadyRegistered(types.HashKey{2})
	if !errors.Is(a, b) {
		t.Fatal("expected two errors of the same Kind to match via errors.Is regardless of payload")
	}
	if errors.Is(a, InvalidWitness()) {
		t.Fatal("expected errors of different Kinds not to match")
	}
}

func TestIsRejectsNonValidationError(t *testing.T) {
	if BadInputs().Is(errors.New("boom")) {
		t.Fatal("expected Is to reject a non-ValidationError target")
	}
}
