package params

import "testing"

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}
}

func TestValidateRejectsZeroSlotsPerEpoch(t *testing.T) {
	pp := Default()
	pp.SlotsPerEpoch = 0
	if err := pp.Validate(); err == nil {
		t.Fatal("expected error for zero SlotsPerEpoch")
	}
}

func TestValidateRejectsZeroK(t *testing.T) {
	pp := Default()
	pp.K = 0
	if err := pp.Validate(); err == nil {
		t.Fatal("expected error for zero K")
	}
}
