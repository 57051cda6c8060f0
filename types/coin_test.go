package types

import "testing"

func TestCoinAddOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on overflow")
		}
	}()
	max := Coin(^uint64(0))
	max.Add(NewCoin(1))
}

func TestCoinSubUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on underflow")
		}
	}()
	NewCoin(1).Sub(NewCoin(2))
}

func TestCoinSubSaturating(t *testing.T) {
	if got := NewCoin(1).SubSaturating(NewCoin(5)); got != ZeroCoin {
		t.Fatalf("got %d, want 0", got)
	}
	if got := NewCoin(5).SubSaturating(NewCoin(1)); got != NewCoin(4) {
		t.Fatalf("got %d, want 4", got)
	}
}

func TestCoinMul64(t *testing.T) {
	if got := NewCoin(3).Mul64(4); got != NewCoin(12) {
		t.Fatalf("got %d, want 12", got)
	}
}

func TestCoinMul64OverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on overflow")
		}
	}()
	Coin(^uint64(0)).Mul64(2)
}

func TestCoinCmp(t *testing.T) {
	if NewCoin(1).Cmp(NewCoin(2)) != -1 {
		t.Fatal("expected -1")
	}
	if NewCoin(2).Cmp(NewCoin(1)) != 1 {
		t.Fatal("expected 1")
	}
	if NewCoin(2).Cmp(NewCoin(2)) != 0 {
		t.Fatal("expected 0")
	}
}

func TestSumCoins(t *testing.T) {
	got := SumCoins(NewCoin(1), NewCoin(2), NewCoin(3))
	if got != NewCoin(6) {
		t.Fatalf("got %d, want 6", got)
	}
	if SumCoins() != ZeroCoin {
		t.Fatal("expected zero for empty sum")
	}
}
