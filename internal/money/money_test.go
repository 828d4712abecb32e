package money

import (
	"math"
	"testing"
)

func TestFromCoins(t *testing.T) {
	minor, err := FromCoins(3)
	if err != nil {
		t.Fatalf("from coins failed: %v", err)
	}
	if minor != 3*MinorPerCoin {
		t.Fatalf("expected %d minor units, got %d", 3*MinorPerCoin, minor)
	}
}

func TestFromCoins_Overflow(t *testing.T) {
	if _, err := FromCoins(math.MaxInt64/MinorPerCoin + 1); err != ErrAmountOverflow {
		t.Fatalf("expected overflow error, got %v", err)
	}
	if _, err := FromCoins(math.MinInt64/MinorPerCoin - 1); err != ErrAmountOverflow {
		t.Fatalf("expected overflow error for negative, got %v", err)
	}
}

func TestToCoins_Truncates(t *testing.T) {
	if got := ToCoins(MinorPerCoin + MinorPerCoin/2); got != 1 {
		t.Fatalf("expected 1 coin, got %d", got)
	}
	if got := ToCoins(MinorPerCoin - 1); got != 0 {
		t.Fatalf("expected 0 coins, got %d", got)
	}
}

func TestAdd_Overflow(t *testing.T) {
	if _, err := Add(math.MaxInt64, 1); err != ErrAmountOverflow {
		t.Fatalf("expected overflow error, got %v", err)
	}
	sum, err := Add(40, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if sum != 42 {
		t.Fatalf("expected 42, got %d", sum)
	}
}

func TestFormatCoins(t *testing.T) {
	if got := FormatCoins(MinorPerCoin + MinorPerCoin/2); got != "1.5" {
		t.Fatalf("expected 1.5, got %s", got)
	}
	if got := FormatCoins(2 * MinorPerCoin); got != "2" {
		t.Fatalf("expected 2, got %s", got)
	}
	if got := FormatCoins(-MinorPerCoin / 4); got != "-0.25" {
		t.Fatalf("expected -0.25, got %s", got)
	}
}
