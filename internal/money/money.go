// Package money converts between whole-coin amounts used at the API edge
// and the minor units the vault accounts in internally.
package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// minorScale is the number of decimal digits between one whole coin and one
// minor unit.
const minorScale = 9

// MinorPerCoin is the number of minor units in a single whole coin.
const MinorPerCoin int64 = 1_000_000_000

// ErrAmountOverflow occurs when a value cannot be represented in the signed
// 64-bit minor unit range.
var ErrAmountOverflow = errors.New("amount overflows minor unit range")

// FromCoins converts a whole-coin amount to minor units.
func FromCoins(coins int64) (int64, error) {
	if coins > math.MaxInt64/MinorPerCoin || coins < math.MinInt64/MinorPerCoin {
		return 0, ErrAmountOverflow
	}
	return coins * MinorPerCoin, nil
}

// ToCoins converts minor units to whole coins, truncating toward zero.
func ToCoins(minor int64) int64 {
	return minor / MinorPerCoin
}

// Add returns a+b, or ErrAmountOverflow when the sum leaves the int64 range.
func Add(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrAmountOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// Coins renders a minor unit amount as an exact decimal coin value.
func Coins(minor int64) decimal.Decimal {
	return decimal.New(minor, -minorScale)
}

// FormatCoins renders a minor unit amount as a decimal coin string, e.g.
// 1_500_000_000 minor units become "1.5".
func FormatCoins(minor int64) string {
	return Coins(minor).String()
}
