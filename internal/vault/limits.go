package vault

import "github.com/dagron78/custodyvault/internal/ledger"

// limiter enforces the per-account daily withdrawal allowance. Usage rolls
// over lazily: the stored day index is compared against the current one on
// each reservation, so idle accounts never need a background sweep.
type limiter struct {
	limit int64
}

// rollover returns the usage as of the given day, discarding consumption
// from earlier days. A stored day ahead of the current one (clock skew) is
// left untouched.
func (l limiter) rollover(usage ledger.Usage, day int64) ledger.Usage {
	if day > usage.Day {
		return ledger.Usage{Day: day}
	}
	return usage
}

// reserve consumes amount from the day's allowance after rolling the
// window. The rearranged comparison keeps the check overflow-safe for any
// amount.
func (l limiter) reserve(usage ledger.Usage, amount, day int64) (ledger.Usage, error) {
	usage = l.rollover(usage, day)
	if amount > l.limit-usage.Consumed {
		return usage, ErrDailyLimitExceeded
	}
	usage.Consumed += amount
	return usage, nil
}

// release returns allowance after a cancelled withdrawal, clamping at zero:
// the day may have rolled over since the reservation, in which case the
// counter was already reset and there is nothing left to give back.
func (l limiter) release(usage ledger.Usage, amount int64) ledger.Usage {
	usage.Consumed -= amount
	if usage.Consumed < 0 {
		usage.Consumed = 0
	}
	return usage
}
