package vault

import (
	"time"

	"github.com/dagron78/custodyvault/internal/money"
)

// Clock abstracts time for the engine so tests can steer release windows
// and day rollover. Now is treated as approximately monotonic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Policy carries the vault's time and allowance parameters.
type Policy struct {
	// WithdrawalDelay is how long a requested withdrawal rests before it
	// becomes executable.
	WithdrawalDelay time.Duration
	// ExecutionWindow is how long past the release time a withdrawal stays
	// executable. The window is closed at both ends.
	ExecutionWindow time.Duration
	// DailyLimit caps, in minor units, how much an account may schedule
	// for withdrawal per allowance day. Transfers above this amount also
	// require a whitelisted recipient.
	DailyLimit int64
	// DayLength is the span of one allowance day.
	DayLength time.Duration
}

// DefaultPolicy returns the production custody parameters: a 24 hour rest,
// a one hour execution window, and a 5 coin daily allowance.
func DefaultPolicy() Policy {
	return Policy{
		WithdrawalDelay: 24 * time.Hour,
		ExecutionWindow: time.Hour,
		DailyLimit:      5 * money.MinorPerCoin,
		DayLength:       24 * time.Hour,
	}
}

// DayIndex maps an instant to its allowance day number.
func (p Policy) DayIndex(t time.Time) int64 {
	return t.Unix() / int64(p.DayLength/time.Second)
}

func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.WithdrawalDelay <= 0 {
		p.WithdrawalDelay = def.WithdrawalDelay
	}
	if p.ExecutionWindow <= 0 {
		p.ExecutionWindow = def.ExecutionWindow
	}
	if p.DailyLimit <= 0 {
		p.DailyLimit = def.DailyLimit
	}
	if p.DayLength < time.Second {
		p.DayLength = def.DayLength
	}
	return p
}
