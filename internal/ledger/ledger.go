// Package ledger persists the custody vault's state: per-account balances,
// pending withdrawals, daily usage counters, the recipient whitelist, and
// the custody pool total.
package ledger

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInsufficientBalance occurs when an account lacks the balance to
	// cover a requested debit.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientPoolBalance occurs when the custody pool cannot cover
	// an outbound amount.
	ErrInsufficientPoolBalance = errors.New("insufficient custody pool balance")

	// ErrBalanceOverflow indicates a credit would push a balance or the
	// custody pool past the int64 range.
	ErrBalanceOverflow = errors.New("balance overflow")

	// ErrNegativeAmount indicates a store mutation was invoked with a
	// negative amount. Callers validate amounts before reaching the store.
	ErrNegativeAmount = errors.New("negative amount")
)

// Usage tracks how much of the daily withdrawal allowance an account has
// consumed within a given day index. A zero value means nothing consumed.
type Usage struct {
	Day      int64
	Consumed int64
}

// Pending describes an account's single in-flight withdrawal. Amount is in
// minor units and already debited from the account balance.
type Pending struct {
	Reference string
	Amount    int64
	ReleaseAt time.Time
}

// State holds vault-wide administrative state.
type State struct {
	Owner  string
	Paused bool
}

// Store defines the contract implemented by custody state backends
// (e.g. Postgres). Accounts are open addressable: reading an unknown
// account yields zero values rather than an error, and the first credit
// creates it.
type Store interface {
	Balance(ctx context.Context, account string) (int64, error)
	Credit(ctx context.Context, account string, amount int64) (int64, error)
	Debit(ctx context.Context, account string, amount int64) (int64, error)

	Pool(ctx context.Context) (int64, error)
	CreditPool(ctx context.Context, amount int64) (int64, error)
	DebitPool(ctx context.Context, amount int64) (int64, error)

	Usage(ctx context.Context, account string) (Usage, error)
	PutUsage(ctx context.Context, account string, usage Usage) error

	Pending(ctx context.Context, account string) (Pending, bool, error)
	PutPending(ctx context.Context, account string, pending Pending) error
	DeletePending(ctx context.Context, account string) error

	Whitelisted(ctx context.Context, account string) (bool, error)
	SetWhitelisted(ctx context.Context, account string, allowed bool) error

	State(ctx context.Context) (State, error)
	PutState(ctx context.Context, state State) error
}
