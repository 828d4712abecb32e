package vault

import "errors"

var (
	// ErrUnauthorized occurs when a caller invokes an owner-only operation.
	ErrUnauthorized = errors.New("caller is not the vault owner")

	// ErrPaused occurs when a custody operation arrives while the vault is
	// halted.
	ErrPaused = errors.New("vault is paused")

	// ErrInvalidAmount occurs when an operation is given an amount outside
	// its accepted range.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidRecipient occurs when an operation names an empty account.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrDailyLimitExceeded occurs when a withdrawal request would push the
	// account past its daily allowance.
	ErrDailyLimitExceeded = errors.New("daily withdrawal limit exceeded")

	// ErrNotWhitelisted occurs when a transfer above the review threshold
	// names a recipient that is not whitelisted.
	ErrNotWhitelisted = errors.New("recipient not whitelisted for large transfers")

	// ErrNoPendingWithdrawal occurs when executing or cancelling without a
	// scheduled withdrawal in place.
	ErrNoPendingWithdrawal = errors.New("no pending withdrawal")

	// ErrInvalidTimeWindow occurs when a withdrawal is executed before its
	// release time or after the execution window has closed.
	ErrInvalidTimeWindow = errors.New("outside withdrawal execution window")

	// ErrArrayMismatch occurs when a batch transfer's recipient and amount
	// lists differ in length.
	ErrArrayMismatch = errors.New("recipients and amounts length mismatch")

	// ErrReentrantCall occurs when a guarded operation is invoked while
	// another guarded operation is still in flight.
	ErrReentrantCall = errors.New("reentrant call rejected")

	// ErrExternalTransferFailed occurs when the settlement rail or token
	// network rejects an outbound call. Internal state has been restored.
	ErrExternalTransferFailed = errors.New("external transfer failed")
)
