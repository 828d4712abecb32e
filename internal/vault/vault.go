// Package vault implements the custody engine: deposits, time-delayed
// withdrawals, whitelist-gated transfers, and owner administration over a
// pooled balance ledger.
package vault

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dagron78/custodyvault/internal/ledger"
	"github.com/dagron78/custodyvault/internal/logging"
	"github.com/dagron78/custodyvault/internal/money"
	"github.com/dagron78/custodyvault/internal/notification"
	"github.com/dagron78/custodyvault/internal/payout"
	"github.com/dagron78/custodyvault/internal/token"
)

// Receipt summarizes a completed custody operation. Amount and Balance are
// minor units; ReleaseAt is set for scheduled withdrawals.
type Receipt struct {
	Reference string
	Account   string
	Amount    int64
	Balance   int64
	ReleaseAt time.Time
}

// BalanceView reports an account position. Coins is the truncated
// whole-coin reading; Minor is exact.
type BalanceView struct {
	Account string
	Minor   int64
	Coins   int64
}

// PendingView reports an account's scheduled withdrawal and its execution
// window.
type PendingView struct {
	Reference string
	Amount    int64
	ReleaseAt time.Time
	ExpiresAt time.Time
}

// StatusView reports vault-wide administrative state.
type StatusView struct {
	Owner     string
	Paused    bool
	PoolMinor int64
}

// Deps bundles the engine's collaborators. Store is required; a nil
// Gateway, Tokens, or Clock falls back to the logging stubs and system
// time, and a nil Notifier disables event emission.
type Deps struct {
	Store    ledger.Store
	Gateway  payout.Gateway
	Tokens   token.Forwarder
	Notifier notification.Notifier
	Logger   *slog.Logger
	Clock    Clock
}

// Vault is the custody engine. The run lock serializes state mutation; the
// entry guard additionally spans outbound settlement calls, which the run
// lock must not, so that a call arriving back from the rail fails fast on
// the guard instead of deadlocking on the lock.
type Vault struct {
	store    ledger.Store
	gateway  payout.Gateway
	tokens   token.Forwarder
	notifier notification.Notifier
	logger   *slog.Logger
	clock    Clock
	policy   Policy
	limits   limiter

	run   sync.Mutex
	guard entryGuard
}

// New constructs the engine. Zero policy fields take the defaults. When the
// store carries no owner yet, initialOwner is recorded as the vault owner.
func New(ctx context.Context, deps Deps, policy Policy, initialOwner string) (*Vault, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("vault: store is required")
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Gateway == nil {
		deps.Gateway = payout.NewLogGateway(deps.Logger)
	}
	if deps.Tokens == nil {
		deps.Tokens = token.NewLogForwarder(deps.Logger)
	}
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}
	policy = policy.withDefaults()

	v := &Vault{
		store:    deps.Store,
		gateway:  deps.Gateway,
		tokens:   deps.Tokens,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		clock:    deps.Clock,
		policy:   policy,
		limits:   limiter{limit: policy.DailyLimit},
	}

	state, err := v.store.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vault state: %w", err)
	}
	if state.Owner == "" && initialOwner != "" {
		state.Owner = initialOwner
		if err := v.store.PutState(ctx, state); err != nil {
			return nil, fmt.Errorf("seed vault owner: %w", err)
		}
	}
	return v, nil
}

// Deposit credits amountMinor to the account and the custody pool. Zero is
// a valid no-op deposit.
func (v *Vault) Deposit(ctx context.Context, account string, amountMinor int64) (Receipt, error) {
	if err := v.requireActive(ctx); err != nil {
		return Receipt{}, err
	}
	if amountMinor < 0 {
		return Receipt{}, ErrInvalidAmount
	}

	receipt, err := v.creditDeposit(ctx, account, amountMinor)
	if err != nil {
		return Receipt{}, err
	}
	v.notify(ctx, notification.KindDeposit, account,
		fmt.Sprintf("deposited %s coins", money.FormatCoins(amountMinor)))
	return receipt, nil
}

func (v *Vault) creditDeposit(ctx context.Context, account string, amountMinor int64) (Receipt, error) {
	v.run.Lock()
	defer v.run.Unlock()

	balance, err := v.store.Credit(ctx, account, amountMinor)
	if err != nil {
		return Receipt{}, err
	}
	if _, err := v.store.CreditPool(ctx, amountMinor); err != nil {
		v.compensateDebit(ctx, account, amountMinor)
		return Receipt{}, err
	}
	return Receipt{Reference: uuid.NewString(), Account: account, Amount: amountMinor, Balance: balance}, nil
}

// RequestWithdrawal schedules a delayed withdrawal of amountCoins whole
// coins. The amount is debited immediately and held until executed or
// cancelled. A prior scheduled withdrawal is silently replaced; its debit
// stays withheld until the account cancels.
func (v *Vault) RequestWithdrawal(ctx context.Context, account string, amountCoins int64) (Receipt, error) {
	if err := v.requireActive(ctx); err != nil {
		return Receipt{}, err
	}
	if !v.guard.enter() {
		return Receipt{}, ErrReentrantCall
	}
	defer v.guard.exit()

	if amountCoins <= 0 {
		return Receipt{}, ErrInvalidAmount
	}
	amountMinor, err := money.FromCoins(amountCoins)
	if err != nil {
		return Receipt{}, err
	}

	receipt, err := v.scheduleWithdrawal(ctx, account, amountMinor)
	if err != nil {
		return Receipt{}, err
	}
	v.notify(ctx, notification.KindWithdrawalRequested, account,
		fmt.Sprintf("withdrawal of %s coins releases at %s", money.FormatCoins(amountMinor), receipt.ReleaseAt.Format(time.RFC3339)))
	return receipt, nil
}

func (v *Vault) scheduleWithdrawal(ctx context.Context, account string, amountMinor int64) (Receipt, error) {
	v.run.Lock()
	defer v.run.Unlock()

	balance, err := v.store.Balance(ctx, account)
	if err != nil {
		return Receipt{}, err
	}
	if balance < amountMinor {
		return Receipt{}, ledger.ErrInsufficientBalance
	}

	now := v.clock.Now()
	usage, err := v.store.Usage(ctx, account)
	if err != nil {
		return Receipt{}, err
	}
	reserved, err := v.limits.reserve(usage, amountMinor, v.policy.DayIndex(now))
	if err != nil {
		return Receipt{}, err
	}

	remaining, err := v.store.Debit(ctx, account, amountMinor)
	if err != nil {
		return Receipt{}, err
	}
	if err := v.store.PutUsage(ctx, account, reserved); err != nil {
		v.compensateCredit(ctx, account, amountMinor)
		return Receipt{}, err
	}

	pending := ledger.Pending{
		Reference: uuid.NewString(),
		Amount:    amountMinor,
		ReleaseAt: now.Add(v.policy.WithdrawalDelay),
	}
	if err := v.store.PutPending(ctx, account, pending); err != nil {
		v.compensateUsage(ctx, account, usage)
		v.compensateCredit(ctx, account, amountMinor)
		return Receipt{}, err
	}
	return Receipt{
		Reference: pending.Reference,
		Account:   account,
		Amount:    amountMinor,
		Balance:   remaining,
		ReleaseAt: pending.ReleaseAt,
	}, nil
}

// ExecuteWithdrawal pays out the account's scheduled withdrawal. It is
// valid only within the closed interval [ReleaseAt, ReleaseAt+Window]; a
// withdrawal left past the window must be cancelled and re-requested.
func (v *Vault) ExecuteWithdrawal(ctx context.Context, account string) (Receipt, error) {
	if err := v.requireActive(ctx); err != nil {
		return Receipt{}, err
	}
	if !v.guard.enter() {
		return Receipt{}, ErrReentrantCall
	}
	defer v.guard.exit()

	pending, err := v.takePendingForPayout(ctx, account)
	if err != nil {
		return Receipt{}, err
	}

	payment := payout.Payment{To: account, Amount: pending.Amount, Reference: pending.Reference}
	if err := v.gateway.Send(ctx, payment); err != nil {
		v.run.Lock()
		v.compensateCreditPool(ctx, pending.Amount)
		v.compensatePending(ctx, account, pending)
		v.run.Unlock()
		return Receipt{}, fmt.Errorf("%w: %v", ErrExternalTransferFailed, err)
	}

	v.notify(ctx, notification.KindWithdrawalExecuted, account,
		fmt.Sprintf("withdrawal of %s coins paid out", money.FormatCoins(pending.Amount)))
	balance, err := v.store.Balance(ctx, account)
	if err != nil {
		balance = 0
	}
	return Receipt{Reference: pending.Reference, Account: account, Amount: pending.Amount, Balance: balance}, nil
}

// takePendingForPayout validates the execution window, then clears the
// pending slot and debits the pool. Clearing before any value leaves
// custody is what makes double-execution impossible even if the rail calls
// back in.
func (v *Vault) takePendingForPayout(ctx context.Context, account string) (ledger.Pending, error) {
	v.run.Lock()
	defer v.run.Unlock()

	pending, ok, err := v.store.Pending(ctx, account)
	if err != nil {
		return ledger.Pending{}, err
	}
	if !ok || pending.Amount <= 0 {
		return ledger.Pending{}, ErrNoPendingWithdrawal
	}
	now := v.clock.Now()
	if now.Before(pending.ReleaseAt) || now.After(pending.ReleaseAt.Add(v.policy.ExecutionWindow)) {
		return ledger.Pending{}, ErrInvalidTimeWindow
	}

	if err := v.store.DeletePending(ctx, account); err != nil {
		return ledger.Pending{}, err
	}
	if _, err := v.store.DebitPool(ctx, pending.Amount); err != nil {
		v.compensatePending(ctx, account, pending)
		return ledger.Pending{}, err
	}
	return pending, nil
}

// CancelWithdrawal clears the account's scheduled withdrawal, refunds the
// debited amount, and gives back the daily allowance reservation.
func (v *Vault) CancelWithdrawal(ctx context.Context, account string) (Receipt, error) {
	if err := v.requireActive(ctx); err != nil {
		return Receipt{}, err
	}

	receipt, err := v.refundPending(ctx, account)
	if err != nil {
		return Receipt{}, err
	}
	v.notify(ctx, notification.KindWithdrawalCancelled, account,
		fmt.Sprintf("withdrawal of %s coins cancelled and refunded", money.FormatCoins(receipt.Amount)))
	return receipt, nil
}

func (v *Vault) refundPending(ctx context.Context, account string) (Receipt, error) {
	v.run.Lock()
	defer v.run.Unlock()

	pending, ok, err := v.store.Pending(ctx, account)
	if err != nil {
		return Receipt{}, err
	}
	if !ok || pending.Amount <= 0 {
		return Receipt{}, ErrNoPendingWithdrawal
	}

	if err := v.store.DeletePending(ctx, account); err != nil {
		return Receipt{}, err
	}
	balance, err := v.store.Credit(ctx, account, pending.Amount)
	if err != nil {
		v.compensatePending(ctx, account, pending)
		return Receipt{}, err
	}

	// The refund stands even if the allowance release fails: the counter is
	// advisory and resets at the next rollover anyway.
	usage, err := v.store.Usage(ctx, account)
	if err == nil {
		err = v.store.PutUsage(ctx, account, v.limits.release(usage, pending.Amount))
	}
	if err != nil {
		v.logger.Error("daily allowance release failed", "account", account, "error", err)
	}

	return Receipt{Reference: pending.Reference, Account: account, Amount: pending.Amount, Balance: balance}, nil
}

// Balance reports the account position. Reads are allowed while paused.
func (v *Vault) Balance(ctx context.Context, account string) (BalanceView, error) {
	minor, err := v.store.Balance(ctx, account)
	if err != nil {
		return BalanceView{}, err
	}
	return BalanceView{Account: account, Minor: minor, Coins: money.ToCoins(minor)}, nil
}

// PendingWithdrawal reports the account's scheduled withdrawal, if any.
// Reads are allowed while paused.
func (v *Vault) PendingWithdrawal(ctx context.Context, account string) (PendingView, error) {
	pending, ok, err := v.store.Pending(ctx, account)
	if err != nil {
		return PendingView{}, err
	}
	if !ok || pending.Amount <= 0 {
		return PendingView{}, ErrNoPendingWithdrawal
	}
	return PendingView{
		Reference: pending.Reference,
		Amount:    pending.Amount,
		ReleaseAt: pending.ReleaseAt,
		ExpiresAt: pending.ReleaseAt.Add(v.policy.ExecutionWindow),
	}, nil
}

// Status reports vault-wide administrative state. Reads are allowed while
// paused.
func (v *Vault) Status(ctx context.Context) (StatusView, error) {
	state, err := v.store.State(ctx)
	if err != nil {
		return StatusView{}, err
	}
	pool, err := v.store.Pool(ctx)
	if err != nil {
		return StatusView{}, err
	}
	return StatusView{Owner: state.Owner, Paused: state.Paused, PoolMinor: pool}, nil
}

// Transfer sends amountCoins whole coins from the sender's balance to an
// external recipient. Amounts above the daily limit require the recipient
// to be whitelisted; smaller amounts go through unchecked.
func (v *Vault) Transfer(ctx context.Context, sender, recipient string, amountCoins int64) (Receipt, error) {
	if err := v.requireActive(ctx); err != nil {
		return Receipt{}, err
	}
	if !v.guard.enter() {
		return Receipt{}, ErrReentrantCall
	}
	defer v.guard.exit()

	if amountCoins <= 0 {
		return Receipt{}, ErrInvalidAmount
	}
	amountMinor, err := money.FromCoins(amountCoins)
	if err != nil {
		return Receipt{}, err
	}
	if err := v.authorize(ctx, recipient, amountMinor); err != nil {
		return Receipt{}, err
	}

	balance, err := v.reserveOutbound(ctx, sender, amountMinor)
	if err != nil {
		return Receipt{}, err
	}

	reference := uuid.NewString()
	if err := v.gateway.Send(ctx, payout.Payment{To: recipient, Amount: amountMinor, Reference: reference}); err != nil {
		v.run.Lock()
		v.compensateCredit(ctx, sender, amountMinor)
		v.compensateCreditPool(ctx, amountMinor)
		v.run.Unlock()
		return Receipt{}, fmt.Errorf("%w: %v", ErrExternalTransferFailed, err)
	}

	v.notify(ctx, notification.KindTransferSent, sender,
		fmt.Sprintf("sent %s coins to %s", money.FormatCoins(amountMinor), recipient))
	return Receipt{Reference: reference, Account: sender, Amount: amountMinor, Balance: balance}, nil
}

// authorize applies the recipient policy shared by direct and batch
// transfers: recipients must be named, and amounts above the daily limit
// require a whitelisted recipient. This is a size threshold, not a cap.
func (v *Vault) authorize(ctx context.Context, recipient string, amountMinor int64) error {
	if recipient == "" {
		return ErrInvalidRecipient
	}
	if amountMinor > v.policy.DailyLimit {
		allowed, err := v.store.Whitelisted(ctx, recipient)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrNotWhitelisted
		}
	}
	return nil
}

// reserveOutbound debits the sender and the custody pool as one step,
// undoing the balance debit when the pool cannot cover the amount.
func (v *Vault) reserveOutbound(ctx context.Context, sender string, amountMinor int64) (int64, error) {
	v.run.Lock()
	defer v.run.Unlock()

	balance, err := v.store.Debit(ctx, sender, amountMinor)
	if err != nil {
		return 0, err
	}
	if _, err := v.store.DebitPool(ctx, amountMinor); err != nil {
		v.compensateCredit(ctx, sender, amountMinor)
		return 0, err
	}
	return balance, nil
}

// BatchTransfer sends a list of minor unit amounts to the paired
// recipients. Entries settle through the rail as one atomic batch; any
// entry failure unwinds the whole call.
func (v *Vault) BatchTransfer(ctx context.Context, sender string, recipients []string, amountsMinor []int64) (Receipt, error) {
	if err := v.requireActive(ctx); err != nil {
		return Receipt{}, err
	}
	if !v.guard.enter() {
		return Receipt{}, ErrReentrantCall
	}
	defer v.guard.exit()

	if len(recipients) != len(amountsMinor) {
		return Receipt{}, ErrArrayMismatch
	}

	reference := uuid.NewString()
	payments, balance, err := v.reserveBatch(ctx, sender, reference, recipients, amountsMinor)
	if err != nil {
		return Receipt{}, err
	}

	var total int64
	for _, payment := range payments {
		total += payment.Amount
	}

	if len(payments) > 0 {
		if err := v.gateway.SendBatch(ctx, payments); err != nil {
			v.run.Lock()
			v.compensateCredit(ctx, sender, total)
			v.compensateCreditPool(ctx, total)
			v.run.Unlock()
			return Receipt{}, fmt.Errorf("%w: %v", ErrExternalTransferFailed, err)
		}
	}

	v.notify(ctx, notification.KindBatchTransferSent, sender,
		fmt.Sprintf("sent %d transfers totalling %s coins", len(payments), money.FormatCoins(total)))
	return Receipt{Reference: reference, Account: sender, Amount: total, Balance: balance}, nil
}

// reserveBatch walks the entries in order, debiting the sender and the pool
// alongside each one. Per entry the sender's current balance, already
// reduced by the prior entries, must cover the cumulative batch total so
// far. Any failure unwinds every debit made by earlier entries.
func (v *Vault) reserveBatch(ctx context.Context, sender, reference string, recipients []string, amounts []int64) ([]payout.Payment, int64, error) {
	v.run.Lock()
	defer v.run.Unlock()

	remaining, err := v.store.Balance(ctx, sender)
	if err != nil {
		return nil, 0, err
	}

	payments := make([]payout.Payment, 0, len(recipients))
	var cumulative int64
	var balanceDebited int64
	var poolDebited int64

	fail := func(cause error) ([]payout.Payment, int64, error) {
		if balanceDebited > 0 {
			v.compensateCredit(ctx, sender, balanceDebited)
		}
		if poolDebited > 0 {
			v.compensateCreditPool(ctx, poolDebited)
		}
		return nil, 0, cause
	}

	for i, recipient := range recipients {
		amount := amounts[i]
		if amount < 0 {
			return fail(ErrInvalidAmount)
		}
		if err := v.authorize(ctx, recipient, amount); err != nil {
			return fail(err)
		}
		cumulative, err = money.Add(cumulative, amount)
		if err != nil {
			return fail(err)
		}
		current, err := v.store.Balance(ctx, sender)
		if err != nil {
			return fail(err)
		}
		if current < cumulative {
			return fail(ledger.ErrInsufficientBalance)
		}

		remaining, err = v.store.Debit(ctx, sender, amount)
		if err != nil {
			return fail(err)
		}
		balanceDebited += amount
		if _, err := v.store.DebitPool(ctx, amount); err != nil {
			return fail(err)
		}
		poolDebited += amount

		payments = append(payments, payout.Payment{
			To:        recipient,
			Amount:    amount,
			Reference: fmt.Sprintf("%s/%d", reference, i),
		})
	}
	return payments, remaining, nil
}

// WithdrawToken sweeps amount of an externally held token to the vault
// owner. Token custody sits outside the native pool, so no ledger state
// moves; the call is still guarded because it hands control to an external
// system.
func (v *Vault) WithdrawToken(ctx context.Context, caller, tokenAddress string, amount int64) error {
	state, err := v.store.State(ctx)
	if err != nil {
		return err
	}
	if state.Paused {
		return ErrPaused
	}
	if state.Owner == "" || caller != state.Owner {
		return ErrUnauthorized
	}
	if !v.guard.enter() {
		return ErrReentrantCall
	}
	defer v.guard.exit()

	if tokenAddress == "" {
		return ErrInvalidRecipient
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := v.tokens.Transfer(ctx, tokenAddress, state.Owner, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalTransferFailed, err)
	}

	v.notify(ctx, notification.KindTokenWithdrawal, state.Owner,
		fmt.Sprintf("swept %d units of token %s to owner", amount, tokenAddress))
	return nil
}

// Pause halts all custody operations. Owner only; idempotent.
func (v *Vault) Pause(ctx context.Context, caller string) error {
	changed, err := v.setPaused(ctx, caller, true)
	if err != nil {
		return err
	}
	if changed {
		v.notify(ctx, notification.KindVaultPaused, caller, "custody operations halted")
	}
	return nil
}

// Unpause resumes custody operations. Owner only; idempotent.
func (v *Vault) Unpause(ctx context.Context, caller string) error {
	changed, err := v.setPaused(ctx, caller, false)
	if err != nil {
		return err
	}
	if changed {
		v.notify(ctx, notification.KindVaultUnpaused, caller, "custody operations resumed")
	}
	return nil
}

func (v *Vault) setPaused(ctx context.Context, caller string, paused bool) (bool, error) {
	v.run.Lock()
	defer v.run.Unlock()

	state, err := v.ownerState(ctx, caller)
	if err != nil {
		return false, err
	}
	if state.Paused == paused {
		return false, nil
	}
	state.Paused = paused
	if err := v.store.PutState(ctx, state); err != nil {
		return false, err
	}
	return true, nil
}

// SetWhitelisted flags or unflags an account as an approved recipient for
// transfers above the daily limit. Owner only.
func (v *Vault) SetWhitelisted(ctx context.Context, caller, account string, allowed bool) error {
	if account == "" {
		return ErrInvalidRecipient
	}
	if err := v.updateWhitelist(ctx, caller, account, allowed); err != nil {
		return err
	}
	v.notify(ctx, notification.KindWhitelistUpdated, account, fmt.Sprintf("whitelisted=%t", allowed))
	return nil
}

func (v *Vault) updateWhitelist(ctx context.Context, caller, account string, allowed bool) error {
	v.run.Lock()
	defer v.run.Unlock()

	if _, err := v.ownerState(ctx, caller); err != nil {
		return err
	}
	return v.store.SetWhitelisted(ctx, account, allowed)
}

// TransferOwnership hands the vault to a new owner account. Owner only.
func (v *Vault) TransferOwnership(ctx context.Context, caller, newOwner string) error {
	if newOwner == "" {
		return ErrInvalidRecipient
	}
	if err := v.replaceOwner(ctx, caller, newOwner); err != nil {
		return err
	}
	v.notify(ctx, notification.KindOwnershipTransferred, newOwner, fmt.Sprintf("ownership moved from %s", caller))
	return nil
}

func (v *Vault) replaceOwner(ctx context.Context, caller, newOwner string) error {
	v.run.Lock()
	defer v.run.Unlock()

	state, err := v.ownerState(ctx, caller)
	if err != nil {
		return err
	}
	state.Owner = newOwner
	return v.store.PutState(ctx, state)
}

func (v *Vault) requireActive(ctx context.Context) error {
	state, err := v.store.State(ctx)
	if err != nil {
		return err
	}
	if state.Paused {
		return ErrPaused
	}
	return nil
}

func (v *Vault) ownerState(ctx context.Context, caller string) (ledger.State, error) {
	state, err := v.store.State(ctx)
	if err != nil {
		return state, err
	}
	if state.Owner == "" || caller != state.Owner {
		return state, ErrUnauthorized
	}
	return state, nil
}

func (v *Vault) notify(ctx context.Context, kind, account, body string) {
	if v.notifier == nil {
		return
	}
	_ = v.notifier.Send(ctx, notification.Message{Kind: kind, Account: account, Body: body})
}

// Compensation helpers put state back after a failed step. A failure here
// leaves the store inconsistent and is logged at error level rather than
// masking the original failure.

func (v *Vault) compensateCredit(ctx context.Context, account string, amount int64) {
	if _, err := v.store.Credit(ctx, account, amount); err != nil {
		v.logger.Error("compensation failed: credit balance", "account", account, "amount", amount, "error", err)
	}
}

func (v *Vault) compensateDebit(ctx context.Context, account string, amount int64) {
	if _, err := v.store.Debit(ctx, account, amount); err != nil {
		v.logger.Error("compensation failed: debit balance", "account", account, "amount", amount, "error", err)
	}
}

func (v *Vault) compensateCreditPool(ctx context.Context, amount int64) {
	if _, err := v.store.CreditPool(ctx, amount); err != nil {
		v.logger.Error("compensation failed: credit pool", "amount", amount, "error", err)
	}
}

func (v *Vault) compensatePending(ctx context.Context, account string, pending ledger.Pending) {
	if err := v.store.PutPending(ctx, account, pending); err != nil {
		v.logger.Error("compensation failed: restore pending", "account", account, "reference", pending.Reference, "error", err)
	}
}

func (v *Vault) compensateUsage(ctx context.Context, account string, usage ledger.Usage) {
	if err := v.store.PutUsage(ctx, account, usage); err != nil {
		v.logger.Error("compensation failed: restore usage", "account", account, "error", err)
	}
}
