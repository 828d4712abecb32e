package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists custody state in PostgreSQL. Each mutation is a
// single guarded statement so balance checks and updates cannot interleave.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed store implementation.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Balance returns the balance for the given account, zero when the account
// has never been touched.
func (s *PostgresStore) Balance(ctx context.Context, account string) (int64, error) {
	const query = `SELECT balance FROM vault_accounts WHERE address = $1`
	var balance int64
	if err := s.db.QueryRow(ctx, query, account).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

// Credit adds to the account balance, creating the account row on first use.
func (s *PostgresStore) Credit(ctx context.Context, account string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	const query = `
        INSERT INTO vault_accounts (address, balance) VALUES ($1, $2)
        ON CONFLICT (address) DO UPDATE
            SET balance = vault_accounts.balance + EXCLUDED.balance, updated_at = now()
        RETURNING balance`
	var balance int64
	if err := s.db.QueryRow(ctx, query, account, amount).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// Debit subtracts from the account balance. The WHERE guard makes the
// check-and-subtract atomic; a missing or short account yields no row.
func (s *PostgresStore) Debit(ctx context.Context, account string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	const query = `
        UPDATE vault_accounts
        SET balance = balance - $2, updated_at = now()
        WHERE address = $1 AND balance >= $2
        RETURNING balance`
	var balance int64
	if err := s.db.QueryRow(ctx, query, account, amount).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInsufficientBalance
		}
		return 0, err
	}
	return balance, nil
}

// Pool returns the custody pool total.
func (s *PostgresStore) Pool(ctx context.Context) (int64, error) {
	const query = `SELECT pool_balance FROM vault_state WHERE id = 1`
	var pool int64
	if err := s.db.QueryRow(ctx, query).Scan(&pool); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return pool, nil
}

// CreditPool adds to the custody pool total.
func (s *PostgresStore) CreditPool(ctx context.Context, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	const query = `
        INSERT INTO vault_state (id, pool_balance) VALUES (1, $1)
        ON CONFLICT (id) DO UPDATE
            SET pool_balance = vault_state.pool_balance + EXCLUDED.pool_balance
        RETURNING pool_balance`
	var pool int64
	if err := s.db.QueryRow(ctx, query, amount).Scan(&pool); err != nil {
		return 0, err
	}
	return pool, nil
}

// DebitPool subtracts from the custody pool total, failing when the pool
// cannot cover the amount.
func (s *PostgresStore) DebitPool(ctx context.Context, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	const query = `
        UPDATE vault_state
        SET pool_balance = pool_balance - $1
        WHERE id = 1 AND pool_balance >= $1
        RETURNING pool_balance`
	var pool int64
	if err := s.db.QueryRow(ctx, query, amount).Scan(&pool); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInsufficientPoolBalance
		}
		return 0, err
	}
	return pool, nil
}

// Usage returns the daily allowance usage for the account, zero values when
// the account has never withdrawn.
func (s *PostgresStore) Usage(ctx context.Context, account string) (Usage, error) {
	const query = `SELECT usage_day, usage_consumed FROM vault_accounts WHERE address = $1`
	var usage Usage
	if err := s.db.QueryRow(ctx, query, account).Scan(&usage.Day, &usage.Consumed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Usage{}, nil
		}
		return Usage{}, err
	}
	return usage, nil
}

// PutUsage stores the daily allowance usage for the account.
func (s *PostgresStore) PutUsage(ctx context.Context, account string, usage Usage) error {
	const query = `
        INSERT INTO vault_accounts (address, usage_day, usage_consumed) VALUES ($1, $2, $3)
        ON CONFLICT (address) DO UPDATE
            SET usage_day = EXCLUDED.usage_day, usage_consumed = EXCLUDED.usage_consumed, updated_at = now()`
	_, err := s.db.Exec(ctx, query, account, usage.Day, usage.Consumed)
	return err
}

// Pending returns the account's in-flight withdrawal, if any.
func (s *PostgresStore) Pending(ctx context.Context, account string) (Pending, bool, error) {
	const query = `
        SELECT pending_reference, pending_amount, pending_release_at
        FROM vault_accounts
        WHERE address = $1 AND pending_reference IS NOT NULL`
	var pending Pending
	if err := s.db.QueryRow(ctx, query, account).Scan(&pending.Reference, &pending.Amount, &pending.ReleaseAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Pending{}, false, nil
		}
		return Pending{}, false, err
	}
	return pending, true, nil
}

// PutPending stores the account's in-flight withdrawal, replacing any
// previous one.
func (s *PostgresStore) PutPending(ctx context.Context, account string, pending Pending) error {
	const query = `
        INSERT INTO vault_accounts (address, pending_reference, pending_amount, pending_release_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (address) DO UPDATE
            SET pending_reference = EXCLUDED.pending_reference,
                pending_amount = EXCLUDED.pending_amount,
                pending_release_at = EXCLUDED.pending_release_at,
                updated_at = now()`
	_, err := s.db.Exec(ctx, query, account, pending.Reference, pending.Amount, pending.ReleaseAt)
	return err
}

// DeletePending clears the account's in-flight withdrawal. Clearing an
// account with no pending withdrawal is a no-op.
func (s *PostgresStore) DeletePending(ctx context.Context, account string) error {
	const query = `
        UPDATE vault_accounts
        SET pending_reference = NULL, pending_amount = NULL, pending_release_at = NULL, updated_at = now()
        WHERE address = $1`
	_, err := s.db.Exec(ctx, query, account)
	return err
}

// Whitelisted reports whether the account may receive transfers above the
// review threshold.
func (s *PostgresStore) Whitelisted(ctx context.Context, account string) (bool, error) {
	const query = `SELECT whitelisted FROM vault_accounts WHERE address = $1`
	var allowed bool
	if err := s.db.QueryRow(ctx, query, account).Scan(&allowed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return allowed, nil
}

// SetWhitelisted flags or unflags the account as an approved recipient.
func (s *PostgresStore) SetWhitelisted(ctx context.Context, account string, allowed bool) error {
	const query = `
        INSERT INTO vault_accounts (address, whitelisted) VALUES ($1, $2)
        ON CONFLICT (address) DO UPDATE
            SET whitelisted = EXCLUDED.whitelisted, updated_at = now()`
	_, err := s.db.Exec(ctx, query, account, allowed)
	return err
}

// State returns the vault-wide administrative state.
func (s *PostgresStore) State(ctx context.Context) (State, error) {
	const query = `SELECT owner_account, paused FROM vault_state WHERE id = 1`
	var state State
	if err := s.db.QueryRow(ctx, query).Scan(&state.Owner, &state.Paused); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return State{}, nil
		}
		return State{}, err
	}
	return state, nil
}

// PutState stores the vault-wide administrative state.
func (s *PostgresStore) PutState(ctx context.Context, state State) error {
	const query = `
        INSERT INTO vault_state (id, owner_account, paused) VALUES (1, $1, $2)
        ON CONFLICT (id) DO UPDATE
            SET owner_account = EXCLUDED.owner_account, paused = EXCLUDED.paused`
	_, err := s.db.Exec(ctx, query, state.Owner, state.Paused)
	return err
}
