package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type migration struct {
	version string
	ddl     string
}

// Schema statements are idempotent and versioned; new ones append to the
// end and are applied in order on startup.
var migrations = []migration{
	{
		version: "0001_depositors",
		ddl: `
CREATE TABLE IF NOT EXISTS depositors (
    address     UUID PRIMARY KEY,
    handle      TEXT NOT NULL UNIQUE,
    secret_hash BYTEA NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		version: "0002_vault_accounts",
		ddl: `
CREATE TABLE IF NOT EXISTS vault_accounts (
    address            TEXT PRIMARY KEY,
    balance            BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
    usage_day          BIGINT NOT NULL DEFAULT 0,
    usage_consumed     BIGINT NOT NULL DEFAULT 0,
    pending_reference  TEXT,
    pending_amount     BIGINT,
    pending_release_at TIMESTAMPTZ,
    whitelisted        BOOLEAN NOT NULL DEFAULT FALSE,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		version: "0003_vault_state",
		ddl: `
CREATE TABLE IF NOT EXISTS vault_state (
    id            INT PRIMARY KEY CHECK (id = 1),
    pool_balance  BIGINT NOT NULL DEFAULT 0 CHECK (pool_balance >= 0),
    owner_account TEXT NOT NULL DEFAULT '',
    paused        BOOLEAN NOT NULL DEFAULT FALSE
);
INSERT INTO vault_state (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
	},
}

// RunMigrations applies any schema migrations not yet recorded in
// schema_migrations. Each migration runs in its own transaction.
func RunMigrations(ctx context.Context, db *pgxpool.Pool) error {
	const ledgerDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := db.Exec(ctx, ledgerDDL); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := db.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = $1`, m.version).Scan(&count); err != nil {
			return fmt.Errorf("check migration %q: %w", m.version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx for migration %q: %w", m.version, err)
		}
		if _, err := tx.Exec(ctx, m.ddl); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("apply migration %q: %w", m.version, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.version); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %q: %w", m.version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %q: %w", m.version, err)
		}
	}
	return nil
}
