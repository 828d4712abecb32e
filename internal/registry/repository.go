package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrHandleTaken is returned when a handle is already registered.
	ErrHandleTaken = errors.New("handle already registered")
	// ErrNotFound is returned when no depositor matches the lookup.
	ErrNotFound = errors.New("depositor not found")
)

// Repository persists depositors.
type Repository interface {
	Create(ctx context.Context, depositor Depositor) error
	FindByHandle(ctx context.Context, handle string) (Depositor, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed depositor repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new depositor. Handle uniqueness is enforced by the
// table, so a conflicting insert reports ErrHandleTaken rather than a
// driver error.
func (r *PostgresRepository) Create(ctx context.Context, depositor Depositor) error {
	address, err := uuid.Parse(depositor.Address)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `INSERT INTO depositors (address, handle, secret_hash, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (handle) DO NOTHING`,
		address, depositor.Handle, depositor.SecretHash, depositor.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrHandleTaken
	}
	return nil
}

// FindByHandle fetches a depositor by handle.
func (r *PostgresRepository) FindByHandle(ctx context.Context, handle string) (Depositor, error) {
	row := r.db.QueryRow(ctx, `SELECT address, handle, secret_hash, created_at FROM depositors WHERE handle = $1`, handle)
	var (
		address   uuid.UUID
		createdAt time.Time
		depositor Depositor
	)
	if err := row.Scan(&address, &depositor.Handle, &depositor.SecretHash, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Depositor{}, ErrNotFound
		}
		return Depositor{}, err
	}
	depositor.Address = address.String()
	depositor.CreatedAt = createdAt.UTC()
	return depositor, nil
}
