package store

import (
	"context"
	"errors"
	"fmt"

	"bouncelist/internal/common"
	"bouncelist/internal/domain/blacklist"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

var _ blacklist.Store = (*PostgresStore)(nil)

// PostgresStore implements blacklist.Store against PostgreSQL via pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore builds a pgx connection pool from the DSN and verifies it.
func NewPostgresStore(ctx context.Context, dsn string, maxConns int) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Insert persists one blacklist entry, mapping the backend's unique
// constraint violation to a ConflictError.
func (s *PostgresStore) Insert(ctx context.Context, tenantID int64, email, reason string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO blacklist (tenant_id, email, reason) VALUES ($1, $2, $3)`,
		tenantID, email, reason,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return common.NewConflictError(tenantID, email)
		}
		return common.NewStoreError("inserting blacklist entry", err)
	}
	return nil
}

// Exists reports whether (tenantID, email) is blacklisted.
func (s *PostgresStore) Exists(ctx context.Context, tenantID int64, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM blacklist WHERE tenant_id = $1 AND email = $2)`,
		tenantID, email,
	).Scan(&exists)
	if err != nil {
		return false, common.NewStoreError("querying blacklist entry", err)
	}
	return exists, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
