package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bouncelist/internal/common"
	"bouncelist/internal/domain/blacklist"

	"github.com/go-sql-driver/mysql"
)

// MySQL error number for a duplicate entry on a unique key.
const mysqlDuplicateEntry = 1062

var _ blacklist.Store = (*MySQLStore)(nil)

// MySQLStore implements blacklist.Store against MySQL via database/sql.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a pooled MySQL connection and verifies it.
func NewMySQLStore(ctx context.Context, dsn string, maxOpenConns int) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening mysql connection: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging mysql: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// NewMySQLStoreWithDB wraps an existing handle. Used by tests.
func NewMySQLStoreWithDB(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// Insert persists one blacklist entry. A duplicate (tenant_id, email) pair
// is reported by the backend's unique key and mapped to a ConflictError.
func (s *MySQLStore) Insert(ctx context.Context, tenantID int64, email, reason string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blacklist (tenant_id, email, reason) VALUES (?, ?, ?)`,
		tenantID, email, reason,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return common.NewConflictError(tenantID, email)
		}
		return common.NewStoreError("inserting blacklist entry", err)
	}
	return nil
}

// Exists reports whether (tenantID, email) is blacklisted.
func (s *MySQLStore) Exists(ctx context.Context, tenantID int64, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM blacklist WHERE tenant_id = ? AND email = ?)`,
		tenantID, email,
	).Scan(&exists)
	if err != nil {
		return false, common.NewStoreError("querying blacklist entry", err)
	}
	return exists, nil
}

// Close closes the connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
