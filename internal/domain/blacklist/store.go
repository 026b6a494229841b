package blacklist

import "context"

// Store defines the contract for persisting and querying blacklist entries.
// Implementations live in infra/store/ (MySQL and Postgres) and are selected
// once at startup; the service only ever sees this interface.
type Store interface {
	// Insert persists one blacklist entry. It returns *common.ConflictError
	// exactly when the backend reports a uniqueness violation for
	// (tenantID, email), and *common.StoreError for any other failure.
	// Duplicate detection relies entirely on the backend's unique
	// constraint, which keeps concurrent inserts of the same pair safe.
	Insert(ctx context.Context, tenantID int64, email, reason string) error

	// Exists reports whether at least one entry matches (tenantID, email).
	// Zero matching rows is the false result, not an error.
	Exists(ctx context.Context, tenantID int64, email string) (bool, error)
}
