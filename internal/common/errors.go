package common

import "fmt"

// ConflictError indicates a blacklist entry already exists for a
// (tenant, email) pair. Raised only when the storage backend reports a
// uniqueness violation, never from a pre-check.
type ConflictError struct {
	TenantID int64
	Email    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("email '%s' is already blacklisted for tenant %d", e.Email, e.TenantID)
}

// NewConflictError creates a new ConflictError.
func NewConflictError(tenantID int64, email string) *ConflictError {
	return &ConflictError{TenantID: tenantID, Email: email}
}

// StoreError indicates a storage backend failure (connectivity, timeout,
// failed query). It wraps the underlying driver error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// ValidationError indicates invalid input data.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// UnauthorizedError indicates missing or invalid authentication.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// NewUnauthorizedError creates a new UnauthorizedError.
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}
