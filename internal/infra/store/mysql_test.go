package store

import (
	"context"
	"errors"
	"testing"

	"bouncelist/internal/common"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newMockStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewMySQLStoreWithDB(db), mock
}

const (
	insertQuery = `INSERT INTO blacklist (tenant_id, email, reason) VALUES (?, ?, ?)`
	existsQuery = `SELECT EXISTS(SELECT 1 FROM blacklist WHERE tenant_id = ? AND email = ?)`
)

func TestMySQLInsert_Success(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(insertQuery).
		WithArgs(int64(7), "a@x.com", "reason").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := s.Insert(context.Background(), 7, "a@x.com", "reason"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMySQLInsert_DuplicateMapsToConflict(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(insertQuery).
		WithArgs(int64(7), "a@x.com", "reason").
		WillReturnError(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry '7-a@x.com' for key 'uq_blacklist_tenant_email'",
		})

	err := s.Insert(context.Background(), 7, "a@x.com", "reason")

	var conflict *common.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Insert() error = %v, want ConflictError", err)
	}
	if conflict.TenantID != 7 || conflict.Email != "a@x.com" {
		t.Errorf("conflict = %+v", conflict)
	}
}

func TestMySQLInsert_OtherErrorMapsToStoreError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(insertQuery).
		WithArgs(int64(7), "a@x.com", "reason").
		WillReturnError(errors.New("connection reset by peer"))

	err := s.Insert(context.Background(), 7, "a@x.com", "reason")

	var storeErr *common.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("Insert() error = %v, want StoreError", err)
	}
	var conflict *common.ConflictError
	if errors.As(err, &conflict) {
		t.Error("non-duplicate failures must not map to ConflictError")
	}
}

func TestMySQLExists(t *testing.T) {
	tests := []struct {
		name string
		rows bool
		want bool
	}{
		{"match found", true, true},
		{"no match is false not error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)

			mock.ExpectQuery(existsQuery).
				WithArgs(int64(7), "a@x.com").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.rows))

			got, err := s.Exists(context.Background(), 7, "a@x.com")
			if err != nil {
				t.Fatalf("Exists() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMySQLExists_QueryError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(existsQuery).
		WithArgs(int64(7), "a@x.com").
		WillReturnError(errors.New("server has gone away"))

	_, err := s.Exists(context.Background(), 7, "a@x.com")

	var storeErr *common.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("Exists() error = %v, want StoreError", err)
	}
}
