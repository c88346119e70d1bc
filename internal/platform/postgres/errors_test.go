package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/pantry-api/internal/platform/postgres"
	"github.com/phrazzld/pantry-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		Detail:         "error details",
		SchemaName:     "public",
		TableName:      "documents",
		ColumnName:     "data",
		ConstraintName: "documents_data_check",
	}
}

// MockResult implements sql.Result for testing
type MockResult struct {
	rowsAffected int64
	err          error
}

func (m MockResult) LastInsertId() (int64, error) {
	return 0, m.err
}

func (m MockResult) RowsAffected() (int64, error) {
	return m.rowsAffected, m.err
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "no rows", err: sql.ErrNoRows, sentinel: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), sentinel: store.ErrDuplicate},
		{name: "check violation", err: newPgError("23514"), sentinel: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), sentinel: store.ErrInvalidEntity},
		{name: "malformed uuid", err: newPgError("22P02"), sentinel: store.ErrInvalidID},
		{name: "wrapped unique violation", err: fmt.Errorf("exec: %w", newPgError("23505")), sentinel: store.ErrDuplicate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.MapError(tt.err)

			assert.ErrorIs(t, result, tt.sentinel)

			var pgErr *pgconn.PgError
			assert.False(t, errors.As(result, &pgErr),
				"PostgreSQL error details should not be accessible in mapped error")
		})
	}
}

func TestMapError_PassThrough(t *testing.T) {
	t.Parallel()

	assert.Nil(t, postgres.MapError(nil))

	generic := errors.New("connection reset")
	assert.Same(t, generic, postgres.MapError(generic))

	unmapped := newPgError("40001")
	assert.Same(t, unmapped, postgres.MapError(unmapped))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "non-postgres error", err: errors.New("generic error"), expected: false},
		{name: "unique violation", err: newPgError("23505"), expected: true},
		{name: "check violation", err: newPgError("23514"), expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, postgres.IsUniqueViolation(tt.err))
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("generic error"), expected: false},
		{name: "sql.ErrNoRows", err: sql.ErrNoRows, expected: true},
		{name: "store.ErrNotFound", err: store.ErrNotFound, expected: true},
		{name: "document not found", err: store.ErrDocumentNotFound, expected: true},
		{name: "wrapped store.ErrNotFound", err: fmt.Errorf("wrapped: %w", store.ErrNotFound), expected: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, postgres.IsNotFoundError(tt.err))
		})
	}
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		result      sql.Result
		expectedErr error
		wantErr     bool
	}{
		{name: "nil result", result: nil, wantErr: true},
		{name: "one row", result: MockResult{rowsAffected: 1}},
		{name: "no rows", result: MockResult{rowsAffected: 0}, expectedErr: store.ErrDocumentNotFound, wantErr: true},
		{name: "driver error", result: MockResult{err: errors.New("unsupported")}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := postgres.CheckRowsAffected(tt.result)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}
