package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashlearn/internal/store"
)

// SQLSTATE codes for integrity constraint violations.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeNotNullViolation    = "23502"
)

type constraintMapping struct {
	sentinel error
	kind     string
}

var constraintErrors = map[string]constraintMapping{
	CodeUniqueViolation:     {store.ErrDuplicate, "unique violation"},
	CodeForeignKeyViolation: {store.ErrInvalidEntity, "foreign key violation"},
	CodeCheckViolation:      {store.ErrInvalidEntity, "check constraint violation"},
	CodeNotNullViolation:    {store.ErrInvalidEntity, "not null violation"},
}

// SQLState returns the PostgreSQL error code in err's chain, or "".
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// MapError translates driver errors into store sentinels. The driver error
// stays in the message for logs; unmapped errors are returned as is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	mapping, ok := constraintErrors[pgErr.Code]
	if !ok {
		return err
	}
	detail := pgErr.ConstraintName
	if pgErr.Code == CodeNotNullViolation {
		detail = pgErr.ColumnName
	}
	return fmt.Errorf("%w: %s (%s): %v", mapping.sentinel, mapping.kind, detail, err)
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return SQLState(err) == CodeUniqueViolation
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
// A nil notFound falls back to store.ErrNotFound.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if notFound == nil {
		return store.ErrNotFound
	}
	return notFound
}

// MapUniqueViolation replaces a unique violation with specific, keeping the
// driver error in the message. Other errors are returned unchanged.
func MapUniqueViolation(err error, specific error) error {
	if !IsUniqueViolation(err) {
		return err
	}
	return fmt.Errorf("%w: %v", specific, err)
}
