// Package dberrors classifies Postgres errors returned through pgx.
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories react to
const (
	UniqueViolation           = "23505"
	ForeignKeyViolation       = "23503"
	InvalidTextRepresentation = "22P02"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}
	return pgErr, true
}

// IsUniqueViolation reports whether err is any unique_violation
func IsUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == UniqueViolation
}

// IsDuplicateConstraintError reports whether err is a unique_violation of the named constraint
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == UniqueViolation && pgErr.ConstraintName == constraintName
}

// IsInvalidTextRepresentation reports whether Postgres rejected a value that
// cannot be cast to the column type, e.g. a non-UUID string for a UUID key.
func IsInvalidTextRepresentation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == InvalidTextRepresentation
}
