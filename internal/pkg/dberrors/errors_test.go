package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "accounts_email_key"}

	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", dup), "accounts_email_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "verified_students_student_id_key"))
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "23503", ConstraintName: "accounts_email_key"}, "accounts_email_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "accounts_email_key"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: UniqueViolation, ConstraintName: "users_pkey"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: ForeignKeyViolation}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsInvalidTextRepresentation(t *testing.T) {
	badID := &pgconn.PgError{Code: InvalidTextRepresentation, Message: `invalid input syntax for type uuid: "not-a-uuid"`}

	assert.True(t, IsInvalidTextRepresentation(badID))
	assert.True(t, IsInvalidTextRepresentation(fmt.Errorf("select: %w", badID)))
	assert.False(t, IsInvalidTextRepresentation(&pgconn.PgError{Code: UniqueViolation}))
	assert.False(t, IsInvalidTextRepresentation(errors.New("boom")))
}
