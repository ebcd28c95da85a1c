package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/dberrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// IVerifiedStudentRepository defines storage for claimed student IDs
type IVerifiedStudentRepository interface {
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	Create(ctx context.Context, student *models.VerifiedStudent) error
}

// VerifiedStudentRepository handles the 'verified_students' table
type VerifiedStudentRepository struct {
	db DBTX
}

// NewVerifiedStudentRepository creates a new VerifiedStudentRepository
func NewVerifiedStudentRepository(db DBTX) *VerifiedStudentRepository {
	return &VerifiedStudentRepository{db: db}
}

// ExistsByStudentID checks if the student ID has already been claimed
func (r *VerifiedStudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM verified_students WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student id: %w", err)
	}
	return exists, nil
}

// Create records a verification. A concurrent duplicate loses on the unique
// constraint and gets ErrStudentIDAlreadyExists.
func (r *VerifiedStudentRepository) Create(ctx context.Context, student *models.VerifiedStudent) error {
	query := `
		INSERT INTO verified_students (id, school, student_id, verified_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, student.ID, student.School, student.StudentID, student.VerifiedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "verified_students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error creating verified student")
		return fmt.Errorf("error creating verified student: %w", err)
	}
	return nil
}
