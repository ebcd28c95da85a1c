package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/navigation"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/logger"
	"github.com/yigit/camnote/internal/pkg/validation"
)

// VerificationService records school affiliation claims
type VerificationService interface {
	Verify(ctx context.Context, req *dto.VerificationRequest) (*dto.RedirectResponse, error)
}

type verificationServiceImpl struct {
	repo       repositories.IVerifiedStudentRepository
	schoolName string
	now        func() time.Time
}

// NewVerificationService creates a new VerificationService for one school
func NewVerificationService(repo repositories.IVerifiedStudentRepository, schoolName string) VerificationService {
	return &verificationServiceImpl{
		repo:       repo,
		schoolName: strings.TrimSpace(schoolName),
		now:        time.Now,
	}
}

// Verify checks school and student id, then claims the id
func (s *verificationServiceImpl) Verify(ctx context.Context, req *dto.VerificationRequest) (*dto.RedirectResponse, error) {
	school := strings.TrimSpace(req.School)
	if school != s.schoolName {
		return nil, apperrors.ErrSchoolNotFound
	}

	studentID := strings.TrimSpace(req.StudentID)
	if !validation.IsValidStudentID(studentID) {
		return nil, apperrors.ErrInvalidStudentID
	}

	exists, err := s.repo.ExistsByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student id: %w", err)
	}
	if exists {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}

	err = s.repo.Create(ctx, &models.VerifiedStudent{
		ID:         uuid.New().String(),
		School:     school,
		StudentID:  studentID,
		VerifiedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("studentID", studentID).Msg("Student affiliation verified")
	return &dto.RedirectResponse{Redirect: navigation.PathLogin}, nil
}
