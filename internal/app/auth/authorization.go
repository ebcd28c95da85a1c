package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// AuthorizationService handles ownership checks on user-submitted records
type AuthorizationService struct {
	feedbackRepo repositories.IFeedbackRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(feedbackRepo repositories.IFeedbackRepository) *AuthorizationService {
	return &AuthorizationService{
		feedbackRepo: feedbackRepo,
	}
}

// CanDeleteFeedback reports whether viewerID may delete the feedback. Anonymous
// records (empty submitter) can never be deleted by a viewer.
func CanDeleteFeedback(viewerID string, feedback *models.Feedback) bool {
	return viewerID != "" && feedback != nil && feedback.SubmitterID != "" && feedback.SubmitterID == viewerID
}

// ValidateFeedbackOwnership loads the feedback and returns it if viewerID
// submitted it, or ErrFeedbackNotOwned otherwise.
func (s *AuthorizationService) ValidateFeedbackOwnership(ctx context.Context, feedbackID, viewerID string) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFeedbackNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Str("feedbackID", feedbackID).Msg("Error getting feedback for ownership check")
		return nil, fmt.Errorf("failed to check feedback ownership: %w", err)
	}

	if !CanDeleteFeedback(viewerID, feedback) {
		logger.Warn().Str("feedbackID", feedbackID).Str("viewerID", viewerID).Msg("Feedback ownership check failed")
		return nil, apperrors.ErrFeedbackNotOwned
	}
	return feedback, nil
}
