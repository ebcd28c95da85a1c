package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/camnote/internal/app/auth"
	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/email"
)

// FeedbackService handles the public feedback board and administrator replies
type FeedbackService interface {
	List(ctx context.Context, viewer *identity.Session) (*dto.FeedbackListResponse, error)
	Submit(ctx context.Context, viewer *identity.Session, req *dto.FeedbackRequest) (*dto.FeedbackItem, error)
	Delete(ctx context.Context, viewer *identity.Session, id string, confirmed bool) error
	AdminList(ctx context.Context) ([]dto.FeedbackItem, error)
	Respond(ctx context.Context, id, response string) (*dto.FeedbackItem, error)
}

type feedbackServiceImpl struct {
	feedbackRepo repositories.IFeedbackRepository
	authz        *auth.AuthorizationService
	mailer       email.EmailService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewFeedbackService creates a new FeedbackService. mailer may be nil.
func NewFeedbackService(feedbackRepo repositories.IFeedbackRepository, authz *auth.AuthorizationService, mailer email.EmailService, logger zerolog.Logger) FeedbackService {
	return &feedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		authz:        authz,
		mailer:       mailer,
		logger:       logger,
		now:          time.Now,
	}
}

func viewerID(viewer *identity.Session) string {
	if viewer == nil {
		return ""
	}
	return viewer.AccountID
}

func toFeedbackItem(f *models.Feedback, viewer string) dto.FeedbackItem {
	return dto.FeedbackItem{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		CreatedAt: f.CreatedAt,
		Response:  f.Response,
		CanDelete: auth.CanDeleteFeedback(viewer, f),
	}
}

// List returns every feedback record with per-viewer delete permission
func (s *feedbackServiceImpl) List(ctx context.Context, viewer *identity.Session) (*dto.FeedbackListResponse, error) {
	feedbacks, err := s.feedbackRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}

	id := viewerID(viewer)
	items := make([]dto.FeedbackItem, 0, len(feedbacks))
	for _, f := range feedbacks {
		items = append(items, toFeedbackItem(f, id))
	}

	resp := &dto.FeedbackListResponse{Items: items}
	if viewer != nil {
		resp.Prefill = dto.FeedbackPrefill{Name: viewer.DisplayName, Email: viewer.Email}
	}
	return resp, nil
}

// Submit stores a feedback record attributed to the viewer, if any
func (s *feedbackServiceImpl) Submit(ctx context.Context, viewer *identity.Session, req *dto.FeedbackRequest) (*dto.FeedbackItem, error) {
	name := strings.TrimSpace(req.Name)
	mail := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || mail == "" || message == "" {
		return nil, apperrors.ErrFeedbackFieldsMissing
	}

	feedback := &models.Feedback{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       mail,
		Message:     message,
		SubmitterID: viewerID(viewer),
		CreatedAt:   s.now(),
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	item := toFeedbackItem(feedback, feedback.SubmitterID)
	return &item, nil
}

// Delete removes the viewer's own feedback once confirmed
func (s *feedbackServiceImpl) Delete(ctx context.Context, viewer *identity.Session, id string, confirmed bool) error {
	if viewer == nil {
		return apperrors.ErrUnauthenticated
	}
	if _, err := s.authz.ValidateFeedbackOwnership(ctx, id, viewer.AccountID); err != nil {
		return err
	}
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}
	return s.feedbackRepo.Delete(ctx, id)
}

// AdminList returns every feedback record for the administrator
func (s *feedbackServiceImpl) AdminList(ctx context.Context) ([]dto.FeedbackItem, error) {
	feedbacks, err := s.feedbackRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}
	items := make([]dto.FeedbackItem, 0, len(feedbacks))
	for _, f := range feedbacks {
		items = append(items, toFeedbackItem(f, ""))
	}
	return items, nil
}

// Respond stores the administrator's reply and notifies the submitter.
// A failed notification does not fail the reply.
func (s *feedbackServiceImpl) Respond(ctx context.Context, id, response string) (*dto.FeedbackItem, error) {
	if strings.TrimSpace(response) == "" {
		return nil, apperrors.ErrEmptyFeedbackResponse
	}

	if err := s.feedbackRepo.SetResponse(ctx, id, response); err != nil {
		return nil, err
	}

	feedback, err := s.feedbackRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendFeedbackResponseEmail(feedback.Email, feedback.Name, feedback.Message, response); err != nil {
			s.logger.Warn().Err(err).Str("feedbackID", id).Msg("Failed to notify feedback submitter")
		}
	}

	item := toFeedbackItem(feedback, "")
	return &item, nil
}
