package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
)

type stubFeedbackRepo struct {
	feedback map[string]*models.Feedback
	err      error
}

func (s *stubFeedbackRepo) Create(context.Context, *models.Feedback) error { return nil }

func (s *stubFeedbackRepo) FindAll(context.Context) ([]*models.Feedback, error) { return nil, nil }

func (s *stubFeedbackRepo) FindByID(_ context.Context, id string) (*models.Feedback, error) {
	if s.err != nil {
		return nil, s.err
	}
	f, ok := s.feedback[id]
	if !ok {
		return nil, apperrors.ErrFeedbackNotFound
	}
	return f, nil
}

func (s *stubFeedbackRepo) Delete(context.Context, string) error { return nil }

func (s *stubFeedbackRepo) SetResponse(context.Context, string, string) error { return nil }

func TestCanDeleteFeedback(t *testing.T) {
	owned := &models.Feedback{ID: "f1", SubmitterID: "u1"}
	anonymous := &models.Feedback{ID: "f2"}

	assert.True(t, CanDeleteFeedback("u1", owned))
	assert.False(t, CanDeleteFeedback("u2", owned))
	assert.False(t, CanDeleteFeedback("", owned))
	assert.False(t, CanDeleteFeedback("", anonymous))
	assert.False(t, CanDeleteFeedback("u1", anonymous))
	assert.False(t, CanDeleteFeedback("u1", nil))
}

func TestValidateFeedbackOwnership(t *testing.T) {
	repo := &stubFeedbackRepo{feedback: map[string]*models.Feedback{
		"f1": {ID: "f1", SubmitterID: "u1"},
		"f2": {ID: "f2"},
	}}
	svc := NewAuthorizationService(repo)
	ctx := context.Background()

	f, err := svc.ValidateFeedbackOwnership(ctx, "f1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "f1", f.ID)

	_, err = svc.ValidateFeedbackOwnership(ctx, "f1", "u2")
	assert.ErrorIs(t, err, apperrors.ErrFeedbackNotOwned)

	_, err = svc.ValidateFeedbackOwnership(ctx, "f2", "u1")
	assert.ErrorIs(t, err, apperrors.ErrFeedbackNotOwned)

	_, err = svc.ValidateFeedbackOwnership(ctx, "f9", "u1")
	assert.ErrorIs(t, err, apperrors.ErrFeedbackNotFound)

	repo.err = errors.New("db down")
	_, err = svc.ValidateFeedbackOwnership(ctx, "f1", "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrFeedbackNotOwned)
}
