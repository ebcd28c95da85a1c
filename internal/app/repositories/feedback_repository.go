package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// IFeedbackRepository defines feedback persistence
type IFeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	FindAll(ctx context.Context) ([]*models.Feedback, error)
	FindByID(ctx context.Context, id string) (*models.Feedback, error)
	Delete(ctx context.Context, id string) error
	SetResponse(ctx context.Context, id, response string) error
}

// FeedbackRepository handles the 'feedbacks' table
type FeedbackRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db DBTX) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var feedbackColumns = []string{"id", "name", "email", "message", "submitter_id", "created_at", "response"}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var f models.Feedback
	if err := row.Scan(&f.ID, &f.Name, &f.Email, &f.Message, &f.SubmitterID, &f.CreatedAt, &f.Response); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create stores a submission
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	sql, args, err := r.sb.Insert("feedbacks").
		Columns("id", "name", "email", "message", "submitter_id", "created_at").
		Values(feedback.ID, feedback.Name, feedback.Email, feedback.Message, feedback.SubmitterID, feedback.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create feedback query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error creating feedback")
		return fmt.Errorf("error creating feedback: %w", err)
	}
	return nil
}

// FindAll returns every submission, newest first
func (r *FeedbackRepository) FindAll(ctx context.Context) ([]*models.Feedback, error) {
	sql, args, err := r.sb.Select(feedbackColumns...).
		From("feedbacks").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list feedback query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := make([]*models.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning feedback: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}
	return feedbacks, nil
}

// FindByID retrieves one submission
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	sql, args, err := r.sb.Select(feedbackColumns...).
		From("feedbacks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get feedback query: %w", err)
	}

	f, err := scanFeedback(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if noSuchRow(err) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}
	return f, nil
}

// Delete removes a submission
func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		if noSuchRow(err) {
			return apperrors.ErrFeedbackNotFound
		}
		logger.Error().Err(err).Str("feedbackID", id).Msg("Error deleting feedback")
		return fmt.Errorf("error deleting feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}

// SetResponse stores the administrator's reply, replacing any earlier one
func (r *FeedbackRepository) SetResponse(ctx context.Context, id, response string) error {
	tag, err := r.db.Exec(ctx, `UPDATE feedbacks SET response = $1 WHERE id = $2`, response, id)
	if err != nil {
		if noSuchRow(err) {
			return apperrors.ErrFeedbackNotFound
		}
		logger.Error().Err(err).Str("feedbackID", id).Msg("Error saving feedback response")
		return fmt.Errorf("error saving feedback response: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}
