package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// ISessionRepository defines session persistence
type ISessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
	SetAdminDepartment(ctx context.Context, id string, department *string) error
}

// SessionRepository handles session database operations
type SessionRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("sessions").
		Columns("id", "account_id", "created_at", "expires_at").
		Values(session.ID, session.AccountID, session.CreatedAt, session.ExpiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("accountID", session.AccountID).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetByID retrieves a session, revoked or not
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	sql, args, err := r.sb.Select("id", "account_id", "created_at", "expires_at", "revoked_at", "admin_department").
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	var s models.Session
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.AccountID, &s.CreatedAt, &s.ExpiresAt, &s.RevokedAt, &s.AdminDepartment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return &s, nil
}

// Revoke ends a session and drops its admin department selection
func (r *SessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	sql, args, err := r.sb.Update("sessions").
		Set("revoked_at", at).
		Set("admin_department", nil).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke session query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", id).Msg("Error executing revoke session query")
		return fmt.Errorf("error revoking session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenInvalid
	}
	return nil
}

// SetAdminDepartment stores or clears (nil) the selection of an active session
func (r *SessionRepository) SetAdminDepartment(ctx context.Context, id string, department *string) error {
	sql, args, err := r.sb.Update("sessions").
		Set("admin_department", department).
		Where(squirrel.Eq{"id": id, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set admin department query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating admin department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenRevoked
	}
	return nil
}
