package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/dberrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error

	// Department
	SetDepartment(ctx context.Context, user *models.User, department string) error

	// Admin listing
	List(ctx context.Context, offset uint64, limit int) ([]*models.User, int64, error)
}

// UserRepository handles the 'users' table
type UserRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var userColumns = []string{"id", "email", "display_name", "department", "created_at"}

// Create inserts a user record
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Email, user.DisplayName, user.Department, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("user record %s: %w", user.ID, apperrors.ErrConflict)
		}
		logger.Error().Err(err).Str("userID", user.ID).Msg("Error creating user record")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var u models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.Email, &u.DisplayName, &u.Department, &u.CreatedAt)
	if err != nil {
		if noSuchRow(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &u, nil
}

// SetDepartment writes the department onto the user record, creating the
// record when it does not exist yet.
func (r *UserRepository) SetDepartment(ctx context.Context, user *models.User, department string) error {
	sql, args, err := r.sb.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Email, user.DisplayName, department, user.CreatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET department = EXCLUDED.department").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set department query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("userID", user.ID).Str("department", department).Msg("Error saving user department")
		return fmt.Errorf("error saving department: %w", err)
	}
	user.Department = &department
	return nil
}

// List returns a page of users, newest first, with the total count
func (r *UserRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0, limit)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Department, &u.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}

// Delete removes the user record. The account itself is left untouched.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if noSuchRow(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID", id).Msg("Error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
