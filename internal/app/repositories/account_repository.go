package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/dberrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// IAccountRepository defines the credential store used by the identity provider
type IAccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// AccountRepository handles account database operations
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account. The email must already be normalized.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, display_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, account.ID, account.Email, account.PasswordHash, account.DisplayName, account.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", account.Email).Msg("Error creating account")
		return fmt.Errorf("error creating account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by its normalized email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, display_name, created_at
		FROM accounts
		WHERE email = $1
	`
	return r.scanOne(ctx, query, email)
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, display_name, created_at
		FROM accounts
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *AccountRepository) scanOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var account models.Account
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.DisplayName,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}
	return &account, nil
}

// EmailExists checks if an account already uses the email
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking account email: %w", err)
	}
	return exists, nil
}
