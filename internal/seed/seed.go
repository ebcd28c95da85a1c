package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/camnote/internal/app/identity"
	appModels "github.com/yigit/camnote/internal/app/models"
	appRepos "github.com/yigit/camnote/internal/app/repositories"
)

// AdminDisplayName is the display name given to the seeded administrator
const AdminDisplayName = "관리자"

// AdminAccount holds the credentials of the administrator account to seed
type AdminAccount struct {
	Email    string
	Password string
}

// CreateDefaultData creates the administrator account and its user record
// if the email is not registered yet. Callers log the returned error and
// continue starting up.
func CreateDefaultData(ctx context.Context, provider identity.Provider, userRepo appRepos.IUserRepository, admin AdminAccount, lgr zerolog.Logger) error {
	email := strings.TrimSpace(admin.Email)
	if email == "" {
		lgr.Warn().Msg("No administrator email configured, skipping seed")
		return nil
	}
	if admin.Password == "" {
		lgr.Warn().Str("email", email).Msg("ADMIN_PASSWORD not set, administrator account not seeded")
		return nil
	}

	lgr.Info().Str("email", email).Msg("Checking/Creating administrator account...")

	inUse, err := provider.EmailInUse(ctx, email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if administrator account exists")
		return err
	}
	if inUse {
		lgr.Info().Msg("Administrator account already exists, skipping creation")
		return nil
	}

	session, err := provider.SignUp(ctx, email, admin.Password, AdminDisplayName)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating administrator account")
		return err
	}

	var finalErr error
	user := &appModels.User{
		ID:          session.AccountID,
		Email:       session.Email,
		DisplayName: AdminDisplayName,
		CreatedAt:   time.Now(),
	}
	if err := userRepo.Create(ctx, user); err != nil {
		lgr.Error().Err(err).Msg("Error creating administrator user record")
		finalErr = errors.Join(finalErr, err)
	}

	// sign-up opens a session nobody holds
	if err := provider.SignOut(ctx, session.ID); err != nil {
		lgr.Warn().Err(err).Msg("Failed to close seed session")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Str("accountID", session.AccountID).Msg("Default administrator created successfully")
	}
	return finalErr
}
