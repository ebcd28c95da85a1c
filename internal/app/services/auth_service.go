package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/navigation"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/validation"
)

// Sign-up stages that fail with their own message
var (
	ErrEmailLookupFailed = errors.New("email lookup failed")
	ErrSignupFailed      = errors.New("sign-up failed")
)

// AuthService handles sign-in, sign-up and sign-out
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, sessionID string) (*dto.RedirectResponse, error)
	CurrentSession(session *identity.Session) *dto.CurrentSessionResponse
}

type authServiceImpl struct {
	provider identity.Provider
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(provider identity.Provider, userRepo repositories.IUserRepository, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		provider: provider,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func sessionUser(s *identity.Session) dto.SessionUser {
	return dto.SessionUser{ID: s.AccountID, Email: s.Email, DisplayName: s.DisplayName}
}

func sessionResponse(s *identity.Session, redirect string) *dto.SessionResponse {
	return &dto.SessionResponse{
		AccessToken: s.Token,
		TokenType:   "Bearer",
		ExpiresAt:   s.ExpiresAt,
		User:        sessionUser(s),
		IsAdmin:     s.IsAdmin(),
		Redirect:    redirect,
	}
}

// Login signs a user in. Every failure is reported as invalid credentials.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	session, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", string(identity.KindOf(err))).Msg("Login failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	redirect := navigation.PathMajorCheck
	if session.IsAdmin() {
		redirect = navigation.PathAdminSelectMajor
	}

	s.logger.Info().Str("accountID", session.AccountID).Bool("admin", session.IsAdmin()).Msg("User logged in")
	return sessionResponse(session, redirect), nil
}

// Signup registers an account and its user record
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SessionResponse, error) {
	inUse, err := s.provider.EmailInUse(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Email lookup failed during sign-up")
		return nil, fmt.Errorf("%w: %w", ErrEmailLookupFailed, err)
	}
	if inUse {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.ErrInvalidPassword
	}

	session, err := s.provider.SignUp(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", string(identity.KindOf(err))).Msg("Sign-up failed")
		return nil, fmt.Errorf("%w: %w", ErrSignupFailed, err)
	}

	user := &models.User{
		ID:          session.AccountID,
		Email:       session.Email,
		DisplayName: session.DisplayName,
		CreatedAt:   s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("accountID", session.AccountID).Msg("Failed to write user record after sign-up")
		return nil, fmt.Errorf("%w: %w", ErrSignupFailed, err)
	}

	return sessionResponse(session, navigation.PathVerify), nil
}

// Logout ends the session
func (s *authServiceImpl) Logout(ctx context.Context, sessionID string) (*dto.RedirectResponse, error) {
	if err := s.provider.SignOut(ctx, sessionID); err != nil {
		if identity.KindOf(err) == identity.KindInvalidSession {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error signing out: %w", err)
	}
	return &dto.RedirectResponse{Redirect: navigation.PathLogin}, nil
}

// CurrentSession describes the caller's session, which may be nil
func (s *authServiceImpl) CurrentSession(session *identity.Session) *dto.CurrentSessionResponse {
	if session == nil {
		return &dto.CurrentSessionResponse{Authenticated: false}
	}
	user := sessionUser(session)
	return &dto.CurrentSessionResponse{
		Authenticated: true,
		User:          &user,
		IsAdmin:       session.IsAdmin(),
	}
}
