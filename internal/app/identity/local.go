package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/repositories"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/auth"
	"github.com/yigit/camnote/internal/pkg/logger"
	"github.com/yigit/camnote/internal/pkg/validation"
)

var _ Provider = (*LocalProvider)(nil)

// LocalConfig configures a LocalProvider
type LocalConfig struct {
	AdminEmail   string
	PasswordCost int
}

// LocalProvider implements Provider on the accounts and sessions tables
type LocalProvider struct {
	accounts   repositories.IAccountRepository
	sessions   repositories.ISessionRepository
	jwt        *auth.JWTService
	adminEmail string
	cost       int
	now        func() time.Time

	mu          sync.RWMutex
	nextSubID   int
	subscribers map[int]func(Event)
}

// NewLocalProvider creates a new LocalProvider
func NewLocalProvider(accounts repositories.IAccountRepository, sessions repositories.ISessionRepository, jwtService *auth.JWTService, cfg LocalConfig) *LocalProvider {
	cost := cfg.PasswordCost
	if cost == 0 {
		cost = auth.BcryptCost
	}
	return &LocalProvider{
		accounts:    accounts,
		sessions:    sessions,
		jwt:         jwtService,
		adminEmail:  strings.TrimSpace(cfg.AdminEmail),
		cost:        cost,
		now:         time.Now,
		subscribers: make(map[int]func(Event)),
	}
}

// NormalizeEmail lowercases and trims an address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAdminEmail reports whether email belongs to the administrator, ignoring case
func (p *LocalProvider) IsAdminEmail(email string) bool {
	return p.adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), p.adminEmail)
}

func (p *LocalProvider) roleFor(email string) models.RoleType {
	if p.IsAdminEmail(email) {
		return models.RoleAdmin
	}
	return models.RoleStudent
}

// SignIn checks credentials and opens a new session
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	account, err := p.accounts.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, newError(KindInvalidCredentials, apperrors.ErrInvalidCredentials)
		}
		return nil, newError(KindUnavailable, err)
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, newError(KindInvalidCredentials, apperrors.ErrInvalidCredentials)
	}

	return p.openSession(ctx, account)
}

// SignUp creates an account and signs it in
func (p *LocalProvider) SignUp(ctx context.Context, email, password, displayName string) (*Session, error) {
	normalized := NormalizeEmail(email)
	if !validation.IsValidEmail(normalized) {
		return nil, newError(KindInvalidEmail, apperrors.ErrInvalidEmail)
	}

	hash, err := auth.HashPasswordWithCost(password, p.cost)
	if err != nil {
		return nil, newError(KindUnavailable, err)
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Email:        normalized,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
		CreatedAt:    p.now(),
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, newError(KindEmailInUse, err)
		}
		return nil, newError(KindUnavailable, err)
	}

	logger.Info().Str("accountID", account.ID).Msg("Account created")
	return p.openSession(ctx, account)
}

func (p *LocalProvider) openSession(ctx context.Context, account *models.Account) (*Session, error) {
	now := p.now()
	record := &models.Session{
		ID:        uuid.New().String(),
		AccountID: account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(p.jwt.AccessTokenTTL()),
	}

	role := p.roleFor(account.Email)
	token, expiresAt, err := p.jwt.GenerateAccessToken(auth.TokenSubject{
		UserID:    account.ID,
		Email:     account.Email,
		RoleType:  string(role),
		SessionID: record.ID,
	})
	if err != nil {
		return nil, newError(KindUnavailable, err)
	}
	record.ExpiresAt = expiresAt

	if err := p.sessions.Create(ctx, record); err != nil {
		return nil, newError(KindUnavailable, err)
	}

	p.publish(Event{Type: EventSignedIn, AccountID: account.ID, Email: account.Email, At: now})

	return &Session{
		ID:          record.ID,
		AccountID:   account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        role,
		Token:       token,
		ExpiresAt:   expiresAt,
	}, nil
}

// SignOut revokes the session. The admin department selection goes with it.
func (p *LocalProvider) SignOut(ctx context.Context, sessionID string) error {
	record, err := p.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenInvalid) {
			return newError(KindInvalidSession, err)
		}
		return newError(KindUnavailable, err)
	}

	now := p.now()
	if err := p.sessions.Revoke(ctx, sessionID, now); err != nil {
		return newError(KindUnavailable, err)
	}

	var email string
	if account, err := p.accounts.GetByID(ctx, record.AccountID); err == nil {
		email = account.Email
	}
	p.publish(Event{Type: EventSignedOut, AccountID: record.AccountID, Email: email, At: now})
	return nil
}

// EmailInUse reports whether an account exists for the email
func (p *LocalProvider) EmailInUse(ctx context.Context, email string) (bool, error) {
	exists, err := p.accounts.EmailExists(ctx, NormalizeEmail(email))
	if err != nil {
		return false, newError(KindUnavailable, err)
	}
	return exists, nil
}

// CurrentSession resolves a token to its live session
func (p *LocalProvider) CurrentSession(ctx context.Context, token string) (*Session, error) {
	claims, err := p.jwt.ValidateAndExtractClaims(token)
	if err != nil {
		return nil, newError(KindInvalidSession, err)
	}

	record, err := p.sessions.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenInvalid) {
			return nil, newError(KindInvalidSession, err)
		}
		return nil, newError(KindUnavailable, err)
	}
	if !record.Active(p.now()) || record.AccountID != claims.UserID {
		return nil, newError(KindInvalidSession, apperrors.ErrTokenRevoked)
	}

	account, err := p.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, newError(KindInvalidSession, err)
		}
		return nil, newError(KindUnavailable, err)
	}

	return &Session{
		ID:          record.ID,
		AccountID:   account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        p.roleFor(account.Email),
		Token:       token,
		ExpiresAt:   record.ExpiresAt,
	}, nil
}

// Subscribe registers fn for session change events
func (p *LocalProvider) Subscribe(fn func(Event)) func() {
	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subscribers, id)
			p.mu.Unlock()
		})
	}
}

func (p *LocalProvider) publish(event Event) {
	p.mu.RLock()
	fns := make([]func(Event), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		fns = append(fns, fn)
	}
	p.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}
