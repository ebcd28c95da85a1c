package identity

import (
	"context"
	"time"

	"github.com/yigit/camnote/internal/app/models"
)

// EventType names a session change
type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

// Event is published to subscribers whenever a session starts or ends
type Event struct {
	Type      EventType `json:"type"`
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	At        time.Time `json:"at"`
}

// Session is an authenticated context handed out by a Provider
type Session struct {
	ID          string
	AccountID   string
	Email       string
	DisplayName string
	Role        models.RoleType
	Token       string
	ExpiresAt   time.Time
}

// IsAdmin reports whether the session belongs to the administrator account
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Provider is the identity boundary: credential checks, account creation and
// session tracking. All failures are *Error values.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, displayName string) (*Session, error)
	SignOut(ctx context.Context, sessionID string) error
	EmailInUse(ctx context.Context, email string) (bool, error)
	CurrentSession(ctx context.Context, token string) (*Session, error)
	Subscribe(fn func(Event)) (unsubscribe func())
}
