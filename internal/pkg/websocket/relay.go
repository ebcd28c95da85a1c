package websocket

import (
	"github.com/rs/zerolog"
	"github.com/yigit/camnote/internal/app/identity"
)

// SessionRelay forwards identity events to the hub
type SessionRelay struct {
	provider identity.Provider
	hub      *Hub
	logger   zerolog.Logger
}

// NewSessionRelay creates a new SessionRelay
func NewSessionRelay(provider identity.Provider, hub *Hub, logger zerolog.Logger) *SessionRelay {
	return &SessionRelay{
		provider: provider,
		hub:      hub,
		logger:   logger,
	}
}

// Start subscribes to the provider. The returned func unsubscribes.
func (r *SessionRelay) Start() (stop func()) {
	r.logger.Info().Msg("Session relay started")
	return r.provider.Subscribe(r.handle)
}

func (r *SessionRelay) handle(event identity.Event) {
	r.hub.Publish(&Message{
		Type:      string(event.Type),
		AccountID: event.AccountID,
		Email:     event.Email,
		Timestamp: event.At,
	})
}
