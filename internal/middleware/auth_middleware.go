package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/pkg/auth"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// Keys under which the authenticated session is stored on the gin context
const (
	ContextKeyUserID    = "userID"
	ContextKeyEmail     = "email"
	ContextKeyRoleType  = "roleType"
	ContextKeySessionID = "sessionID"
	ContextKeySession   = "session"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	provider identity.Provider
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(provider identity.Provider) *AuthMiddleware {
	return &AuthMiddleware{provider: provider}
}

// rawToken reads the token from the Authorization header, falling back to the
// authorization/token query parameters (Swagger UI and websocket clients).
func rawToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return header
	}
	for _, key := range []string{"authorization", "Authorization", "token"} {
		if v := c.Query(key); v != "" {
			return v
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "로그인이 필요합니다.").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// authenticate resolves the request's session. A request without a token
// yields (nil, nil).
func (m *AuthMiddleware) authenticate(c *gin.Context) (*identity.Session, error) {
	header := rawToken(c)
	if header == "" {
		return nil, nil
	}

	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return nil, &identity.Error{Kind: identity.KindInvalidSession, Err: err}
	}

	return m.provider.CurrentSession(c.Request.Context(), token)
}

func setSession(c *gin.Context, session *identity.Session) {
	c.Set(ContextKeyUserID, session.AccountID)
	c.Set(ContextKeyEmail, session.Email)
	c.Set(ContextKeyRoleType, string(session.Role))
	c.Set(ContextKeySessionID, session.ID)
	c.Set(ContextKeySession, session)
}

// JWTAuth requires a live session
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := m.authenticate(c)
		if err != nil {
			m.rejectSession(c, err)
			return
		}
		if session == nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		setSession(c, session)
		c.Next()
	}
}

// OptionalJWTAuth attaches the session when a valid token is present and lets
// anonymous requests through. An invalid token is treated as no token.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := m.authenticate(c)
		if err != nil && identity.KindOf(err) == identity.KindUnavailable {
			logger.Error().Err(err).Msg("Session lookup failed")
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "세션 확인 중 오류가 발생했습니다.")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
			return
		}
		if session != nil {
			setSession(c, session)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) rejectSession(c *gin.Context, err error) {
	switch {
	case identity.KindOf(err) == identity.KindUnavailable:
		logger.Error().Err(err).Msg("Session lookup failed")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "세션 확인 중 오류가 발생했습니다.")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
	case errors.Is(err, auth.ErrExpiredToken):
		abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
	case errors.Is(err, auth.ErrInvalidFormat):
		abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
	default:
		abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
	}
}

// AdminRequired must run after JWTAuth
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if session == nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}
		if !session.IsAdmin() {
			logger.Warn().Str("userID", session.AccountID).Str("path", c.Request.URL.Path).Msg("Non-admin access to admin route")
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "관리자만 접근할 수 있습니다.")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session attached by JWTAuth or OptionalJWTAuth, or nil
func SessionFrom(c *gin.Context) *identity.Session {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil
	}
	session, _ := v.(*identity.Session)
	return session
}
