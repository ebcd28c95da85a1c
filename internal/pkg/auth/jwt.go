package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig is the jwt section of config.yaml after parsing
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
}

// JWTService signs and verifies HS256 access tokens
type JWTService struct {
	config JWTConfig
	key    []byte
	now    func() time.Time
}

func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		key:    []byte(config.SecretKey),
		now:    time.Now,
	}
}

// Claims is the token payload. jti holds the session ID, so a token is
// only as valid as the session row it points to.
type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	RoleType string `json:"roleType"`
	jwt.RegisteredClaims
}

// TokenSubject is what GenerateAccessToken signs
type TokenSubject struct {
	UserID    string
	Email     string
	RoleType  string
	SessionID string
}

func (s *JWTService) AccessTokenTTL() time.Duration {
	return s.config.AccessTokenExp
}

// GenerateAccessToken returns the signed token and its expiry.
func (s *JWTService) GenerateAccessToken(subject TokenSubject) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.config.AccessTokenExp)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   subject.UserID,
		Email:    subject.Email,
		RoleType: subject.RoleType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        subject.SessionID,
			Subject:   subject.UserID,
			Issuer:    s.config.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *JWTService) parser() *jwt.Parser {
	return jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.TokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
}

// ValidateToken checks signature, issuer and lifetime. The returned error
// is always one of ErrExpiredToken, ErrInvalidFormat or ErrInvalidToken.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser().ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})

	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrInvalidFormat
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}

// ValidateAndExtractClaims is ValidateToken plus a check that the claims
// name a user and a session.
func (s *JWTService) ValidateAndExtractClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.Email == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearerToken accepts "Bearer <jwt>" or a bare JWT, optionally
// wrapped in quotes by sloppy clients.
func ExtractBearerToken(header string) (string, error) {
	token := strings.Trim(strings.TrimSpace(header), `"'`)
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

	if token == "" || strings.Count(token, ".") != 2 {
		return "", ErrInvalidFormat
	}
	return token, nil
}
