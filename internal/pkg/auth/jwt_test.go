package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "camnote.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()

	token, expiresAt, err := svc.GenerateAccessToken(TokenSubject{
		UserID:    "8d0c3c1e-1111-4b5b-9a52-2f0a5f5c2a10",
		Email:     "student@yu.ac.kr",
		RoleType:  "STUDENT",
		SessionID: "5c1f4b8a-2222-4c1e-8f0e-0d7e2a9b3c44",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "8d0c3c1e-1111-4b5b-9a52-2f0a5f5c2a10", claims.UserID)
	assert.Equal(t, "student@yu.ac.kr", claims.Email)
	assert.Equal(t, "STUDENT", claims.RoleType)
	assert.Equal(t, "5c1f4b8a-2222-4c1e-8f0e-0d7e2a9b3c44", claims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken(TokenSubject{UserID: "u", Email: "e@x.com", SessionID: "s"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestJWTService().GenerateAccessToken(TokenSubject{UserID: "u", Email: "e@x.com", SessionID: "s"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "camnote.test"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAndExtractClaims_RequiresSession(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.GenerateAccessToken(TokenSubject{UserID: "u", Email: "e@x.com"})
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer a.b.c", want: "a.b.c"},
		{name: "raw", header: "a.b.c", want: "a.b.c"},
		{name: "quoted", header: "\"Bearer a.b.c\"", want: "a.b.c"},
		{name: "empty", header: "", wantErr: true},
		{name: "not a jwt", header: "Bearer abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPasswordWithCost("password123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "password124"))
}
