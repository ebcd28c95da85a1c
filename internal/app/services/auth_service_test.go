package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/navigation"
	"github.com/yigit/camnote/internal/pkg/apperrors"
)

func TestAuthService_LoginRedirects(t *testing.T) {
	ctx := context.Background()

	student := studentSession("u1")
	student.Token = "tok"
	student.ExpiresAt = time.Now().Add(time.Hour)
	svc := NewAuthService(&fakeProvider{session: student}, newFakeUserRepo(), zerolog.Nop())

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "u1@yu.ac.kr", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, navigation.PathMajorCheck, resp.Redirect)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.False(t, resp.IsAdmin)

	admin := &identity.Session{ID: "s-admin", AccountID: "admin", Email: "admin@yu.ac.kr", Role: models.RoleAdmin}
	svc = NewAuthService(&fakeProvider{session: admin}, newFakeUserRepo(), zerolog.Nop())

	resp, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@yu.ac.kr", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, navigation.PathAdminSelectMajor, resp.Redirect)
	assert.True(t, resp.IsAdmin)
}

func TestAuthService_LoginFailureIsInvalidCredentials(t *testing.T) {
	for _, cause := range []error{
		&identity.Error{Kind: identity.KindInvalidCredentials},
		&identity.Error{Kind: identity.KindUnavailable, Err: errors.New("db down")},
	} {
		svc := NewAuthService(&fakeProvider{signInErr: cause}, newFakeUserRepo(), zerolog.Nop())
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.kr", Password: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user record and redirects to verify", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewAuthService(&fakeProvider{session: studentSession("u1")}, users, zerolog.Nop())

		resp, err := svc.Signup(ctx, &dto.SignupRequest{Email: "u1@yu.ac.kr", Password: "password123", DisplayName: "학생u1"})
		require.NoError(t, err)
		assert.Equal(t, navigation.PathVerify, resp.Redirect)

		user, err := users.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1@yu.ac.kr", user.Email)
		assert.Nil(t, user.Department)
	})

	t.Run("email lookup failure", func(t *testing.T) {
		provider := &fakeProvider{inUseErr: errors.New("timeout")}
		svc := NewAuthService(provider, newFakeUserRepo(), zerolog.Nop())

		_, err := svc.Signup(ctx, &dto.SignupRequest{Email: "a@yu.ac.kr", Password: "password123"})
		assert.ErrorIs(t, err, ErrEmailLookupFailed)
		assert.Zero(t, provider.signUpCalls)
	})

	t.Run("email in use is checked before password", func(t *testing.T) {
		provider := &fakeProvider{inUse: true}
		svc := NewAuthService(provider, newFakeUserRepo(), zerolog.Nop())

		_, err := svc.Signup(ctx, &dto.SignupRequest{Email: "a@yu.ac.kr", Password: "short"})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
		assert.Zero(t, provider.signUpCalls)
	})

	t.Run("short password", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := NewAuthService(provider, newFakeUserRepo(), zerolog.Nop())

		_, err := svc.Signup(ctx, &dto.SignupRequest{Email: "a@yu.ac.kr", Password: "short"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
		assert.Zero(t, provider.signUpCalls)
	})

	t.Run("provider failure keeps its kind", func(t *testing.T) {
		provider := &fakeProvider{signUpErr: &identity.Error{Kind: identity.KindEmailInUse}}
		svc := NewAuthService(provider, newFakeUserRepo(), zerolog.Nop())

		_, err := svc.Signup(ctx, &dto.SignupRequest{Email: "a@yu.ac.kr", Password: "password123"})
		assert.ErrorIs(t, err, ErrSignupFailed)
		assert.Equal(t, identity.KindEmailInUse, identity.KindOf(err))
	})

	t.Run("user record write failure", func(t *testing.T) {
		users := newFakeUserRepo()
		users.err = errors.New("insert failed")
		svc := NewAuthService(&fakeProvider{session: studentSession("u1")}, users, zerolog.Nop())

		_, err := svc.Signup(ctx, &dto.SignupRequest{Email: "u1@yu.ac.kr", Password: "password123"})
		assert.ErrorIs(t, err, ErrSignupFailed)
		assert.Equal(t, identity.KindUnavailable, identity.KindOf(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	provider := &fakeProvider{}
	svc := NewAuthService(provider, newFakeUserRepo(), zerolog.Nop())

	resp, err := svc.Logout(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, navigation.PathLogin, resp.Redirect)
	assert.Equal(t, []string{"s-1"}, provider.signedOut)

	provider.signOutErr = &identity.Error{Kind: identity.KindInvalidSession}
	_, err = svc.Logout(ctx, "s-2")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestAuthService_CurrentSession(t *testing.T) {
	svc := NewAuthService(&fakeProvider{}, newFakeUserRepo(), zerolog.Nop())

	resp := svc.CurrentSession(nil)
	assert.False(t, resp.Authenticated)
	assert.Nil(t, resp.User)

	resp = svc.CurrentSession(studentSession("u1"))
	assert.True(t, resp.Authenticated)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
}
