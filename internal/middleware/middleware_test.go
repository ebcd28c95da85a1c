package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/auth"
)

const validToken = "header.payload.signature"

type stubProvider struct {
	identity.Provider
	session *identity.Session
	err     error
	tokens  []string
}

func (p *stubProvider) CurrentSession(_ context.Context, token string) (*identity.Session, error) {
	p.tokens = append(p.tokens, token)
	return p.session, p.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		s := SessionFrom(c)
		if s == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, s.AccountID+":"+c.GetString(ContextKeyRoleType))
	})
	r.GET("/", handlers...)
	return r
}

func perform(r http.Handler, target, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestJWTAuth(t *testing.T) {
	student := &identity.Session{ID: "s1", AccountID: "u1", Role: models.RoleStudent}

	t.Run("bearer header", func(t *testing.T) {
		p := &stubProvider{session: student}
		w := perform(newRouter(NewAuthMiddleware(p).JWTAuth()), "/", "Bearer "+validToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1:STUDENT", w.Body.String())
		assert.Equal(t, []string{validToken}, p.tokens)
	})

	t.Run("query token", func(t *testing.T) {
		p := &stubProvider{session: student}
		w := perform(newRouter(NewAuthMiddleware(p).JWTAuth()), "/?token="+validToken, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{validToken}, p.tokens)
	})

	t.Run("missing token", func(t *testing.T) {
		w := perform(newRouter(NewAuthMiddleware(&stubProvider{}).JWTAuth()), "/", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		p := &stubProvider{session: student}
		w := perform(newRouter(NewAuthMiddleware(p).JWTAuth()), "/", "Bearer nodots")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, p.tokens)
	})

	t.Run("expired token", func(t *testing.T) {
		p := &stubProvider{err: &identity.Error{Kind: identity.KindInvalidSession, Err: auth.ErrExpiredToken}}
		w := perform(newRouter(NewAuthMiddleware(p).JWTAuth()), "/", "Bearer "+validToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeExpiredToken, decodeError(t, w).Code)
	})

	t.Run("store unavailable", func(t *testing.T) {
		p := &stubProvider{err: &identity.Error{Kind: identity.KindUnavailable, Err: errors.New("db down")}}
		w := perform(newRouter(NewAuthMiddleware(p).JWTAuth()), "/", "Bearer "+validToken)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestOptionalJWTAuth(t *testing.T) {
	p := &stubProvider{session: &identity.Session{ID: "s1", AccountID: "u1", Role: models.RoleStudent}}
	r := newRouter(NewAuthMiddleware(p).OptionalJWTAuth())

	w := perform(r, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = perform(r, "/", "Bearer "+validToken)
	assert.Equal(t, "u1:STUDENT", w.Body.String())

	p.session, p.err = nil, &identity.Error{Kind: identity.KindInvalidSession}
	w = perform(r, "/", "Bearer "+validToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestAdminRequired(t *testing.T) {
	p := &stubProvider{session: &identity.Session{ID: "s1", AccountID: "u1", Role: models.RoleStudent}}
	m := NewAuthMiddleware(p)
	r := newRouter(m.JWTAuth(), m.AdminRequired())

	w := perform(r, "/", "Bearer "+validToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Code)

	p.session = &identity.Session{ID: "s2", AccountID: "admin", Role: models.RoleAdmin}
	w = perform(r, "/", "Bearer "+validToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin:ADMIN", w.Body.String())
}

func TestResolveAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"school", apperrors.ErrSchoolNotFound, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "해당 학교는 존재하지 않습니다."},
		{"student id", apperrors.ErrInvalidStudentID, http.StatusBadRequest, dto.ErrorCodeInvalidStudentID, "학번은 8자리 숫자여야 합니다."},
		{"claimed id", apperrors.ErrStudentIDAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "이미 등록된 학번입니다."},
		{"wrapped content", fmt.Errorf("loading: %w", apperrors.ErrContentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "존재하지 않는 게시글입니다."},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "이메일 또는 비밀번호가 잘못되었습니다."},
		{"confirmation", apperrors.ErrConfirmationRequired, http.StatusPreconditionRequired, dto.ErrorCodeConfirmationRequired, "삭제하려면 확인이 필요합니다."},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "서버 오류가 발생했습니다."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := ResolveAPIError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
			assert.Equal(t, tt.message, detail.Message)
		})
	}
}

func TestResolveAPIError_CustomError(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrContentNotFound, "notice missing").
		WithStatusMsg("공지가 삭제되었습니다.").
		WithDetails(map[string]interface{}{"redirect": "/notices"})

	status, detail := ResolveAPIError(err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "공지가 삭제되었습니다.", detail.Message)
	assert.Equal(t, map[string]interface{}{"redirect": "/notices"}, detail.Details)
}

func TestRespondWithMessage(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		RespondWithMessage(c, apperrors.ErrUnknownDepartment, "등록된 전공명만 입력할 수 있습니다.")
	})

	w := perform(r, "/", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "등록된 전공명만 입력할 수 있습니다.", decodeError(t, w).Message)
}

func TestValidateRequest(t *testing.T) {
	r := gin.New()
	r.POST("/", ValidateRequest(&dto.LoginRequest{}), func(c *gin.Context) {
		body, ok := ValidatedBody[dto.LoginRequest](c)
		require.True(t, ok)
		c.String(http.StatusOK, body.Email)
	})

	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"email":"a@yu.ac.kr","password":"password123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@yu.ac.kr", w.Body.String())

	w = post(`{"email":"   ","password":"password123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, w).Code)

	w = post(`not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := newRouter(RequestLogger())

	w := perform(r, "/", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed", w.Header().Get("X-Request-ID"))
}
