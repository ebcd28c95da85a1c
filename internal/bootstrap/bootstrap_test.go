package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/camnote/internal/config"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "camnote.test"
	cfg.Portal.AdminEmail = "admin@camnote.app"
	cfg.Portal.SchoolName = "영남대학교"
	cfg.Portal.Departments = []string{"컴퓨터공학과", "경영학과"}
	cfg.Portal.Timezone = "Asia/Seoul"
	cfg.Portal.PopularLimit = 5
	return cfg
}

func newTestRouter(t *testing.T, pinger Pinger) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	deps, err := BuildDependencies(testConfig(), mock, zerolog.Nop())
	require.NoError(t, err)
	return SetupRouter(testConfig(), deps, pinger, zerolog.Nop()), mock
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestSetupRouter_PublicRoutes(t *testing.T) {
	r, mock := newTestRouter(t, stubPinger{})

	assert.Equal(t, http.StatusOK, get(r, "/ping").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/health").Code)

	w := get(r, "/api/v1/departments")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "컴퓨터공학과")

	// anonymous visitors get the department prompt without touching the store
	w = get(r, "/api/v1/notices")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			DepartmentRequired bool   `json:"departmentRequired"`
			Message            string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.DepartmentRequired)
	assert.NotEmpty(t, body.Data.Message)

	assert.Equal(t, http.StatusOK, get(r, "/api/v1/navigation/resolve?path=/home").Code)
	assert.Equal(t, http.StatusOK, get(r, "/swagger/doc.json").Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupRouter_ProtectedRoutes(t *testing.T) {
	r, _ := newTestRouter(t, stubPinger{})

	for _, target := range []string{
		"/api/v1/home",
		"/api/v1/users/me/major",
		"/api/v1/admin/users",
		"/api/v1/admin/notices?major=x",
		"/api/v1/admin/dashboard",
		"/ws/session",
	} {
		assert.Equal(t, http.StatusUnauthorized, get(r, target).Code, target)
	}
}

func TestSetupRouter_HealthDown(t *testing.T) {
	r, _ := newTestRouter(t, stubPinger{err: errors.New("connection refused")})

	w := get(r, "/api/v1/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "down")
}

func TestSetupRouter_DetailMalformedID(t *testing.T) {
	r, mock := newTestRouter(t, stubPinger{})

	for _, category := range []string{"notices", "events", "benefits"} {
		mock.ExpectQuery(regexp.QuoteMeta("FROM " + category + " WHERE id = $1")).
			WithArgs("not-a-uuid").
			WillReturnError(&pgconn.PgError{Code: "22P02"})

		w := get(r, "/api/v1/"+category+"/not-a-uuid")
		require.Equal(t, http.StatusNotFound, w.Code, category)

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "RES_001", body.Error.Code, category)
		assert.Equal(t, "존재하지 않는 게시글입니다.", body.Error.Message, category)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
