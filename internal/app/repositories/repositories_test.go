package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func strPtr(s string) *string { return &s }

func TestAccountRepository_CreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts")).
		WithArgs("a1", "kim@yu.ac.kr", "hash", "김", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	err := repo.Create(context.Background(), &models.Account{
		ID: "a1", Email: "kim@yu.ac.kr", PasswordHash: "hash", DisplayName: "김", CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewAccountRepository(mock)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts")).
		WithArgs("kim@yu.ac.kr").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "display_name", "created_at"}).
			AddRow("a1", "kim@yu.ac.kr", "hash", "김", created))

	account, err := repo.GetByEmail(context.Background(), "kim@yu.ac.kr")
	require.NoError(t, err)
	assert.Equal(t, "a1", account.ID)
	assert.Equal(t, created, account.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts")).
		WithArgs("nobody@yu.ac.kr").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByEmail(context.Background(), "nobody@yu.ac.kr")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_RevokeUnknown(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET revoked_at = $1, admin_department = $2 WHERE id = $3")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "s1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Revoke(context.Background(), "s1", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_SetAdminDepartment(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock)
	dept := "컴퓨터공학과"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET admin_department = $1 WHERE id = $2 AND revoked_at IS NULL")).
		WithArgs(pgxmock.AnyArg(), "s1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetAdminDepartment(context.Background(), "s1", &dept))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetDepartmentUpserts(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	user := &models.User{ID: "u1", Email: "kim@yu.ac.kr", CreatedAt: time.Now()}

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE SET department = EXCLUDED.department")).
		WithArgs("u1", "kim@yu.ac.kr", "", "경영학과", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.SetDepartment(context.Background(), user, "경영학과"))
	assert.Equal(t, "경영학과", *user.Department)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY created_at DESC LIMIT 10 OFFSET 0")).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("u2", "lee@yu.ac.kr", "이", strPtr("경영학과"), now).
			AddRow("u1", "kim@yu.ac.kr", "김", (*string)(nil), now.Add(-time.Hour)))

	users, total, err := repo.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	assert.True(t, users[0].HasDepartment())
	assert.False(t, users[1].HasDepartment())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs("u9").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "u9"), apperrors.ErrUserNotFound)
}

func TestContentRepository_FindByDepartment(t *testing.T) {
	mock := newMock(t)
	repo := NewContentRepository(mock)
	created := time.Date(2024, 5, 1, 6, 4, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notices WHERE department = $1 ORDER BY created_at DESC NULLS LAST")).
		WithArgs("컴퓨터공학과").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "department", "created_at", "coalesce"}).
			AddRow("n1", "수강신청 안내", "본문", "컴퓨터공학과", &created, 3).
			AddRow("n2", "휴강", "본문", "컴퓨터공학과", (*time.Time)(nil), 0))

	items, err := repo.FindByDepartment(context.Background(), models.CategoryNotices, "컴퓨터공학과")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.CategoryNotices, items[0].Category)
	assert.Equal(t, 3, items[0].ViewCount)
	assert.Equal(t, created, items[0].CreatedAtOrZero())
	assert.True(t, items[1].CreatedAtOrZero().IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_UnknownCategory(t *testing.T) {
	repo := NewContentRepository(newMock(t))

	_, err := repo.FindAll(context.Background(), models.Category("users"))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestContentRepository_IncrementViewCount(t *testing.T) {
	mock := newMock(t)
	repo := NewContentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE events SET view_count = COALESCE(view_count, 0) + 1 WHERE id = $1 RETURNING view_count")).
		WithArgs("e1").
		WillReturnRows(pgxmock.NewRows([]string{"view_count"}).AddRow(8))

	count, err := repo.IncrementViewCount(context.Background(), models.CategoryEvents, "e1")
	require.NoError(t, err)
	assert.Equal(t, 8, count)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE events SET view_count")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.IncrementViewCount(context.Background(), models.CategoryEvents, "missing")
	assert.ErrorIs(t, err, apperrors.ErrContentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_UpdateMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewContentRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE benefits SET title = $1, content = $2, department = $3 WHERE id = $4")).
		WithArgs("제휴", "할인", "경영학과", "b1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &models.ContentItem{
		ID: "b1", Category: models.CategoryBenefits, Title: "제휴", Content: "할인", Department: "경영학과",
	})
	assert.ErrorIs(t, err, apperrors.ErrContentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_TopByViewCount(t *testing.T) {
	mock := newMock(t)
	repo := NewContentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY COALESCE(view_count, 0) DESC, created_at DESC NULLS LAST LIMIT 5")).
		WithArgs("경영학과").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "department", "created_at", "coalesce"}))

	items, err := repo.TopByViewCount(context.Background(), models.CategoryBenefits, "경영학과", 5)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_FindAllAndRespond(t *testing.T) {
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM feedbacks ORDER BY created_at DESC")).
		WillReturnRows(pgxmock.NewRows(feedbackColumns).
			AddRow("f1", "김", "kim@yu.ac.kr", "건의", "u1", now, strPtr("확인했습니다")).
			AddRow("f2", "이", "lee@yu.ac.kr", "문의", "", now, (*string)(nil)))

	feedbacks, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, feedbacks, 2)
	assert.Equal(t, "확인했습니다", *feedbacks[0].Response)
	assert.Nil(t, feedbacks[1].Response)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE feedbacks SET response = $1 WHERE id = $2")).
		WithArgs("답변", "f3").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.SetResponse(context.Background(), "f3", "답변"), apperrors.ErrFeedbackNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifiedStudentRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewVerifiedStudentRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO verified_students")).
		WithArgs("v1", "영남대학교", "22012345", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "verified_students_student_id_key"})

	err := repo.Create(context.Background(), &models.VerifiedStudent{
		ID: "v1", School: "영남대학교", StudentID: "22012345", VerifiedAt: time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentIDAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "kim@yu.ac.kr", "김", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

	err := repo.Create(context.Background(), &models.User{ID: "u1", Email: "kim@yu.ac.kr", DisplayName: "김", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_TopByViewCountAllDepartments(t *testing.T) {
	mock := newMock(t)
	repo := NewContentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notices ORDER BY COALESCE(view_count, 0) DESC, created_at DESC NULLS LAST LIMIT 5")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "department", "created_at", "coalesce"}).
			AddRow("n1", "수강신청 안내", "본문", "컴퓨터공학과", (*time.Time)(nil), 12).
			AddRow("n2", "장학금", "본문", "경영학과", (*time.Time)(nil), 4))

	items, err := repo.TopByViewCount(context.Background(), models.CategoryNotices, "", 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "경영학과", items[1].Department)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func malformedUUID() error {
	return &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`}
}

func TestContentRepository_MalformedID(t *testing.T) {
	ctx := context.Background()

	for _, category := range models.Categories {
		t.Run(string(category), func(t *testing.T) {
			mock := newMock(t)
			repo := NewContentRepository(mock)
			table := categoryTables[category]

			mock.ExpectQuery(regexp.QuoteMeta("FROM " + table + " WHERE id = $1")).
				WithArgs("not-a-uuid").
				WillReturnError(malformedUUID())
			_, err := repo.FindByID(ctx, category, "not-a-uuid")
			assert.ErrorIs(t, err, apperrors.ErrContentNotFound)

			mock.ExpectQuery(regexp.QuoteMeta("UPDATE " + table + " SET view_count")).
				WithArgs("not-a-uuid").
				WillReturnError(malformedUUID())
			_, err = repo.IncrementViewCount(ctx, category, "not-a-uuid")
			assert.ErrorIs(t, err, apperrors.ErrContentNotFound)

			mock.ExpectExec(regexp.QuoteMeta("UPDATE " + table + " SET title")).
				WillReturnError(malformedUUID())
			err = repo.Update(ctx, &models.ContentItem{ID: "not-a-uuid", Category: category, Title: "제목", Content: "본문", Department: "경영학과"})
			assert.ErrorIs(t, err, apperrors.ErrContentNotFound)

			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM " + table)).
				WithArgs("not-a-uuid").
				WillReturnError(malformedUUID())
			assert.ErrorIs(t, repo.Delete(ctx, category, "not-a-uuid"), apperrors.ErrContentNotFound)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFeedbackRepository_MalformedID(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewFeedbackRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM feedbacks WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(malformedUUID())
	_, err := repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrFeedbackNotFound)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE feedbacks SET response")).
		WithArgs("답변", "not-a-uuid").
		WillReturnError(malformedUUID())
	assert.ErrorIs(t, repo.SetResponse(ctx, "not-a-uuid", "답변"), apperrors.ErrFeedbackNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM feedbacks")).
		WithArgs("not-a-uuid").
		WillReturnError(malformedUUID())
	assert.ErrorIs(t, repo.Delete(ctx, "not-a-uuid"), apperrors.ErrFeedbackNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_MalformedID(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(malformedUUID())
	_, err := repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs("not-a-uuid").
		WillReturnError(malformedUUID())
	assert.ErrorIs(t, repo.Delete(ctx, "not-a-uuid"), apperrors.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
