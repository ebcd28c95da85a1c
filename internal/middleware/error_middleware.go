package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first sentinel err matches wins
var errorMappings = []errorMapping{
	// Affiliation
	{apperrors.ErrSchoolNotFound, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "해당 학교는 존재하지 않습니다."},
	{apperrors.ErrInvalidStudentID, http.StatusBadRequest, dto.ErrorCodeInvalidStudentID, "학번은 8자리 숫자여야 합니다."},
	{apperrors.ErrStudentIDAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "이미 등록된 학번입니다."},

	// Content and feedback
	{apperrors.ErrContentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "존재하지 않는 게시글입니다."},
	{apperrors.ErrContentFieldsMissing, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "제목과 내용을 모두 입력하세요."},
	{apperrors.ErrFeedbackNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "존재하지 않는 피드백입니다."},
	{apperrors.ErrFeedbackFieldsMissing, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "모든 항목을 입력해주세요."},
	{apperrors.ErrFeedbackNotOwned, http.StatusForbidden, dto.ErrorCodeForbidden, "본인이 작성한 피드백만 삭제할 수 있습니다."},
	{apperrors.ErrEmptyFeedbackResponse, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "응답 내용을 입력하세요."},

	// Department
	{apperrors.ErrDepartmentRequired, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "전공이 설정되지 않았습니다."},
	{apperrors.ErrUnknownDepartment, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "등록된 전공명이 아닙니다."},

	// Authentication
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "이메일 또는 비밀번호가 잘못되었습니다."},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "이미 등록된 이메일입니다."},
	{apperrors.ErrInvalidEmail, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "올바른 이메일 형식을 입력해주세요."},
	{apperrors.ErrInvalidPassword, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "비밀번호는 최소 8자 이상이어야 합니다."},
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "로그인이 필요합니다."},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "세션이 만료되었습니다. 다시 로그인해주세요."},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "유효하지 않은 세션입니다."},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "로그아웃된 세션입니다."},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "권한이 없습니다."},

	// Generic
	{apperrors.ErrConfirmationRequired, http.StatusPreconditionRequired, dto.ErrorCodeConfirmationRequired, "삭제하려면 확인이 필요합니다."},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "사용자를 찾을 수 없습니다."},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "요청한 리소스를 찾을 수 없습니다."},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "입력값이 올바르지 않습니다."},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "잘못된 요청입니다."},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "이미 존재합니다."},
}

// ResolveAPIError maps err to a status code and error detail. A CustomError's
// StatusMsg replaces the default message and its Details are passed through.
func ResolveAPIError(err error) (int, *dto.ErrorDetail) {
	status := http.StatusInternalServerError
	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "서버 오류가 발생했습니다.")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, dto.HandleValidationError(err)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status = m.status
			detail = dto.NewErrorDetail(m.code, m.message)
			break
		}
	}

	if msg, ok := apperrors.StatusMessage(err); ok {
		detail.Message = msg
	}
	if details := apperrors.DetailsOf(err); details != nil {
		detail = detail.WithDetails(details)
	}
	return status, detail
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ResolveAPIError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// RespondWithMessage writes err's status with message in place of the default
func RespondWithMessage(c *gin.Context, err error, message string) {
	HandleAPIError(c, apperrors.NewCustomError(err, err.Error()).WithStatusMsg(message))
}
