// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/camnote/internal/app/identity"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/services"
	"github.com/yigit/camnote/internal/middleware"
	"github.com/yigit/camnote/internal/pkg/apperrors"
)

// Sign-up failure messages
const (
	msgEmailLookupFailed = "이메일 중복 확인 중 오류가 발생했습니다."
	msgEmailExists       = "이메일이 존재합니다."
	msgSignupFailed      = "회원가입 중 오류가 발생했습니다."
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

func bindBody[T any](ctx *gin.Context) (*T, bool) {
	if body, ok := middleware.ValidatedBody[T](ctx); ok {
		return body, true
	}
	var body T
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return nil, false
	}
	return &body, true
}

// Login handles user login
// @Summary User login
// @Description Signs in with email and password. The administrator is sent to department selection, everyone else to the department check.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	req, ok := bindBody[dto.LoginRequest](ctx)
	if !ok {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Signup handles account registration
// @Summary Register a new account
// @Description Creates an account and its user record, then signs in. The next step is affiliation verification.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.SessionResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid email or short password"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	req, ok := bindBody[dto.SignupRequest](ctx)
	if !ok {
		return
	}

	resp, err := c.authService.Signup(ctx.Request.Context(), req)
	if err != nil {
		c.respondSignupError(ctx, err)
		return
	}

	c.logger.Info().Str("accountID", resp.User.ID).Msg("Account registered")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

func (c *AuthController) respondSignupError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailLookupFailed):
		middleware.RespondWithMessage(ctx, err, msgEmailLookupFailed)
	case errors.Is(err, services.ErrSignupFailed):
		switch identity.KindOf(err) {
		case identity.KindEmailInUse:
			middleware.RespondWithMessage(ctx, apperrors.ErrEmailAlreadyExists, msgEmailExists)
		case identity.KindInvalidEmail:
			middleware.HandleAPIError(ctx, apperrors.ErrInvalidEmail)
		default:
			c.logger.Error().Err(err).Msg("Sign-up failed")
			middleware.RespondWithMessage(ctx, err, msgSignupFailed)
		}
	default:
		middleware.HandleAPIError(ctx, err)
	}
}

// Logout ends the caller's session
// @Summary Logout
// @Description Revokes the session and clears the administrator's department selection
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.RedirectResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	resp, err := c.authService.Logout(ctx.Request.Context(), ctx.GetString(middleware.ContextKeySessionID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// CurrentSession reports the caller's session
// @Summary Current session
// @Description Returns whether the caller is signed in and as whom
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CurrentSessionResponse}
// @Router /auth/session [get]
func (c *AuthController) CurrentSession(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.authService.CurrentSession(middleware.SessionFrom(ctx))))
}

// VerificationController handles school affiliation checks
type VerificationController struct {
	verificationService services.VerificationService
}

// NewVerificationController creates a new VerificationController
func NewVerificationController(verificationService services.VerificationService) *VerificationController {
	return &VerificationController{verificationService: verificationService}
}

// Verify records a student's affiliation
// @Summary Verify affiliation
// @Description Checks the school name and an 8 digit student ID that has not been claimed yet
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerificationRequest true "School and student ID"
// @Success 201 {object} dto.APIResponse{data=dto.RedirectResponse} "Verified"
// @Failure 400 {object} dto.ErrorResponse "Unknown school or invalid student ID"
// @Failure 409 {object} dto.ErrorResponse "Student ID already registered"
// @Router /verification [post]
func (c *VerificationController) Verify(ctx *gin.Context) {
	req, ok := bindBody[dto.VerificationRequest](ctx)
	if !ok {
		return
	}

	resp, err := c.verificationService.Verify(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}
