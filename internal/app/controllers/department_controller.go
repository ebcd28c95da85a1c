package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/navigation"
	"github.com/yigit/camnote/internal/app/services"
	"github.com/yigit/camnote/internal/middleware"
	"github.com/yigit/camnote/internal/pkg/apperrors"
)

// Department selection messages differ between the user and admin pages
const (
	msgUserDepartmentEmpty    = "전공명을 입력해주세요."
	msgUserDepartmentUnknown  = "등록된 전공명이 아닙니다. 다시 입력해주세요."
	msgAdminDepartmentEmpty   = "전공을 입력해 주세요."
	msgAdminDepartmentUnknown = "등록된 전공명만 입력할 수 있습니다."
)

// DepartmentController handles department selection
type DepartmentController struct {
	departmentService services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

func respondDepartmentError(ctx *gin.Context, err error, emptyMsg, unknownMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrDepartmentRequired):
		middleware.RespondWithMessage(ctx, err, emptyMsg)
	case errors.Is(err, apperrors.ErrUnknownDepartment):
		middleware.RespondWithMessage(ctx, err, unknownMsg)
	default:
		middleware.HandleAPIError(ctx, err)
	}
}

// GetAllDepartments lists the known departments
// @Summary Get all departments
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentListResponse}
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.departmentService.ListDepartments()))
}

// GetMyDepartment returns the caller's stored department
// @Summary Get my department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me/major [get]
func (c *DepartmentController) GetMyDepartment(ctx *gin.Context) {
	resp, err := c.departmentService.GetUserDepartment(ctx.Request.Context(), ctx.GetString(middleware.ContextKeyUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// SetMyDepartment stores the caller's department
// @Summary Set my department
// @Description The name must match a known department exactly
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SelectDepartmentRequest true "Department name"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.ErrorResponse "Empty or unknown department"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me/major [put]
func (c *DepartmentController) SetMyDepartment(ctx *gin.Context) {
	req, ok := bindBody[dto.SelectDepartmentRequest](ctx)
	if !ok {
		return
	}

	resp, err := c.departmentService.SetUserDepartment(ctx.Request.Context(), middleware.SessionFrom(ctx), req.Department)
	if err != nil {
		respondDepartmentError(ctx, err, msgUserDepartmentEmpty, msgUserDepartmentUnknown)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// MajorCheck tells a freshly signed-in user where to go
// @Summary Department check redirect
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RedirectResponse}
// @Router /major-check [get]
func (c *DepartmentController) MajorCheck(ctx *gin.Context) {
	resp, err := c.departmentService.MajorCheck(ctx.Request.Context(), middleware.SessionFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// SelectAdminDepartment stores the administrator's department for this session
// @Summary Select admin department
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SelectDepartmentRequest true "Department name"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.ErrorResponse "Empty or unknown department"
// @Failure 403 {object} dto.ErrorResponse "Not the administrator"
// @Router /admin/selection [put]
func (c *DepartmentController) SelectAdminDepartment(ctx *gin.Context) {
	req, ok := bindBody[dto.SelectDepartmentRequest](ctx)
	if !ok {
		return
	}

	resp, err := c.departmentService.SelectAdminDepartment(ctx.Request.Context(), ctx.GetString(middleware.ContextKeySessionID), req.Department)
	if err != nil {
		respondDepartmentError(ctx, err, msgAdminDepartmentEmpty, msgAdminDepartmentUnknown)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetAdminDepartment reads the session's selection
// @Summary Get admin department
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Router /admin/selection [get]
func (c *DepartmentController) GetAdminDepartment(ctx *gin.Context) {
	resp, err := c.departmentService.GetAdminDepartment(ctx.Request.Context(), ctx.GetString(middleware.ContextKeySessionID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ClearAdminDepartment drops the session's selection
// @Summary Clear admin department
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.RedirectResponse}
// @Router /admin/selection [delete]
func (c *DepartmentController) ClearAdminDepartment(ctx *gin.Context) {
	if err := c.departmentService.ClearAdminDepartment(ctx.Request.Context(), ctx.GetString(middleware.ContextKeySessionID)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.RedirectResponse{Redirect: navigation.PathAdminSelectMajor}))
}

// Dashboard returns the management links for the selected department
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse}
// @Router /admin/dashboard [get]
func (c *DepartmentController) Dashboard(ctx *gin.Context) {
	resp, err := c.departmentService.Dashboard(ctx.Request.Context(), ctx.GetString(middleware.ContextKeySessionID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
