package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/services"
	"github.com/yigit/camnote/internal/middleware"
	"github.com/yigit/camnote/internal/pkg/helpers"
)

// UserController handles the administrator's user list
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers returns a page of user records
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.userService.ListUsers(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteUser removes a user record. The account itself is kept.
// @Summary Delete user record
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 428 {object} dto.ErrorResponse "Confirmation required"
// @Router /admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.userService.DeleteUser(ctx.Request.Context(), ctx.Param("id"), confirmed(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "사용자가 삭제되었습니다."}))
}
