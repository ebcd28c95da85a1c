package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/services"
	"github.com/yigit/camnote/internal/middleware"
)

// ManageController is the administrator's content editor
type ManageController struct {
	manageService services.ManageService
}

// NewManageController creates a new ManageController
func NewManageController(manageService services.ManageService) *ManageController {
	return &ManageController{manageService: manageService}
}

// List returns the handler listing a department's items for editing
// @Summary List content for management
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param category path string true "notices, events or benefits"
// @Param major query string true "Department"
// @Success 200 {object} dto.APIResponse{data=dto.ManageListResponse}
// @Failure 400 {object} dto.ErrorResponse "전공이 설정되지 않았습니다."
// @Router /admin/{category} [get]
func (c *ManageController) List(category models.Category) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		resp, err := c.manageService.List(ctx.Request.Context(), category, ctx.Query("major"))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
	}
}

// Create returns the handler adding an item to a department
// @Summary Create content
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category path string true "notices, events or benefits"
// @Param major query string true "Department"
// @Param request body dto.ContentForm true "Title and content"
// @Success 201 {object} dto.APIResponse{data=dto.ManageListResponse}
// @Failure 400 {object} dto.ErrorResponse "제목과 내용을 모두 입력하세요."
// @Router /admin/{category} [post]
func (c *ManageController) Create(category models.Category) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		form, ok := bindBody[dto.ContentForm](ctx)
		if !ok {
			return
		}

		resp, err := c.manageService.Create(ctx.Request.Context(), category, ctx.Query("major"), form)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
	}
}

// Update returns the handler editing an item
// @Summary Update content
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category path string true "notices, events or benefits"
// @Param id path string true "Item ID"
// @Param major query string true "Department"
// @Param request body dto.ContentForm true "Title and content"
// @Success 200 {object} dto.APIResponse{data=dto.ManageListResponse}
// @Failure 400 {object} dto.ErrorResponse "제목과 내용을 모두 입력하세요."
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /admin/{category}/{id} [put]
func (c *ManageController) Update(category models.Category) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		form, ok := bindBody[dto.ContentForm](ctx)
		if !ok {
			return
		}

		resp, err := c.manageService.Update(ctx.Request.Context(), category, ctx.Query("major"), ctx.Param("id"), form)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
	}
}

// Delete returns the handler removing an item
// @Summary Delete content
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param category path string true "notices, events or benefits"
// @Param id path string true "Item ID"
// @Param major query string true "Department"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.APIResponse{data=dto.ManageListResponse}
// @Failure 428 {object} dto.ErrorResponse "Confirmation required"
// @Router /admin/{category}/{id} [delete]
func (c *ManageController) Delete(category models.Category) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		resp, err := c.manageService.Delete(ctx.Request.Context(), category, ctx.Query("major"), ctx.Param("id"), confirmed(ctx))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
	}
}

func confirmed(ctx *gin.Context) bool {
	return ctx.Query("confirm") == "true"
}
