package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/content"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/services"
	"github.com/yigit/camnote/internal/middleware"
)

// ContentController serves the notice, event and benefit pages
type ContentController struct {
	contentService services.ContentService
}

// NewContentController creates a new ContentController
func NewContentController(contentService services.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

// List returns the handler for a category's view page
// @Summary List department content
// @Description Lists the viewer's department items of one category. Without a department the response has departmentRequired set and no items.
// @Tags content
// @Produce json
// @Param category path string true "notices, events or benefits"
// @Param sort query string false "title or date" default(date)
// @Param order query string false "asc or desc"
// @Success 200 {object} dto.APIResponse{data=dto.ContentListResponse}
// @Router /{category} [get]
func (c *ContentController) List(category models.Category) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sort := content.ParseSort(ctx.Query("sort"), ctx.Query("order"))

		resp, err := c.contentService.List(ctx.Request.Context(), category, middleware.SessionFrom(ctx), sort)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
	}
}

// Detail returns the handler for a category's detail page. Every call counts a view.
// @Summary Content detail
// @Tags content
// @Produce json
// @Param category path string true "notices, events or benefits"
// @Param id path string true "Item ID"
// @Success 200 {object} dto.APIResponse{data=dto.ContentItemResponse}
// @Failure 404 {object} dto.ErrorResponse "존재하지 않는 게시글입니다."
// @Router /{category}/{id} [get]
func (c *ContentController) Detail(category models.Category) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		resp, err := c.contentService.Detail(ctx.Request.Context(), category, ctx.Param("id"))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
	}
}

// Home returns the most viewed items of the caller's department
// @Summary Home page
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.HomeResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /home [get]
func (c *ContentController) Home(ctx *gin.Context) {
	resp, err := c.contentService.Home(ctx.Request.Context(), middleware.SessionFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
