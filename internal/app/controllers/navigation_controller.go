package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/app/navigation"
)

// NavigationController exposes the front-end route table
type NavigationController struct{}

// NewNavigationController creates a new NavigationController
func NewNavigationController() *NavigationController {
	return &NavigationController{}
}

// Routes lists every front-end route
// @Summary Route table
// @Tags navigation
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.RouteResponse}
// @Router /navigation/routes [get]
func (c *NavigationController) Routes(ctx *gin.Context) {
	routes := navigation.Routes()
	out := make([]dto.RouteResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, dto.RouteResponse{
			Path:       r.Path,
			Page:       r.Page,
			Admin:      r.Admin,
			ShowNavBar: navigation.ShowsNavBar(r.Path),
			RedirectTo: r.RedirectTo,
		})
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(out))
}

// Resolve matches a path against the route table
// @Summary Resolve a path
// @Tags navigation
// @Produce json
// @Param path query string true "Front-end path"
// @Success 200 {object} dto.APIResponse{data=dto.ResolveResponse}
// @Router /navigation/resolve [get]
func (c *NavigationController) Resolve(ctx *gin.Context) {
	path := ctx.Query("path")
	resp := dto.ResolveResponse{Path: path, ShowNavBar: navigation.ShowsNavBar(path)}

	if match, ok := navigation.Resolve(path); ok {
		resp.Found = true
		resp.Page = match.Route.Page
		resp.Params = match.Params
		resp.ShowNavBar = match.ShowNavBar
		resp.Redirect = match.Route.RedirectTo
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
