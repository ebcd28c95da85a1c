package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/camnote/internal/app/controllers"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/app/models/dto"
	"github.com/yigit/camnote/internal/middleware"
	"github.com/yigit/camnote/internal/pkg/websocket"
)

// Handlers groups the controllers mounted by SetupRouter
type Handlers struct {
	Auth         *controllers.AuthController
	Verification *controllers.VerificationController
	Department   *controllers.DepartmentController
	Content      *controllers.ContentController
	Manage       *controllers.ManageController
	Feedback     *controllers.FeedbackController
	User         *controllers.UserController
	Navigation   *controllers.NavigationController
	Session      *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) *gin.RouterGroup {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.ValidateRequest(dto.LoginRequest{}), h.Auth.Login)
		auth.POST("/signup", middleware.ValidateRequest(dto.SignupRequest{}), h.Auth.Signup)
		auth.POST("/logout", authMiddleware.JWTAuth(), h.Auth.Logout)
		auth.GET("/session", authMiddleware.OptionalJWTAuth(), h.Auth.CurrentSession)
	}

	v1.POST("/verification", h.Verification.Verify)
	v1.GET("/departments", h.Department.GetAllDepartments)

	navigation := v1.Group("/navigation")
	{
		navigation.GET("/routes", h.Navigation.Routes)
		navigation.GET("/resolve", h.Navigation.Resolve)
	}

	// --- Optionally authenticated routes ---
	// Anonymous visitors see the same pages with no department or prefill
	optional := v1.Group("")
	optional.Use(authMiddleware.OptionalJWTAuth())
	{
		optional.GET("/major-check", h.Department.MajorCheck)

		for _, category := range models.Categories {
			base := "/" + string(category)
			optional.GET(base, h.Content.List(category))
			optional.GET(base+"/:id", h.Content.Detail(category))
		}

		optional.GET("/feedbacks", h.Feedback.List)
		optional.POST("/feedbacks", h.Feedback.Submit)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/home", h.Content.Home)
		authenticated.GET("/users/me/major", h.Department.GetMyDepartment)
		authenticated.PUT("/users/me/major", h.Department.SetMyDepartment)
		authenticated.DELETE("/feedbacks/:id", h.Feedback.Delete)
	}

	// --- Administrator routes ---
	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.AdminRequired())
	{
		admin.PUT("/selection", h.Department.SelectAdminDepartment)
		admin.GET("/selection", h.Department.GetAdminDepartment)
		admin.DELETE("/selection", h.Department.ClearAdminDepartment)
		admin.GET("/dashboard", h.Department.Dashboard)

		for _, category := range models.Categories {
			base := "/" + string(category)
			admin.GET(base, h.Manage.List(category))
			admin.POST(base, h.Manage.Create(category))
			admin.PUT(base+"/:id", h.Manage.Update(category))
			admin.DELETE(base+"/:id", h.Manage.Delete(category))
		}

		admin.GET("/feedbacks", h.Feedback.AdminList)
		admin.PUT("/feedbacks/:id/response", h.Feedback.Respond)

		admin.GET("/users", h.User.ListUsers)
		admin.DELETE("/users/:id", h.User.DeleteUser)
	}

	// Session change notifications. Browsers cannot set headers on the
	// upgrade request, so the token may come in the query string.
	if h.Session != nil {
		router.GET("/ws/session", authMiddleware.JWTAuth(), h.Session.HandleConnection)
	}

	return v1
}
