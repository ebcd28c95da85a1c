package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yigit/camnote/docs"
)

// SetupSwagger mounts Swagger UI and doc.json under /swagger. The host is
// cleared so "Try it out" targets whichever host served the page.
func SetupSwagger(router *gin.Engine) {
	docs.SwaggerInfo.Host = ""
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DefaultModelsExpandDepth(1),
		ginSwagger.PersistAuthorization(true),
	))
}
