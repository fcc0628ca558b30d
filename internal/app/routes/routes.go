package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/planboard/planboard/internal/app/controllers"
	"github.com/planboard/planboard/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	planController *controllers.PlanController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public Catalog routes ---
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/courses/:subject/:number", catalogController.GetCourse)
		catalog.GET("/search", catalogController.Search)
	}

	// --- Public Plan routes (stateless, work on serialized content) ---
	plans := v1.Group("/plans")
	{
		plans.POST("/decode", planController.DecodePlan)
		plans.POST("/operations", planController.ApplyOperation)
	}

	// --- Authenticated saved plan routes ---
	authenticated := v1.Group("/plans")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("", planController.CreatePlan)
		authenticated.GET("", planController.ListPlans)
		authenticated.GET("/:id", planController.GetPlan)
		authenticated.PUT("/:id", planController.UpdatePlan)
		authenticated.DELETE("/:id", planController.DeletePlan)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
