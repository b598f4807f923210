package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nexusnet/branch_registry_app/cmd/docs"
	portssvc "github.com/nexusnet/branch_registry_app/internal/core/ports/services"
	"github.com/nexusnet/branch_registry_app/pkg/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	branchService portssvc.BranchSvcFacade,
) {
	// Add health check route
	r.GET("/health", GetHealth)

	// Setup API v1 routes
	setupAPIV1Routes(r, branchService)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	branchService portssvc.BranchSvcFacade,
) {
	v1 := r.Group("/api/v1")

	registerBranchRoutes(v1, branchService)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
