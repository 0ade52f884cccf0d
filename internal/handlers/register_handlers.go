package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/vending_machine_app/cmd/docs"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/middleware"
	"github.com/SscSPs/vending_machine_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	purchaseLimiter, err := middleware.NewMemoryLimiter(cfg.PurchaseRateLimit)
	if err != nil {
		return fmt.Errorf("purchase rate limit: %w", err)
	}
	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}

	// Customer-facing machine routes
	registerHomeRoutes(r, services.Product)
	registerPurchaseRoutes(r, services.Purchase, services.Product, middleware.RateLimit(purchaseLimiter))

	// Public authentication routes
	registerAuthRoutes(r, services.Auth, loginLimiter)

	// Admin API with Auth Middleware
	setupAdminRoutes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAdminRoutes configures the /api/v1/admin group and delegates to specific entity route registrations
func setupAdminRoutes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	admin := r.Group("/api/v1/admin", middleware.AuthMiddleware(cfg.JWTSecret))

	registerProductRoutes(admin, service.Product)
	registerTransactionLogRoutes(admin, service.TransactionLog)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
