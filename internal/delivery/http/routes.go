package http

import (
	"github.com/giftshop/storefront/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		// Storefront endpoints
		v1.GET("/products", handler.ListProducts)
		v1.GET("/products/:id", handler.GetProduct)
		v1.GET("/categories", handler.ListCategories)
		v1.POST("/catalog/reload", handler.ReloadCatalog)

		// Staff endpoints
		staff := v1.Group("/staff")
		{
			staff.GET("/lookup", handler.StaffLookup)
			staff.GET("/products/:id/share", handler.ShareProduct)
			staff.GET("/export.xlsx", handler.ExportStaffProducts)
		}
	}

	return router
}
