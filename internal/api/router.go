package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/AnkitSingh-ai/templaterepo/internal/api/handlers"
	"github.com/AnkitSingh-ai/templaterepo/internal/api/middleware"
	"github.com/AnkitSingh-ai/templaterepo/internal/audit"
	"github.com/AnkitSingh-ai/templaterepo/internal/authz"
	"github.com/AnkitSingh-ai/templaterepo/internal/config"
	"github.com/AnkitSingh-ai/templaterepo/internal/repository"
	"github.com/AnkitSingh-ai/templaterepo/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc *service.TemplateService, settings *repository.SettingsRepository, az *authz.Service, trail *audit.Trail) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())
	router.Use(corsMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", handlers.HealthCheck)
	}

	// Initialize handlers
	templateHandler := handlers.NewTemplateHandler(svc)
	prefillHandler := handlers.NewPrefillHandler(svc, settings)
	adminHandler := handlers.NewAdminHandler(settings, az, trail)
	settingsHandler := handlers.NewSettingsHandler(settings, az, trail)

	// Protected routes (require a host-signed bearer token)
	protected := router.Group("/api/v1")
	protected.Use(middleware.Principal(cfg.Auth.JWTSecret, cfg.Auth.Disabled))
	{
		// Template endpoints
		protected.GET("/templates", templateHandler.ListTemplates)
		protected.POST("/templates", templateHandler.CreateTemplate)
		protected.GET("/templates/search", templateHandler.SearchTemplates)
		protected.GET("/templates/filter-projects", templateHandler.ListFilterProjects)
		protected.GET("/templates/:id", templateHandler.GetTemplate)
		protected.PUT("/templates/:id", templateHandler.UpdateTemplate)
		protected.DELETE("/templates/:id", templateHandler.DeleteTemplate)
		protected.POST("/templates/:id/duplicate", templateHandler.DuplicateTemplate)
		protected.GET("/templates/:id/assignments", templateHandler.GetAssignments)
		protected.PUT("/templates/:id/assignments", templateHandler.AssignScope)
		protected.PUT("/templates/:id/active", templateHandler.SetActive)

		// Prefill endpoint (issue-create form)
		protected.GET("/prefill", prefillHandler.GetPrefill)

		// Project settings endpoints
		protected.GET("/projects/:key/settings", settingsHandler.GetProjectSettings)
		protected.PUT("/projects/:key/settings", settingsHandler.UpdateProjectSettings)

		// Admin endpoints
		admin := protected.Group("/admin")
		{
			admin.GET("/config", adminHandler.GetConfig)
			admin.PUT("/config", adminHandler.UpdateConfig)
			admin.GET("/audit-log", adminHandler.ListAuditLog)
		}
	}

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	slog.Info("API router initialized", "mode", cfg.Server.Mode)
	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"ip", c.ClientIP(),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
