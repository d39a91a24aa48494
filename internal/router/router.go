// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/javajoker/draft-backend/internal/config"
	"github.com/javajoker/draft-backend/internal/handlers"
	"github.com/javajoker/draft-backend/internal/middleware"
	"github.com/javajoker/draft-backend/internal/services"
	"github.com/javajoker/draft-backend/internal/utils"
)

const version = "1.0.0"

func Initialize(draftService *services.DraftService, cfg *config.Config, log logrus.FieldLogger) *gin.Engine {
	// Initialize handlers
	draftHandler := handlers.NewDraftHandler(draftService)
	toolHandler := handlers.NewToolHandler(draftService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(limiter.Middleware())
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(middleware.OptionalAuth())
	{
		drafts := v1.Group("/drafts")
		{
			drafts.GET("", draftHandler.ListDrafts)
			drafts.POST("", draftHandler.CreateDraft)
			drafts.POST("/batch", draftHandler.BatchGetDrafts)
			drafts.GET("/:id", draftHandler.GetDraft)
			drafts.PUT("/:id", draftHandler.UpdateDraft)
			drafts.DELETE("/:id", draftHandler.DeleteDraft)
			drafts.POST("/:id/add", draftHandler.AddToDraft)
			drafts.POST("/:id/remove", draftHandler.RemoveFromDraft)
			drafts.GET("/:id/export", draftHandler.ExportDraft)
		}

		// Tool-call surface
		tools := v1.Group("/tools")
		{
			tools.GET("", func(c *gin.Context) {
				utils.SuccessResponse(c, gin.H{"tools": toolHandler.ToolNames()})
			})
			tools.POST("/:name", toolHandler.Call)
		}

		meta := v1.Group("/meta")
		{
			meta.GET("/enums", handlers.GetEnums)
		}
	}

	return r
}
