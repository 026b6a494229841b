package router

import (
	"net/http"

	"bouncelist/internal/config"
	"bouncelist/internal/domain/blacklist"
	"bouncelist/internal/middleware"

	"github.com/gin-gonic/gin"
)

// New creates and configures the Gin router with all middleware and routes.
func New(
	cfg *config.Config,
	blacklistHandler *blacklist.Handler,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// Global middleware stack (order matters)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	// Rate limiter
	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
	)
	r.Use(rateLimiter.Middleware())

	r.Use(gin.Logger())

	// Public routes
	r.GET("/v1/health_check", healthCheck)

	// The SNS endpoint stays unauthenticated: the notification source does
	// not send credentials (signature verification is a known gap).
	r.POST("/:tenantID/sns-endpoint", blacklistHandler.IngestNotification)

	// The lookup is for the sending system; require an API key when any
	// are configured.
	lookup := []gin.HandlerFunc{blacklistHandler.IsBlacklisted}
	if len(cfg.Auth.APIKeys) > 0 {
		lookup = append([]gin.HandlerFunc{middleware.Auth(cfg.Auth.APIKeys)}, lookup...)
	}
	r.GET("/:tenantID/is-blacklisted/:email", lookup...)

	return r
}

// healthCheck handles GET /v1/health_check
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "bouncelist is healthy",
	})
}
