// Package api exposes user summaries over HTTP.
package api

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Sternrassler/github-user-summary/pkg/logging"
	"github.com/Sternrassler/github-user-summary/pkg/metrics"
)

// SetupRoutes sets up the API routes
func SetupRoutes(handler *Handler) *gin.Engine {
	configureMode()
	router := gin.New()
	logger := logging.NewLogger("http")

	// Middleware
	router.Use(RequestID())
	router.Use(Recovery(logger))
	router.Use(Logger(logger))

	// Health check and scrape endpoint
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/userSummary/v1")
	{
		v1.GET("/:username", handler.GetUserSummary)
	}

	return router
}

// configureMode switches gin out of its default debug mode, which prints the
// route table to stdout. An explicit GIN_MODE or a mode chosen in code wins.
func configureMode() {
	if _, ok := os.LookupEnv(gin.EnvGinMode); ok {
		return
	}
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}
