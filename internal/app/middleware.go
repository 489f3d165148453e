package app

import (
	"github.com/gin-gonic/gin"

	"lifeseed/internal/config"
	"lifeseed/internal/middleware"
)

// SetupMiddleware installs the global middleware chain.
func SetupMiddleware(r *gin.Engine, cfg *config.Config) {
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(cfg.CORSOrigin))
}
