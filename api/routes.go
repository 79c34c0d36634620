// Package api exposes the restoration engine over HTTP for hosts that prefer
// a service to a library import.
package api

import (
	"github.com/gin-gonic/gin"
)

// Config holds service configuration.
type Config struct {
	MaxFileSize int64
}

// DefaultMaxFileSize bounds uploaded images (50MB).
const DefaultMaxFileSize = 50 << 20

func SetupRoutes(r *gin.Engine, config *Config) {
	apiGroup := r.Group("/api/image")
	{
		apiGroup.POST("/process", func(c *gin.Context) { HandleProcess(c, config) })
		apiGroup.POST("/detect", func(c *gin.Context) { HandleDetect(c, config) })
	}
}
