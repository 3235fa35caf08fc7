package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railsathi/railsathi_backend/pkg/config"
)

// registerHomeRoutes registers the public informational routes.
func registerHomeRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/contact", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": cfg.ContactEmail})
	})
}
