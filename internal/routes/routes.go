package routes

import (
	"net/http"

	"chefmarket_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API
func RegisterRoutes(r *gin.Engine, h *handlers.Registry) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	h.Auth.RegisterRoutes(api)
	h.User.RegisterRoutes(api)
	h.Payment.RegisterRoutes(api)
	h.Plan.RegisterRoutes(api)
	h.Announcement.RegisterRoutes(api)
	h.Profile.RegisterRoutes(api)
}
