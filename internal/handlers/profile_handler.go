package handlers

import (
	"net/http"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/middleware"
	"chefmarket_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService *services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	chefs := r.Group("/chefs")
	{
		// Работодатель просматривает доступных поваров
		chefs.GET("", h.ListAvailable)
		chefs.GET("/:userId", h.GetByUser)
	}

	profile := r.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("/my", h.GetMy)
		profile.PUT("/my", h.Upsert)
	}
}

func (h *ProfileHandler) ListAvailable(c *gin.Context) {
	limit, offset := h.Pagination(c)

	profiles, err := h.profileService.ListAvailable(c.Query("city"), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chefs": profiles,
		"total": len(profiles),
	})
}

func (h *ProfileHandler) GetByUser(c *gin.Context) {
	profile, err := h.profileService.GetByUserID(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) GetMy(c *gin.Context) {
	profile, err := h.profileService.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req dto.UpsertChefProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Upsert(middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile saved successfully",
		"profile": profile,
	})
}
