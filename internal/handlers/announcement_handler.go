package handlers

import (
	"net/http"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/middleware"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	*BaseHandler
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(base *BaseHandler, announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         base,
		announcementService: announcementService,
	}
}

func (h *AnnouncementHandler) RegisterRoutes(r *gin.RouterGroup) {
	announcements := r.Group("/announcements")
	{
		announcements.GET("", h.GetActive)
	}

	adminAnnouncements := r.Group("/admin/announcements")
	adminAnnouncements.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		adminAnnouncements.GET("", h.GetAll)
		adminAnnouncements.POST("", h.Create)
		adminAnnouncements.PUT("/:announcementId", h.Update)
		adminAnnouncements.DELETE("/:announcementId", h.Delete)
	}
}

func (h *AnnouncementHandler) GetActive(c *gin.Context) {
	audience := models.AnnouncementAudience(c.Query("audience"))

	items, err := h.announcementService.GetActive(audience)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": items,
		"total":         len(items),
	})
}

func (h *AnnouncementHandler) GetAll(c *gin.Context) {
	limit, offset := h.Pagination(c)

	items, err := h.announcementService.GetAll(limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": items,
		"total":         len(items),
	})
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	item, err := h.announcementService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Announcement created successfully",
		"announcement": item,
	})
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req dto.UpdateAnnouncementRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	item, err := h.announcementService.Update(c.Param("announcementId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Announcement updated successfully",
		"announcement": item,
	})
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcementService.Delete(c.Param("announcementId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}
