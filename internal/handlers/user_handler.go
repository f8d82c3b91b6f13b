package handlers

import (
	"net/http"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/middleware"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService *services.UserService
}

func NewUserHandler(base *BaseHandler, userService *services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	me := r.Group("/users")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/me", h.GetMe)
	}

	adminUsers := r.Group("/admin/users")
	adminUsers.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		adminUsers.GET("", h.ListUsers)
		adminUsers.GET("/:userId", h.GetUser)
		adminUsers.PUT("/:userId", h.UpdateUser)
		adminUsers.DELETE("/:userId", h.DeleteUser)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.FindByID(middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserResponse(user)})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := h.Pagination(c)

	users, total, err := h.userService.List(limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.ToUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"users": responses,
		"total": total,
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.FindByID(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserResponse(user)})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    dto.ToUserResponse(user),
	})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
