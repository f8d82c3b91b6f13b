package dto

import "chefmarket_backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=100"`
	Phone    string `json:"phone"`
	IsChef   bool   `json:"is_chef"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Role       models.UserRole `json:"role"`
	IsChef     bool            `json:"is_chef"`
}

type UpdateUserRequest struct {
	Name   string `json:"name" validate:"max=100"`
	Phone  string `json:"phone"`
	Role   string `json:"role" validate:"omitempty,is-user-role"`
	IsChef *bool  `json:"is_chef"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		IsChef:     u.IsChef,
	}
}
