package dto

type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience" validate:"omitempty,is-audience"`
	IsActive *bool  `json:"is_active"`
}

type UpdateAnnouncementRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience" validate:"omitempty,is-audience"`
	IsActive *bool  `json:"is_active"`
}
