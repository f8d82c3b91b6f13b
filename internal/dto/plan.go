package dto

type CreatePlanRequest struct {
	Slug         string         `json:"slug" binding:"required"`
	Name         string         `json:"name" binding:"required"`
	Price        float64        `json:"price" validate:"min=0"`
	Currency     string         `json:"currency"`
	DurationDays int            `json:"duration_days" validate:"min=1"`
	Features     map[string]any `json:"features"`
	IsActive     *bool          `json:"is_active"`
}

type UpdatePlanRequest struct {
	Name         string         `json:"name"`
	Price        *float64       `json:"price" validate:"omitempty,min=0"`
	DurationDays *int           `json:"duration_days" validate:"omitempty,min=1"`
	Features     map[string]any `json:"features"`
	IsActive     *bool          `json:"is_active"`
}
