package models

import "gorm.io/datatypes"

// ChefProfile - резюме повара. Файлы (фото, PDF) здесь не хранятся,
// только структурированные данные для поиска работодателем.
type ChefProfile struct {
	BaseModel
	UserID          string         `gorm:"uniqueIndex;not null" json:"user_id"`
	Headline        string         `json:"headline"`
	Bio             string         `gorm:"type:text" json:"bio"`
	YearsExperience int            `json:"years_experience"`
	Cuisines        datatypes.JSON `gorm:"type:jsonb" json:"cuisines"` // ["north-indian", "continental"]
	City            string         `gorm:"index" json:"city"`
	ExpectedSalary  float64        `json:"expected_salary"`
	IsAvailable     bool           `gorm:"default:true" json:"is_available"`
}
