package models

// AnnouncementAudience - кому показывается объявление
type AnnouncementAudience string

const (
	AudienceAll       AnnouncementAudience = "all"
	AudienceChefs     AnnouncementAudience = "chefs"
	AudienceEmployers AnnouncementAudience = "employers"
)

// Announcement - объявление админа на платформе
type Announcement struct {
	BaseModel
	Title    string               `gorm:"not null" json:"title"`
	Body     string               `gorm:"type:text" json:"body"`
	Audience AnnouncementAudience `gorm:"type:varchar(20);default:'all'" json:"audience"`
	IsActive bool                 `gorm:"default:true" json:"is_active"`
	AuthorID string               `gorm:"index" json:"author_id"`
}
