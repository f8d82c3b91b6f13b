package models

// UserRole - роль пользователя на платформе
type UserRole string

const (
	UserRoleBasic UserRole = "basic"
	UserRolePro   UserRole = "pro"
	UserRoleAdmin UserRole = "admin"
)

// User - участник платформы. Ровно одна внутренняя запись на внешний ID
// (uniqueIndex на external_id). Роль повышается платежным флоу монотонно:
// basic -> pro; admin этим флоу не трогается никогда.
type User struct {
	BaseModel
	ExternalID   string   `gorm:"uniqueIndex;not null" json:"external_id"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Role         UserRole `gorm:"type:varchar(20);default:'basic'" json:"role"`
	IsChef       bool     `gorm:"default:false" json:"is_chef"`
	PasswordHash string   `gorm:"not null" json:"-"`

	// Relations
	ChefProfile   *ChefProfile   `gorm:"foreignKey:UserID" json:"chef_profile,omitempty"`
	Payments      []Payment      `gorm:"foreignKey:UserID" json:"-"`
	Subscriptions []Subscription `gorm:"foreignKey:UserID" json:"-"`
}
