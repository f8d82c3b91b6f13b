package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubscriptionStatus - статус подписки
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// SubscriptionPlan - тарифный план
type SubscriptionPlan struct {
	BaseModel
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"` // "pro-monthly"
	Name         string         `gorm:"not null" json:"name"`
	Price        float64        `gorm:"not null" json:"price"`
	Currency     string         `gorm:"size:3;default:'INR'" json:"currency"`
	DurationDays int            `gorm:"not null" json:"duration_days"`
	Features     datatypes.JSON `gorm:"type:jsonb" json:"features"` // {"featured_profile": true, ...}
	IsActive     bool           `gorm:"default:true" json:"is_active"`
}

// Subscription - один выданный доступ.
// uniqueIndex на payment_id - это и есть гарантия идемпотентности:
// повторная верификация того же платежа не вставит вторую строку,
// ON CONFLICT DO NOTHING опирается именно на этот индекс.
type Subscription struct {
	BaseModel
	UserID           string             `gorm:"not null;index" json:"user_id"`
	PaymentID        string             `gorm:"uniqueIndex;not null" json:"payment_id"`
	PlanID           string             `gorm:"not null" json:"plan_id"`
	PlanName         string             `json:"plan_name"`
	PlanDurationDays int                `gorm:"not null" json:"plan_duration_days"`
	StartDate        time.Time          `gorm:"not null" json:"start_date"`
	EndDate          time.Time          `gorm:"not null" json:"end_date"`
	Status           SubscriptionStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	AutoRenew        bool               `gorm:"default:false" json:"auto_renew"`

	// Relations
	Payment Payment `gorm:"foreignKey:PaymentID" json:"-"`
}
