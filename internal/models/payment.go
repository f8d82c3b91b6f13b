package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// PaymentStatus - статус платежа
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// MetadataSchemaVersion - текущая версия схемы Metadata платежа
const MetadataSchemaVersion = 1

// PaymentMetadata - типизированное содержимое jsonb-колонки metadata.
// SchemaVersion нужен, чтобы форма не дрейфовала молча.
type PaymentMetadata struct {
	SchemaVersion    int             `json:"schema_version"`
	PlanDurationDays int             `json:"plan_duration_days"`
	RazorpayResponse json.RawMessage `json:"razorpay_response,omitempty"`
}

// Payment - одна попытка покупки.
// Создается в PENDING сервисом создания заказа; в SUCCESS переводится ровно один раз
// сервисом верификации после проверки подписи. Обратных переходов нет.
type Payment struct {
	BaseModel
	UserID         string        `gorm:"not null;index" json:"user_id"`
	OrderID        string        `gorm:"size:45;uniqueIndex;not null" json:"order_id"`
	GatewayOrderID string        `gorm:"uniqueIndex" json:"gateway_order_id"`
	PlanID         string        `gorm:"not null" json:"plan_id"`
	PlanName       string        `json:"plan_name"`
	Amount         float64       `gorm:"not null" json:"amount"`
	Currency       string        `gorm:"size:3;default:'INR'" json:"currency"`
	Status         PaymentStatus `gorm:"type:varchar(10);default:'PENDING'" json:"status"`
	Metadata       datatypes.JSON `gorm:"type:jsonb" json:"metadata"`

	// Заполняются только после верификации
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	GatewaySignature string     `json:"-"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
	PaymentTime      *time.Time `json:"payment_time,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// DecodeMetadata разбирает jsonb metadata в типизированную структуру
func (p *Payment) DecodeMetadata() (*PaymentMetadata, error) {
	var meta PaymentMetadata
	if len(p.Metadata) == 0 {
		return &meta, nil
	}
	if err := json.Unmarshal(p.Metadata, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// EncodeMetadata сериализует метаданные, проставляя версию схемы
func EncodeMetadata(meta *PaymentMetadata) (datatypes.JSON, error) {
	meta.SchemaVersion = MetadataSchemaVersion
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
