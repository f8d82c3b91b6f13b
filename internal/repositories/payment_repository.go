package repositories

import (
	"errors"
	"time"

	"chefmarket_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPaymentNotFound      = errors.New("payment record not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type PaymentRepository interface {
	CreatePayment(payment *models.Payment) error
	FindPaymentByOrderID(orderID string) (*models.Payment, error)
	FindPaymentByGatewayOrderID(gatewayOrderID string) (*models.Payment, error)
	FindPaymentsByUser(userID string, limit, offset int) ([]models.Payment, error)
	MarkPaymentSuccess(paymentID, gatewayPaymentID, signature, method string, paidAt time.Time) error
	MarkPaymentFailed(paymentID string) error

	// CreateSubscriptionIfAbsent - атомарная вставка "если еще нет".
	// Возвращает created=false, если подписка на этот платеж уже существует.
	CreateSubscriptionIfAbsent(sub *models.Subscription) (created bool, err error)
	FindSubscriptionByPaymentID(paymentID string) (*models.Subscription, error)
	FindActiveSubscriptionByUser(userID string) (*models.Subscription, error)

	PromoteUserRole(userID string) error

	// Transaction выполняет fn в одной транзакции БД
	Transaction(fn func(txRepo PaymentRepository) error) error

	// Reconciliation
	FindSuccessPaymentsWithoutSubscription(limit int) ([]models.Payment, error)
	ExpireOverdueSubscriptions() (int64, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindPaymentByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindPaymentByGatewayOrderID(gatewayOrderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "gateway_order_id = ?", gatewayOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindPaymentsByUser(userID string, limit, offset int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&payments).Error
	return payments, err
}

// MarkPaymentSuccess фиксирует терминальный статус платежа.
// Условие status <> 'SUCCESS' не дает перезаписать уже подтвержденный платеж.
func (r *PaymentRepositoryImpl) MarkPaymentSuccess(paymentID, gatewayPaymentID, signature, method string, paidAt time.Time) error {
	result := r.db.Model(&models.Payment{}).
		Where("id = ? AND status <> ?", paymentID, models.PaymentStatusSuccess).
		Updates(map[string]interface{}{
			"status":             models.PaymentStatusSuccess,
			"gateway_payment_id": gatewayPaymentID,
			"gateway_signature":  signature,
			"payment_method":     method,
			"payment_time":       paidAt,
		})
	return result.Error
}

func (r *PaymentRepositoryImpl) MarkPaymentFailed(paymentID string) error {
	return r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", paymentID, models.PaymentStatusPending).
		Update("status", models.PaymentStatusFailed).Error
}

// CreateSubscriptionIfAbsent опирается на uniqueIndex(payment_id):
// два конкурентных вызова верификации (клиент + webhook) не создадут
// две подписки, проигравший просто получит created=false.
func (r *PaymentRepositoryImpl) CreateSubscriptionIfAbsent(sub *models.Subscription) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_id"}},
		DoNothing: true,
	}).Create(sub)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PaymentRepositoryImpl) FindSubscriptionByPaymentID(paymentID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.First(&sub, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *PaymentRepositoryImpl) FindActiveSubscriptionByUser(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ? AND status = ? AND end_date > now()", userID, models.SubscriptionStatusActive).
		Order("end_date DESC").First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// PromoteUserRole повышает basic до pro. admin и pro условие не затрагивает,
// поэтому понижения здесь невозможны по построению.
func (r *PaymentRepositoryImpl) PromoteUserRole(userID string) error {
	return r.db.Model(&models.User{}).
		Where("id = ? AND role = ?", userID, models.UserRoleBasic).
		Update("role", models.UserRolePro).Error
}

func (r *PaymentRepositoryImpl) Transaction(fn func(txRepo PaymentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentRepositoryImpl{db: tx})
	})
}

// FindSuccessPaymentsWithoutSubscription - платежи, у которых статус SUCCESS,
// но подписка так и не появилась (сбой между шагами до того, как флоу стал
// транзакционным, либо ручная правка в БД). Их чинит reconciliation worker.
func (r *PaymentRepositoryImpl) FindSuccessPaymentsWithoutSubscription(limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("status = ?", models.PaymentStatusSuccess).
		Where("id NOT IN (?)", r.db.Model(&models.Subscription{}).Select("payment_id")).
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) ExpireOverdueSubscriptions() (int64, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("status = ? AND end_date < now()", models.SubscriptionStatusActive).
		Update("status", models.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}
