package payment

import (
	"context"
	"strings"
	"time"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/logger"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
	"chefmarket_backend/pkg/apperrors"
)

// Notifier уведомляет пользователя о выданном доступе. Best-effort:
// сбой уведомления не влияет на результат верификации.
type Notifier interface {
	SendEntitlementGranted(user *models.User, sub *models.Subscription) error
}

// SignatureVerifier - проверка подписи шлюза (реализуется razorpay.Client)
type SignatureVerifier interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

// EntitlementService - верификация платежа и выдача доступа.
//
// Машина состояний платежа:
//
//	PENDING --[подпись сошлась]--> SUCCESS --> (доступ выдан ровно один раз)
//	PENDING --[подпись не сошлась]--> PENDING (отказ, без мутаций)
//
// Фиксация статуса, повышение роли и вставка подписки идут в одной транзакции;
// идемпотентность повторных вызовов держится на уникальном индексе
// subscriptions.payment_id.
type EntitlementService struct {
	users    repositories.UserRepository
	payments repositories.PaymentRepository
	gateway  SignatureVerifier
	notifier Notifier
}

func NewEntitlementService(users repositories.UserRepository, payments repositories.PaymentRepository, gateway SignatureVerifier, notifier Notifier) *EntitlementService {
	return &EntitlementService{
		users:    users,
		payments: payments,
		gateway:  gateway,
		notifier: notifier,
	}
}

// VerifyAndGrant проверяет callback и выдает entitlement.
// Каждый шаг - жесткий гейт: ошибка обрывает флоу без дальнейших мутаций.
func (s *EntitlementService) VerifyAndGrant(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	// 1. Полнота входа
	if strings.TrimSpace(req.RazorpayOrderID) == "" ||
		strings.TrimSpace(req.RazorpayPaymentID) == "" ||
		strings.TrimSpace(req.RazorpaySignature) == "" {
		return nil, apperrors.ErrMissingPaymentFields()
	}

	// 2. Подпись - единственное доказательство подлинности всего флоу
	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		logger.CtxWarn(ctx, "payment signature mismatch, possible tamper attempt",
			"gateway_order_id", req.RazorpayOrderID,
			"gateway_payment_id", req.RazorpayPaymentID)
		return nil, apperrors.ErrSignatureInvalid()
	}

	// 3. Поиск платежа: сначала по внутреннему ID, иначе по шлюзовому
	paymentRow, err := s.lookupPayment(req)
	if err != nil {
		return nil, apperrors.ErrPaymentRecordNotFound(err)
	}

	meta, err := paymentRow.DecodeMetadata()
	if err != nil {
		logger.CtxWithError(ctx, "failed to decode payment metadata", err, "payment_id", paymentRow.ID)
		meta = &models.PaymentMetadata{}
	}
	durationDays := meta.PlanDurationDays
	if durationDays <= 0 {
		durationDays = defaultPlanDurationDays
	}

	now := time.Now()
	var granted bool

	// 4-6. Статус, роль, подписка - одна транзакция: платеж не может
	// остаться SUCCESS без выданного доступа
	err = s.payments.Transaction(func(tx repositories.PaymentRepository) error {
		if err := tx.MarkPaymentSuccess(paymentRow.ID, req.RazorpayPaymentID, req.RazorpaySignature, "razorpay", now); err != nil {
			return apperrors.ErrPaymentUpdateFailed(err)
		}

		// Повышение монотонно: basic -> pro, admin и pro не трогаются
		if err := tx.PromoteUserRole(paymentRow.UserID); err != nil {
			return apperrors.ErrPaymentUpdateFailed(err)
		}

		created, err := tx.CreateSubscriptionIfAbsent(&models.Subscription{
			UserID:           paymentRow.UserID,
			PaymentID:        paymentRow.ID,
			PlanID:           paymentRow.PlanID,
			PlanName:         paymentRow.PlanName,
			PlanDurationDays: durationDays,
			StartDate:        now,
			EndDate:          now.AddDate(0, 0, durationDays),
			Status:           models.SubscriptionStatusActive,
			AutoRenew:        false,
		})
		if err != nil {
			return apperrors.ErrPaymentUpdateFailed(err)
		}
		granted = created
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.ErrPaymentUpdateFailed(err)
	}

	if granted {
		logger.CtxInfo(ctx, "entitlement granted",
			"payment_id", paymentRow.ID, "user_id", paymentRow.UserID,
			"plan_id", paymentRow.PlanID, "duration_days", durationDays)
		s.notifyGranted(ctx, paymentRow)
	} else {
		// Повторная доставка callback'а (retry клиента или webhook):
		// подписка уже есть, второй раз ничего не выдаем
		logger.CtxInfo(ctx, "duplicate verification, entitlement already granted",
			"payment_id", paymentRow.ID)
	}

	return &dto.VerifyPaymentResponse{
		Success: true,
		Message: "Payment verified successfully",
	}, nil
}

func (s *EntitlementService) lookupPayment(req *dto.VerifyPaymentRequest) (*models.Payment, error) {
	if strings.TrimSpace(req.InternalOrderID) != "" {
		return s.payments.FindPaymentByOrderID(req.InternalOrderID)
	}
	return s.payments.FindPaymentByGatewayOrderID(req.RazorpayOrderID)
}

func (s *EntitlementService) notifyGranted(ctx context.Context, paymentRow *models.Payment) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.FindByID(paymentRow.UserID)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load user for entitlement notice", err, "user_id", paymentRow.UserID)
		return
	}
	sub, err := s.payments.FindSubscriptionByPaymentID(paymentRow.ID)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load subscription for entitlement notice", err, "payment_id", paymentRow.ID)
		return
	}
	if err := s.notifier.SendEntitlementGranted(user, sub); err != nil {
		logger.CtxWithError(ctx, "failed to send entitlement notice", err, "user_id", user.ID)
	}
}
