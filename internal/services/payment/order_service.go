package payment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/gateway/razorpay"
	"chefmarket_backend/internal/logger"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
	"chefmarket_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// maxOrderIDLen - максимальная длина receipt, которую принимает Razorpay
const maxOrderIDLen = 45

// defaultPlanDurationDays используется, если в запросе не указан срок плана
const defaultPlanDurationDays = 30

// OrderService создает платежные заказы: валидирует запрос, открывает заказ
// на шлюзе и сохраняет PENDING-платеж, привязанный к пользователю.
type OrderService struct {
	users    repositories.UserRepository
	payments repositories.PaymentRepository
	gateway  razorpay.Client
}

func NewOrderService(users repositories.UserRepository, payments repositories.PaymentRepository, gateway razorpay.Client) *OrderService {
	return &OrderService{
		users:    users,
		payments: payments,
		gateway:  gateway,
	}
}

// CreateOrder выполняет цепочку проверок и открывает заказ.
// Все проверки - до каких-либо записей: ошибка валидации не оставляет следов,
// ошибка шлюза обрывает флоу до персистентности.
func (s *OrderService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if req.Amount < 1 {
		return nil, apperrors.ErrInvalidAmount()
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperrors.ErrMissingUser()
	}
	if !s.gateway.IsConfigured() {
		return nil, apperrors.ErrGatewayNotConfigured()
	}

	// Пользователь должен уже существовать: запись создается флоу регистрации,
	// покупка ее не заводит
	user, err := s.users.FindByExternalID(req.UserID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound(err)
	}

	orderID := generateOrderID()
	amountPaise := int64(math.Round(req.Amount * 100))

	gatewayOrder, err := s.gateway.CreateOrder(ctx, &razorpay.CreateOrderRequest{
		Amount:   amountPaise,
		Currency: "INR",
		Receipt:  orderID,
		Notes: map[string]string{
			"plan_id":          req.PlanID,
			"plan_name":        req.PlanName,
			"user_id":          user.ID,
			"external_user_id": user.ExternalID,
		},
	})
	if err != nil {
		return nil, apperrors.ErrGateway(err)
	}

	durationDays := req.PlanDurationDays
	if durationDays <= 0 {
		durationDays = defaultPlanDurationDays
	}

	metadata, err := models.EncodeMetadata(&models.PaymentMetadata{
		PlanDurationDays: durationDays,
		RazorpayResponse: gatewayOrder.Raw,
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to encode payment metadata", err, "order_id", orderID)
	}

	paymentRow := &models.Payment{
		UserID:         user.ID,
		OrderID:        orderID,
		GatewayOrderID: gatewayOrder.ID,
		PlanID:         req.PlanID,
		PlanName:       req.PlanName,
		Amount:         req.Amount,
		Currency:       "INR",
		Status:         models.PaymentStatusPending,
		Metadata:       metadata,
	}

	// Сбой записи не фатален: заказ на шлюзе уже есть, и верификация умеет
	// находить платеж по шлюзовому ID. Отсутствие строки на этапе верификации -
	// отдельная ошибка, а не крэш.
	if err := s.payments.CreatePayment(paymentRow); err != nil {
		logger.CtxWithError(ctx, "failed to persist pending payment", err,
			"order_id", orderID, "gateway_order_id", gatewayOrder.ID)
	}

	return &dto.CreateOrderResponse{
		OrderID:         gatewayOrder.ID,
		InternalOrderID: orderID,
		KeyID:           s.gateway.KeyID(),
		Amount:          amountPaise,
		Currency:        "INR",
		CustomerName:    firstNonEmpty(req.CustomerName, user.Name, "Customer"),
		CustomerEmail:   firstNonEmpty(req.CustomerEmail, user.Email, ""),
		CustomerPhone:   firstNonEmpty(req.CustomerPhone, user.Phone, ""),
	}, nil
}

// generateOrderID - временной префикс + 8 случайных hex-символов,
// усечение до лимита шлюза
func generateOrderID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	id := fmt.Sprintf("order_%d_%s", time.Now().Unix(), suffix)
	if len(id) > maxOrderIDLen {
		id = id[:maxOrderIDLen]
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
