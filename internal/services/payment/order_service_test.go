package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		BaseModel:  models.BaseModel{ID: "u1"},
		ExternalID: "ext_123",
		Email:      "chef@example.com",
		Name:       "Arjun Mehta",
		Phone:      "+919800000000",
		Role:       models.UserRoleBasic,
	}
}

func newOrderFixture(users ...*models.User) (*OrderService, *fakeUserRepo, *fakePaymentRepo, *fakeGateway) {
	userRepo := newFakeUserRepo(users...)
	paymentRepo := newFakePaymentRepo(userRepo)
	gateway := newFakeGateway()
	return NewOrderService(userRepo, paymentRepo, gateway), userRepo, paymentRepo, gateway
}

func TestCreateOrder_InvalidAmount(t *testing.T) {
	svc, _, paymentRepo, gateway := newOrderFixture(testUser())

	for _, amount := range []float64{0, 0.5, -10} {
		_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
			Amount: amount,
			PlanID: "pro-monthly",
			UserID: "ext_123",
		})
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidAmount, appErr.Code)
	}

	// Валидация отработала до каких-либо побочных эффектов
	assert.Zero(t, gateway.createCalls)
	assert.Empty(t, paymentRepo.payments)
}

func TestCreateOrder_MissingUserID(t *testing.T) {
	svc, _, _, gateway := newOrderFixture(testUser())

	for _, userID := range []string{"", "   "} {
		_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
			Amount: 499,
			PlanID: "pro-monthly",
			UserID: userID,
		})
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeMissingUser, appErr.Code)
	}
	assert.Zero(t, gateway.createCalls)
}

func TestCreateOrder_GatewayNotConfigured(t *testing.T) {
	svc, _, _, gateway := newOrderFixture(testUser())
	gateway.configured = false

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Amount: 499,
		PlanID: "pro-monthly",
		UserID: "ext_123",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConfigurationError, appErr.Code)
	// Значения ключей не должны утекать в сообщение
	assert.Equal(t, "Razorpay credentials are not configured", appErr.Message)
	assert.Zero(t, gateway.createCalls)
}

func TestCreateOrder_UnknownUser(t *testing.T) {
	svc, _, _, gateway := newOrderFixture() // пустой репозиторий

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Amount: 499,
		PlanID: "pro-monthly",
		UserID: "ext_missing",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Zero(t, gateway.createCalls)
}

func TestCreateOrder_GatewayFailureBeforePersistence(t *testing.T) {
	svc, _, paymentRepo, gateway := newOrderFixture(testUser())
	gateway.failCreate = true

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Amount: 499,
		PlanID: "pro-monthly",
		UserID: "ext_123",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeGatewayError, appErr.Code)
	assert.Empty(t, paymentRepo.payments)
}

func TestCreateOrder_Success(t *testing.T) {
	svc, _, paymentRepo, gateway := newOrderFixture(testUser())

	resp, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Amount:           499,
		PlanID:           "pro-monthly",
		PlanName:         "Pro Monthly",
		PlanDurationDays: 30,
		UserID:           "ext_123",
	})
	require.NoError(t, err)

	// Ответ для запуска checkout
	assert.Equal(t, "order_RZPTEST1", resp.OrderID)
	assert.Equal(t, int64(49900), resp.Amount) // рупии -> пайсы
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "rzp_test_key", resp.KeyID)
	assert.Regexp(t, regexp.MustCompile(`^order_\d+_[0-9a-f]{8}$`), resp.InternalOrderID)
	assert.LessOrEqual(t, len(resp.InternalOrderID), 45)

	// Шлюз получил сумму в пайсах и внутренний order id как receipt
	require.NotNil(t, gateway.lastRequest)
	assert.Equal(t, int64(49900), gateway.lastRequest.Amount)
	assert.Equal(t, resp.InternalOrderID, gateway.lastRequest.Receipt)

	// PENDING-платеж сохранен и привязан к внутреннему пользователю
	require.Len(t, paymentRepo.payments, 1)
	p := paymentRepo.payments[0]
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, models.PaymentStatusPending, p.Status)
	assert.Equal(t, resp.InternalOrderID, p.OrderID)
	assert.Equal(t, "order_RZPTEST1", p.GatewayOrderID)
	assert.Equal(t, 499.0, p.Amount)

	meta, err := p.DecodeMetadata()
	require.NoError(t, err)
	assert.Equal(t, models.MetadataSchemaVersion, meta.SchemaVersion)
	assert.Equal(t, 30, meta.PlanDurationDays)
	assert.NotEmpty(t, meta.RazorpayResponse)
}

func TestCreateOrder_CustomerFieldFallbacks(t *testing.T) {
	user := testUser()
	svc, _, _, _ := newOrderFixture(user)

	// Поля не переданы - берутся из записи пользователя
	resp, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Amount: 499,
		PlanID: "pro-monthly",
		UserID: "ext_123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.Name, resp.CustomerName)
	assert.Equal(t, user.Email, resp.CustomerEmail)
	assert.Equal(t, user.Phone, resp.CustomerPhone)

	// Имени нет нигде - подставляется дефолт
	user.Name = ""
	resp, err = svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Amount: 499,
		PlanID: "pro-monthly",
		UserID: "ext_123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Customer", resp.CustomerName)
}

func TestCreateOrder_PersistenceFailureIsNotFatal(t *testing.T) {
	svc, _, paymentRepo, _ := newOrderFixture(testUser())
	paymentRepo.createPaymentErr = errors.New("db down")

	// Заказ на шлюзе уже создан, клиент должен получить данные для checkout
	resp, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		Amount: 499,
		PlanID: "pro-monthly",
		UserID: "ext_123",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_RZPTEST1", resp.OrderID)
}

func TestGenerateOrderID(t *testing.T) {
	pattern := regexp.MustCompile(`^order_\d+_[0-9a-f]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := generateOrderID()
		assert.Regexp(t, pattern, id)
		assert.LessOrEqual(t, len(id), maxOrderIDLen)
		assert.False(t, seen[id], "order id must be unique: %s", id)
		seen[id] = true
	}
}
