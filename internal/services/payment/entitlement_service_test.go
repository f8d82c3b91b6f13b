package payment

import (
	"context"
	"testing"
	"time"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/gateway/razorpay"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingPayment(userID string, durationDays int) *models.Payment {
	metadata, _ := models.EncodeMetadata(&models.PaymentMetadata{
		PlanDurationDays: durationDays,
	})
	return &models.Payment{
		BaseModel:      models.BaseModel{ID: "pmt_1"},
		UserID:         userID,
		OrderID:        "order_1724800000_ab12cd34",
		GatewayOrderID: "order_RZPTEST1",
		PlanID:         "pro-monthly",
		PlanName:       "Pro Monthly",
		Amount:         499,
		Currency:       "INR",
		Status:         models.PaymentStatusPending,
		Metadata:       metadata,
	}
}

func newEntitlementFixture(user *models.User, payment *models.Payment) (*EntitlementService, *fakeUserRepo, *fakePaymentRepo, *fakeGateway, *fakeNotifier) {
	userRepo := newFakeUserRepo(user)
	paymentRepo := newFakePaymentRepo(userRepo)
	if payment != nil {
		paymentRepo.payments = append(paymentRepo.payments, payment)
	}
	gateway := newFakeGateway()
	notifier := &fakeNotifier{}
	svc := NewEntitlementService(userRepo, paymentRepo, gateway, notifier)
	return svc, userRepo, paymentRepo, gateway, notifier
}

func signedRequest(p *models.Payment, secret string) *dto.VerifyPaymentRequest {
	return &dto.VerifyPaymentRequest{
		RazorpayOrderID:   p.GatewayOrderID,
		RazorpayPaymentID: "pay_RZPTEST9",
		RazorpaySignature: razorpay.SignPayload(p.GatewayOrderID, "pay_RZPTEST9", secret),
		InternalOrderID:   p.OrderID,
	}
}

func TestVerifyAndGrant_MissingFields(t *testing.T) {
	user := testUser()
	payment := pendingPayment(user.ID, 30)
	svc, _, paymentRepo, gateway, _ := newEntitlementFixture(user, payment)
	valid := signedRequest(payment, gateway.secret)

	tests := []struct {
		name string
		req  dto.VerifyPaymentRequest
	}{
		{"no order id", dto.VerifyPaymentRequest{RazorpayPaymentID: valid.RazorpayPaymentID, RazorpaySignature: valid.RazorpaySignature}},
		{"no payment id", dto.VerifyPaymentRequest{RazorpayOrderID: valid.RazorpayOrderID, RazorpaySignature: valid.RazorpaySignature}},
		{"no signature", dto.VerifyPaymentRequest{RazorpayOrderID: valid.RazorpayOrderID, RazorpayPaymentID: valid.RazorpayPaymentID}},
		{"whitespace only", dto.VerifyPaymentRequest{RazorpayOrderID: "  ", RazorpayPaymentID: "  ", RazorpaySignature: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyAndGrant(context.Background(), &tt.req)
			require.Error(t, err)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeMissingFields, appErr.Code)
		})
	}

	// Ни одной мутации
	assert.Zero(t, paymentRepo.markSuccessCalls)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
}

func TestVerifyAndGrant_ForgedSignature(t *testing.T) {
	user := testUser()
	payment := pendingPayment(user.ID, 30)
	svc, _, paymentRepo, _, notifier := newEntitlementFixture(user, payment)

	req := signedRequest(payment, "attacker_guessed_secret")
	_, err := svc.VerifyAndGrant(context.Background(), req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeSignatureInvalid, appErr.Code)

	// Отказ без следов: платеж остался PENDING, подписки нет, роль не менялась
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Empty(t, paymentRepo.subs)
	assert.Equal(t, models.UserRoleBasic, user.Role)
	assert.Empty(t, notifier.sent)
}

func TestVerifyAndGrant_PaymentRecordNotFound(t *testing.T) {
	user := testUser()
	svc, _, _, gateway, _ := newEntitlementFixture(user, nil)

	req := &dto.VerifyPaymentRequest{
		RazorpayOrderID:   "order_UNKNOWN",
		RazorpayPaymentID: "pay_RZPTEST9",
		RazorpaySignature: razorpay.SignPayload("order_UNKNOWN", "pay_RZPTEST9", gateway.secret),
	}
	_, err := svc.VerifyAndGrant(context.Background(), req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodePaymentNotFound, appErr.Code)
}

func TestVerifyAndGrant_Success(t *testing.T) {
	user := testUser()
	payment := pendingPayment(user.ID, 90)
	svc, _, paymentRepo, gateway, notifier := newEntitlementFixture(user, payment)

	resp, err := svc.VerifyAndGrant(context.Background(), signedRequest(payment, gateway.secret))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Payment verified successfully", resp.Message)

	// Платеж зафиксирован
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "pay_RZPTEST9", payment.GatewayPaymentID)
	require.NotNil(t, payment.PaymentTime)

	// Роль повышена
	assert.Equal(t, models.UserRolePro, user.Role)

	// Подписка выдана на срок из метаданных платежа
	sub, err := paymentRepo.FindSubscriptionByPaymentID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub.UserID)
	assert.Equal(t, "pro-monthly", sub.PlanID)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.False(t, sub.AutoRenew)
	assert.WithinDuration(t, sub.StartDate.AddDate(0, 0, 90), sub.EndDate, time.Second)

	// Уведомление ушло один раз
	assert.Equal(t, []string{payment.ID}, notifier.sent)
}

func TestVerifyAndGrant_DefaultDuration(t *testing.T) {
	user := testUser()
	payment := pendingPayment(user.ID, 0) // срок в метаданных не задан
	svc, _, paymentRepo, gateway, _ := newEntitlementFixture(user, payment)

	_, err := svc.VerifyAndGrant(context.Background(), signedRequest(payment, gateway.secret))
	require.NoError(t, err)

	sub, err := paymentRepo.FindSubscriptionByPaymentID(payment.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, sub.StartDate.AddDate(0, 0, 30), sub.EndDate, time.Second)
}

func TestVerifyAndGrant_Idempotent(t *testing.T) {
	user := testUser()
	payment := pendingPayment(user.ID, 30)
	svc, _, paymentRepo, gateway, notifier := newEntitlementFixture(user, payment)
	req := signedRequest(payment, gateway.secret)

	first, err := svc.VerifyAndGrant(context.Background(), req)
	require.NoError(t, err)
	require.True(t, first.Success)

	firstSub, err := paymentRepo.FindSubscriptionByPaymentID(payment.ID)
	require.NoError(t, err)
	firstEnd := firstSub.EndDate

	// Повторная доставка callback'а: тоже успех, но без второй подписки
	second, err := svc.VerifyAndGrant(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Success)

	require.Len(t, paymentRepo.subs, 1)
	sub, err := paymentRepo.FindSubscriptionByPaymentID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, firstEnd, sub.EndDate, "повтор не должен продлевать подписку")

	// И без второго письма
	assert.Len(t, notifier.sent, 1)
}

func TestVerifyAndGrant_AdminRoleUntouched(t *testing.T) {
	admin := &models.User{
		BaseModel:  models.BaseModel{ID: "u-admin"},
		ExternalID: "ext_admin",
		Email:      "admin@example.com",
		Role:       models.UserRoleAdmin,
	}
	payment := pendingPayment(admin.ID, 30)
	svc, _, paymentRepo, gateway, _ := newEntitlementFixture(admin, payment)

	_, err := svc.VerifyAndGrant(context.Background(), signedRequest(payment, gateway.secret))
	require.NoError(t, err)

	// Подписка выдана, но роль admin не тронута
	assert.Equal(t, models.UserRoleAdmin, admin.Role)
	assert.Len(t, paymentRepo.subs, 1)
}

func TestVerifyAndGrant_LookupByGatewayOrderID(t *testing.T) {
	user := testUser()
	payment := pendingPayment(user.ID, 30)
	svc, _, _, gateway, _ := newEntitlementFixture(user, payment)

	// Внутренний order id не передан - поиск по шлюзовому
	req := signedRequest(payment, gateway.secret)
	req.InternalOrderID = ""

	resp, err := svc.VerifyAndGrant(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestVerifyAndGrant_NotifierFailureDoesNotFailFlow(t *testing.T) {
	user := testUser()
	payment := pendingPayment(user.ID, 30)
	userRepo := newFakeUserRepo(user)
	paymentRepo := newFakePaymentRepo(userRepo)
	paymentRepo.payments = append(paymentRepo.payments, payment)
	gateway := newFakeGateway()
	notifier := &fakeNotifier{err: assert.AnError}
	svc := NewEntitlementService(userRepo, paymentRepo, gateway, notifier)

	resp, err := svc.VerifyAndGrant(context.Background(), signedRequest(payment, gateway.secret))
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
