package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chefmarket_backend/internal/gateway/razorpay"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
)

// Фейки уровня репозитория для юнит-тестов платежных сервисов.
// Повторяют семантику SQL-реализаций: условные UPDATE'ы, вставку
// ON CONFLICT DO NOTHING и монотонное повышение роли.

type fakeUserRepo struct {
	byID       map[string]*models.User
	byExternal map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{
		byID:       make(map[string]*models.User),
		byExternal: make(map[string]*models.User),
	}
	for _, u := range users {
		r.byID[u.ID] = u
		r.byExternal[u.ExternalID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByExternalID(externalID string) (*models.User, error) {
	if u, ok := r.byExternal[externalID]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.byID[user.ID] = user
	r.byExternal[user.ExternalID] = user
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRole(userID string, role models.UserRole) error {
	u, ok := r.byID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	delete(r.byID, userID)
	return nil
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]models.User, error) { return nil, nil }
func (r *fakeUserRepo) CountAll() (int64, error)                         { return int64(len(r.byID)), nil }
func (r *fakeUserRepo) FindByRole(role models.UserRole, limit, offset int) ([]models.User, error) {
	return nil, nil
}

type fakePaymentRepo struct {
	users    *fakeUserRepo
	payments []*models.Payment
	subs     map[string]*models.Subscription // ключ - payment_id

	createPaymentErr error
	markSuccessCalls int
}

func newFakePaymentRepo(users *fakeUserRepo) *fakePaymentRepo {
	return &fakePaymentRepo{
		users: users,
		subs:  make(map[string]*models.Subscription),
	}
}

func (r *fakePaymentRepo) CreatePayment(payment *models.Payment) error {
	if r.createPaymentErr != nil {
		return r.createPaymentErr
	}
	if payment.ID == "" {
		payment.ID = fmt.Sprintf("pmt_%d", len(r.payments)+1)
	}
	r.payments = append(r.payments, payment)
	return nil
}

func (r *fakePaymentRepo) FindPaymentByOrderID(orderID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *fakePaymentRepo) FindPaymentByGatewayOrderID(gatewayOrderID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.GatewayOrderID == gatewayOrderID {
			return p, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *fakePaymentRepo) FindPaymentsByUser(userID string, limit, offset int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) MarkPaymentSuccess(paymentID, gatewayPaymentID, signature, method string, paidAt time.Time) error {
	r.markSuccessCalls++
	for _, p := range r.payments {
		if p.ID == paymentID && p.Status != models.PaymentStatusSuccess {
			p.Status = models.PaymentStatusSuccess
			p.GatewayPaymentID = gatewayPaymentID
			p.GatewaySignature = signature
			p.PaymentMethod = method
			t := paidAt
			p.PaymentTime = &t
		}
	}
	return nil
}

func (r *fakePaymentRepo) MarkPaymentFailed(paymentID string) error {
	for _, p := range r.payments {
		if p.ID == paymentID && p.Status == models.PaymentStatusPending {
			p.Status = models.PaymentStatusFailed
		}
	}
	return nil
}

func (r *fakePaymentRepo) CreateSubscriptionIfAbsent(sub *models.Subscription) (bool, error) {
	if _, exists := r.subs[sub.PaymentID]; exists {
		return false, nil
	}
	cp := *sub
	if cp.ID == "" {
		cp.ID = fmt.Sprintf("sub_%d", len(r.subs)+1)
	}
	r.subs[sub.PaymentID] = &cp
	return true, nil
}

func (r *fakePaymentRepo) FindSubscriptionByPaymentID(paymentID string) (*models.Subscription, error) {
	if s, ok := r.subs[paymentID]; ok {
		return s, nil
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (r *fakePaymentRepo) FindActiveSubscriptionByUser(userID string) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.UserID == userID && s.Status == models.SubscriptionStatusActive {
			return s, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

// PromoteUserRole повторяет условный UPDATE: только basic -> pro
func (r *fakePaymentRepo) PromoteUserRole(userID string) error {
	if u, ok := r.users.byID[userID]; ok && u.Role == models.UserRoleBasic {
		u.Role = models.UserRolePro
	}
	return nil
}

func (r *fakePaymentRepo) Transaction(fn func(txRepo repositories.PaymentRepository) error) error {
	return fn(r)
}

func (r *fakePaymentRepo) FindSuccessPaymentsWithoutSubscription(limit int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.Status != models.PaymentStatusSuccess {
			continue
		}
		if _, ok := r.subs[p.ID]; ok {
			continue
		}
		out = append(out, *p)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ExpireOverdueSubscriptions() (int64, error) {
	var n int64
	for _, s := range r.subs {
		if s.Status == models.SubscriptionStatusActive && s.EndDate.Before(time.Now()) {
			s.Status = models.SubscriptionStatusExpired
			n++
		}
	}
	return n, nil
}

type fakeGateway struct {
	configured  bool
	secret      string
	keyID       string
	createCalls int
	failCreate  bool
	lastRequest *razorpay.CreateOrderRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		configured: true,
		secret:     "test_webhook_secret",
		keyID:      "rzp_test_key",
	}
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req *razorpay.CreateOrderRequest) (*razorpay.Order, error) {
	g.createCalls++
	g.lastRequest = req
	if g.failCreate {
		return nil, errors.New("gateway unavailable")
	}
	return &razorpay.Order{
		ID:       "order_RZPTEST1",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
		Raw:      []byte(`{"id":"order_RZPTEST1","status":"created"}`),
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return razorpay.VerifyPaymentSignature(orderID, paymentID, signature, g.secret)
}

func (g *fakeGateway) KeyID() string      { return g.keyID }
func (g *fakeGateway) IsConfigured() bool { return g.configured }

type fakeNotifier struct {
	sent []string // payment_id выданных подписок
	err  error
}

func (n *fakeNotifier) SendEntitlementGranted(user *models.User, sub *models.Subscription) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sub.PaymentID)
	return nil
}
