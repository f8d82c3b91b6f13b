package dto

// CreateOrderRequest - запрос на создание платежного заказа.
// Amount - в основных единицах валюты (рупии), UserID - внешний идентификатор.
type CreateOrderRequest struct {
	Amount           float64 `json:"amount" binding:"required"`
	PlanID           string  `json:"plan_id" binding:"required"`
	PlanName         string  `json:"plan_name"`
	PlanDurationDays int     `json:"plan_duration_days"`
	UserID           string  `json:"user_id"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerPhone    string  `json:"customer_phone"`
}

// CreateOrderResponse - данные для запуска checkout на клиенте.
// Amount здесь уже в минимальных единицах (пайсы).
type CreateOrderResponse struct {
	OrderID         string `json:"orderId"`
	InternalOrderID string `json:"internalOrderId"`
	KeyID           string `json:"keyId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
}

// VerifyPaymentRequest - callback подтверждения оплаты.
// Имена полей - как их присылает checkout Razorpay.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	InternalOrderID   string `json:"internal_order_id"`
}

// VerifyPaymentResponse - подтверждение без деталей entitlement'а:
// состояние пользователя и подписки клиент перечитывает отдельными запросами
type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
