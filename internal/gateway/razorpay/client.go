package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client - клиент Razorpay Orders API.
// SDK не используем: нужен ровно один вызов (создание заказа) плюс проверка
// подписи, остальное делает checkout на стороне клиента.
type Client interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
	IsConfigured() bool
}

type clientImpl struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

// CreateOrderRequest - тело запроса к POST /v1/orders.
// Amount - в минимальных единицах валюты (пайсы).
type CreateOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order - заказ, созданный на стороне шлюза
type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`

	// Raw - необработанный ответ шлюза, сохраняется в metadata платежа
	Raw json.RawMessage `json:"-"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// NewClient создает клиент Razorpay
func NewClient(baseURL, keyID, keySecret string) Client {
	return &clientImpl{
		httpClient: &http.Client{
			// Внешний сетевой вызов, без таймаута висящий шлюз повесит и нас
			Timeout: 10 * time.Second,
		},
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func (c *clientImpl) KeyID() string {
	return c.keyID
}

func (c *clientImpl) IsConfigured() bool {
	return c.keyID != "" && c.keySecret != ""
}

func (c *clientImpl) CreateOrder(ctx context.Context, orderReq *CreateOrderRequest) (*Order, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read razorpay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay: %s (%s)", apiErr.Error.Description, apiErr.Error.Code)
		}
		return nil, fmt.Errorf("razorpay: unexpected status %d", resp.StatusCode)
	}

	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("unmarshal razorpay order: %w", err)
	}
	order.Raw = raw

	return &order, nil
}

func (c *clientImpl) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(orderID, paymentID, signature, c.keySecret)
}
