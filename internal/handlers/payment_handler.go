package handlers

import (
	"net/http"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/middleware"
	paymentsvc "chefmarket_backend/internal/services/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	orders       *paymentsvc.OrderService
	entitlements *paymentsvc.EntitlementService
	queries      *paymentsvc.QueryService
}

func NewPaymentHandler(base *BaseHandler, orders *paymentsvc.OrderService, entitlements *paymentsvc.EntitlementService, queries *paymentsvc.QueryService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:  base,
		orders:       orders,
		entitlements: entitlements,
		queries:      queries,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.POST("/orders", middleware.AuthMiddleware(), h.CreateOrder)
		// Без auth: сюда приходит подтверждение после checkout, подлинность
		// доказывает подпись, а не токен
		payments.POST("/verify", h.VerifyPayment)
		payments.GET("/history", middleware.AuthMiddleware(), h.GetHistory)
	}

	subscriptions := r.Group("/subscriptions")
	subscriptions.Use(middleware.AuthMiddleware())
	{
		subscriptions.GET("/my", h.GetMySubscription)
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.entitlements.VerifyAndGrant(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) GetHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := h.Pagination(c)

	payments, err := h.queries.History(userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"total":    len(payments),
	})
}

func (h *PaymentHandler) GetMySubscription(c *gin.Context) {
	userID := middleware.GetUserID(c)

	sub, err := h.queries.ActiveSubscription(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}
