package workers

import (
	"context"
	"time"

	"chefmarket_backend/internal/logger"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
)

const (
	reconcileInterval = 15 * time.Minute
	expireInterval    = 6 * time.Hour
	reconcileBatch    = 100
)

// ReconciliationWorker дочищает платежный флоу в фоне:
//   - платежи со статусом SUCCESS без подписки получают подписку и роль
//     (страховка на случай сбоя между верификацией и выдачей доступа);
//   - активные подписки с прошедшим end_date помечаются expired.
type ReconciliationWorker struct {
	payments repositories.PaymentRepository
}

func NewReconciliationWorker(payments repositories.PaymentRepository) *ReconciliationWorker {
	return &ReconciliationWorker{payments: payments}
}

// Start запускает фоновые циклы. Останавливаются через ctx.
func (w *ReconciliationWorker) Start(ctx context.Context) {
	go w.reconcileLoop(ctx)
	go w.expireLoop(ctx)
}

func (w *ReconciliationWorker) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reconciliation worker stopped")
			return
		case <-ticker.C:
			w.reconcileOnce()
		}
	}
}

func (w *ReconciliationWorker) reconcileOnce() {
	payments, err := w.payments.FindSuccessPaymentsWithoutSubscription(reconcileBatch)
	if err != nil {
		logger.Error("Reconciliation scan failed", "error", err)
		return
	}

	for _, p := range payments {
		if err := w.grantMissing(&p); err != nil {
			logger.Error("Reconciliation grant failed",
				"payment_id", p.ID, "order_id", p.OrderID, "error", err)
			continue
		}
		logger.Info("Reconciliation granted missing subscription",
			"payment_id", p.ID, "user_id", p.UserID)
	}
}

// grantMissing повторяет шаги выдачи доступа для уже подтвержденного платежа.
// Вставка подписки идемпотентна, гонка с параллельной верификацией безопасна.
func (w *ReconciliationWorker) grantMissing(p *models.Payment) error {
	durationDays := 30
	if meta, err := p.DecodeMetadata(); err == nil && meta.PlanDurationDays > 0 {
		durationDays = meta.PlanDurationDays
	}

	now := time.Now()
	sub := &models.Subscription{
		UserID:           p.UserID,
		PaymentID:        p.ID,
		PlanID:           p.PlanID,
		PlanName:         p.PlanName,
		PlanDurationDays: durationDays,
		StartDate:        now,
		EndDate:          now.AddDate(0, 0, durationDays),
		Status:           models.SubscriptionStatusActive,
		AutoRenew:        false,
	}

	return w.payments.Transaction(func(txRepo repositories.PaymentRepository) error {
		if err := txRepo.PromoteUserRole(p.UserID); err != nil {
			return err
		}
		_, err := txRepo.CreateSubscriptionIfAbsent(sub)
		return err
	})
}

func (w *ReconciliationWorker) expireLoop(ctx context.Context) {
	ticker := time.NewTicker(expireInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := w.payments.ExpireOverdueSubscriptions()
			if err != nil {
				logger.Error("Error expiring subscriptions", "error", err)
			} else if expired > 0 {
				logger.Info("Marked subscriptions as expired", "count", expired)
			}
		}
	}
}
