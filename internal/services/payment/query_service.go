package payment

import (
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
	"chefmarket_backend/pkg/apperrors"
)

// QueryService - читающие операции платежного домена.
// После верификации клиент перечитывает состояние именно отсюда.
type QueryService struct {
	payments repositories.PaymentRepository
}

func NewQueryService(payments repositories.PaymentRepository) *QueryService {
	return &QueryService{payments: payments}
}

func (s *QueryService) History(userID string, limit, offset int) ([]models.Payment, error) {
	payments, err := s.payments.FindPaymentsByUser(userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}

func (s *QueryService) ActiveSubscription(userID string) (*models.Subscription, error) {
	sub, err := s.payments.FindActiveSubscriptionByUser(userID)
	if err != nil {
		if err == repositories.ErrSubscriptionNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}
