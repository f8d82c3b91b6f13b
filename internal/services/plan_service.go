package services

import (
	"encoding/json"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
	"chefmarket_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type PlanService struct {
	repo repositories.PlanRepository
}

func NewPlanService(repo repositories.PlanRepository) *PlanService {
	return &PlanService{repo: repo}
}

func (s *PlanService) GetActivePlans() ([]models.SubscriptionPlan, error) {
	plans, err := s.repo.FindActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *PlanService) GetByID(id string) (*models.SubscriptionPlan, error) {
	plan, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return plan, nil
}

func (s *PlanService) Create(req *dto.CreatePlanRequest) (*models.SubscriptionPlan, error) {
	features, err := marshalFeatures(req.Features)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid features payload")
	}

	plan := &models.SubscriptionPlan{
		Slug:         req.Slug,
		Name:         req.Name,
		Price:        req.Price,
		Currency:     defaultCurrency(req.Currency),
		DurationDays: req.DurationDays,
		Features:     features,
		IsActive:     true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.repo.Create(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *PlanService) Update(id string, req *dto.UpdatePlanRequest) (*models.SubscriptionPlan, error) {
	plan, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.Name != "" {
		plan.Name = req.Name
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.Features != nil {
		features, err := marshalFeatures(req.Features)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid features payload")
		}
		plan.Features = features
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.repo.Update(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *PlanService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if err == repositories.ErrPlanNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func marshalFeatures(features map[string]any) (datatypes.JSON, error) {
	if features == nil {
		return nil, nil
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func defaultCurrency(currency string) string {
	if currency == "" {
		return "INR"
	}
	return currency
}
