package services

import (
	"encoding/json"

	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
	"chefmarket_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type ProfileService struct {
	profiles repositories.ProfileRepository
	users    repositories.UserRepository
}

func NewProfileService(profiles repositories.ProfileRepository, users repositories.UserRepository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

// Upsert создает или обновляет резюме повара
func (s *ProfileService) Upsert(userID string, req *dto.UpsertChefProfileRequest) (*models.ChefProfile, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if !user.IsChef {
		return nil, apperrors.NewForbiddenError("Only chef accounts can have a profile")
	}

	cuisines, err := marshalCuisines(req.Cuisines)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid cuisines payload")
	}

	profile, err := s.profiles.FindByUserID(userID)
	if err != nil {
		// Нет профиля - создаем
		profile = &models.ChefProfile{UserID: userID, IsAvailable: true}
		applyProfileFields(profile, req, cuisines)
		if err := s.profiles.Create(profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return profile, nil
	}

	applyProfileFields(profile, req, cuisines)
	if err := s.profiles.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileService) GetByUserID(userID string) (*models.ChefProfile, error) {
	profile, err := s.profiles.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return profile, nil
}

func (s *ProfileService) ListAvailable(city string, limit, offset int) ([]models.ChefProfile, error) {
	profiles, err := s.profiles.FindAvailable(city, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profiles, nil
}

func applyProfileFields(profile *models.ChefProfile, req *dto.UpsertChefProfileRequest, cuisines datatypes.JSON) {
	if req.Headline != "" {
		profile.Headline = req.Headline
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.YearsExperience > 0 {
		profile.YearsExperience = req.YearsExperience
	}
	if cuisines != nil {
		profile.Cuisines = cuisines
	}
	if req.City != "" {
		profile.City = req.City
	}
	if req.ExpectedSalary > 0 {
		profile.ExpectedSalary = req.ExpectedSalary
	}
	if req.IsAvailable != nil {
		profile.IsAvailable = *req.IsAvailable
	}
}

func marshalCuisines(cuisines []string) (datatypes.JSON, error) {
	if cuisines == nil {
		return nil, nil
	}
	raw, err := json.Marshal(cuisines)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
