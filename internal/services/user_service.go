package services

import (
	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
	"chefmarket_backend/pkg/apperrors"
)

type UserService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) FindByID(id string) (*models.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return user, nil
}

func (s *UserService) List(limit, offset int) ([]models.User, int64, error) {
	users, err := s.repo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.repo.CountAll()
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return users, total, nil
}

// Update - админское редактирование пользователя.
// Понижение админа через этот путь разрешено только другому админу
// (проверка прав - в middleware), платежный флоу ролей не понижает вообще.
func (s *UserService) Update(id string, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = models.UserRole(req.Role)
	}
	if req.IsChef != nil {
		user.IsChef = *req.IsChef
	}

	if err := s.repo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
