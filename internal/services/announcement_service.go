package services

import (
	"chefmarket_backend/internal/dto"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
	"chefmarket_backend/pkg/apperrors"
)

type AnnouncementService struct {
	repo repositories.AnnouncementRepository
}

func NewAnnouncementService(repo repositories.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

func (s *AnnouncementService) GetActive(audience models.AnnouncementAudience) ([]models.Announcement, error) {
	items, err := s.repo.FindActive(audience)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}

func (s *AnnouncementService) GetAll(limit, offset int) ([]models.Announcement, error) {
	items, err := s.repo.FindAll(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}

func (s *AnnouncementService) Create(authorID string, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	a := &models.Announcement{
		Title:    req.Title,
		Body:     req.Body,
		Audience: models.AudienceAll,
		IsActive: true,
		AuthorID: authorID,
	}
	if req.Audience != "" {
		a.Audience = models.AnnouncementAudience(req.Audience)
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.repo.Create(a); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return a, nil
}

func (s *AnnouncementService) Update(id string, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	a, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.Title != "" {
		a.Title = req.Title
	}
	if req.Body != "" {
		a.Body = req.Body
	}
	if req.Audience != "" {
		a.Audience = models.AnnouncementAudience(req.Audience)
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.repo.Update(a); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return a, nil
}

func (s *AnnouncementService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if err == repositories.ErrAnnouncementNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
