package repositories

import (
	"errors"

	"chefmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementRepository interface {
	Create(a *models.Announcement) error
	FindByID(id string) (*models.Announcement, error)
	FindActive(audience models.AnnouncementAudience) ([]models.Announcement, error)
	FindAll(limit, offset int) ([]models.Announcement, error)
	Update(a *models.Announcement) error
	Delete(id string) error
}

type AnnouncementRepositoryImpl struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &AnnouncementRepositoryImpl{db: db}
}

func (r *AnnouncementRepositoryImpl) Create(a *models.Announcement) error {
	return r.db.Create(a).Error
}

func (r *AnnouncementRepositoryImpl) FindByID(id string) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindActive возвращает активные объявления для указанной аудитории
// плюс общие ("all")
func (r *AnnouncementRepositoryImpl) FindActive(audience models.AnnouncementAudience) ([]models.Announcement, error) {
	var items []models.Announcement
	q := r.db.Where("is_active = ?", true)
	if audience != "" && audience != models.AudienceAll {
		q = q.Where("audience IN ?", []models.AnnouncementAudience{models.AudienceAll, audience})
	}
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *AnnouncementRepositoryImpl) FindAll(limit, offset int) ([]models.Announcement, error) {
	var items []models.Announcement
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

func (r *AnnouncementRepositoryImpl) Update(a *models.Announcement) error {
	return r.db.Save(a).Error
}

func (r *AnnouncementRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Announcement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
