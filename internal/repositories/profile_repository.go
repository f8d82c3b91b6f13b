package repositories

import (
	"errors"

	"chefmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("chef profile not found")

type ProfileRepository interface {
	Create(profile *models.ChefProfile) error
	FindByID(id string) (*models.ChefProfile, error)
	FindByUserID(userID string) (*models.ChefProfile, error)
	FindAvailable(city string, limit, offset int) ([]models.ChefProfile, error)
	Update(profile *models.ChefProfile) error
	Delete(id string) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Create(profile *models.ChefProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByID(id string) (*models.ChefProfile, error) {
	var profile models.ChefProfile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.ChefProfile, error) {
	var profile models.ChefProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindAvailable(city string, limit, offset int) ([]models.ChefProfile, error) {
	var profiles []models.ChefProfile
	q := r.db.Where("is_available = ?", true)
	if city != "" {
		q = q.Where("city = ?", city)
	}
	err := q.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) Update(profile *models.ChefProfile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.ChefProfile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
