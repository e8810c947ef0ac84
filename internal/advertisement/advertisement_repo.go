package advertisement

import (
	"errors"

	"gorm.io/gorm"
)

type AdvertisementRepository interface {
	Create(a *Advertisement) error
	GetByID(id uint) (*Advertisement, error)
	ListActive(placement string) ([]Advertisement, error)
	ListAll() ([]Advertisement, error)
	Update(a *Advertisement) error
	Delete(id uint) error
}

type advertisementRepository struct {
	db *gorm.DB
}

func NewAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(a *Advertisement) error {
	return r.db.Create(a).Error
}

func (r *advertisementRepository) GetByID(id uint) (*Advertisement, error) {
	var a Advertisement
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *advertisementRepository) ListActive(placement string) ([]Advertisement, error) {
	var ads []Advertisement
	q := r.db.Where("is_active = ?", true)
	if placement != "" {
		q = q.Where("placement = ?", placement)
	}
	err := q.Order("created_at DESC").Find(&ads).Error
	return ads, err
}

func (r *advertisementRepository) ListAll() ([]Advertisement, error) {
	var ads []Advertisement
	err := r.db.Order("created_at DESC").Find(&ads).Error
	return ads, err
}

func (r *advertisementRepository) Update(a *Advertisement) error {
	return r.db.Save(a).Error
}

func (r *advertisementRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&Advertisement{}, id).Error
}
