package settings

import (
	"errors"

	"gorm.io/gorm"
)

// Only row 1 exists; Save pins the ID so updates never grow the table.
const settingsRowID = 1

type SettingsRepository interface {
	Get() (*PlatformSettings, error)
	Save(s *PlatformSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get() (*PlatformSettings, error) {
	var s PlatformSettings
	if err := r.db.First(&s, settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Save(s *PlatformSettings) error {
	s.ID = settingsRowID
	return r.db.Save(s).Error
}
