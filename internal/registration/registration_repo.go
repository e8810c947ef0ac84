package registration

import (
	"errors"

	"gorm.io/gorm"
)

type RegistrationRepository interface {
	CreateTransaction(t *Transaction) error
	DeleteTransaction(id uint) error
	GetTransactionByID(id uint) (*Transaction, error)

	CreateRegistration(r *EventRegistration) error
	GetRegistrationByID(id uint) (*EventRegistration, error)
	ListByEvent(eventID uint) ([]EventRegistration, error)
	ListAll() ([]EventRegistration, error)
	ListVisibleToPlayer(playerID uint, teamIDs []uint) ([]EventRegistration, error)
	UpdateStatus(id uint, status Status) error
	BulkUpdateStatus(ids []uint, status Status) ([]EventRegistration, error)

	DeleteByEvent(eventID uint) error
	DeleteByPlayer(playerID uint) error
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) CreateTransaction(t *Transaction) error {
	return r.db.Create(t).Error
}

func (r *registrationRepository) DeleteTransaction(id uint) error {
	return r.db.Unscoped().Delete(&Transaction{}, id).Error
}

func (r *registrationRepository) GetTransactionByID(id uint) (*Transaction, error) {
	var t Transaction
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *registrationRepository) CreateRegistration(reg *EventRegistration) error {
	return r.db.Create(reg).Error
}

func (r *registrationRepository) GetRegistrationByID(id uint) (*EventRegistration, error) {
	var reg EventRegistration
	if err := r.db.First(&reg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) ListByEvent(eventID uint) ([]EventRegistration, error) {
	var regs []EventRegistration
	err := r.db.Where("event_id = ?", eventID).Order("created_at DESC").Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) ListAll() ([]EventRegistration, error) {
	var regs []EventRegistration
	err := r.db.Order("created_at DESC").Find(&regs).Error
	return regs, err
}

// ListVisibleToPlayer unions registrations the player submitted with
// registrations held by any of the given teams.
func (r *registrationRepository) ListVisibleToPlayer(playerID uint, teamIDs []uint) ([]EventRegistration, error) {
	var regs []EventRegistration
	q := r.db.Where("player_id = ?", playerID)
	if len(teamIDs) > 0 {
		q = r.db.Where("player_id = ? OR team_id IN ?", playerID, teamIDs)
	}
	err := q.Order("created_at DESC").Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) UpdateStatus(id uint, status Status) error {
	res := r.db.Model(&EventRegistration{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BulkUpdateStatus transitions every named registration in one batched
// UPDATE and returns the affected rows so callers can notify per record.
// Terminal rows are overwritten; re-running the same call is idempotent
// on status.
func (r *registrationRepository) BulkUpdateStatus(ids []uint, status Status) ([]EventRegistration, error) {
	if err := r.db.Model(&EventRegistration{}).Where("id IN ?", ids).Update("status", status).Error; err != nil {
		return nil, err
	}
	var regs []EventRegistration
	err := r.db.Where("id IN ?", ids).Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) DeleteByEvent(eventID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var regs []EventRegistration
		if err := tx.Where("event_id = ?", eventID).Find(&regs).Error; err != nil {
			return err
		}
		for _, reg := range regs {
			if reg.TransactionID != 0 {
				if err := tx.Unscoped().Delete(&Transaction{}, reg.TransactionID).Error; err != nil {
					return err
				}
			}
		}
		return tx.Unscoped().Where("event_id = ?", eventID).Delete(&EventRegistration{}).Error
	})
}

func (r *registrationRepository) DeleteByPlayer(playerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", playerID).Delete(&Transaction{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("player_id = ?", playerID).Delete(&EventRegistration{}).Error
	})
}
