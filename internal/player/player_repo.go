package player

import (
	"errors"

	"gorm.io/gorm"

	"github.com/merasports/hub/internal/user"
)

type PlayerRepository interface {
	GetUser(id uint) (*user.User, error)
	UpdateUser(u *user.User) error
	FindByEmail(email string) (*user.User, error)
	FindByMobile(mobile string) (*user.User, error)
	DeleteUser(id uint) error

	GetSchoolDetail(userID uint) (*user.SchoolDetail, error)
	SaveSchoolDetail(d *user.SchoolDetail) error
	DeleteSchoolDetail(userID uint) error

	ListFamily(userID uint) ([]user.FamilyMember, error)
	GetFamilyMember(userID, id uint) (*user.FamilyMember, error)
	CreateFamilyMember(m *user.FamilyMember) error
	UpdateFamilyMember(m *user.FamilyMember) error
	DeleteFamilyMember(userID, id uint) error
	DeleteFamily(userID uint) error
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) GetUser(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *playerRepository) UpdateUser(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *playerRepository) FindByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *playerRepository) FindByMobile(mobile string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("mobile = ?", mobile).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *playerRepository) DeleteUser(id uint) error {
	return r.db.Unscoped().Delete(&user.User{}, id).Error
}

func (r *playerRepository) GetSchoolDetail(userID uint) (*user.SchoolDetail, error) {
	var d user.SchoolDetail
	if err := r.db.Where("user_id = ?", userID).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *playerRepository) SaveSchoolDetail(d *user.SchoolDetail) error {
	var existing user.SchoolDetail
	err := r.db.Where("user_id = ?", d.UserID).First(&existing).Error
	if err == nil {
		d.ID = existing.ID
		return r.db.Save(d).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(d).Error
	}
	return err
}

func (r *playerRepository) DeleteSchoolDetail(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&user.SchoolDetail{}).Error
}

func (r *playerRepository) ListFamily(userID uint) ([]user.FamilyMember, error) {
	var members []user.FamilyMember
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&members).Error
	return members, err
}

func (r *playerRepository) GetFamilyMember(userID, id uint) (*user.FamilyMember, error) {
	var m user.FamilyMember
	if err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *playerRepository) CreateFamilyMember(m *user.FamilyMember) error {
	return r.db.Create(m).Error
}

func (r *playerRepository) UpdateFamilyMember(m *user.FamilyMember) error {
	return r.db.Save(m).Error
}

func (r *playerRepository) DeleteFamilyMember(userID, id uint) error {
	return r.db.Unscoped().Where("user_id = ? AND id = ?", userID, id).Delete(&user.FamilyMember{}).Error
}

func (r *playerRepository) DeleteFamily(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&user.FamilyMember{}).Error
}
