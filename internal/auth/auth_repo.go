package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/merasports/hub/internal/user"
)

type UserRepository interface {
	CreateUser(u *user.User) error
	GetUserByID(id uint) (*user.User, error)
	GetUserByEmail(email string) (*user.User, error)
	GetUserByMobile(mobile string) (*user.User, error)
	GetUserByAadhaar(aadhaar string) (*user.User, error)
	GetUserByPlayerNumber(n int) (*user.User, error)
	UpdateUser(u *user.User) error

	// CreatePlayer assigns the next sequential player number and inserts
	// the user in a single transaction. Allocation is serialized with a
	// Postgres advisory lock so concurrent registrations cannot read the
	// same maximum.
	CreatePlayer(u *user.User) error

	SaveSchoolDetail(d *user.SchoolDetail) error

	CreateOTP(o *OTP) error
	GetOTPBySession(sessionID string) (*OTP, error)
	UpdateOTP(o *OTP) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) GetUserByID(id uint) (*user.User, error) {
	return r.firstUser("id = ?", id)
}

func (r *userRepository) GetUserByEmail(email string) (*user.User, error) {
	return r.firstUser("LOWER(email) = LOWER(?)", email)
}

func (r *userRepository) GetUserByMobile(mobile string) (*user.User, error) {
	return r.firstUser("mobile = ?", mobile)
}

func (r *userRepository) GetUserByAadhaar(aadhaar string) (*user.User, error) {
	if aadhaar == "" {
		return nil, nil
	}
	return r.firstUser("aadhaar = ?", aadhaar)
}

func (r *userRepository) GetUserByPlayerNumber(n int) (*user.User, error) {
	return r.firstUser("player_number = ?", n)
}

func (r *userRepository) firstUser(query string, args ...any) (*user.User, error) {
	var u user.User
	if err := r.db.Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateUser(u *user.User) error {
	return r.db.Save(u).Error
}

const (
	firstPlayerNumber = 100001

	// Advisory lock key for player number allocation. Held until the
	// surrounding transaction commits, which covers the insert too.
	playerNumberLockKey = 824117
)

func (r *userRepository) CreatePlayer(u *user.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", playerNumberLockKey).Error; err != nil {
			return err
		}
		var max int
		row := tx.Model(&user.User{}).Select("COALESCE(MAX(player_number), 0)").Row()
		if err := row.Scan(&max); err != nil {
			return err
		}
		if max < firstPlayerNumber {
			u.PlayerNumber = firstPlayerNumber
		} else {
			u.PlayerNumber = max + 1
		}
		return tx.Create(u).Error
	})
}

func (r *userRepository) SaveSchoolDetail(d *user.SchoolDetail) error {
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

func (r *userRepository) CreateOTP(o *OTP) error {
	return r.db.Create(o).Error
}

func (r *userRepository) GetOTPBySession(sessionID string) (*OTP, error) {
	var o OTP
	if err := r.db.Where("session_id = ?", sessionID).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *userRepository) UpdateOTP(o *OTP) error {
	return r.db.Save(o).Error
}
