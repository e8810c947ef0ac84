package admin

import (
	"errors"

	"gorm.io/gorm"

	"github.com/merasports/hub/internal/event"
	"github.com/merasports/hub/internal/registration"
	"github.com/merasports/hub/internal/user"
)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalPlayers          int64   `json:"total_players"`
	TotalEvents           int64   `json:"total_events"`
	PendingRegistrations  int64   `json:"pending_registrations"`
	VerifiedRegistrations int64   `json:"verified_registrations"`
	RejectedRegistrations int64   `json:"rejected_registrations"`
	VerifiedRevenue       float64 `json:"verified_revenue"`
}

type AdminRepository interface {
	ListPlayers() ([]user.User, error)
	ListAdmins() ([]user.User, error)
	GetUserByID(id uint) (*user.User, error)
	GetSchoolDetail(userID uint) (*user.SchoolDetail, error)
	UpdateVerification(userID uint, v user.Verification) error
	DeleteUser(userID uint) error
	Stats() (*DashboardStats, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) ListPlayers() ([]user.User, error) {
	var users []user.User
	err := r.db.Where("role = ?", user.RolePlayer).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *adminRepository) ListAdmins() ([]user.User, error) {
	var users []user.User
	err := r.db.Where("role IN ?", []user.Role{user.RoleAdmin, user.RoleSuperadmin}).
		Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *adminRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *adminRepository) GetSchoolDetail(userID uint) (*user.SchoolDetail, error) {
	var d user.SchoolDetail
	if err := r.db.Where("user_id = ?", userID).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *adminRepository) UpdateVerification(userID uint, v user.Verification) error {
	res := r.db.Model(&user.User{}).Where("id = ?", userID).Update("verification", v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *adminRepository) DeleteUser(userID uint) error {
	return r.db.Unscoped().Delete(&user.User{}, userID).Error
}

func (r *adminRepository) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := r.db.Model(&user.User{}).Where("role = ?", user.RolePlayer).Count(&stats.TotalPlayers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&event.Event{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}

	counts := map[registration.Status]*int64{
		registration.StatusPendingVerification: &stats.PendingRegistrations,
		registration.StatusVerified:            &stats.VerifiedRegistrations,
		registration.StatusRejected:            &stats.RejectedRegistrations,
	}
	for status, dst := range counts {
		if err := r.db.Model(&registration.EventRegistration{}).
			Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	row := r.db.Model(&registration.EventRegistration{}).
		Where("status = ?", registration.StatusVerified).
		Select("COALESCE(SUM(amount_paid), 0)").Row()
	if err := row.Scan(&stats.VerifiedRevenue); err != nil {
		return nil, err
	}
	return stats, nil
}
