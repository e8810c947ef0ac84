package team

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/merasports/hub/internal/user"
)

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamsByCaptain(captainID uint) ([]Team, error)
	UpdateTeam(team *Team) error
	DeleteTeam(id uint) error
	DeleteTeamsByCaptain(captainID uint) error
	ListAll() ([]Team, error)

	// Captain and member lookups against the user table.
	GetUser(id uint) (*user.User, error)
	FindPlayerByPlayerID(playerID string) (*user.User, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamsByCaptain(captainID uint) ([]Team, error) {
	var teams []Team
	if err := r.db.Where("captain_id = ?", captainID).
		Order("created_at DESC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *teamRepository) DeleteTeam(id uint) error {
	return r.db.Delete(&Team{}, id).Error
}

func (r *teamRepository) DeleteTeamsByCaptain(captainID uint) error {
	return r.db.Where("captain_id = ?", captainID).Delete(&Team{}).Error
}

func (r *teamRepository) ListAll() ([]Team, error) {
	var teams []Team
	if err := r.db.Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) GetUser(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindPlayerByPlayerID resolves a display id like "P100007" to the
// underlying player account, case-insensitively on the P prefix.
func (r *teamRepository) FindPlayerByPlayerID(playerID string) (*user.User, error) {
	trimmed := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(playerID)), "P")
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return nil, nil
	}
	var u user.User
	if err := r.db.Where("player_number = ? AND role = ?", n, user.RolePlayer).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
