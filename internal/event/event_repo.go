package event

import (
	"errors"

	"gorm.io/gorm"
)

type EventRepository interface {
	CreateEvent(e *Event) error
	GetEventByID(id uint) (*Event, error)
	ListEvents(createdBy, adminID uint) ([]Event, error)
	UpdateEvent(e *Event) error
	DeleteEvent(id uint) error
	ReassignOwnership(fromAdminID, toAdminID uint) error

	CreateNews(n *News) error
	ListNewsByEvent(eventID uint) ([]News, error)
	GetNewsByID(id uint) (*News, error)
	UpdateNews(n *News) error
	DeleteNews(id uint) error

	UpsertBracket(b *Bracket) error
	ListBracketsByEvent(eventID uint) ([]Bracket, error)
	DeleteBracket(id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(e *Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepository) GetEventByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListEvents optionally filters by creator, or by "created by OR
// assigned to" a given admin.
func (r *eventRepository) ListEvents(createdBy, adminID uint) ([]Event, error) {
	query := r.db.Model(&Event{}).Order("start_date ASC")
	if createdBy != 0 {
		query = query.Where("created_by = ?", createdBy)
	}
	if adminID != 0 {
		query = query.Where("created_by = ? OR assigned_to = ?", adminID, adminID)
	}
	var events []Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) UpdateEvent(e *Event) error {
	return r.db.Save(e).Error
}

// DeleteEvent removes the event with its news and brackets. Registration
// cleanup is the registration repository's concern and runs first at the
// controller level.
func (r *eventRepository) DeleteEvent(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&News{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&Bracket{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

// ReassignOwnership moves every event created by or assigned to one
// admin onto another. Used when a superadmin deletes an admin account.
func (r *eventRepository) ReassignOwnership(fromAdminID, toAdminID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Event{}).
			Where("created_by = ?", fromAdminID).
			Update("created_by", toAdminID).Error; err != nil {
			return err
		}
		return tx.Model(&Event{}).
			Where("assigned_to = ?", fromAdminID).
			Update("assigned_to", toAdminID).Error
	})
}

func (r *eventRepository) CreateNews(n *News) error {
	return r.db.Create(n).Error
}

func (r *eventRepository) ListNewsByEvent(eventID uint) ([]News, error) {
	var news []News
	if err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

func (r *eventRepository) GetNewsByID(id uint) (*News, error) {
	var n News
	if err := r.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *eventRepository) UpdateNews(n *News) error {
	return r.db.Save(n).Error
}

func (r *eventRepository) DeleteNews(id uint) error {
	return r.db.Delete(&News{}, id).Error
}

// UpsertBracket replaces the draw for an existing event/category/round
// or inserts a new round.
func (r *eventRepository) UpsertBracket(b *Bracket) error {
	var existing Bracket
	err := r.db.Where("event_id = ? AND category = ? AND round_name = ?",
		b.EventID, b.Category, b.RoundName).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(b).Error
		}
		return err
	}
	existing.DrawType = b.DrawType
	existing.DrawData = b.DrawData
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*b = existing
	return nil
}

func (r *eventRepository) ListBracketsByEvent(eventID uint) ([]Bracket, error) {
	var brackets []Bracket
	if err := r.db.Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&brackets).Error; err != nil {
		return nil, err
	}
	return brackets, nil
}

func (r *eventRepository) DeleteBracket(id uint) error {
	return r.db.Delete(&Bracket{}, id).Error
}
