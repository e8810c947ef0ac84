package event

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/merasports/hub/internal/models"
)

// SponsorMedia is one gallery item shown on a sponsor's card.
type SponsorMedia struct {
	Type string `json:"type"` // "image" or "video"
	URL  string `json:"url"`
}

type Sponsor struct {
	Name       string         `json:"name"`
	LogoURL    string         `json:"logo"`
	Website    string         `json:"website,omitempty"`
	MediaItems []SponsorMedia `json:"media_items,omitempty"`
}

// SponsorList is a JSONB column holding an event's sponsors.
type SponsorList []Sponsor

func (s SponsorList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SponsorList) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("SponsorList: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

type Event struct {
	gorm.Model
	Name         string             `gorm:"not null" json:"name"`
	Sport        string             `gorm:"not null;index" json:"sport"`
	Location     string             `json:"location"`
	Venue        string             `json:"venue"`
	StartDate    *time.Time         `gorm:"index" json:"start_date"`
	EndDate      *time.Time         `json:"end_date"`
	StartTime    string             `json:"start_time"`
	Categories   models.StringSlice `gorm:"type:jsonb" json:"categories"`
	BannerURL    string             `json:"banner_url"`
	PaymentQRURL string             `json:"payment_qr_url"`
	DocumentURL  string             `json:"document_url"`
	DocumentDesc string             `json:"document_description"`
	Sponsors     SponsorList        `gorm:"type:jsonb" json:"sponsors"`
	Status       string             `gorm:"default:'upcoming'" json:"status"`

	// Document uploads for registrations can be made mandatory per event.
	RequiresDocument bool `gorm:"default:false" json:"requires_document"`

	// CreatedBy owns the event; AssignedTo optionally delegates it to
	// another admin. Both are reassigned when an admin is deleted.
	CreatedBy  uint  `gorm:"index" json:"created_by"`
	AssignedTo *uint `gorm:"index" json:"assigned_to,omitempty"`
}

// News is a per-event news or highlight item managed by admins.
type News struct {
	gorm.Model
	EventID     uint   `gorm:"index;not null" json:"event_id"`
	Title       string `gorm:"not null" json:"title"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	IsHighlight bool   `gorm:"default:false" json:"is_highlight"`
}

// Bracket is one round of a draw for an event category. Saving the same
// event/category/round again replaces the draw data.
type Bracket struct {
	gorm.Model
	EventID   uint   `gorm:"index;not null;uniqueIndex:idx_bracket_round" json:"event_id"`
	Category  string `gorm:"uniqueIndex:idx_bracket_round" json:"category"`
	RoundName string `gorm:"uniqueIndex:idx_bracket_round" json:"round_name"`
	DrawType  string `json:"draw_type"` // "image" or "structured"
	DrawData  string `gorm:"type:jsonb" json:"draw_data"`
}

type CreateEventRequest struct {
	Name             string         `json:"name" binding:"required"`
	Sport            string         `json:"sport" binding:"required"`
	Location         string         `json:"location"`
	Venue            string         `json:"venue"`
	StartDate        string         `json:"start_date" binding:"required"`
	EndDate          string         `json:"end_date"`
	StartTime        string         `json:"start_time"`
	Categories       []string       `json:"categories"`
	BannerImage      string         `json:"banner_image"`     // base64 data URL
	PaymentQRImage   string         `json:"payment_qr_image"` // base64 data URL
	DocumentFile     string         `json:"document_file"`    // base64 data URL (PDF)
	DocumentDesc     string         `json:"document_description"`
	RequiresDocument bool           `json:"requires_document"`
	Sponsors         []SponsorInput `json:"sponsors"`
	AssignedTo       *uint          `json:"assigned_to"`
}

// SponsorInput carries a sponsor submission; Logo and media URLs may be
// base64 data URLs needing upload or already-hosted URLs.
type SponsorInput struct {
	Name       string         `json:"name"`
	Logo       string         `json:"logo"`
	Website    string         `json:"website"`
	MediaItems []SponsorMedia `json:"media_items"`
}

type UpdateEventRequest struct {
	Name             *string        `json:"name"`
	Sport            *string        `json:"sport"`
	Location         *string        `json:"location"`
	Venue            *string        `json:"venue"`
	StartDate        *string        `json:"start_date"`
	EndDate          *string        `json:"end_date"`
	StartTime        *string        `json:"start_time"`
	Categories       []string       `json:"categories"`
	BannerImage      *string        `json:"banner_image"`
	PaymentQRImage   *string        `json:"payment_qr_image"`
	DocumentFile     *string        `json:"document_file"`
	DocumentDesc     *string        `json:"document_description"`
	RequiresDocument *bool          `json:"requires_document"`
	Sponsors         []SponsorInput `json:"sponsors"`
	AssignedTo       *uint          `json:"assigned_to"`
	Status           *string        `json:"status"`
}

type NewsRequest struct {
	EventID     uint   `json:"event_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	IsHighlight bool   `json:"is_highlight"`
}

type BracketRequest struct {
	EventID   uint   `json:"event_id" binding:"required"`
	Category  string `json:"category" binding:"required"`
	RoundName string `json:"round_name" binding:"required"`
	DrawType  string `json:"draw_type" binding:"required"`
	DrawData  string `json:"draw_data"`
}
