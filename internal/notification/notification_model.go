package notification

import "gorm.io/gorm"

// Severity tags a notification for client rendering.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

type Notification struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Title    string `gorm:"not null" json:"title"`
	Message  string `json:"message"`
	Severity string `gorm:"default:'info'" json:"severity"`
	Link     string `json:"link,omitempty"`
	IsRead   bool   `gorm:"default:false" json:"is_read"`
}

type MarkReadRequest struct {
	NotificationID uint `json:"notification_id"`
	MarkAll        bool `json:"mark_all"`
}
