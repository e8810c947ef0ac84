package settings

import "time"

// PlatformSettings is a single-row table driving site-wide branding and
// support contact details.
type PlatformSettings struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PlatformName string    `json:"platform_name"`
	LogoURL      string    `json:"logo_url"`
	LogoSize     int       `json:"logo_size"`
	SupportEmail string    `json:"support_email"`
	SupportPhone string    `json:"support_phone"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	PlatformName string `json:"platform_name" binding:"required"`
	Logo         string `json:"logo"` // base64 data URL or hosted URL
	LogoSize     *int   `json:"logo_size"`
	SupportEmail string `json:"support_email"`
	SupportPhone string `json:"support_phone"`
}
