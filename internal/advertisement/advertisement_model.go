package advertisement

import "gorm.io/gorm"

// Advertisement is a promotional banner placed on the public site.
type Advertisement struct {
	gorm.Model
	UserID    uint   `gorm:"index" json:"user_id"`
	Title     string `gorm:"not null" json:"title"`
	ImageURL  string `json:"image_url"`
	LinkURL   string `json:"link_url"`
	Placement string `gorm:"default:'home'" json:"placement"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
}

type AdvertisementRequest struct {
	Title     string `json:"title" binding:"required"`
	Image     string `json:"image"` // data URL
	LinkURL   string `json:"link_url"`
	Placement string `json:"placement"`
	IsActive  *bool  `json:"is_active"`
}
