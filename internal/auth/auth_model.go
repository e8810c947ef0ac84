package auth

import (
	"time"

	"gorm.io/gorm"
)

// OTP is a one-time code challenge for a contact channel. A verified
// row may be exchanged for a short-lived step-up token.
type OTP struct {
	gorm.Model
	SessionID   string    `gorm:"uniqueIndex;not null" json:"session_id"`
	Destination string    `gorm:"not null" json:"destination"`
	Channel     string    `gorm:"not null" json:"channel"` // "mobile" or "email"
	Code        string    `gorm:"not null" json:"-"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	Verified    bool      `json:"verified"`
	Attempts    int       `json:"attempts"`
}

type SchoolDetailsInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

type RegisterPlayerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Mobile    string `json:"mobile" binding:"required,len=10"`
	Aadhaar   string `json:"aadhaar" binding:"required,len=12"`
	DOB       string `json:"dob" binding:"required"` // YYYY-MM-DD
	Gender    string `json:"gender"`
	Photo     string `json:"photo"` // data URL, optional

	Apartment string `json:"apartment"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Country   string `json:"country"`

	School *SchoolDetailsInput `json:"school,omitempty"`

	// OTPSessionID references a verified mobile OTP challenge; when it is
	// absent or unverified the account starts with pending verification.
	OTPSessionID string `json:"otp_session_id"`
}

type LoginPlayerRequest struct {
	// Identifier is a player ID ("P100001"), mobile number, or aadhaar.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required,len=10"`
	Password string `json:"password" binding:"required,min=8"`
}

type SendOTPRequest struct {
	Destination string `json:"destination" binding:"required"`
	Channel     string `json:"channel" binding:"required,oneof=mobile email"`
}

type VerifyOTPRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Code      string `json:"code" binding:"required"`
}
