package user

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Role is a closed set. Authorization checks compare against an explicit
// allow-set; there is no string duck typing anywhere downstream.
type Role string

const (
	RolePlayer     Role = "player"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role carries administrator privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Verification is the admin-approval state of an account. It is distinct
// from a registration's payment-proof status.
type Verification string

const (
	VerificationPending  Verification = "pending"
	VerificationVerified Verification = "verified"
	VerificationRejected Verification = "rejected"
)

func (v Verification) Valid() bool {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Role         Role         `gorm:"not null;index" json:"role"`
	Verification Verification `gorm:"not null;default:'pending'" json:"verification"`

	// PlayerNumber is the sequential human-readable identifier, assigned
	// once at registration and immutable afterwards. Zero for admins.
	PlayerNumber int `gorm:"uniqueIndex:idx_users_player_number,where:player_number > 0" json:"player_number"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Mobile    string `gorm:"uniqueIndex;not null" json:"mobile"`
	Aadhaar   string `gorm:"index" json:"aadhaar,omitempty"`
	Password  string `json:"-"`

	DOB       *time.Time `json:"dob,omitempty"`
	Age       int        `json:"age,omitempty"`
	PhotoURL  string     `json:"photo_url,omitempty"`
	Apartment string     `json:"apartment,omitempty"`
	Street    string     `json:"street,omitempty"`
	City      string     `json:"city,omitempty"`
	State     string     `json:"state,omitempty"`
	Pincode   string     `json:"pincode,omitempty"`
	Country   string     `json:"country,omitempty"`
}

// PlayerID formats the sequential player number as the display
// identifier players log in with ("P100001").
func (u *User) PlayerID() string {
	if u.PlayerNumber == 0 {
		return ""
	}
	return FormatPlayerID(u.PlayerNumber)
}

func FormatPlayerID(n int) string {
	if n == 0 {
		return ""
	}
	return "P" + strconv.Itoa(n)
}

// SchoolDetail is the optional school record captured at player registration.
type SchoolDetail struct {
	gorm.Model
	UserID  uint   `gorm:"uniqueIndex" json:"user_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// FamilyMember is a dependent a player manages from their dashboard.
type FamilyMember struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Name     string `gorm:"not null" json:"name"`
	Relation string `gorm:"not null" json:"relation"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}
