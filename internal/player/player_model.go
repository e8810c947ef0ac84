package player

import (
	"github.com/merasports/hub/internal/registration"
	"github.com/merasports/hub/internal/team"
	"github.com/merasports/hub/internal/user"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Mobile    *string `json:"mobile"`
	Photo     *string `json:"photo"` // data URL

	Apartment *string `json:"apartment"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Pincode   *string `json:"pincode"`
	Country   *string `json:"country"`

	School *SchoolInput `json:"school"`
}

type SchoolInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type CheckConflictRequest struct {
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type CheckPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type FamilyMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Relation string `json:"relation" binding:"required"`
	Age      *int   `json:"age"`
	Gender   string `json:"gender"`
}

// RegistrationView is a dashboard row: the registration joined with its
// payment transaction and team, resolved best-effort.
type RegistrationView struct {
	registration.EventRegistration
	EventName   string                    `json:"event_name,omitempty"`
	Team        *team.Team                `json:"team,omitempty"`
	Transaction *registration.Transaction `json:"transaction,omitempty"`
}

type DashboardView struct {
	Profile       *user.User          `json:"profile"`
	School        *user.SchoolDetail  `json:"school,omitempty"`
	Family        []user.FamilyMember `json:"family"`
	Registrations []RegistrationView  `json:"registrations"`
}
