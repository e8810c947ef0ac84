package registration

import (
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/models"
)

// Status tracks payment-proof approval for a registration. It is
// distinct from a user's account verification state.
type Status string

const (
	StatusPendingVerification Status = "pending_verification"
	StatusVerified            Status = "verified"
	StatusRejected            Status = "rejected"
)

// Valid reports whether s is a status an admin may target. The initial
// pending state is never a valid target for verification updates.
func (s Status) Valid() bool {
	return s == StatusVerified || s == StatusRejected
}

// Transaction is a manual payment claim. The external reference is
// user-asserted and never verified against a gateway. A Transaction is
// owned by the EventRegistration that created it and is deleted with it.
type Transaction struct {
	gorm.Model
	OrderID     string  `gorm:"uniqueIndex" json:"order_id"`
	ExternalRef string  `json:"external_ref"`
	Amount      float64 `json:"amount"`
	Currency    string  `gorm:"default:'INR'" json:"currency"`
	ProofURL    string  `json:"proof_url"`
	UserID      uint    `json:"user_id"`
}

type EventRegistration struct {
	gorm.Model
	EventID        uint               `gorm:"index" json:"event_id"`
	PlayerID       uint               `gorm:"index" json:"player_id"`
	TeamID         *uint              `json:"team_id,omitempty"`
	RegistrationNo string             `gorm:"uniqueIndex" json:"registration_no"`
	Categories     models.StringSlice `gorm:"type:jsonb" json:"categories"`
	AmountPaid     float64            `json:"amount_paid"`
	TransactionID  uint               `json:"transaction_id"`
	Status         Status             `gorm:"default:'pending_verification'" json:"status"`
	ProofURL       string             `json:"proof_url"`
	ExternalRef    string             `json:"external_ref"`
	DocumentURL    string             `json:"document_url,omitempty"`
}

type SubmitPaymentRequest struct {
	EventID       uint     `json:"event_id" binding:"required"`
	Amount        float64  `json:"amount" binding:"required,gt=0"`
	Categories    []string `json:"categories" binding:"required,min=1"`
	TransactionID string   `json:"transaction_id" binding:"required"`
	Screenshot    string   `json:"screenshot" binding:"required"`
	TeamID        *uint    `json:"team_id,omitempty"`
	Document      string   `json:"document,omitempty"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

type BulkUpdateRequest struct {
	RegistrationIDs []uint `json:"registration_ids"`
	Status          Status `json:"status"`
}
