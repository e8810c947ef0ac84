// Package mailer is the outbound email boundary. Delivery is an
// external collaborator; the default implementation only logs. Callers
// always dispatch in a goroutine and discard the outcome.
package mailer

import (
	"github.com/rs/zerolog/log"
)

type RegistrationDetails struct {
	PlayerName     string
	EventName      string
	RegistrationNo string
	Amount         float64
	Categories     []string
}

type Mailer interface {
	SendRegistrationConfirmation(toEmail string, details RegistrationDetails) error
}

// LogMailer stands in for a real SMTP provider.
type LogMailer struct{}

func NewLogMailer() *LogMailer { return &LogMailer{} }

func (m *LogMailer) SendRegistrationConfirmation(toEmail string, d RegistrationDetails) error {
	if toEmail == "" {
		return nil
	}
	log.Info().
		Str("to", toEmail).
		Str("event", d.EventName).
		Str("registration_no", d.RegistrationNo).
		Float64("amount", d.Amount).
		Msg("registration confirmation email dispatched")
	return nil
}
