package registration

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/event"
	"github.com/merasports/hub/internal/mailer"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/notification"
	"github.com/merasports/hub/internal/team"
	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/apperr"
	"github.com/merasports/hub/pkg/responses"
	"github.com/merasports/hub/pkg/validator"
)

// EventSource resolves events for validation and for interpolating
// event names into player-facing messages.
type EventSource interface {
	GetEventByID(id uint) (*event.Event, error)
}

// UserSource resolves the registering player for visibility queries and
// for addressing the confirmation email.
type UserSource interface {
	GetUser(id uint) (*user.User, error)
}

type RegistrationController struct {
	repo     RegistrationRepository
	events   EventSource
	users    UserSource
	resolver *team.Resolver
	blobs    blob.Store
	notifier notification.Notifier
	mail     mailer.Mailer
	clock    clockwork.Clock
}

func NewRegistrationController(
	repo RegistrationRepository,
	events EventSource,
	users UserSource,
	resolver *team.Resolver,
	blobs blob.Store,
	notifier notification.Notifier,
	mail mailer.Mailer,
	clock clockwork.Clock,
) *RegistrationController {
	return &RegistrationController{
		repo:     repo,
		events:   events,
		users:    users,
		resolver: resolver,
		blobs:    blobs,
		notifier: notifier,
		mail:     mail,
		clock:    clock,
	}
}

// @Summary      Submit a manual payment registration
// @Description  Creates a payment Transaction and a pending EventRegistration.
// @Tags         Registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payment body SubmitPaymentRequest true "Payment proof"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /registrations/manual-payment [post]
func (rc *RegistrationController) SubmitManualPayment(c *gin.Context) {
	playerID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendAppError(c, apperr.ValidationFields("Invalid payment submission", validator.ParseError(err)))
		return
	}

	e, err := rc.events.GetEventByID(req.EventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return
	}
	if e.RequiresDocument && req.Document == "" {
		responses.BadRequest(c, "This event requires a supporting document")
		return
	}

	// The proof blob is the one upload on the critical path; without a
	// durable reference the payment claim is unverifiable.
	proofURL, err := blob.PutDataURL(rc.blobs, req.Screenshot, "payment-proofs")
	if err != nil {
		responses.SendAppError(c, err)
		return
	}

	docURL := ""
	if req.Document != "" {
		docURL, err = blob.PutDataURL(rc.blobs, req.Document, "registration-docs")
		if err != nil {
			responses.SendAppError(c, err)
			return
		}
	}

	txn := &Transaction{
		OrderID:     "MANUAL_" + uuid.NewString(),
		ExternalRef: req.TransactionID,
		Amount:      req.Amount,
		Currency:    "INR",
		ProofURL:    proofURL,
		UserID:      playerID,
	}
	if err := rc.repo.CreateTransaction(txn); err != nil {
		log.Error().Err(err).Msg("transaction creation failed")
		responses.InternalServerError(c, "Failed to record payment")
		return
	}

	reg := &EventRegistration{
		EventID:        req.EventID,
		PlayerID:       playerID,
		TeamID:         req.TeamID,
		RegistrationNo: fmt.Sprintf("REG-%d", rc.clock.Now().UnixMilli()),
		Categories:     req.Categories,
		AmountPaid:     req.Amount,
		TransactionID:  txn.ID,
		Status:         StatusPendingVerification,
		ProofURL:       proofURL,
		ExternalRef:    req.TransactionID,
		DocumentURL:    docURL,
	}
	if err := rc.repo.CreateRegistration(reg); err != nil {
		// Compensating delete: the transaction must not outlive a failed
		// registration insert. Best effort; an orphan only leaks a row.
		if delErr := rc.repo.DeleteTransaction(txn.ID); delErr != nil {
			log.Error().Err(delErr).Uint("transaction_id", txn.ID).
				Msg("compensating transaction delete failed, orphan row left behind")
		}
		log.Error().Err(err).Msg("registration creation failed")
		responses.InternalServerError(c, "Failed to create registration")
		return
	}

	go rc.sendConfirmation(playerID, e.Name, reg)

	responses.SendSuccess(c, http.StatusCreated, "Registration submitted. Pending verification.", gin.H{
		"registrationNo": reg.RegistrationNo,
		"registration":   reg,
	})
}

func (rc *RegistrationController) sendConfirmation(playerID uint, eventName string, reg *EventRegistration) {
	u, err := rc.users.GetUser(playerID)
	if err != nil || u == nil {
		return
	}
	details := mailer.RegistrationDetails{
		PlayerName:     u.Name,
		EventName:      eventName,
		RegistrationNo: reg.RegistrationNo,
		Amount:         reg.AmountPaid,
		Categories:     reg.Categories,
	}
	if err := rc.mail.SendRegistrationConfirmation(u.Email, details); err != nil {
		log.Warn().Err(err).Str("registration_no", reg.RegistrationNo).
			Msg("confirmation email failed")
	}
}

// @Summary      List registrations visible to the caller
// @Description  Unions direct registrations with registrations held by
// @Description  teams the caller captains or is a resolved member of.
// @Tags         Registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /registrations/my [get]
func (rc *RegistrationController) MyRegistrations(c *gin.Context) {
	playerID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := rc.users.GetUser(playerID)
	if err != nil || u == nil {
		responses.InternalServerError(c, "Failed to fetch profile")
		return
	}

	teamIDs, err := rc.resolver.VisibleTeamIDs(playerID, u.Mobile, u.PlayerID())
	if err != nil {
		log.Warn().Err(err).Uint("player_id", playerID).Msg("team visibility resolution failed")
		teamIDs = nil
	}

	regs, err := rc.repo.ListVisibleToPlayer(playerID, teamIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch registrations")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"registrations": regs})
}

// @Summary      List registrations (admin)
// @Tags         Registrations
// @Produce      json
// @Security     BearerAuth
// @Param        eventId query int false "Filter by event"
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/registrations [get]
func (rc *RegistrationController) List(c *gin.Context) {
	var (
		regs []EventRegistration
		err  error
	)
	if raw := c.Query("eventId"); raw != "" {
		eventID, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			responses.BadRequest(c, "Invalid eventId")
			return
		}
		regs, err = rc.repo.ListByEvent(uint(eventID))
	} else {
		regs, err = rc.repo.ListAll()
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch registrations")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"registrations": regs})
}

// @Summary      Verify or reject a registration
// @Description  Overwrites terminal state if called again; this mirrors
// @Description  the bulk endpoint's idempotent-overwrite behavior.
// @Tags         Registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Registration ID"
// @Param        status body UpdateStatusRequest true "Target status"
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/registrations/{id}/status [put]
func (rc *RegistrationController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid registration id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	if !req.Status.Valid() {
		responses.BadRequest(c, "Status must be 'verified' or 'rejected'")
		return
	}

	reg, err := rc.repo.GetRegistrationByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch registration")
		return
	}
	if reg == nil {
		responses.NotFound(c, "Registration")
		return
	}

	if err := rc.repo.UpdateStatus(reg.ID, req.Status); err != nil {
		responses.InternalServerError(c, "Failed to update registration")
		return
	}
	reg.Status = req.Status

	rc.notifyStatusChange(reg, rc.eventName(reg.EventID))

	responses.SendSuccess(c, http.StatusOK, "Registration status updated", gin.H{"registration": reg})
}

// @Summary      Bulk verify or reject registrations
// @Tags         Registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        update body BulkUpdateRequest true "Registration ids and target status"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Router       /admin/registrations/bulk-status [put]
func (rc *RegistrationController) BulkUpdateStatus(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	// Validate before touching the store so a bad request mutates nothing.
	if len(req.RegistrationIDs) == 0 {
		responses.BadRequest(c, "registration_ids must not be empty")
		return
	}
	if !req.Status.Valid() {
		responses.BadRequest(c, "Status must be 'verified' or 'rejected'")
		return
	}

	regs, err := rc.repo.BulkUpdateStatus(req.RegistrationIDs, req.Status)
	if err != nil {
		responses.InternalServerError(c, "Failed to update registrations")
		return
	}

	// One notification per affected row, never a batched digest.
	eventNames := make(map[uint]string)
	for i := range regs {
		name, ok := eventNames[regs[i].EventID]
		if !ok {
			name = rc.eventName(regs[i].EventID)
			eventNames[regs[i].EventID] = name
		}
		rc.notifyStatusChange(&regs[i], name)
	}

	responses.SendSuccess(c, http.StatusOK, "Registrations updated", gin.H{
		"updated": len(regs),
	})
}

func (rc *RegistrationController) eventName(eventID uint) string {
	e, err := rc.events.GetEventByID(eventID)
	if err != nil || e == nil {
		return "the event"
	}
	return e.Name
}

func (rc *RegistrationController) notifyStatusChange(reg *EventRegistration, eventName string) {
	switch reg.Status {
	case StatusVerified:
		rc.notifier.Notify(reg.PlayerID, "Registration Verified",
			fmt.Sprintf("Your registration %s for %s has been verified.", reg.RegistrationNo, eventName),
			notification.SeveritySuccess)
	case StatusRejected:
		rc.notifier.Notify(reg.PlayerID, "Registration Rejected",
			fmt.Sprintf("Your registration %s for %s has been rejected. Please contact support.", reg.RegistrationNo, eventName),
			notification.SeverityError)
	}
}
