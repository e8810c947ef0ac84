package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/notification"
	"github.com/merasports/hub/internal/registration"
	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/responses"
)

// EventOwnershipReassigner moves events owned by a deleted admin to the
// acting superadmin so no event is left orphaned.
type EventOwnershipReassigner interface {
	ReassignOwnership(fromAdminID, toAdminID uint) error
}

// RegistrationSource supplies the per-player registration summary shown
// on the admin's player detail view.
type RegistrationSource interface {
	ListVisibleToPlayer(playerID uint, teamIDs []uint) ([]registration.EventRegistration, error)
}

type AdminController struct {
	repo          AdminRepository
	events        EventOwnershipReassigner
	registrations RegistrationSource
	notifier      notification.Notifier
}

func NewAdminController(repo AdminRepository, events EventOwnershipReassigner, registrations RegistrationSource, notifier notification.Notifier) *AdminController {
	return &AdminController{repo: repo, events: events, registrations: registrations, notifier: notifier}
}

// @Summary      List players
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/players [get]
func (ac *AdminController) ListPlayers(c *gin.Context) {
	players, err := ac.repo.ListPlayers()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch players")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"players": players})
}

// @Summary      Player detail
// @Description  Includes school details and the player's direct registrations.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Player ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/players/{id} [get]
func (ac *AdminController) GetPlayer(c *gin.Context) {
	u, ok := ac.userByParam(c)
	if !ok {
		return
	}
	if u.Role != user.RolePlayer {
		responses.NotFound(c, "Player")
		return
	}

	school, err := ac.repo.GetSchoolDetail(u.ID)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", u.ID).Msg("school detail fetch failed")
	}
	regs, err := ac.registrations.ListVisibleToPlayer(u.ID, nil)
	if err != nil {
		regs = nil
	}

	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"player":        u,
		"school":        school,
		"registrations": regs,
	})
}

// @Summary      Dashboard statistics
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/dashboard [get]
func (ac *AdminController) Dashboard(c *gin.Context) {
	stats, err := ac.repo.Stats()
	if err != nil {
		responses.InternalServerError(c, "Failed to compute dashboard stats")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"stats": stats})
}

// @Summary      Approve a player account
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Player ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/players/{id}/approve [put]
func (ac *AdminController) ApprovePlayer(c *gin.Context) {
	ac.setVerification(c, user.RolePlayer, user.VerificationVerified,
		"Account Verified", "Your account has been verified. You can now register for events.", notification.SeveritySuccess)
}

func (ac *AdminController) RejectPlayer(c *gin.Context) {
	ac.setVerification(c, user.RolePlayer, user.VerificationRejected,
		"Account Rejected", "Your account verification was rejected. Please contact support.", notification.SeverityError)
}

// ApproveAdmin and RejectAdmin are superadmin-only; routing enforces it.
func (ac *AdminController) ApproveAdmin(c *gin.Context) {
	ac.setVerification(c, user.RoleAdmin, user.VerificationVerified,
		"Admin Application Approved", "Your admin application has been approved. You can now log in.", notification.SeveritySuccess)
}

func (ac *AdminController) RejectAdmin(c *gin.Context) {
	ac.setVerification(c, user.RoleAdmin, user.VerificationRejected,
		"Admin Application Rejected", "Your admin application has been rejected.", notification.SeverityError)
}

func (ac *AdminController) setVerification(c *gin.Context, wantRole user.Role, v user.Verification, title, message, severity string) {
	u, ok := ac.userByParam(c)
	if !ok {
		return
	}
	if u.Role != wantRole {
		responses.NotFound(c, string(wantRole))
		return
	}
	if err := ac.repo.UpdateVerification(u.ID, v); err != nil {
		responses.InternalServerError(c, "Failed to update verification")
		return
	}
	ac.notifier.Notify(u.ID, title, message, severity)
	responses.SendSuccess(c, http.StatusOK, "Verification updated", gin.H{
		"user_id":      u.ID,
		"verification": v,
	})
}

// @Summary      List admin accounts
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/admins [get]
func (ac *AdminController) ListAdmins(c *gin.Context) {
	admins, err := ac.repo.ListAdmins()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch admins")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"admins": admins})
}

// @Summary      Delete an admin account
// @Description  Superadmin only. Events owned by the deleted admin are
// @Description  reassigned to the caller before deletion.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Admin ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/admins/{id} [delete]
func (ac *AdminController) DeleteAdmin(c *gin.Context) {
	actingID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	target, ok := ac.userByParam(c)
	if !ok {
		return
	}
	if !target.Role.IsAdmin() {
		responses.NotFound(c, "Admin")
		return
	}
	if target.ID == actingID {
		responses.BadRequest(c, "You cannot delete your own account")
		return
	}
	if target.Role == user.RoleSuperadmin {
		responses.SendError(c, http.StatusForbidden, "Superadmin accounts cannot be deleted")
		return
	}

	if err := ac.events.ReassignOwnership(target.ID, actingID); err != nil {
		log.Error().Err(err).Uint("admin_id", target.ID).Msg("event reassignment failed")
		responses.InternalServerError(c, "Failed to reassign events")
		return
	}
	if err := ac.repo.DeleteUser(target.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete admin")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Admin deleted, events reassigned", nil)
}

func (ac *AdminController) userByParam(c *gin.Context) (*user.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid id")
		return nil, false
	}
	u, err := ac.repo.GetUserByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch user")
		return nil, false
	}
	if u == nil {
		responses.NotFound(c, "User")
		return nil, false
	}
	return u, true
}
