package player

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/registration"
	"github.com/merasports/hub/internal/team"
	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/responses"
	"github.com/merasports/hub/pkg/token"
	"github.com/merasports/hub/utils"
)

// RegistrationSource is the slice of the registration store the player
// dashboard and account deletion need.
type RegistrationSource interface {
	ListVisibleToPlayer(playerID uint, teamIDs []uint) ([]registration.EventRegistration, error)
	GetTransactionByID(id uint) (*registration.Transaction, error)
	DeleteByPlayer(playerID uint) error
}

// TeamSource resolves team rows for dashboard merging and removes
// captained teams on account deletion.
type TeamSource interface {
	GetTeamByID(id uint) (*team.Team, error)
	DeleteTeamsByCaptain(captainID uint) error
}

type PlayerController struct {
	repo          PlayerRepository
	registrations RegistrationSource
	teams         TeamSource
	resolver      *team.Resolver
	events        registration.EventSource
	issuer        *token.Issuer
	blobs         blob.Store
}

func NewPlayerController(
	repo PlayerRepository,
	registrations RegistrationSource,
	teams TeamSource,
	resolver *team.Resolver,
	events registration.EventSource,
	issuer *token.Issuer,
	blobs blob.Store,
) *PlayerController {
	return &PlayerController{
		repo:          repo,
		registrations: registrations,
		teams:         teams,
		resolver:      resolver,
		events:        events,
		issuer:        issuer,
		blobs:         blobs,
	}
}

// @Summary      Player dashboard
// @Description  Profile, school, family and the registration visibility union.
// @Tags         Players
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /players/dashboard [get]
func (pc *PlayerController) Dashboard(c *gin.Context) {
	u, ok := pc.currentUser(c)
	if !ok {
		return
	}

	school, err := pc.repo.GetSchoolDetail(u.ID)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", u.ID).Msg("school detail fetch failed")
	}
	family, err := pc.repo.ListFamily(u.ID)
	if err != nil {
		family = nil
	}

	teamIDs, err := pc.resolver.VisibleTeamIDs(u.ID, u.Mobile, u.PlayerID())
	if err != nil {
		log.Warn().Err(err).Uint("user_id", u.ID).Msg("team visibility resolution failed")
		teamIDs = nil
	}
	regs, err := pc.registrations.ListVisibleToPlayer(u.ID, teamIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch registrations")
		return
	}

	views := make([]RegistrationView, 0, len(regs))
	for _, reg := range regs {
		view := RegistrationView{EventRegistration: reg}
		if e, err := pc.events.GetEventByID(reg.EventID); err == nil && e != nil {
			view.EventName = e.Name
		}
		if reg.TeamID != nil {
			if t, err := pc.teams.GetTeamByID(*reg.TeamID); err == nil {
				view.Team = t
			}
		}
		if reg.TransactionID != 0 {
			if txn, err := pc.registrations.GetTransactionByID(reg.TransactionID); err == nil {
				view.Transaction = txn
			}
		}
		views = append(views, view)
	}

	responses.SendSuccess(c, http.StatusOK, "", DashboardView{
		Profile:       u,
		School:        school,
		Family:        family,
		Registrations: views,
	})
}

// @Summary      Update profile
// @Description  Changing email or mobile requires a step-up verification
// @Description  token in the X-Verification-Token header.
// @Tags         Players
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile body UpdateProfileRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse
// @Router       /players/profile [put]
func (pc *PlayerController) UpdateProfile(c *gin.Context) {
	u, ok := pc.currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	emailChanging := req.Email != nil && !strings.EqualFold(*req.Email, u.Email)
	mobileChanging := req.Mobile != nil && *req.Mobile != u.Mobile

	if emailChanging || mobileChanging {
		if err := middleware.VerifyStepUp(c, pc.issuer, u.ID); err != nil {
			responses.SendAppError(c, err)
			return
		}
	}

	if emailChanging {
		if other, err := pc.repo.FindByEmail(*req.Email); err != nil {
			responses.InternalServerError(c, "Failed to check email")
			return
		} else if other != nil && other.ID != u.ID {
			responses.SendError(c, http.StatusConflict, "This email is already in use")
			return
		}
		u.Email = strings.ToLower(*req.Email)
	}
	if mobileChanging {
		if other, err := pc.repo.FindByMobile(*req.Mobile); err != nil {
			responses.InternalServerError(c, "Failed to check mobile")
			return
		} else if other != nil && other.ID != u.ID {
			responses.SendError(c, http.StatusConflict, "This mobile number is already in use")
			return
		}
		u.Mobile = *req.Mobile
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.FirstName != nil || req.LastName != nil {
		u.Name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if req.Apartment != nil {
		u.Apartment = *req.Apartment
	}
	if req.Street != nil {
		u.Street = *req.Street
	}
	if req.City != nil {
		u.City = *req.City
	}
	if req.State != nil {
		u.State = *req.State
	}
	if req.Pincode != nil {
		u.Pincode = *req.Pincode
	}
	if req.Country != nil {
		u.Country = *req.Country
	}
	if req.Photo != nil && *req.Photo != "" {
		if url, err := blob.PutDataURL(pc.blobs, *req.Photo, "player-photos"); err == nil && url != "" {
			u.PhotoURL = url
		} else if err != nil {
			log.Warn().Err(err).Msg("player photo upload failed")
		}
	}

	if err := pc.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}

	if req.School != nil && req.School.Name != "" {
		detail := &user.SchoolDetail{
			UserID:  u.ID,
			Name:    req.School.Name,
			Address: req.School.Address,
			City:    req.School.City,
			Pincode: req.School.Pincode,
		}
		if err := pc.repo.SaveSchoolDetail(detail); err != nil {
			log.Warn().Err(err).Uint("user_id", u.ID).Msg("school detail save failed")
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Profile updated", gin.H{"user": u})
}

// @Summary      Change password
// @Description  Always requires a step-up verification token.
// @Tags         Players
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Current and new password"
// @Success      200 {object} responses.SuccessResponse
// @Router       /players/change-password [put]
func (pc *PlayerController) ChangePassword(c *gin.Context) {
	u, ok := pc.currentUser(c)
	if !ok {
		return
	}

	if err := middleware.VerifyStepUp(c, pc.issuer, u.ID); err != nil {
		responses.SendAppError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	if !utils.CheckPassword(u.Password, req.CurrentPassword) {
		responses.SendError(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to secure credentials")
		return
	}
	u.Password = hashed
	if err := pc.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to change password")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password changed", nil)
}

// CheckConflict reports whether an email or mobile is already taken by
// another account. Used by the profile form before submitting changes.
func (pc *PlayerController) CheckConflict(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CheckConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	conflicts := gin.H{}
	if req.Email != "" {
		if other, err := pc.repo.FindByEmail(req.Email); err == nil && other != nil && other.ID != userID {
			conflicts["email"] = true
		}
	}
	if req.Mobile != "" {
		if other, err := pc.repo.FindByMobile(req.Mobile); err == nil && other != nil && other.ID != userID {
			conflicts["mobile"] = true
		}
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"conflicts": conflicts})
}

// CheckPassword confirms the caller's current password before the client
// starts a sensitive flow.
func (pc *PlayerController) CheckPassword(c *gin.Context) {
	u, ok := pc.currentUser(c)
	if !ok {
		return
	}
	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"valid": utils.CheckPassword(u.Password, req.Password),
	})
}

// --- Family members ---

func (pc *PlayerController) ListFamily(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	family, err := pc.repo.ListFamily(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch family members")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"family": family})
}

func (pc *PlayerController) AddFamilyMember(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req FamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	m := &user.FamilyMember{
		UserID:   userID,
		Name:     req.Name,
		Relation: req.Relation,
		Age:      req.Age,
		Gender:   req.Gender,
	}
	if err := pc.repo.CreateFamilyMember(m); err != nil {
		responses.InternalServerError(c, "Failed to add family member")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Family member added", gin.H{"member": m})
}

func (pc *PlayerController) UpdateFamilyMember(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid family member id")
		return
	}
	m, err := pc.repo.GetFamilyMember(userID, uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch family member")
		return
	}
	if m == nil {
		responses.NotFound(c, "Family member")
		return
	}

	var req FamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	m.Name = req.Name
	m.Relation = req.Relation
	m.Age = req.Age
	m.Gender = req.Gender
	if err := pc.repo.UpdateFamilyMember(m); err != nil {
		responses.InternalServerError(c, "Failed to update family member")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Family member updated", gin.H{"member": m})
}

func (pc *PlayerController) DeleteFamilyMember(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid family member id")
		return
	}
	if err := pc.repo.DeleteFamilyMember(userID, uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete family member")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Family member removed", nil)
}

// @Summary      Delete own account
// @Description  Cascades school details, family, registrations with their
// @Description  transactions, and captained teams before the user row.
// @Tags         Players
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /players/account [delete]
func (pc *PlayerController) DeleteAccount(c *gin.Context) {
	u, ok := pc.currentUser(c)
	if !ok {
		return
	}

	if err := pc.registrations.DeleteByPlayer(u.ID); err != nil {
		log.Error().Err(err).Uint("user_id", u.ID).Msg("registration cascade failed")
		responses.InternalServerError(c, "Failed to delete registrations")
		return
	}
	if err := pc.teams.DeleteTeamsByCaptain(u.ID); err != nil {
		log.Error().Err(err).Uint("user_id", u.ID).Msg("team cascade failed")
		responses.InternalServerError(c, "Failed to delete teams")
		return
	}
	if err := pc.repo.DeleteSchoolDetail(u.ID); err != nil {
		log.Warn().Err(err).Uint("user_id", u.ID).Msg("school detail cascade failed")
	}
	if err := pc.repo.DeleteFamily(u.ID); err != nil {
		log.Warn().Err(err).Uint("user_id", u.ID).Msg("family cascade failed")
	}
	if err := pc.repo.DeleteUser(u.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete account")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Account deleted", nil)
}

func (pc *PlayerController) currentUser(c *gin.Context) (*user.User, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	u, err := pc.repo.GetUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch profile")
		return nil, false
	}
	if u == nil {
		responses.NotFound(c, "User")
		return nil, false
	}
	return u, true
}
