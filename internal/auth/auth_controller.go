package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/config"
	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/apperr"
	"github.com/merasports/hub/pkg/responses"
	"github.com/merasports/hub/pkg/token"
	"github.com/merasports/hub/pkg/validator"
	"github.com/merasports/hub/utils"
)

const maxOTPAttempts = 5

type AuthController struct {
	repo   UserRepository
	issuer *token.Issuer
	cfg    *config.Config
	blobs  blob.Store
	clock  clockwork.Clock
}

func NewAuthController(repo UserRepository, issuer *token.Issuer, cfg *config.Config, blobs blob.Store, clock clockwork.Clock) *AuthController {
	return &AuthController{repo: repo, issuer: issuer, cfg: cfg, blobs: blobs, clock: clock}
}

func (ac *AuthController) playerSessionTTL() time.Duration {
	return time.Duration(ac.cfg.JWT.PlayerSessionDays) * 24 * time.Hour
}

func (ac *AuthController) adminSessionTTL() time.Duration {
	return time.Duration(ac.cfg.JWT.AdminSessionHours) * time.Hour
}

func (ac *AuthController) stepUpTTL() time.Duration {
	return time.Duration(ac.cfg.JWT.StepUpTokenMinutes) * time.Minute
}

// @Summary      Register a player account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        player body RegisterPlayerRequest true "Player details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      409 {object} responses.ErrorResponse
// @Router       /auth/register [post]
func (ac *AuthController) RegisterPlayer(c *gin.Context) {
	var req RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendAppError(c, apperr.ValidationFields("Invalid registration details", validator.ParseError(err)))
		return
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		responses.BadRequest(c, "Invalid dob, expected YYYY-MM-DD")
		return
	}

	if existing, err := ac.repo.GetUserByMobile(req.Mobile); err != nil {
		responses.InternalServerError(c, "Failed to check existing users")
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "An account with this mobile number already exists")
		return
	}
	if existing, err := ac.repo.GetUserByAadhaar(req.Aadhaar); err != nil {
		responses.InternalServerError(c, "Failed to check existing users")
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "An account with this Aadhaar number already exists")
		return
	}
	if existing, err := ac.repo.GetUserByEmail(req.Email); err != nil {
		responses.InternalServerError(c, "Failed to check existing users")
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "An account with this email already exists")
		return
	}

	// The default credential is the date of birth as DDMMYYYY; players are
	// told to change it after first login.
	hashed, err := utils.HashPassword(dob.Format("02012006"))
	if err != nil {
		responses.InternalServerError(c, "Failed to secure credentials")
		return
	}

	verification := user.VerificationPending
	if req.OTPSessionID != "" {
		otp, err := ac.repo.GetOTPBySession(req.OTPSessionID)
		if err == nil && otp != nil && otp.Verified && otp.Destination == req.Mobile {
			verification = user.VerificationVerified
		}
	}

	u := &user.User{
		Role:         user.RolePlayer,
		Verification: verification,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Name:         strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:        strings.ToLower(req.Email),
		Mobile:       req.Mobile,
		Aadhaar:      req.Aadhaar,
		Password:     hashed,
		DOB:          &dob,
		Age:          ageAt(dob, ac.clock.Now()),
		Apartment:    req.Apartment,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
	}

	// Photo upload is non-fatal; a missing photo never blocks registration.
	if url, err := blob.PutDataURL(ac.blobs, req.Photo, "player-photos"); err == nil {
		u.PhotoURL = url
	} else {
		log.Warn().Err(err).Msg("player photo upload failed")
	}

	if err := ac.repo.CreatePlayer(u); err != nil {
		log.Error().Err(err).Msg("player creation failed")
		responses.InternalServerError(c, "Failed to create account")
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
		if err := ac.repo.SaveSchoolDetail(detail); err != nil {
			log.Warn().Err(err).Uint("user_id", u.ID).Msg("school detail save failed")
		}
	}

	sessionToken, err := ac.issuer.Issue(u.ID, string(u.Role), token.PurposeSession, ac.playerSessionTTL())
	if err != nil {
		responses.InternalServerError(c, "Failed to issue session")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Registration successful", gin.H{
		"token":    sessionToken,
		"playerId": u.PlayerID(),
		"user":     u,
	})
}

// @Summary      Player login
// @Description  Identifier may be a player ID, mobile number, or aadhaar.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginPlayerRequest true "Credentials"
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) LoginPlayer(c *gin.Context) {
	var req LoginPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	u, err := ac.resolvePlayerIdentifier(req.Identifier)
	if err != nil {
		responses.InternalServerError(c, "Login failed")
		return
	}
	if u == nil {
		responses.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	// Admin credentials never satisfy the player surface, even when the
	// secret would validate.
	if u.Role != user.RolePlayer {
		responses.SendError(c, http.StatusForbidden, "This account cannot use player login")
		return
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		responses.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	sessionToken, err := ac.issuer.Issue(u.ID, string(u.Role), token.PurposeSession, ac.playerSessionTTL())
	if err != nil {
		responses.InternalServerError(c, "Failed to issue session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token": sessionToken,
		"user":  u,
	})
}

func (ac *AuthController) resolvePlayerIdentifier(identifier string) (*user.User, error) {
	id := strings.TrimSpace(identifier)
	upper := strings.ToUpper(id)
	if strings.HasPrefix(upper, "P") {
		if n, err := strconv.Atoi(upper[1:]); err == nil {
			return ac.repo.GetUserByPlayerNumber(n)
		}
	}
	if len(id) == 12 {
		if u, err := ac.repo.GetUserByAadhaar(id); err != nil || u != nil {
			return u, err
		}
	}
	return ac.repo.GetUserByMobile(id)
}

// @Summary      Admin login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginAdminRequest true "Credentials"
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /auth/admin/login [post]
func (ac *AuthController) LoginAdmin(c *gin.Context) {
	var req LoginAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	u, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Login failed")
		return
	}
	if u == nil || !u.Role.IsAdmin() {
		responses.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		responses.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Superadmins bypass the approval gate. Plain admins log in only once
	// verified; the two failure states carry distinguishable codes so the
	// client can render "pending approval" vs "rejected".
	if u.Role == user.RoleAdmin && u.Verification != user.VerificationVerified {
		if u.Verification == user.VerificationRejected {
			responses.SendAppError(c, apperr.AuthorizationCode(apperr.CodeAdminRejected, "Your admin application was rejected"))
			return
		}
		responses.SendAppError(c, apperr.AuthorizationCode(apperr.CodeAdminPending, "Your admin application is pending approval"))
		return
	}

	sessionToken, err := ac.issuer.Issue(u.ID, string(u.Role), token.PurposeSession, ac.adminSessionTTL())
	if err != nil {
		responses.InternalServerError(c, "Failed to issue session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token": sessionToken,
		"user":  u,
	})
}

// @Summary      Apply for an admin account
// @Description  The account stays pending until approved by a superadmin.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        admin body RegisterAdminRequest true "Admin details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      409 {object} responses.ErrorResponse
// @Router       /auth/admin/register [post]
func (ac *AuthController) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	if existing, err := ac.repo.GetUserByEmail(req.Email); err != nil {
		responses.InternalServerError(c, "Failed to check existing users")
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "An account with this email already exists")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to secure credentials")
		return
	}

	u := &user.User{
		Role:         user.RoleAdmin,
		Verification: user.VerificationPending,
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Mobile:       req.Mobile,
		Password:     hashed,
	}
	if err := ac.repo.CreateUser(u); err != nil {
		log.Error().Err(err).Msg("admin creation failed")
		responses.InternalServerError(c, "Failed to create account")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Application submitted. You can log in once a superadmin approves it.", gin.H{
		"user": u,
	})
}

// @Summary      Current principal
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch profile")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"user": u})
}

// @Summary      Send a one-time code
// @Description  Delivery (SMS/email provider) is external; this endpoint
// @Description  records the challenge and returns its session id.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body SendOTPRequest true "Destination and channel"
// @Success      200 {object} responses.SuccessResponse
// @Router       /auth/send-otp [post]
func (ac *AuthController) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	code, err := generateOTPCode()
	if err != nil {
		responses.InternalServerError(c, "Failed to generate code")
		return
	}

	otp := &OTP{
		SessionID:   uuid.NewString(),
		Destination: req.Destination,
		Channel:     req.Channel,
		Code:        code,
		ExpiresAt:   ac.clock.Now().Add(time.Duration(ac.cfg.OTP.ExpiryMinutes) * time.Minute),
	}
	if err := ac.repo.CreateOTP(otp); err != nil {
		responses.InternalServerError(c, "Failed to create challenge")
		return
	}

	if ac.cfg.App.Env != "production" {
		log.Info().Str("destination", req.Destination).Str("code", code).Msg("OTP issued")
	}

	responses.SendSuccess(c, http.StatusOK, "OTP sent", gin.H{"sessionId": otp.SessionID})
}

// @Summary      Verify a one-time code
// @Description  On success with an authenticated caller, also returns a
// @Description  short-lived step-up token for sensitive profile changes.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body VerifyOTPRequest true "Session id and code"
// @Success      200 {object} responses.SuccessResponse
// @Router       /auth/verify-otp [post]
func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	otp, err := ac.repo.GetOTPBySession(req.SessionID)
	if err != nil {
		responses.InternalServerError(c, "Verification failed")
		return
	}
	if otp == nil {
		responses.NotFound(c, "OTP session")
		return
	}
	if ac.clock.Now().After(otp.ExpiresAt) {
		responses.BadRequest(c, "Code expired, request a new one")
		return
	}
	if otp.Attempts >= maxOTPAttempts {
		responses.BadRequest(c, "Too many attempts, request a new code")
		return
	}
	if otp.Code != req.Code {
		otp.Attempts++
		if err := ac.repo.UpdateOTP(otp); err != nil {
			log.Warn().Err(err).Msg("OTP attempt count update failed")
		}
		responses.BadRequest(c, "Incorrect code")
		return
	}

	otp.Verified = true
	if err := ac.repo.UpdateOTP(otp); err != nil {
		responses.InternalServerError(c, "Verification failed")
		return
	}

	payload := gin.H{"verified": true, "sessionId": otp.SessionID}

	// An authenticated caller gets a step-up token proving recent
	// possession of the contact channel.
	if claims := ac.optionalSession(c); claims != nil {
		stepUp, err := ac.issuer.Issue(claims.UserID, claims.Role, token.PurposeVerification, ac.stepUpTTL())
		if err == nil {
			payload["verificationToken"] = stepUp
		}
	}

	responses.SendSuccess(c, http.StatusOK, "OTP verified", payload)
}

func (ac *AuthController) optionalSession(c *gin.Context) *token.Claims {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}
	claims, err := ac.issuer.Parse(parts[1])
	if err != nil || claims.Purpose != token.PurposeSession {
		return nil
	}
	return claims
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	return age
}
