package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/apperr"
	"github.com/merasports/hub/pkg/responses"
	"github.com/merasports/hub/pkg/token"
)

const (
	AuthUserIDKey = "auth_user_id"
	AuthRoleKey   = "auth_role"

	// StepUpHeader carries the short-lived verification token required
	// before mutating email, mobile or password.
	StepUpHeader = "X-Verification-Token"
)

// RequireRole authenticates the bearer token and enforces a strict role
// allow-set. A player token never satisfies an admin check and vice
// versa; the two credential domains are separated by the role claim
// signed into the token, not by which secret happens to validate.
func RequireRole(issuer *token.Issuer, roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearer(c, issuer)
		if err != nil {
			responses.SendAppError(c, err)
			return
		}

		if claims.Purpose != token.PurposeSession {
			responses.SendAppError(c, apperr.Authentication(apperr.CodeTokenInvalid, "A session token is required"))
			return
		}

		role := user.Role(claims.Role)
		allowed := false
		for _, r := range roles {
			if role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			responses.SendAppError(c, apperr.Authorization("You do not have permission to access this resource"))
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthRoleKey, role)
		c.Next()
	}
}

// RequirePlayer is a convenience middleware for player-only access.
func RequirePlayer(issuer *token.Issuer) gin.HandlerFunc {
	return RequireRole(issuer, user.RolePlayer)
}

// RequireAdmin allows admin and superadmin sessions.
func RequireAdmin(issuer *token.Issuer) gin.HandlerFunc {
	return RequireRole(issuer, user.RoleAdmin, user.RoleSuperadmin)
}

// RequireSuperadmin allows superadmin sessions only.
func RequireSuperadmin(issuer *token.Issuer) gin.HandlerFunc {
	return RequireRole(issuer, user.RoleSuperadmin)
}

func parseBearer(c *gin.Context, issuer *token.Issuer) (*token.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperr.Authentication(apperr.CodeTokenInvalid, "Authorization header is required")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, apperr.Authentication(apperr.CodeTokenInvalid, "Invalid Authorization header format. Expected: Bearer <token>")
	}

	claims, err := issuer.Parse(parts[1])
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, apperr.Authentication(apperr.CodeTokenExpired, "Session expired. Please login again.")
		}
		return nil, apperr.Authentication(apperr.CodeTokenInvalid, "Invalid authentication token")
	}
	return claims, nil
}

// VerifyStepUp checks the X-Verification-Token header against the
// authenticated user. The long-lived session proves identity; this token
// proves a recent out-of-band challenge.
func VerifyStepUp(c *gin.Context, issuer *token.Issuer, userID uint) error {
	raw := c.GetHeader(StepUpHeader)
	if raw == "" {
		return apperr.AuthorizationCode(apperr.CodeStepUpNeeded, "Verification required for this change")
	}
	claims, err := issuer.Parse(raw)
	if err != nil {
		return apperr.AuthorizationCode(apperr.CodeStepUpNeeded, "Invalid or expired verification token")
	}
	if claims.Purpose != token.PurposeVerification || claims.UserID != userID {
		return apperr.AuthorizationCode(apperr.CodeStepUpNeeded, "Invalid or expired verification token")
	}
	return nil
}

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) (uint, error) {
	v, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	id, ok := v.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", v)
	}
	return id, nil
}

// GetRole extracts the authenticated user's role from the Gin context.
func GetRole(c *gin.Context) (user.Role, error) {
	v, exists := c.Get(AuthRoleKey)
	if !exists {
		return "", errors.New("role not found in context")
	}
	role, ok := v.(user.Role)
	if !ok {
		return "", fmt.Errorf("role has unexpected type: %T", v)
	}
	return role, nil
}

// AbortWithStatus is a small helper for handlers that resolved the
// context keys themselves and found them missing.
func AbortUnauthenticated(c *gin.Context) {
	responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
}
