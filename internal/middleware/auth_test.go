package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/token"
)

func testRouter(issuer *token.Issuer, roles ...user.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireRole(issuer, roles...), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func request(r *gin.Engine, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoleSeparation(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	issuer := &token.Issuer{Secret: "s", Clock: clock}

	playerToken, _ := issuer.Issue(1, string(user.RolePlayer), token.PurposeSession, time.Hour)
	adminToken, _ := issuer.Issue(2, string(user.RoleAdmin), token.PurposeSession, time.Hour)

	t.Run("player token rejected by admin gate", func(t *testing.T) {
		r := testRouter(issuer, user.RoleAdmin, user.RoleSuperadmin)
		if w := request(r, playerToken); w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("admin token rejected by player gate", func(t *testing.T) {
		r := testRouter(issuer, user.RolePlayer)
		if w := request(r, adminToken); w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("matching role passes", func(t *testing.T) {
		r := testRouter(issuer, user.RolePlayer)
		if w := request(r, playerToken); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestRequireRoleExpired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	issuer := &token.Issuer{Secret: "s", Clock: clock}

	tok, _ := issuer.Issue(1, string(user.RolePlayer), token.PurposeSession, time.Minute)
	clock.Advance(2 * time.Minute)

	r := testRouter(issuer, user.RolePlayer)
	w := request(r, tok)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "token_expired") {
		t.Errorf("body %q missing expired code", body)
	}
}

func TestRequireRoleRejectsStepUpToken(t *testing.T) {
	issuer := token.NewIssuer("s")
	stepUp, _ := issuer.Issue(1, string(user.RolePlayer), token.PurposeVerification, time.Minute)

	r := testRouter(issuer, user.RolePlayer)
	if w := request(r, stepUp); w.Code != http.StatusUnauthorized {
		t.Errorf("step-up token accepted as session: status = %d, want 401", w.Code)
	}
}

func TestRequireRoleMissingHeader(t *testing.T) {
	issuer := token.NewIssuer("s")
	r := testRouter(issuer, user.RolePlayer)
	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
