package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/registration"
	"github.com/merasports/hub/internal/user"
)

type fakeAdminRepo struct {
	users   map[uint]*user.User
	deleted []uint
}

func (f *fakeAdminRepo) ListPlayers() ([]user.User, error) { return nil, nil }
func (f *fakeAdminRepo) ListAdmins() ([]user.User, error)  { return nil, nil }

func (f *fakeAdminRepo) GetUserByID(id uint) (*user.User, error) { return f.users[id], nil }

func (f *fakeAdminRepo) GetSchoolDetail(userID uint) (*user.SchoolDetail, error) { return nil, nil }

func (f *fakeAdminRepo) UpdateVerification(userID uint, v user.Verification) error {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	u.Verification = v
	return nil
}

func (f *fakeAdminRepo) DeleteUser(userID uint) error {
	f.deleted = append(f.deleted, userID)
	delete(f.users, userID)
	return nil
}

func (f *fakeAdminRepo) Stats() (*DashboardStats, error) { return &DashboardStats{}, nil }

type fakeReassigner struct {
	from, to uint
	calls    int
}

func (f *fakeReassigner) ReassignOwnership(fromAdminID, toAdminID uint) error {
	f.from, f.to = fromAdminID, toAdminID
	f.calls++
	return nil
}

type fakeRegSource struct{}

func (fakeRegSource) ListVisibleToPlayer(playerID uint, teamIDs []uint) ([]registration.EventRegistration, error) {
	return nil, nil
}

type capturedNotification struct {
	userID   uint
	title    string
	severity string
}

type captureNotifier struct {
	sent []capturedNotification
}

func (c *captureNotifier) Notify(userID uint, title, message, severity string) {
	c.sent = append(c.sent, capturedNotification{userID, title, severity})
}

func addUser(repo *fakeAdminRepo, id uint, role user.Role, v user.Verification) *user.User {
	u := &user.User{Role: role, Verification: v}
	u.ID = id
	repo.users[id] = u
	return u
}

func adminContext(w *httptest.ResponseRecorder, actingID uint, targetID string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/", nil)
	c.Set(middleware.AuthUserIDKey, actingID)
	c.Set(middleware.AuthRoleKey, user.RoleSuperadmin)
	c.Params = gin.Params{{Key: "id", Value: targetID}}
	return c
}

func TestApprovePlayerNotifies(t *testing.T) {
	repo := &fakeAdminRepo{users: map[uint]*user.User{}}
	addUser(repo, 5, user.RolePlayer, user.VerificationPending)
	notifier := &captureNotifier{}
	ctrl := NewAdminController(repo, &fakeReassigner{}, fakeRegSource{}, notifier)

	w := httptest.NewRecorder()
	ctrl.ApprovePlayer(adminContext(w, 1, "5"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if repo.users[5].Verification != user.VerificationVerified {
		t.Error("player verification not updated")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].userID != 5 || notifier.sent[0].severity != "success" {
		t.Errorf("notifications = %+v", notifier.sent)
	}
}

func TestApprovePlayerRejectsAdminTarget(t *testing.T) {
	repo := &fakeAdminRepo{users: map[uint]*user.User{}}
	addUser(repo, 5, user.RoleAdmin, user.VerificationPending)
	ctrl := NewAdminController(repo, &fakeReassigner{}, fakeRegSource{}, &captureNotifier{})

	w := httptest.NewRecorder()
	ctrl.ApprovePlayer(adminContext(w, 1, "5"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for non-player target", w.Code)
	}
}

func TestDeleteAdminReassignsEvents(t *testing.T) {
	repo := &fakeAdminRepo{users: map[uint]*user.User{}}
	addUser(repo, 1, user.RoleSuperadmin, user.VerificationVerified)
	addUser(repo, 7, user.RoleAdmin, user.VerificationVerified)
	reassigner := &fakeReassigner{}
	ctrl := NewAdminController(repo, reassigner, fakeRegSource{}, &captureNotifier{})

	w := httptest.NewRecorder()
	ctrl.DeleteAdmin(adminContext(w, 1, "7"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if reassigner.calls != 1 || reassigner.from != 7 || reassigner.to != 1 {
		t.Errorf("reassignment = %+v, want events moved from 7 to 1", reassigner)
	}
	if _, ok := repo.users[7]; ok {
		t.Error("admin row not deleted")
	}
}

func TestDeleteAdminGuards(t *testing.T) {
	tests := []struct {
		name       string
		targetID   string
		wantStatus int
	}{
		{"cannot delete self", "1", http.StatusBadRequest},
		{"cannot delete superadmin", "2", http.StatusForbidden},
		{"cannot delete player via admin surface", "5", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAdminRepo{users: map[uint]*user.User{}}
			addUser(repo, 1, user.RoleSuperadmin, user.VerificationVerified)
			addUser(repo, 2, user.RoleSuperadmin, user.VerificationVerified)
			addUser(repo, 5, user.RolePlayer, user.VerificationVerified)
			reassigner := &fakeReassigner{}
			ctrl := NewAdminController(repo, reassigner, fakeRegSource{}, &captureNotifier{})

			w := httptest.NewRecorder()
			ctrl.DeleteAdmin(adminContext(w, 1, tt.targetID))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if reassigner.calls != 0 {
				t.Error("guarded delete still reassigned events")
			}
		})
	}
}
