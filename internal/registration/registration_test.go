package registration

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/merasports/hub/internal/event"
	"github.com/merasports/hub/internal/mailer"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/team"
	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/token"
)

type fakeRegistrationRepo struct {
	transactions  map[uint]*Transaction
	registrations map[uint]*EventRegistration
	nextTxnID     uint
	nextRegID     uint

	failRegistrationCreate bool
	bulkCalls              int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		transactions:  make(map[uint]*Transaction),
		registrations: make(map[uint]*EventRegistration),
	}
}

func (f *fakeRegistrationRepo) CreateTransaction(t *Transaction) error {
	f.nextTxnID++
	t.ID = f.nextTxnID
	f.transactions[t.ID] = t
	return nil
}

func (f *fakeRegistrationRepo) DeleteTransaction(id uint) error {
	delete(f.transactions, id)
	return nil
}

func (f *fakeRegistrationRepo) GetTransactionByID(id uint) (*Transaction, error) {
	return f.transactions[id], nil
}

func (f *fakeRegistrationRepo) CreateRegistration(r *EventRegistration) error {
	if f.failRegistrationCreate {
		return errors.New("insert failed")
	}
	f.nextRegID++
	r.ID = f.nextRegID
	f.registrations[r.ID] = r
	return nil
}

func (f *fakeRegistrationRepo) GetRegistrationByID(id uint) (*EventRegistration, error) {
	return f.registrations[id], nil
}

func (f *fakeRegistrationRepo) ListByEvent(eventID uint) ([]EventRegistration, error) {
	var out []EventRegistration
	for _, r := range f.registrations {
		if r.EventID == eventID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) ListAll() ([]EventRegistration, error) {
	var out []EventRegistration
	for _, r := range f.registrations {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRegistrationRepo) ListVisibleToPlayer(playerID uint, teamIDs []uint) ([]EventRegistration, error) {
	var out []EventRegistration
	for _, r := range f.registrations {
		if r.PlayerID == playerID {
			out = append(out, *r)
			continue
		}
		if r.TeamID != nil {
			for _, id := range teamIDs {
				if *r.TeamID == id {
					out = append(out, *r)
					break
				}
			}
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) UpdateStatus(id uint, status Status) error {
	r, ok := f.registrations[id]
	if !ok {
		return errors.New("not found")
	}
	r.Status = status
	return nil
}

func (f *fakeRegistrationRepo) BulkUpdateStatus(ids []uint, status Status) ([]EventRegistration, error) {
	f.bulkCalls++
	var out []EventRegistration
	for _, id := range ids {
		if r, ok := f.registrations[id]; ok {
			r.Status = status
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) DeleteByEvent(eventID uint) error {
	for id, r := range f.registrations {
		if r.EventID == eventID {
			delete(f.registrations, id)
		}
	}
	return nil
}

func (f *fakeRegistrationRepo) DeleteByPlayer(playerID uint) error {
	for id, r := range f.registrations {
		if r.PlayerID == playerID {
			delete(f.registrations, id)
		}
	}
	return nil
}

type fakeEventSource struct {
	events map[uint]*event.Event
}

func (f *fakeEventSource) GetEventByID(id uint) (*event.Event, error) {
	return f.events[id], nil
}

type fakeUserSource struct {
	users map[uint]*user.User
}

func (f *fakeUserSource) GetUser(id uint) (*user.User, error) {
	return f.users[id], nil
}

type fakeTeamSource struct {
	teams []team.Team
}

func (f *fakeTeamSource) GetTeamsByCaptain(captainID uint) ([]team.Team, error) {
	var out []team.Team
	for _, t := range f.teams {
		if t.CaptainID == captainID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTeamSource) ListAll() ([]team.Team, error) { return f.teams, nil }

type fakeBlobStore struct{}

func (fakeBlobStore) Put(data []byte, contentType, hint string) (string, error) {
	return "/public/" + hint + "/fake.jpg", nil
}

type recordedNotification struct {
	userID   uint
	title    string
	message  string
	severity string
}

type fakeNotifier struct {
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(userID uint, title, message, severity string) {
	f.sent = append(f.sent, recordedNotification{userID, title, message, severity})
}

type fakeMailer struct{}

func (fakeMailer) SendRegistrationConfirmation(toEmail string, d mailer.RegistrationDetails) error {
	return nil
}

func testProofDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

type fixture struct {
	repo     *fakeRegistrationRepo
	notifier *fakeNotifier
	clock    *clockwork.FakeClock
	ctrl     *RegistrationController
}

func newFixture() *fixture {
	repo := newFakeRegistrationRepo()
	notifier := &fakeNotifier{}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	events := &fakeEventSource{events: map[uint]*event.Event{
		1: {Name: "Summer Open", Sport: "badminton"},
	}}
	events.events[1].ID = 1
	users := &fakeUserSource{users: map[uint]*user.User{}}
	u := &user.User{Role: user.RolePlayer, Name: "Asha", Email: "asha@example.com", Mobile: "9000000001"}
	u.ID = 10
	u.PlayerNumber = 100001
	users.users[10] = u

	resolver := team.NewResolver(&fakeTeamSource{})
	ctrl := NewRegistrationController(repo, events, users, resolver, fakeBlobStore{}, notifier, fakeMailer{}, clock)
	return &fixture{repo: repo, notifier: notifier, clock: clock, ctrl: ctrl}
}

func authedContext(w *httptest.ResponseRecorder, userID uint, body any) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	raw, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.AuthUserIDKey, userID)
	c.Set(middleware.AuthRoleKey, user.RolePlayer)
	return c
}

func TestSubmitManualPaymentCreatesPair(t *testing.T) {
	f := newFixture()

	w := httptest.NewRecorder()
	c := authedContext(w, 10, SubmitPaymentRequest{
		EventID:       1,
		Amount:        500,
		Categories:    []string{"U14"},
		TransactionID: "UPI-12345",
		Screenshot:    testProofDataURL(),
	})
	f.ctrl.SubmitManualPayment(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(f.repo.transactions) != 1 || len(f.repo.registrations) != 1 {
		t.Fatalf("want exactly one transaction and one registration, got %d/%d",
			len(f.repo.transactions), len(f.repo.registrations))
	}

	reg := f.repo.registrations[1]
	wantNo := fmt.Sprintf("REG-%d", f.clock.Now().UnixMilli())
	if reg.RegistrationNo != wantNo {
		t.Errorf("RegistrationNo = %q, want %q", reg.RegistrationNo, wantNo)
	}
	if reg.Status != StatusPendingVerification {
		t.Errorf("Status = %q, want pending_verification", reg.Status)
	}
	txn := f.repo.transactions[reg.TransactionID]
	if txn == nil {
		t.Fatal("registration does not reference the created transaction")
	}
	if !strings.HasPrefix(txn.OrderID, "MANUAL_") {
		t.Errorf("OrderID = %q, want MANUAL_ prefix", txn.OrderID)
	}
	if txn.ExternalRef != "UPI-12345" || txn.Amount != 500 {
		t.Errorf("transaction = %+v", txn)
	}
	if !strings.Contains(w.Body.String(), wantNo) {
		t.Errorf("response body missing registrationNo: %s", w.Body.String())
	}
}

func TestSubmitCompensatingDeleteOnRegistrationFailure(t *testing.T) {
	f := newFixture()
	f.repo.failRegistrationCreate = true

	w := httptest.NewRecorder()
	c := authedContext(w, 10, SubmitPaymentRequest{
		EventID:       1,
		Amount:        500,
		Categories:    []string{"U14"},
		TransactionID: "UPI-12345",
		Screenshot:    testProofDataURL(),
	})
	f.ctrl.SubmitManualPayment(c)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if len(f.repo.transactions) != 0 {
		t.Errorf("orphan transaction left behind after failed registration insert")
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name string
		req  SubmitPaymentRequest
	}{
		{"missing event", SubmitPaymentRequest{Amount: 500, Categories: []string{"U14"}, TransactionID: "x", Screenshot: testProofDataURL()}},
		{"zero amount", SubmitPaymentRequest{EventID: 1, Categories: []string{"U14"}, TransactionID: "x", Screenshot: testProofDataURL()}},
		{"no categories", SubmitPaymentRequest{EventID: 1, Amount: 500, TransactionID: "x", Screenshot: testProofDataURL()}},
		{"no screenshot", SubmitPaymentRequest{EventID: 1, Amount: 500, Categories: []string{"U14"}, TransactionID: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			w := httptest.NewRecorder()
			f.ctrl.SubmitManualPayment(authedContext(w, 10, tt.req))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if len(f.repo.transactions) != 0 || len(f.repo.registrations) != 0 {
				t.Error("invalid submission mutated the store")
			}
		})
	}
}

func TestAdminBarredFromSubmission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := token.NewIssuer("test-secret")

	router := gin.New()
	group := router.Group("/registrations")
	group.Use(middleware.RequirePlayer(issuer))
	f := newFixture()
	group.POST("/manual-payment", f.ctrl.SubmitManualPayment)

	adminToken, err := issuer.Issue(99, string(user.RoleAdmin), token.PurposeSession, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	body, _ := json.Marshal(SubmitPaymentRequest{
		EventID: 1, Amount: 500, Categories: []string{"U14"},
		TransactionID: "UPI-1", Screenshot: testProofDataURL(),
	})
	req := httptest.NewRequest(http.MethodPost, "/registrations/manual-payment", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("admin submission status = %d, want 403", w.Code)
	}
	if len(f.repo.registrations) != 0 {
		t.Error("admin submission reached the store")
	}
}

func TestUpdateStatusNotifiesPlayer(t *testing.T) {
	f := newFixture()
	reg := &EventRegistration{EventID: 1, PlayerID: 10, RegistrationNo: "REG-777", Status: StatusPendingVerification}
	f.repo.CreateRegistration(reg)

	w := httptest.NewRecorder()
	c := authedContext(w, 99, UpdateStatusRequest{Status: StatusVerified})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	f.ctrl.UpdateStatus(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if reg.Status != StatusVerified {
		t.Errorf("registration status = %q, want verified", reg.Status)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(f.notifier.sent))
	}
	n := f.notifier.sent[0]
	if n.userID != 10 || n.title != "Registration Verified" || n.severity != "success" {
		t.Errorf("notification = %+v", n)
	}
	if !strings.Contains(n.message, "REG-777") || !strings.Contains(n.message, "Summer Open") {
		t.Errorf("message should reference event and registration number: %q", n.message)
	}
}

func TestUpdateStatusRejectsPending(t *testing.T) {
	f := newFixture()
	reg := &EventRegistration{EventID: 1, PlayerID: 10, RegistrationNo: "REG-1", Status: StatusVerified}
	f.repo.CreateRegistration(reg)

	w := httptest.NewRecorder()
	c := authedContext(w, 99, UpdateStatusRequest{Status: StatusPendingVerification})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	f.ctrl.UpdateStatus(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if reg.Status != StatusVerified {
		t.Error("invalid target status mutated the registration")
	}
}

func TestBulkUpdateEmptyIDs(t *testing.T) {
	f := newFixture()

	w := httptest.NewRecorder()
	c := authedContext(w, 99, BulkUpdateRequest{RegistrationIDs: nil, Status: StatusVerified})
	f.ctrl.BulkUpdateStatus(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if f.repo.bulkCalls != 0 {
		t.Error("empty id list reached the store")
	}
}

func TestBulkUpdateNotifiesPerRow(t *testing.T) {
	f := newFixture()
	for i := 0; i < 3; i++ {
		eventID := uint(1)
		if i == 2 {
			eventID = 42 // unknown event, message falls back to a generic label
		}
		f.repo.CreateRegistration(&EventRegistration{
			EventID: eventID, PlayerID: uint(10 + i),
			RegistrationNo: fmt.Sprintf("REG-%d", i), Status: StatusPendingVerification,
		})
	}

	w := httptest.NewRecorder()
	c := authedContext(w, 99, BulkUpdateRequest{RegistrationIDs: []uint{1, 2, 3}, Status: StatusVerified})
	f.ctrl.BulkUpdateStatus(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	for id, reg := range f.repo.registrations {
		if reg.Status != StatusVerified {
			t.Errorf("registration %d status = %q, want verified", id, reg.Status)
		}
	}
	if len(f.notifier.sent) != 3 {
		t.Fatalf("notifications = %d, want one per registration", len(f.notifier.sent))
	}
	fallbackSeen := false
	for _, n := range f.notifier.sent {
		if strings.Contains(n.message, "the event") {
			fallbackSeen = true
		}
	}
	if !fallbackSeen {
		t.Error("unresolvable event did not fall back to generic label")
	}
}

func TestBulkUpdateOverwritesTerminalState(t *testing.T) {
	f := newFixture()
	f.repo.CreateRegistration(&EventRegistration{
		EventID: 1, PlayerID: 10, RegistrationNo: "REG-1", Status: StatusVerified,
	})

	w := httptest.NewRecorder()
	c := authedContext(w, 99, BulkUpdateRequest{RegistrationIDs: []uint{1}, Status: StatusRejected})
	f.ctrl.BulkUpdateStatus(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if f.repo.registrations[1].Status != StatusRejected {
		t.Error("terminal state was not overwritten")
	}
}

func TestMyRegistrationsUnionsTeamVisibility(t *testing.T) {
	f := newFixture()
	teamID := uint(5)
	// Direct registration by player 10.
	f.repo.CreateRegistration(&EventRegistration{EventID: 1, PlayerID: 10, RegistrationNo: "REG-a"})
	// Team registration submitted by another captain; player 10 is a member.
	f.repo.CreateRegistration(&EventRegistration{EventID: 1, PlayerID: 20, TeamID: &teamID, RegistrationNo: "REG-b"})
	// Unrelated registration.
	f.repo.CreateRegistration(&EventRegistration{EventID: 1, PlayerID: 30, RegistrationNo: "REG-c"})

	source := &fakeTeamSource{teams: []team.Team{{
		CaptainID: 20,
		Members:   team.MemberList{{Name: "Asha", Mobile: "9000000001"}},
	}}}
	source.teams[0].ID = teamID
	f.ctrl.resolver = team.NewResolver(source)

	w := httptest.NewRecorder()
	c := authedContext(w, 10, nil)
	c.Request = httptest.NewRequest(http.MethodGet, "/registrations/my", nil)
	f.ctrl.MyRegistrations(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "REG-a") || !strings.Contains(body, "REG-b") {
		t.Errorf("visibility union missing expected registrations: %s", body)
	}
	if strings.Contains(body, "REG-c") {
		t.Errorf("unrelated registration leaked into visibility: %s", body)
	}
}
