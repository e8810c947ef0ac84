package event

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/user"
)

type fakeEventRepo struct {
	events     map[uint]*Event
	news       map[uint]*News
	brackets   map[uint]*Bracket
	nextID     uint
	reassigned [][2]uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:   make(map[uint]*Event),
		news:     make(map[uint]*News),
		brackets: make(map[uint]*Bracket),
	}
}

func (f *fakeEventRepo) CreateEvent(e *Event) error {
	f.nextID++
	e.ID = f.nextID
	f.events[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetEventByID(id uint) (*Event, error) { return f.events[id], nil }

func (f *fakeEventRepo) ListEvents(createdBy, adminID uint) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if createdBy != 0 && e.CreatedBy != createdBy {
			continue
		}
		if adminID != 0 && e.CreatedBy != adminID && (e.AssignedTo == nil || *e.AssignedTo != adminID) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateEvent(e *Event) error { return nil }

func (f *fakeEventRepo) DeleteEvent(id uint) error {
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) ReassignOwnership(fromAdminID, toAdminID uint) error {
	f.reassigned = append(f.reassigned, [2]uint{fromAdminID, toAdminID})
	return nil
}

func (f *fakeEventRepo) CreateNews(n *News) error {
	f.nextID++
	n.ID = f.nextID
	f.news[n.ID] = n
	return nil
}

func (f *fakeEventRepo) ListNewsByEvent(eventID uint) ([]News, error) {
	var out []News
	for _, n := range f.news {
		if n.EventID == eventID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetNewsByID(id uint) (*News, error) { return f.news[id], nil }
func (f *fakeEventRepo) UpdateNews(n *News) error           { return nil }

func (f *fakeEventRepo) DeleteNews(id uint) error {
	delete(f.news, id)
	return nil
}

func (f *fakeEventRepo) UpsertBracket(b *Bracket) error {
	for _, existing := range f.brackets {
		if existing.EventID == b.EventID && existing.Category == b.Category && existing.RoundName == b.RoundName {
			existing.DrawType = b.DrawType
			existing.DrawData = b.DrawData
			b.ID = existing.ID
			return nil
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.brackets[b.ID] = b
	return nil
}

func (f *fakeEventRepo) ListBracketsByEvent(eventID uint) ([]Bracket, error) {
	var out []Bracket
	for _, b := range f.brackets {
		if b.EventID == eventID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) DeleteBracket(id uint) error {
	delete(f.brackets, id)
	return nil
}

type fakeCleaner struct {
	cleaned []uint
}

func (f *fakeCleaner) DeleteByEvent(eventID uint) error {
	f.cleaned = append(f.cleaned, eventID)
	return nil
}

type nullBlobStore struct{}

func (nullBlobStore) Put(data []byte, contentType, hint string) (string, error) {
	return "/public/" + hint + "/x", nil
}

func eventContext(w *httptest.ResponseRecorder, body any) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	raw, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.AuthUserIDKey, uint(1))
	c.Set(middleware.AuthRoleKey, user.RoleAdmin)
	return c
}

func TestCreateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	ctrl := NewEventController(repo, nullBlobStore{}, &fakeCleaner{})

	w := httptest.NewRecorder()
	ctrl.Create(eventContext(w, CreateEventRequest{
		Name: "Summer Open", Sport: "badminton",
		StartDate: "2025-07-01", EndDate: "2025-07-03",
		Categories: []string{"U14", "U17"},
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	e := repo.events[1]
	if e == nil {
		t.Fatal("event not persisted")
	}
	if e.CreatedBy != 1 || e.Status != "upcoming" {
		t.Errorf("event = %+v", e)
	}
}

func TestCreateEventBadDate(t *testing.T) {
	repo := newFakeEventRepo()
	ctrl := NewEventController(repo, nullBlobStore{}, &fakeCleaner{})

	w := httptest.NewRecorder()
	ctrl.Create(eventContext(w, CreateEventRequest{
		Name: "Summer Open", Sport: "badminton",
		StartDate: "07/01/2025",
		Categories: []string{"U14"},
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(repo.events) != 0 {
		t.Error("invalid event persisted")
	}
}

func TestCreateEventUploadsSponsorAssets(t *testing.T) {
	repo := newFakeEventRepo()
	ctrl := NewEventController(repo, nullBlobStore{}, &fakeCleaner{})

	w := httptest.NewRecorder()
	ctrl.Create(eventContext(w, CreateEventRequest{
		Name: "Summer Open", Sport: "badminton", StartDate: "2025-07-01",
		Sponsors: []SponsorInput{
			{
				Name: "Acme Rackets",
				Logo: "data:image/png;base64,aGVsbG8=",
				MediaItems: []SponsorMedia{
					{Type: "image", URL: "data:image/png;base64,aGVsbG8="},
				},
			},
			{Name: "Hosted Co", Logo: "https://cdn.example.com/logo.png"},
		},
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	e := repo.events[1]
	if e == nil || len(e.Sponsors) != 2 {
		t.Fatalf("sponsors not persisted: %+v", e)
	}
	if e.Sponsors[0].LogoURL != "/public/sponsors/x" {
		t.Errorf("logo not uploaded: %q", e.Sponsors[0].LogoURL)
	}
	if len(e.Sponsors[0].MediaItems) != 1 || e.Sponsors[0].MediaItems[0].URL != "/public/sponsor-media/x" {
		t.Errorf("media not uploaded: %+v", e.Sponsors[0].MediaItems)
	}
	// Already-hosted URLs pass through untouched.
	if e.Sponsors[1].LogoURL != "https://cdn.example.com/logo.png" {
		t.Errorf("hosted logo rewritten: %q", e.Sponsors[1].LogoURL)
	}
}

func TestSponsorsEndpointDefaultsEmpty(t *testing.T) {
	repo := newFakeEventRepo()
	repo.CreateEvent(&Event{Name: "Summer Open"})
	ctrl := NewEventController(repo, nullBlobStore{}, &fakeCleaner{})

	w := httptest.NewRecorder()
	c := eventContext(w, nil)
	c.Request = httptest.NewRequest(http.MethodGet, "/events/1/sponsors", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ctrl.Sponsors(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"sponsors":[]`) {
		t.Errorf("want empty sponsor list, got %s", w.Body.String())
	}
}

func TestDeleteEventCascadesRegistrations(t *testing.T) {
	repo := newFakeEventRepo()
	repo.CreateEvent(&Event{Name: "Summer Open"})
	cleaner := &fakeCleaner{}
	ctrl := NewEventController(repo, nullBlobStore{}, cleaner)

	w := httptest.NewRecorder()
	c := eventContext(w, nil)
	c.Request = httptest.NewRequest(http.MethodDelete, "/events/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ctrl.Delete(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(cleaner.cleaned) != 1 || cleaner.cleaned[0] != 1 {
		t.Error("registrations not cascaded before event delete")
	}
	if len(repo.events) != 0 {
		t.Error("event not deleted")
	}
}

func TestSaveBracketUpserts(t *testing.T) {
	repo := newFakeEventRepo()
	ctrl := NewEventController(repo, nullBlobStore{}, &fakeCleaner{})

	first := BracketRequest{EventID: 1, Category: "U14", RoundName: "quarterfinal", DrawType: "knockout"}
	w := httptest.NewRecorder()
	ctrl.SaveBracket(eventContext(w, first))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// Same event+category+round overwrites instead of duplicating.
	second := first
	second.DrawType = "round-robin"
	w = httptest.NewRecorder()
	ctrl.SaveBracket(eventContext(w, second))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(repo.brackets) != 1 {
		t.Fatalf("brackets = %d, want 1 after upsert", len(repo.brackets))
	}
	for _, b := range repo.brackets {
		if b.DrawType != "round-robin" {
			t.Errorf("DrawType = %q, want overwritten value", b.DrawType)
		}
	}
}

func TestListNewsRequiresEventID(t *testing.T) {
	repo := newFakeEventRepo()
	ctrl := NewEventController(repo, nullBlobStore{}, &fakeCleaner{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/news", nil)
	ctrl.ListNews(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Event ID") {
		t.Errorf("body = %s", w.Body.String())
	}
}
