package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeSettingsRepo struct {
	stored *PlatformSettings
	getErr error
	saves  int
}

func (f *fakeSettingsRepo) Get() (*PlatformSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored, nil
}

func (f *fakeSettingsRepo) Save(s *PlatformSettings) error {
	s.ID = settingsRowID
	f.stored = s
	f.saves++
	return nil
}

type nullBlobStore struct{}

func (nullBlobStore) Put(data []byte, contentType, hint string) (string, error) {
	return "/public/" + hint + "/x", nil
}

func settingsContext(w *httptest.ResponseRecorder, body any) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	raw, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestPublicSettingsFallBackToDefaults(t *testing.T) {
	for name, repo := range map[string]*fakeSettingsRepo{
		"no row":       {},
		"lookup error": {getErr: errors.New("relation does not exist")},
	} {
		w := httptest.NewRecorder()
		ctrl := NewSettingsController(repo, nullBlobStore{})
		ctrl.Public(settingsContext(w, nil))

		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", name, w.Code)
		}
		if !strings.Contains(w.Body.String(), defaultPlatformName) {
			t.Errorf("%s: default platform name missing: %s", name, w.Body.String())
		}
	}
}

func TestPublicSettingsOmitSupportPhone(t *testing.T) {
	repo := &fakeSettingsRepo{stored: &PlatformSettings{
		ID: settingsRowID, PlatformName: "Acme Sports",
		SupportEmail: "help@acme.example", SupportPhone: "9000000001",
	}}
	ctrl := NewSettingsController(repo, nullBlobStore{})

	w := httptest.NewRecorder()
	ctrl.Public(settingsContext(w, nil))

	body := w.Body.String()
	if !strings.Contains(body, "Acme Sports") || !strings.Contains(body, "help@acme.example") {
		t.Errorf("public fields missing: %s", body)
	}
	if strings.Contains(body, "9000000001") {
		t.Errorf("support phone leaked on the public surface: %s", body)
	}
}

func TestUpdateSettingsCreatesSingletonRow(t *testing.T) {
	repo := &fakeSettingsRepo{}
	ctrl := NewSettingsController(repo, nullBlobStore{})

	w := httptest.NewRecorder()
	ctrl.Update(settingsContext(w, UpdateSettingsRequest{
		PlatformName: "Acme Sports",
		Logo:         "data:image/png;base64,aGVsbG8=",
		SupportEmail: "help@acme.example",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	if repo.stored == nil || repo.stored.ID != settingsRowID {
		t.Fatalf("singleton row not written: %+v", repo.stored)
	}
	if repo.stored.PlatformName != "Acme Sports" {
		t.Errorf("PlatformName = %q", repo.stored.PlatformName)
	}
	if repo.stored.LogoURL != "/public/branding/x" {
		t.Errorf("logo not uploaded: %q", repo.stored.LogoURL)
	}

	// A second update overwrites the same row.
	w = httptest.NewRecorder()
	ctrl.Update(settingsContext(w, UpdateSettingsRequest{PlatformName: "Acme Sports v2"}))
	if w.Code != http.StatusOK {
		t.Fatalf("second update status = %d", w.Code)
	}
	if repo.stored.PlatformName != "Acme Sports v2" || repo.saves != 2 {
		t.Errorf("settings = %+v, saves = %d", repo.stored, repo.saves)
	}
	// The stored logo survives an update without a new upload.
	if repo.stored.LogoURL != "/public/branding/x" {
		t.Errorf("logo lost on update: %q", repo.stored.LogoURL)
	}
}
