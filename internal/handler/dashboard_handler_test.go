package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundbase/docportal/internal/auth"
	"github.com/fundbase/docportal/internal/events"
	"github.com/fundbase/docportal/internal/models"
	"github.com/fundbase/docportal/internal/service"
)

type dashFixture struct {
	handler *DashboardHandler
	users   *memUserStore
	docs    *memDocStore
	cfgID   string
}

func newDashFixture(t *testing.T) *dashFixture {
	t.Helper()
	users := newMemUserStore()
	docs := newMemDocStore()
	bus := events.NewDispatcher()
	configSvc := service.NewConfigService(newMemConfigStore(), docs, users, bus)
	docSvc := service.NewDocumentService(docs, configSvc, newMemBlobStore(), bus)

	cfg, err := configSvc.Create("Checklist", "", "admin@test", []models.DocumentCategory{
		{
			ID:   "juridico",
			Name: "Jurídico",
			Documents: []models.DocumentItem{
				{ID: "contrato-social", Name: "Contrato Social", Required: true},
				{ID: "acordo-socios", Name: "Acordo de Sócios", Required: false},
			},
		},
	})
	if err != nil {
		t.Fatalf("create config: %v", err)
	}

	return &dashFixture{
		handler: NewDashboardHandler(users, configSvc, docSvc),
		users:   users,
		docs:    docs,
		cfgID:   cfg.ID,
	}
}

func (f *dashFixture) addStartup(t *testing.T) (string, *auth.Claims) {
	t.Helper()
	id, err := f.users.Create(&models.User{
		Email:            "acme@test",
		Name:             "Acme",
		Role:             models.RoleStartup,
		Status:           models.StartupStatusPending,
		DocumentConfigID: f.cfgID,
	})
	if err != nil {
		t.Fatalf("create startup: %v", err)
	}
	return id, &auth.Claims{UserID: id, Email: "acme@test", Role: models.RoleStartup}
}

func TestSubmitRejectsIncompleteChecklist(t *testing.T) {
	f := newDashFixture(t)
	id, claims := f.addStartup(t)

	rec := httptest.NewRecorder()
	f.handler.Submit(rec, authedRequest(http.MethodPost, "/api/v1/submit", claims, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Missing) != 1 || body.Missing[0] != "Jurídico: Contrato Social" {
		t.Errorf("missing = %v, want the one required item", body.Missing)
	}

	user, _ := f.users.FindByID(id)
	if user.Status != models.StartupStatusPending {
		t.Errorf("status = %s, a rejected submit must not change it", user.Status)
	}
}

func TestSubmitMovesCompleteStartupToReview(t *testing.T) {
	f := newDashFixture(t)
	id, claims := f.addStartup(t)
	if _, err := f.docs.Create(&models.Document{
		StartupID: id,
		Category:  "juridico",
		Name:      "contrato-social",
		Status:    models.DocStatusUploaded,
	}); err != nil {
		t.Fatalf("create document: %v", err)
	}

	rec := httptest.NewRecorder()
	f.handler.Submit(rec, authedRequest(http.MethodPost, "/api/v1/submit", claims, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	user, _ := f.users.FindByID(id)
	if user.Status != models.StartupStatusUnderReview {
		t.Errorf("status = %s, want under_review", user.Status)
	}
}

func TestSubmitIgnoresExtrasAndOptionalItems(t *testing.T) {
	f := newDashFixture(t)
	id, claims := f.addStartup(t)

	// An optional item and an extra upload do not satisfy the required one.
	f.docs.Create(&models.Document{StartupID: id, Category: "juridico", Name: "acordo-socios"})
	f.docs.Create(&models.Document{StartupID: id, Category: "outros", Name: "pitch", IsExtra: true})

	rec := httptest.NewRecorder()
	f.handler.Submit(rec, authedRequest(http.MethodPost, "/api/v1/submit", claims, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDashboardReportsCanSubmit(t *testing.T) {
	f := newDashFixture(t)
	id, claims := f.addStartup(t)

	rec := httptest.NewRecorder()
	f.handler.Dashboard(rec, authedRequest(http.MethodGet, "/api/v1/dashboard", claims, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		CanSubmit bool `json:"canSubmit"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.CanSubmit {
		t.Error("canSubmit = true with the required item missing")
	}

	f.docs.Create(&models.Document{StartupID: id, Category: "juridico", Name: "contrato-social"})
	rec = httptest.NewRecorder()
	f.handler.Dashboard(rec, authedRequest(http.MethodGet, "/api/v1/dashboard", claims, nil))
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.CanSubmit {
		t.Error("canSubmit = false with every required item uploaded")
	}
}
