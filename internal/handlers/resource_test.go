package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/auth"
	dbpkg "github.com/groupebh/gbh-backend/internal/db"
	"github.com/groupebh/gbh-backend/internal/models"
	"github.com/groupebh/gbh-backend/internal/policy"
	"github.com/groupebh/gbh-backend/validation"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(dbpkg.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// adminRequest builds a request already carrying an authenticated role, the
// way the auth middleware would hand it over.
func adminRequest(t *testing.T, method, target, role string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r.WithContext(auth.WithUser(r.Context(), 1, role))
}

func newsMux(db *gorm.DB) *http.ServeMux {
	mux := http.NewServeMux()
	(&Resource[models.Article]{DB: db, Gate: policy.AdminGate(), Name: "news",
		Order: "published_at desc, id desc",
		Validate: func(a *models.Article, v validation.Violations) {
			validation.Required("title", a.Title, v)
		}}).Register(mux, "/api/admin/news")
	return mux
}

func decodeArticle(t *testing.T, rec *httptest.ResponseRecorder) models.Article {
	t.Helper()
	var a models.Article
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return a
}

func TestResourceCRUDRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	mux := newsMux(db)

	// Create, then confirm the list shows the stored record.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "POST", "/api/admin/news", models.RoleAdmin,
		map[string]any{"title": "Inauguration du nouveau site", "isActive": true}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeArticle(t, rec)
	if created.ID == 0 {
		t.Fatal("create: server must assign an id")
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "GET", "/api/admin/news", models.RoleAdmin, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var list []models.Article
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Inauguration du nouveau site" {
		t.Fatalf("list: expected the created article, got %+v", list)
	}

	// Update replaces the record; the response is the freshly re-read row.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "PUT", "/api/admin/news/1", models.RoleAdmin,
		map[string]any{"title": "Titre corrigé", "isActive": false}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeArticle(t, rec)
	if updated.Title != "Titre corrigé" || updated.IsActive {
		t.Fatalf("update: not reflected: %+v", updated)
	}
	if updated.CreatedAt.IsZero() {
		t.Fatal("update: CreatedAt must survive a full-record update")
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "DELETE", "/api/admin/news/1", models.RoleAdmin, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "GET", "/api/admin/news", models.RoleAdmin, nil))
	list = nil
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list after delete: expected empty, got %+v", list)
	}
}

func TestResourceValidation(t *testing.T) {
	db := setupTestDB(t)
	mux := newsMux(db)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "POST", "/api/admin/news", models.RoleAdmin,
		map[string]any{"title": ""}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "validation_failed" || body.Details["title"] == "" {
		t.Fatalf("expected a title violation, got %+v", body)
	}

	var count int64
	db.Model(&models.Article{}).Count(&count)
	if count != 0 {
		t.Fatal("rejected payload must not be stored")
	}
}

func TestResourceCreateIgnoresClientID(t *testing.T) {
	db := setupTestDB(t)
	mux := newsMux(db)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "POST", "/api/admin/news", models.RoleAdmin,
		map[string]any{"id": 99, "title": "Sans importance"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	created := decodeArticle(t, rec)
	if created.ID == 99 {
		t.Fatal("client-supplied id must be discarded")
	}
}

func TestResourceCreateInactiveDraft(t *testing.T) {
	db := setupTestDB(t)
	mux := newsMux(db)

	// An explicit isActive=false must survive the round trip: drafts are
	// created unpublished, never silently promoted.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "POST", "/api/admin/news", models.RoleAdmin,
		map[string]any{"title": "Brouillon", "isActive": false}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeArticle(t, rec)
	if created.IsActive {
		t.Fatal("submitted isActive=false but the response says active")
	}
	var stored models.Article
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if stored.IsActive {
		t.Fatal("submitted isActive=false but the store kept active")
	}

	// Omitting the flag on create defaults to published.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "POST", "/api/admin/news", models.RoleAdmin,
		map[string]any{"title": "Publié"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	if published := decodeArticle(t, rec); !published.IsActive {
		t.Fatal("absent isActive must default to active")
	}

	// Omitting the flag on update keeps the stored state.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "PUT", "/api/admin/news/1", models.RoleAdmin,
		map[string]any{"title": "Brouillon v2"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if updated := decodeArticle(t, rec); updated.IsActive {
		t.Fatal("update without isActive must not publish the draft")
	}
}

func TestResourceUpdateMissingRecord(t *testing.T) {
	db := setupTestDB(t)
	mux := newsMux(db)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "PUT", "/api/admin/news/42", models.RoleAdmin,
		map[string]any{"title": "Fantôme"}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "DELETE", "/api/admin/news/42", models.RoleAdmin, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete: expected 404, got %d", rec.Code)
	}
}

func TestResourceEditorForbiddenOnEntityDelete(t *testing.T) {
	db := setupTestDB(t)
	gate := policy.AdminGate()
	mux := http.NewServeMux()
	(&Resource[models.BusinessEntity]{DB: db, Gate: gate, Name: "entity"}).
		Register(mux, "/api/admin/entities")

	e := models.BusinessEntity{Code: "RBF", FullName: "Résidences BF", IsActive: true}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "DELETE", "/api/admin/entities/1", models.RoleEditor, nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("editor delete: expected 403, got %d", rec.Code)
	}

	// The same editor may still update content.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "PUT", "/api/admin/entities/1", models.RoleEditor,
		map[string]any{"code": "RBF", "fullName": "Résidences BF", "description": "mise à jour"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("editor update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestResourceDuplicateEntityCode(t *testing.T) {
	db := setupTestDB(t)
	gate := policy.AdminGate()
	mux := http.NewServeMux()
	(&Resource[models.BusinessEntity]{DB: db, Gate: gate, Name: "entity"}).
		Register(mux, "/api/admin/entities")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "POST", "/api/admin/entities", models.RoleAdmin,
		map[string]any{"code": "RIC", "fullName": "Immobilier & Construction"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "POST", "/api/admin/entities", models.RoleAdmin,
		map[string]any{"code": "RIC", "fullName": "Doublon"}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create: expected 409, got %d", rec.Code)
	}
}
