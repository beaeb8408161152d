package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/groupebh/gbh-backend/internal/models"
)

func publicMux(t *testing.T) (*http.ServeMux, *PublicHandler) {
	t.Helper()
	db := setupTestDB(t)
	h := NewPublicHandler(db)
	mux := http.NewServeMux()
	h.Register(mux)
	return mux, h
}

func getJSON(t *testing.T, mux *http.ServeMux, target string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	if out != nil && rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", target, err)
		}
	}
	return rec.Code
}

func TestPublicEntitiesActiveOnly(t *testing.T) {
	mux, h := publicMux(t)
	for _, e := range []models.BusinessEntity{
		{Code: "RBF", FullName: "Résidences BF", PageSlug: "rbf", DisplayOrder: 2, IsActive: true},
		{Code: "RIC", FullName: "Immobilier & Construction", PageSlug: "ric", DisplayOrder: 1, IsActive: true},
		{Code: "OLD", FullName: "Ancienne filiale", PageSlug: "old", IsActive: false},
	} {
		if err := h.DB.Create(&e).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	var entities []models.BusinessEntity
	if code := getJSON(t, mux, "/api/entities", &entities); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 active entities, got %d", len(entities))
	}
	if entities[0].Code != "RIC" || entities[1].Code != "RBF" {
		t.Fatalf("entities not in display order: %+v", entities)
	}
}

func TestPublicGetEntityBySlugOrCode(t *testing.T) {
	mux, h := publicMux(t)
	if err := h.DB.Create(&models.BusinessEntity{Code: "REV'I", FullName: "REV'I", PageSlug: "revi", IsActive: true}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	var got models.BusinessEntity
	if code := getJSON(t, mux, "/api/entities/revi", &got); code != http.StatusOK {
		t.Fatalf("by slug: expected 200, got %d", code)
	}
	if got.Code != "REV'I" {
		t.Fatalf("unexpected entity: %+v", got)
	}
	if code := getJSON(t, mux, "/api/entities/inconnue", nil); code != http.StatusNotFound {
		t.Fatalf("unknown slug: expected 404, got %d", code)
	}
}

func TestPublicNewsLimitAndReadingTime(t *testing.T) {
	mux, h := publicMux(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		at := base.AddDate(0, 0, i)
		a := models.Article{Title: "Article", Body: "quelques mots seulement", PublishedAt: &at, IsActive: true}
		if err := h.DB.Create(&a).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	var items []struct {
		models.Article
		ReadMinutes int `json:"readMinutes"`
	}
	if code := getJSON(t, mux, "/api/news?limit=3", &items); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(items))
	}
	// Most recent first, and a short body still reads as one minute.
	if !items[0].PublishedAt.After(*items[1].PublishedAt) {
		t.Fatal("news must be ordered most recent first")
	}
	if items[0].ReadMinutes != 1 {
		t.Fatalf("expected 1 minute reading time, got %d", items[0].ReadMinutes)
	}
}

func TestPublicCategoryEntityScoping(t *testing.T) {
	mux, h := publicMux(t)
	e := models.BusinessEntity{Code: "RBF", FullName: "RBF", PageSlug: "rbf", IsActive: true}
	if err := h.DB.Create(&e).Error; err != nil {
		t.Fatalf("seed entity: %v", err)
	}
	other := models.BusinessEntity{Code: "RIC", FullName: "RIC", PageSlug: "ric", IsActive: true}
	if err := h.DB.Create(&other).Error; err != nil {
		t.Fatalf("seed entity: %v", err)
	}
	for _, c := range []models.Category{
		{Kind: models.CategoryKindProduct, Name: "Global"},
		{Kind: models.CategoryKindProduct, Name: "Engins", EntityID: &e.ID},
		{Kind: models.CategoryKindProduct, Name: "Autre filiale", EntityID: &other.ID},
		{Kind: models.CategoryKindService, Name: "Mauvais kind", EntityID: &e.ID},
	} {
		cat := c
		if err := h.DB.Create(&cat).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	var cats []models.Category
	if code := getJSON(t, mux, "/api/product-categories/entity/1", &cats); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(cats) != 2 {
		t.Fatalf("expected global + own category, got %+v", cats)
	}
	for _, c := range cats {
		if c.EntityID != nil && *c.EntityID != e.ID {
			t.Fatalf("category of another entity leaked: %+v", c)
		}
	}
}

func TestPublicSectionEndpoint(t *testing.T) {
	mux, h := publicMux(t)
	e := models.BusinessEntity{Code: "RBF", FullName: "RBF", PageSlug: "rbf", ColorPrimary: "#C74634", IsActive: true}
	if err := h.DB.Create(&e).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// No content yet: the section omits itself.
	if code := getJSON(t, mux, "/api/sections/services/rbf", nil); code != http.StatusNoContent {
		t.Fatalf("empty section: expected 204, got %d", code)
	}

	s := models.Service{EntityID: &e.ID, Name: "Gardiennage", IsActive: true}
	if err := h.DB.Create(&s).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	var section struct {
		Kind   string `json:"kind"`
		Color  string `json:"color"`
		Groups []struct {
			Cards []struct {
				Name string `json:"name"`
			} `json:"cards"`
		} `json:"groups"`
	}
	if code := getJSON(t, mux, "/api/sections/services/rbf", &section); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if section.Color != "#C74634" || len(section.Groups) != 1 || section.Groups[0].Cards[0].Name != "Gardiennage" {
		t.Fatalf("unexpected section: %+v", section)
	}

	if code := getJSON(t, mux, "/api/sections/nope/rbf", nil); code != http.StatusNotFound {
		t.Fatalf("unknown kind: expected 404, got %d", code)
	}
}
