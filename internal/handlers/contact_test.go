package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/groupebh/gbh-backend/internal/models"
	"github.com/groupebh/gbh-backend/internal/policy"
)

func TestContactSubmit(t *testing.T) {
	db := setupTestDB(t)
	h := NewContactHandler(db, policy.AdminGate())
	mux := http.NewServeMux()
	h.RegisterPublic(mux)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(
		`{"fullName":"Awa Diallo","email":"awa@example.com","message":"Bonjour, je souhaite un devis."}`))
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var msg models.ContactMessage
	if err := db.First(&msg).Error; err != nil {
		t.Fatalf("stored message: %v", err)
	}
	if msg.FullName != "Awa Diallo" || msg.IsRead {
		t.Fatalf("unexpected stored message: %+v", msg)
	}
}

func TestContactSubmitRejectsBadEmail(t *testing.T) {
	db := setupTestDB(t)
	h := NewContactHandler(db, policy.AdminGate())
	mux := http.NewServeMux()
	h.RegisterPublic(mux)

	for _, payload := range []string{
		`{"fullName":"X","email":"pas-un-email","message":"..."}`,
		`{"fullName":"","email":"a@b.com","message":"..."}`,
		`{"fullName":"X","email":"a@b.com","message":""}`,
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/contact", strings.NewReader(payload)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, rec.Code)
		}
	}
	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	if count != 0 {
		t.Fatal("rejected submissions must not be stored")
	}
}

func TestContactToggleRead(t *testing.T) {
	db := setupTestDB(t)
	h := NewContactHandler(db, policy.AdminGate())
	mux := http.NewServeMux()
	h.RegisterAdmin(mux)

	msg := models.ContactMessage{FullName: "Moussa", Email: "m@example.com", Message: "Rappel"}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Empty body toggles.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "PUT", "/api/admin/messages/1", models.RoleAdmin, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", rec.Code)
	}
	var got models.ContactMessage
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.IsRead {
		t.Fatal("first toggle must mark the message read")
	}

	// Pinned value wins over the flip.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "PUT", "/api/admin/messages/1", models.RoleAdmin,
		map[string]any{"isRead": true}))
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.IsRead {
		t.Fatal("pinned isRead=true must stick")
	}
}

func TestContactEditorCannotDelete(t *testing.T) {
	db := setupTestDB(t)
	h := NewContactHandler(db, policy.AdminGate())
	mux := http.NewServeMux()
	h.RegisterAdmin(mux)

	msg := models.ContactMessage{FullName: "Fatou", Email: "f@example.com", Message: "Question"}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "DELETE", "/api/admin/messages/1", models.RoleEditor, nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("editor delete: expected 403, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, adminRequest(t, "DELETE", "/api/admin/messages/1", models.RoleAdmin, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete: expected 200, got %d", rec.Code)
	}
}
