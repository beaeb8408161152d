package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)
	resp := w.Result()
	cookies := resp.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie got %d", len(cookies))
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	uid, ok := ParseSession(r)
	if !ok || uid != 42 {
		t.Fatalf("expected uid 42, got %d ok=%v", uid, ok)
	}
}

func TestTamperedSessionRejected(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)
	c := w.Result().Cookies()[0]
	c.Value = strings.Replace(c.Value, "42.", "43.", 1)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	if _, ok := ParseSession(r); ok {
		t.Fatalf("tampered session must not parse")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := IssueToken(7, "marie", "editor")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, ok := ParseToken(tok)
	if !ok {
		t.Fatalf("token did not parse")
	}
	if claims.UserID() != 7 || claims.Username != "marie" || claims.Role != "editor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseBearer(t *testing.T) {
	tok, _ := IssueToken(3, "admin", "admin")
	r := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	claims, ok := ParseBearer(r)
	if !ok || claims.Role != "admin" {
		t.Fatalf("bearer parse failed")
	}
	r2 := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	r2.Header.Set("Authorization", "Basic abc")
	if _, ok := ParseBearer(r2); ok {
		t.Fatalf("non-bearer header must be rejected")
	}
}

func TestRequireAuthJSON(t *testing.T) {
	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	r := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	tok, _ := IssueToken(1, "admin", "admin")
	r2 := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	r2.Header.Set("Authorization", "Bearer "+tok)
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
}
