package handlers

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/auth"
	"github.com/groupebh/gbh-backend/httpx"
	"github.com/groupebh/gbh-backend/internal/models"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/login", h.login)
	mux.HandleFunc("POST /api/admin/logout", h.logout)
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// login verifies credentials and answers with a bearer token plus the user
// descriptor the admin panel persists. The session cookie is set as well so
// the rendered admin pages share the login.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_credentials", nil)
		return
	}
	var user models.AdminUser
	if err := h.DB.WithContext(r.Context()).Where("username = ?", in.Username).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	token, err := auth.IssueToken(user.ID, user.Username, user.Role)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "token_issue_failed", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  loginUser{Username: user.Username, Role: user.Role},
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
