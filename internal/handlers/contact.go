package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/auth"
	"github.com/groupebh/gbh-backend/httpx"
	"github.com/groupebh/gbh-backend/internal/models"
	"github.com/groupebh/gbh-backend/internal/policy"
	"github.com/groupebh/gbh-backend/validation"
)

// ContactHandler ingests public contact-form submissions and exposes the
// admin inbox (list, toggle read, delete).
type ContactHandler struct {
	DB   *gorm.DB
	Gate *policy.Gate[string]
}

func NewContactHandler(db *gorm.DB, g *policy.Gate[string]) *ContactHandler {
	return &ContactHandler{DB: db, Gate: g}
}

func (h *ContactHandler) RegisterPublic(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/contact", h.submit)
}

func (h *ContactHandler) RegisterAdmin(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/messages", h.list)
	mux.HandleFunc("PUT /api/admin/messages/{id}", h.toggleRead)
	mux.HandleFunc("DELETE /api/admin/messages/{id}", h.delete)
}

type contactInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("fullName", in.FullName, v)
	validation.Required("email", in.Email, v)
	validation.Email("email", in.Email, v)
	validation.Required("message", in.Message, v)
	validation.MaxLen("message", in.Message, 10000, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	msg := models.ContactMessage{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Subject:  in.Subject,
		Message:  in.Message,
	}
	if err := h.DB.WithContext(r.Context()).Create(&msg).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "message_save_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": msg.ID})
}

func (h *ContactHandler) authorize(w http.ResponseWriter, r *http.Request, action policy.Action) bool {
	role := auth.RoleFromContext(r.Context())
	if err := h.Gate.Authorize(r.Context(), role, action, "message", nil); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return false
	}
	return true
}

func (h *ContactHandler) list(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, policy.ActionList) {
		return
	}
	var msgs []models.ContactMessage
	if err := h.DB.WithContext(r.Context()).Order("created_at desc, id desc").Find(&msgs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "list_failed", nil)
		return
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	httpx.JSON(w, http.StatusOK, msgs)
}

// toggleRead flips IsRead unless the payload pins an explicit value.
func (h *ContactHandler) toggleRead(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, policy.ActionUpdate) {
		return
	}
	id := pathID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var msg models.ContactMessage
	if err := h.DB.WithContext(r.Context()).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	var body struct {
		IsRead *bool `json:"isRead"`
	}
	_ = httpx.DecodeJSON(r, &body) // empty body means plain toggle
	if body.IsRead != nil {
		msg.IsRead = *body.IsRead
	} else {
		msg.IsRead = !msg.IsRead
	}
	if err := h.DB.WithContext(r.Context()).Model(&msg).Update("is_read", msg.IsRead).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, msg)
}

func (h *ContactHandler) delete(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, policy.ActionDelete) {
		return
	}
	id := pathID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	result := h.DB.WithContext(r.Context()).Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	if result.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
