package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/httpx"
	"github.com/groupebh/gbh-backend/internal/models"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct{ DB *gorm.DB }

func NewStatsHandler(db *gorm.DB) *StatsHandler { return &StatsHandler{DB: db} }

func (h *StatsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/stats", h.stats)
}

func (h *StatsHandler) stats(w http.ResponseWriter, r *http.Request) {
	db := h.DB.WithContext(r.Context())
	counts := map[string]int64{}
	count := func(key string, model any) {
		var n int64
		if err := db.Model(model).Count(&n).Error; err == nil {
			counts[key] = n
		}
	}
	count("entities", &models.BusinessEntity{})
	count("products", &models.Product{})
	count("services", &models.Service{})
	count("projects", &models.Project{})
	count("news", &models.Article{})
	count("jobs", &models.JobOffer{})
	count("team", &models.TeamMember{})
	count("partners", &models.Partner{})
	count("testimonials", &models.Testimonial{})
	count("messages", &models.ContactMessage{})

	var unread int64
	if err := db.Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&unread).Error; err == nil {
		counts["unreadMessages"] = unread
	}
	httpx.JSON(w, http.StatusOK, counts)
}
