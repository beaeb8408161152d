package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/auth"
	"github.com/groupebh/gbh-backend/httpx"
	"github.com/groupebh/gbh-backend/internal/handlers"
	"github.com/groupebh/gbh-backend/internal/middleware"
	"github.com/groupebh/gbh-backend/internal/models"
	"github.com/groupebh/gbh-backend/internal/policy"
	"github.com/groupebh/gbh-backend/validation"
)

// New constructs the API http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, uploadDir string) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth double-checks that a session or token still maps to a real user.
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.AdminUser{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public content API + contact form
	gate := policy.AdminGate()
	handlers.NewPublicHandler(db).Register(mux)
	contact := handlers.NewContactHandler(db, gate)
	contact.RegisterPublic(mux)

	// Admin login stays outside the auth wrapper.
	handlers.NewAuthHandler(db).Register(mux)

	// Everything else under /api/admin/ requires an authenticated user.
	adminMux := http.NewServeMux()
	handlers.NewStatsHandler(db).Register(adminMux)
	handlers.NewUploadHandler(uploadDir).Register(adminMux)
	contact.RegisterAdmin(adminMux)
	registerAdminResources(adminMux, db, gate)
	mux.Handle("/api/admin/", auth.RequireAuth(adminMux))

	return middleware.Prefs(middleware.Recover(middleware.Metrics(auth.Middleware(mux))))
}

func registerAdminResources(mux *http.ServeMux, db *gorm.DB, gate *policy.Gate[string]) {
	(&handlers.Resource[models.BusinessEntity]{DB: db, Gate: gate, Name: "entity",
		Validate: func(e *models.BusinessEntity, v validation.Violations) {
			validation.Required("code", e.Code, v)
			validation.Required("fullName", e.FullName, v)
		}}).Register(mux, "/api/admin/entities")

	(&handlers.Resource[models.Category]{DB: db, Gate: gate, Name: "category",
		Validate: func(c *models.Category, v validation.Violations) {
			validation.Required("kind", c.Kind, v)
			validation.Required("name", c.Name, v)
		}}).Register(mux, "/api/admin/categories")

	(&handlers.Resource[models.Product]{DB: db, Gate: gate, Name: "product",
		Validate: func(p *models.Product, v validation.Violations) {
			validation.Required("name", p.Name, v)
		}}).Register(mux, "/api/admin/products")

	(&handlers.Resource[models.Service]{DB: db, Gate: gate, Name: "service",
		Validate: func(s *models.Service, v validation.Violations) {
			validation.Required("name", s.Name, v)
		}}).Register(mux, "/api/admin/services")

	(&handlers.Resource[models.Project]{DB: db, Gate: gate, Name: "project",
		Validate: func(p *models.Project, v validation.Violations) {
			validation.Required("title", p.Title, v)
		}}).Register(mux, "/api/admin/projects")

	(&handlers.Resource[models.Article]{DB: db, Gate: gate, Name: "news", Order: "published_at desc, id desc",
		Validate: func(a *models.Article, v validation.Violations) {
			validation.Required("title", a.Title, v)
		}}).Register(mux, "/api/admin/news")

	(&handlers.Resource[models.PressRelease]{DB: db, Gate: gate, Name: "press-release", Order: "published_at desc, id desc",
		Validate: func(p *models.PressRelease, v validation.Violations) {
			validation.Required("title", p.Title, v)
		}}).Register(mux, "/api/admin/press-releases")

	(&handlers.Resource[models.JobOffer]{DB: db, Gate: gate, Name: "job",
		Validate: func(j *models.JobOffer, v validation.Violations) {
			validation.Required("title", j.Title, v)
		}}).Register(mux, "/api/admin/jobs")

	(&handlers.Resource[models.FaqItem]{DB: db, Gate: gate, Name: "faq",
		Validate: func(f *models.FaqItem, v validation.Violations) {
			validation.Required("question", f.Question, v)
			validation.Required("answer", f.Answer, v)
		}}).Register(mux, "/api/admin/faq")

	(&handlers.Resource[models.Partner]{DB: db, Gate: gate, Name: "partner",
		Validate: func(p *models.Partner, v validation.Violations) {
			validation.Required("name", p.Name, v)
		}}).Register(mux, "/api/admin/partners")

	(&handlers.Resource[models.Testimonial]{DB: db, Gate: gate, Name: "testimonial",
		Validate: func(tm *models.Testimonial, v validation.Violations) {
			validation.Required("authorName", tm.AuthorName, v)
			validation.Required("quote", tm.Quote, v)
		}}).Register(mux, "/api/admin/testimonials")

	(&handlers.Resource[models.Statistic]{DB: db, Gate: gate, Name: "statistic",
		Validate: func(s *models.Statistic, v validation.Violations) {
			validation.Required("label", s.Label, v)
		}}).Register(mux, "/api/admin/statistics")

	(&handlers.Resource[models.Milestone]{DB: db, Gate: gate, Name: "timeline",
		Validate: func(m *models.Milestone, v validation.Violations) {
			validation.Required("title", m.Title, v)
			if m.Year <= 0 {
				v["year"] = "required"
			}
		}}).Register(mux, "/api/admin/timeline")

	(&handlers.Resource[models.Value]{DB: db, Gate: gate, Name: "value",
		Validate: func(val *models.Value, v validation.Violations) {
			validation.Required("title", val.Title, v)
		}}).Register(mux, "/api/admin/values")

	(&handlers.Resource[models.SocialLink]{DB: db, Gate: gate, Name: "social",
		Validate: func(s *models.SocialLink, v validation.Violations) {
			validation.Required("platform", s.Platform, v)
			validation.Required("url", s.URL, v)
		}}).Register(mux, "/api/admin/social")

	(&handlers.Resource[models.TeamMember]{DB: db, Gate: gate, Name: "team",
		Validate: func(m *models.TeamMember, v validation.Violations) {
			validation.Required("fullName", m.FullName, v)
		}}).Register(mux, "/api/admin/team")
}
