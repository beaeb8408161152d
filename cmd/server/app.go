package main

import (
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/internal/middleware"
	"github.com/groupebh/gbh-backend/internal/models"
	"github.com/groupebh/gbh-backend/internal/sections"
	"github.com/groupebh/gbh-backend/internal/server"
	"github.com/groupebh/gbh-backend/view"
)

func init() {
	// Inject the language resolver so the view package stays decoupled from
	// the middleware package while still reflecting visitor preferences.
	view.SetLangResolver(middleware.LangFrom)
}

// NewApp bundles the rendered marketing pages, static assets, uploaded files
// and the REST API into one handler.
func NewApp(db *gorm.DB, uploadDir string) http.Handler {
	api := server.New(db, uploadDir)
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	builder := sections.NewBuilder(db)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.LangFrom(r)
		data := map[string]any{}
		var entities []models.BusinessEntity
		if err := db.WithContext(r.Context()).
			Where("is_active = ?", true).
			Order("display_order asc").
			Find(&entities).Error; err == nil {
			data["Entities"] = entities
		}
		var stats []models.Statistic
		if err := db.WithContext(r.Context()).
			Where("is_active = ?", true).
			Order("display_order asc").
			Find(&stats).Error; err == nil {
			data["Statistics"] = stats
		}
		var news []models.Article
		if err := db.WithContext(r.Context()).
			Where("is_active = ?", true).
			Order("published_at desc").Limit(3).
			Find(&news).Error; err == nil {
			data["News"] = news
		}
		data["Lang"] = lang
		if err := view.Render(w, r, "index.html", data); err != nil {
			log.Printf("render index: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("GET /entreprises/{slug}", func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		lang := middleware.LangFrom(r)
		entity, err := sections.Resolve(r.Context(), db, slug)
		if err != nil {
			log.Printf("resolve %q: %v", slug, err)
		}
		if entity == nil {
			http.NotFound(w, r)
			return
		}
		// Each section resolves on its own; a failed or empty one simply
		// drops out of the page without touching its siblings.
		data := map[string]any{
			"Entity":   entity,
			"Lang":     lang,
			"Services": builder.Build(r.Context(), sections.KindServices, slug, sections.Config{OnEmpty: sections.OmitWhenEmpty, Lang: lang}),
			"Products": builder.Build(r.Context(), sections.KindProducts, slug, sections.Config{OnEmpty: sections.OmitWhenEmpty, Lang: lang}),
			"Projects": builder.Build(r.Context(), sections.KindProjects, slug, sections.Config{
				Limit: 6, ShowCTA: true, CTALink: "/entreprises/" + slug + "/realisations",
				OnEmpty: sections.OmitWhenEmpty, Lang: lang,
			}),
		}
		if err := view.Render(w, r, "entity.html", data); err != nil {
			log.Printf("render entity %q: %v", slug, err)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	mux.Handle("/", api)
	// Prefs runs here so the page handlers see the language; the API handler
	// carries its own copy of the chain and tolerates the repeat.
	return middleware.Prefs(mux)
}
