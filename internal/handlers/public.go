package handlers

import (
	"log"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/httpx"
	"github.com/groupebh/gbh-backend/internal/models"
	"github.com/groupebh/gbh-backend/internal/sections"
)

// PublicHandler serves the read-only content API consumed by the marketing
// pages. Only active records leave this handler; failures degrade to empty
// lists (the pages hide empty sections rather than surfacing errors).
type PublicHandler struct {
	DB *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler { return &PublicHandler{DB: db} }

func (h *PublicHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/entities", h.listEntities)
	mux.HandleFunc("GET /api/entities/{slug}", h.getEntity)
	mux.HandleFunc("GET /api/products/entity/{entityId}", listByEntity[models.Product](h))
	mux.HandleFunc("GET /api/services/entity/{entityId}", listByEntity[models.Service](h))
	mux.HandleFunc("GET /api/projects/entity/{entityId}", listByEntity[models.Project](h))
	mux.HandleFunc("GET /api/testimonials/entity/{entityId}", listByEntity[models.Testimonial](h))
	mux.HandleFunc("GET /api/product-categories", h.listCategories(models.CategoryKindProduct))
	mux.HandleFunc("GET /api/product-categories/entity/{entityId}", h.listCategories(models.CategoryKindProduct))
	mux.HandleFunc("GET /api/service-categories", h.listCategories(models.CategoryKindService))
	mux.HandleFunc("GET /api/service-categories/entity/{entityId}", h.listCategories(models.CategoryKindService))
	mux.HandleFunc("GET /api/faq/categories", h.listCategories(models.CategoryKindFaq))
	mux.HandleFunc("GET /api/partners/categories", h.listCategories(models.CategoryKindPartner))
	mux.HandleFunc("GET /api/news/categories", h.listCategories(models.CategoryKindNews))
	mux.HandleFunc("GET /api/news", h.listNews)
	mux.HandleFunc("GET /api/jobs", listActive[models.JobOffer](h))
	mux.HandleFunc("GET /api/faq", listActive[models.FaqItem](h))
	mux.HandleFunc("GET /api/partners", listActive[models.Partner](h))
	mux.HandleFunc("GET /api/press-releases", listActive[models.PressRelease](h))
	mux.HandleFunc("GET /api/social", listActive[models.SocialLink](h))
	mux.HandleFunc("GET /api/statistics", listActive[models.Statistic](h))
	mux.HandleFunc("GET /api/team", listActive[models.TeamMember](h))
	mux.HandleFunc("GET /api/sections/{kind}/{slug}", h.getSection)
}

func (h *PublicHandler) listEntities(w http.ResponseWriter, r *http.Request) {
	var entities []models.BusinessEntity
	if err := h.DB.WithContext(r.Context()).
		Where("is_active = ?", true).
		Order("display_order asc, id asc").
		Find(&entities).Error; err != nil {
		log.Printf("public: list entities: %v", err)
		httpx.JSON(w, http.StatusOK, []models.BusinessEntity{})
		return
	}
	httpx.JSON(w, http.StatusOK, entities)
}

func (h *PublicHandler) getEntity(w http.ResponseWriter, r *http.Request) {
	entity, err := sections.Resolve(r.Context(), h.DB, r.PathValue("slug"))
	if err != nil {
		log.Printf("public: resolve entity: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "lookup_failed", nil)
		return
	}
	if entity == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, entity)
}

// listByEntity serves /api/{type}/entity/{entityId}: active records scoped
// to one entity, in display order.
func listByEntity[T any](h *PublicHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID, err := strconv.ParseUint(r.PathValue("entityId"), 10, 64)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
			return
		}
		var records []T
		if err := h.DB.WithContext(r.Context()).
			Where("entity_id = ? AND is_active = ?", uint(entityID), true).
			Order("display_order asc, id asc").
			Find(&records).Error; err != nil {
			log.Printf("public: list by entity: %v", err)
			records = nil
		}
		if records == nil {
			records = []T{}
		}
		httpx.JSON(w, http.StatusOK, records)
	}
}

// listActive serves a flat collection of active records in display order.
func listActive[T any](h *PublicHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var records []T
		if err := h.DB.WithContext(r.Context()).
			Where("is_active = ?", true).
			Order("display_order asc, id asc").
			Find(&records).Error; err != nil {
			log.Printf("public: list: %v", err)
			records = nil
		}
		if records == nil {
			records = []T{}
		}
		httpx.JSON(w, http.StatusOK, records)
	}
}

func (h *PublicHandler) listCategories(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := h.DB.WithContext(r.Context()).Where("kind = ?", kind)
		if raw := r.PathValue("entityId"); raw != "" {
			entityID, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
				return
			}
			q = q.Where("entity_id IS NULL OR entity_id = ?", uint(entityID))
		}
		var cats []models.Category
		if err := q.Order("display_order asc, id asc").Find(&cats).Error; err != nil {
			log.Printf("public: list categories: %v", err)
			cats = nil
		}
		if cats == nil {
			cats = []models.Category{}
		}
		httpx.JSON(w, http.StatusOK, cats)
	}
}

// newsItem decorates an article with its computed reading time.
type newsItem struct {
	models.Article
	ReadMinutes int `json:"readMinutes"`
}

func (h *PublicHandler) listNews(w http.ResponseWriter, r *http.Request) {
	q := h.DB.WithContext(r.Context()).
		Where("is_active = ?", true).
		Order("published_at desc, id desc")
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			q = q.Limit(n)
		}
	}
	var articles []models.Article
	if err := q.Find(&articles).Error; err != nil {
		log.Printf("public: list news: %v", err)
		articles = nil
	}
	items := make([]newsItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, newsItem{Article: a, ReadMinutes: a.ReadMinutes()})
	}
	httpx.JSON(w, http.StatusOK, items)
}

// getSection serves a fully grouped dynamic section, the same structure the
// rendered pages consume. Empty sections answer 204 so clients can omit the
// markup entirely.
func (h *PublicHandler) getSection(w http.ResponseWriter, r *http.Request) {
	kind := sections.Kind(r.PathValue("kind"))
	switch kind {
	case sections.KindServices, sections.KindProducts, sections.KindProjects:
	default:
		httpx.JSONError(w, http.StatusNotFound, "unknown_kind", nil)
		return
	}
	cfg := sections.Config{OnEmpty: sections.OmitWhenEmpty}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.Limit = n
		}
	}
	s := sections.NewBuilder(h.DB).Build(r.Context(), kind, r.PathValue("slug"), cfg)
	if s == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}
