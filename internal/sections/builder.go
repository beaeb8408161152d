package sections

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/i18n"
	"github.com/groupebh/gbh-backend/internal/branding"
	"github.com/groupebh/gbh-backend/internal/models"
)

// Resolve finds a business entity by code or page slug, case-insensitively.
// Returns nil (no error) when nothing matches; callers fall back to the
// branding registry defaults.
func Resolve(ctx context.Context, db *gorm.DB, identifier string) (*models.BusinessEntity, error) {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return nil, nil
	}
	var e models.BusinessEntity
	err := db.WithContext(ctx).
		Where("lower(code) = ? OR lower(page_slug) = ?", id, id).
		First(&e).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Builder loads section content from the store.
type Builder struct {
	DB *gorm.DB
}

func NewBuilder(db *gorm.DB) *Builder { return &Builder{DB: db} }

// Build assembles one dynamic section for an entity page. Store failures are
// logged and collapse to the section's empty behavior; one failing section
// must never take down its siblings on the page.
func (b *Builder) Build(ctx context.Context, kind Kind, entitySlug string, cfg Config) *Section {
	lang := cfg.Lang
	if lang == "" {
		lang = "fr"
	}
	entity, err := Resolve(ctx, b.DB, entitySlug)
	if err != nil {
		log.Printf("sections: resolve %q: %v", entitySlug, err)
		return b.empty(kind, entitySlug, nil, cfg, lang)
	}
	if entity == nil {
		return b.empty(kind, entitySlug, nil, cfg, lang)
	}

	cards, err := b.loadCards(ctx, kind, entity.ID, cfg.Limit)
	if err != nil {
		log.Printf("sections: load %s for %q: %v", kind, entitySlug, err)
		return b.empty(kind, entitySlug, entity, cfg, lang)
	}

	var categories []models.Category
	if catKind := categoryKind(kind); catKind != "" {
		if err := b.DB.WithContext(ctx).
			Where("kind = ? AND (entity_id IS NULL OR entity_id = ?)", catKind, entity.ID).
			Order("display_order asc").
			Find(&categories).Error; err != nil {
			log.Printf("sections: load %s categories for %q: %v", kind, entitySlug, err)
			categories = nil
		}
	}

	if len(cards) == 0 && len(categories) == 0 {
		return b.empty(kind, entitySlug, entity, cfg, lang)
	}

	groups := GroupCards(cards, categories)
	if len(groups) == 0 {
		return b.empty(kind, entitySlug, entity, cfg, lang)
	}
	labelKey := "more_items"
	if kind == KindProducts {
		labelKey = "more_equipment"
	}
	for i := range groups {
		// The synthesized bucket for cards of a deleted category gets a
		// visible name when it sits next to real category blocks.
		if len(groups) > 1 && groups[i].CategoryID == nil && groups[i].Name == "" {
			groups[i].Name = i18n.T(lang, "others")
		}
		groups[i] = Truncate(groups[i], CardCap, labelKey, lang)
	}

	s := &Section{
		Kind:       kind,
		EntityCode: entity.Code,
		Title:      titleOr(cfg.Title, kind, lang),
		Subtitle:   cfg.Subtitle,
		Color:      branding.DisplayColor(entity),
		Groups:     groups,
	}
	if cfg.ShowCTA {
		label := cfg.CTALabel
		if label == "" {
			label = i18n.T(lang, "learn_more")
		}
		s.CTA = &CTA{Label: label, Link: cfg.CTALink}
	}
	return s
}

// empty renders the configured empty behavior: nil for omit, a placeholder
// section otherwise. The placeholder still carries the resolved color so the
// page keeps the entity's branding.
func (b *Builder) empty(kind Kind, slug string, entity *models.BusinessEntity, cfg Config, lang string) *Section {
	if cfg.OnEmpty != PlaceholderWhenEmpty {
		return nil
	}
	color := branding.DefaultColor(slug)
	code := ""
	if entity != nil {
		color = branding.DisplayColor(entity)
		code = entity.Code
	}
	return &Section{
		Kind:        kind,
		EntityCode:  code,
		Title:       titleOr(cfg.Title, kind, lang),
		Color:       color,
		Placeholder: i18n.T(lang, "coming_soon"),
	}
}

func (b *Builder) loadCards(ctx context.Context, kind Kind, entityID uint, limit int) ([]Card, error) {
	q := b.DB.WithContext(ctx).
		Where("entity_id = ? AND is_active = ?", entityID, true).
		Order("display_order asc, id asc")
	switch kind {
	case KindProducts:
		var items []models.Product
		if err := q.Find(&items).Error; err != nil {
			return nil, err
		}
		cards := make([]Card, 0, len(items))
		for _, p := range items {
			cards = append(cards, Card{ID: p.ID, CategoryID: p.CategoryID, Name: p.Name, Description: p.Description, ImageURL: p.ImageURL, Meta: p.Price})
		}
		return cards, nil
	case KindServices:
		var items []models.Service
		if err := q.Find(&items).Error; err != nil {
			return nil, err
		}
		cards := make([]Card, 0, len(items))
		for _, s := range items {
			cards = append(cards, Card{ID: s.ID, CategoryID: s.CategoryID, Name: s.Name, Description: s.Description, ImageURL: s.ImageURL})
		}
		return cards, nil
	case KindProjects:
		if limit > 0 {
			q = q.Limit(limit)
		}
		var items []models.Project
		if err := q.Find(&items).Error; err != nil {
			return nil, err
		}
		cards := make([]Card, 0, len(items))
		for _, p := range items {
			meta := p.Location
			if p.Year > 0 {
				if meta != "" {
					meta += " · "
				}
				meta += strconv.Itoa(p.Year)
			}
			cards = append(cards, Card{ID: p.ID, CategoryID: p.CategoryID, Name: p.Title, Description: p.Description, ImageURL: p.ImageURL, Meta: meta})
		}
		return cards, nil
	}
	return nil, fmt.Errorf("unknown section kind %q", kind)
}

func categoryKind(kind Kind) string {
	switch kind {
	case KindProducts:
		return models.CategoryKindProduct
	case KindServices:
		return models.CategoryKindService
	}
	return "" // projects are never categorized on the public pages
}

func titleOr(title string, kind Kind, lang string) string {
	if title != "" {
		return title
	}
	switch kind {
	case KindProducts:
		return i18n.T(lang, "our_products")
	case KindProjects:
		return i18n.T(lang, "our_projects")
	default:
		return i18n.T(lang, "our_services")
	}
}
