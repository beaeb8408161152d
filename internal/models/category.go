package models

import "time"

// Category kinds. One table holds product, service, FAQ, partner and news
// categories; Kind discriminates, optionally scoped to an entity.
const (
	CategoryKindProduct = "product"
	CategoryKindService = "service"
	CategoryKindFaq     = "faq"
	CategoryKindPartner = "partner"
	CategoryKindNews    = "news"
)

type Category struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Kind         string          `gorm:"size:20;not null;index:idx_cat_kind_entity,priority:1" json:"kind"`
	EntityID     *uint           `gorm:"index:idx_cat_kind_entity,priority:2" json:"entityId"` // nil => toutes entités
	Entity       *BusinessEntity `gorm:"foreignKey:EntityID" json:"-"`
	Name         string          `gorm:"not null" json:"name"`
	Color        string          `gorm:"size:16" json:"color"`
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
