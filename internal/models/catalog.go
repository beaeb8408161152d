package models

import (
	"time"

	"gorm.io/gorm"
)

// Catalog records: products, services and projects. CategoryID and EntityID
// are both nullable; a nil EntityID means the record belongs to the holding
// ("Groupe") rather than a single business unit. Deleting a parent entity or
// category is not cascaded here; orphans simply group under a synthesized
// bucket at display time.

type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EntityID     *uint           `gorm:"index" json:"entityId"`
	Entity       *BusinessEntity `gorm:"foreignKey:EntityID" json:"-"`
	CategoryID   *uint           `gorm:"index" json:"categoryId"`
	Category     *Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	ImageURL     string          `json:"imageUrl"`
	Price        string          `json:"price"` // texte libre: "Sur devis", "12 500 €", ...
	IsForRent    bool            `gorm:"not null;default:false" json:"isForRent"`
	IsForSale    bool            `gorm:"not null;default:false" json:"isForSale"`
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Service struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EntityID     *uint           `gorm:"index" json:"entityId"`
	Entity       *BusinessEntity `gorm:"foreignKey:EntityID" json:"-"`
	CategoryID   *uint           `gorm:"index" json:"categoryId"`
	Category     *Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	ImageURL     string          `json:"imageUrl"`
	IsFeatured   bool            `gorm:"not null;default:false" json:"isFeatured"`
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Project struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EntityID     *uint           `gorm:"index" json:"entityId"`
	Entity       *BusinessEntity `gorm:"foreignKey:EntityID" json:"-"`
	CategoryID   *uint           `gorm:"index" json:"categoryId"`
	Category     *Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Title        string          `gorm:"not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	ImageURL     string          `json:"imageUrl"`
	Location     string          `json:"location"`
	Budget       string          `json:"budget"`
	Year         int             `json:"year"`
	Status       string          `gorm:"size:30" json:"status"` // en cours, livré, ...
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
