package models

import "time"

// BusinessEntity is one of the holding's business units, or the holding itself.
// Code is the short stable identifier (RBF, RIC, REVI, RBA, GROUPE) used by
// child collections as a lookup surrogate; it never changes once created.
type BusinessEntity struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"size:16;not null;uniqueIndex" json:"code"`
	FullName       string    `gorm:"not null" json:"fullName"`
	ShortName      string    `json:"shortName"`
	Description    string    `gorm:"type:text" json:"description"`
	ColorPrimary   string    `gorm:"size:16" json:"colorPrimary"`
	ColorSecondary string    `gorm:"size:16" json:"colorSecondary"`
	LogoURL        string    `json:"logoUrl"`
	LogoWhiteURL   string    `json:"logoWhiteUrl"`
	PageSlug       string    `gorm:"size:80;index" json:"pageSlug"`
	Phone          string    `json:"phone"`
	Phone2         string    `json:"phone2"`
	Email          string    `json:"email"`
	Email2         string    `json:"email2"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	DisplayOrder   int       `gorm:"not null;default:0;index" json:"displayOrder"`
	IsActive       bool      `gorm:"not null" json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
