package models

import "time"

// Flat content records managed through the admin screens. Public pages only
// ever read active records; admin lists see everything.

type Article struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EntityID     *uint           `gorm:"index" json:"entityId"`
	Entity       *BusinessEntity `gorm:"foreignKey:EntityID" json:"-"`
	CategoryID   *uint           `gorm:"index" json:"categoryId"`
	Category     *Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Title        string          `gorm:"not null" json:"title"`
	Excerpt      string          `gorm:"type:text" json:"excerpt"`
	Body         string          `gorm:"type:text" json:"body"`
	ImageURL     string          `json:"imageUrl"`
	Author       string          `json:"author"`
	PublishedAt  *time.Time      `json:"publishedAt"`
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ReadMinutes estimates reading time from the body at 200 words per minute.
func (a Article) ReadMinutes() int {
	words := 0
	inWord := false
	for _, r := range a.Body {
		if r == ' ' || r == '\n' || r == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
	}
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

type PressRelease struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Summary      string     `gorm:"type:text" json:"summary"`
	FileURL      string     `json:"fileUrl"`
	PublishedAt  *time.Time `json:"publishedAt"`
	DisplayOrder int        `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type JobOffer struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EntityID     *uint           `gorm:"index" json:"entityId"`
	Entity       *BusinessEntity `gorm:"foreignKey:EntityID" json:"-"`
	Title        string          `gorm:"not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Location     string          `json:"location"`
	ContractType string          `gorm:"size:30" json:"contractType"` // CDI, CDD, stage, ...
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Testimonial struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EntityID     *uint           `gorm:"index" json:"entityId"`
	Entity       *BusinessEntity `gorm:"foreignKey:EntityID" json:"-"`
	AuthorName   string          `gorm:"not null" json:"authorName"`
	AuthorRole   string          `json:"authorRole"`
	Quote        string          `gorm:"type:text;not null" json:"quote"`
	PhotoURL     string          `json:"photoUrl"`
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type FaqItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryID   *uint     `gorm:"index" json:"categoryId"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Question     string    `gorm:"type:text;not null" json:"question"`
	Answer       string    `gorm:"type:text;not null" json:"answer"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Partner struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryID   *uint     `gorm:"index" json:"categoryId"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	LogoURL      string    `json:"logoUrl"`
	WebsiteURL   string    `json:"websiteUrl"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Statistic struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Label        string    `gorm:"not null" json:"label"`
	Value        int       `gorm:"not null" json:"value"`
	Suffix       string    `gorm:"size:10" json:"suffix"` // "+", "%", ...
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Milestone struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Year         int       `gorm:"not null" json:"year"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Value struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Icon         string    `gorm:"size:40" json:"icon"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SocialLink struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Platform     string    `gorm:"size:30;not null" json:"platform"`
	URL          string    `gorm:"not null" json:"url"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type TeamMember struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EntityID     *uint           `gorm:"index" json:"entityId"`
	Entity       *BusinessEntity `gorm:"foreignKey:EntityID" json:"-"`
	FullName     string          `gorm:"not null" json:"fullName"`
	Role         string          `json:"role"`
	PhotoURL     string          `json:"photoUrl"`
	LinkedInURL  string          `json:"linkedinUrl"`
	DisplayOrder int             `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
